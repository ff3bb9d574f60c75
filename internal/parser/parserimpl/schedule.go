package parserimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/orgball2608/insta-post-exporter/internal/parser"
)

// ScheduleParsing runs ParseProfiles on Parser.Schedule, starting right away.
// Targets are reloaded on every run so the input file can change between runs.
func (p *ParserImpl) ScheduleParsing(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(p.location()))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.CronJob(p.Config.Parser.Schedule, false),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				p.Logger.Info("Context cancelled, stopping parsing schedule")
				return
			}
			p.runScheduledParsing(ctx)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule parsing: %w", err)
	}

	scheduler.Start()
	p.Logger.Info("Parsing scheduled", "cron", p.Config.Parser.Schedule, "timezone", p.Config.Parser.Timezone)

	go func() {
		<-ctx.Done()
		p.Logger.Info("Stopping parsing scheduler")
		if err := scheduler.Shutdown(); err != nil {
			p.Logger.Error("Failed to shut down scheduler", "error", err)
		}
	}()

	return nil
}

func (p *ParserImpl) runScheduledParsing(ctx context.Context) {
	p.Logger.Info("Starting scheduled parsing")

	targets, err := parser.LoadTargets(p.Config.Parser.InputFile, p.Config.Parser.Usernames, p.Config.Scraper.MaxPosts)
	if err != nil {
		p.Logger.Error("Failed to load targets", "error", err)
		return
	}
	if len(targets) == 0 {
		p.Logger.Info("No profiles to parse. Skipping.")
		return
	}

	p.ParseProfiles(ctx, targets)
}

// ScheduleDatabaseCleanup sets up a daily job removing stored posts older than
// Parser.RetentionDays. It does nothing when the store or retention is off.
func (p *ParserImpl) ScheduleDatabaseCleanup(ctx context.Context) error {
	if !p.Config.StoreEnabled() || p.Config.Parser.RetentionDays <= 0 {
		p.Logger.Info("Database cleanup disabled")
		return nil
	}

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(p.location()))
	if err != nil {
		return fmt.Errorf("failed to create cleanup scheduler: %w", err)
	}

	// Schedule a job to run at 3:00 AM every day
	_, err = scheduler.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0)),
		),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				p.Logger.Info("Context cancelled, stopping database cleanup job")
				return
			}
			p.cleanup(ctx)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule database cleanup: %w", err)
	}

	scheduler.Start()

	go func() {
		<-ctx.Done()
		p.Logger.Info("Stopping database cleanup scheduler")
		if err := scheduler.Shutdown(); err != nil {
			p.Logger.Error("Failed to shut down cleanup scheduler", "error", err)
		}
	}()

	return nil
}

func (p *ParserImpl) cleanup(ctx context.Context) {
	p.Logger.Info("Starting scheduled database cleanup job")

	cleanupCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	retention := time.Duration(p.Config.Parser.RetentionDays) * 24 * time.Hour
	rowsDeleted, err := p.PostRepo.CleanupOldRecords(cleanupCtx, retention)
	if err != nil {
		p.Logger.Error("Failed to clean up old records", "error", err)
		return
	}

	p.Logger.Info("Database cleanup completed successfully", "rows_deleted", rowsDeleted)
}
