package parserimpl

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/orgball2608/insta-post-exporter/internal/domain"
	"github.com/orgball2608/insta-post-exporter/internal/export"
	"github.com/orgball2608/insta-post-exporter/internal/parser"
	"github.com/orgball2608/insta-post-exporter/pkg/errors"
	"github.com/orgball2608/insta-post-exporter/pkg/formatter"
	"github.com/orgball2608/insta-post-exporter/pkg/retry"
	"github.com/panjf2000/ants/v2"
)

func (p *ParserImpl) ParseProfiles(ctx context.Context, targets []domain.ProfileTarget) []domain.ProfileResult {
	results := make([]domain.ProfileResult, len(targets))
	if len(targets) == 0 {
		return results
	}

	p.Logger.Info("Parsing profiles", "count", len(targets), "concurrency", p.concurrency())

	p.runJobsWithAnts(ctx, len(targets), func(i int) {
		results[i] = p.parseProfile(ctx, targets[i])
	}, func(i int, err error) {
		results[i] = domain.ProfileResult{Username: targets[i].Username, Err: err}
	})

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	p.Logger.Info("Finished parsing profiles", "total", len(results), "failed", failed)

	p.Telegram.SendMessageToUser(summary(results))
	return results
}

func (p *ParserImpl) concurrency() int {
	return max(1, p.Config.Parser.Concurrency)
}

// runJobsWithAnts runs job(i) for i in [0,n) on a bounded pool. skip(i, err)
// records jobs that never ran.
func (p *ParserImpl) runJobsWithAnts(ctx context.Context, n int, job func(i int), skip func(i int, err error)) {
	pool, err := ants.NewPool(p.concurrency(), ants.WithPreAlloc(true))
	if err != nil {
		p.Logger.Error("Failed to create worker pool, running sequentially", "error", err)
		for i := range n {
			job(i)
		}
		return
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		idx := i

		err := pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				skip(idx, err)
				return
			}
			job(idx)
		})
		if err != nil {
			wg.Done()
			p.Logger.Error("Failed to submit job to ants pool", "index", idx, "error", err)
			skip(idx, err)
		}
	}

	wg.Wait()
}

func (p *ParserImpl) parseProfile(ctx context.Context, target domain.ProfileTarget) domain.ProfileResult {
	result := domain.ProfileResult{Username: target.Username}
	log := p.Logger.With("username", target.Username)

	if !p.Limiter.Allow(strings.ToLower(target.Username)) {
		log.Warn("Skipping profile, parsed too recently")
		result.Err = parser.ErrRateLimited
		return result
	}

	var records []domain.PostRecord
	err := retry.Do(ctx, log, "fetch posts", func() error {
		var err error
		records, err = p.Instagram.FetchPosts(ctx, target.Username, target.MaxPosts)
		return err
	}, p.retry)
	if err != nil {
		if errors.IsProfileNotFound(err) {
			log.Warn("Profile not found", fetchFailureAttrs(err)...)
		} else {
			log.Error("Failed to fetch posts", fetchFailureAttrs(err)...)
		}
		result.Err = err
		return result
	}

	result.Posts = len(records)
	if len(records) == 0 {
		log.Warn("No posts found, skipping export")
		return result
	}

	paths, err := p.Exporter.Export(records, p.Config.Export.OutputDir, export.BaseName(target.Username), p.formats)
	if err != nil {
		log.Error("Failed to export posts", "error", err)
		result.Err = fmt.Errorf("export posts: %w", err)
		return result
	}
	result.Files = make(map[string]string, len(paths))
	for format, path := range paths {
		result.Files[string(format)] = path
	}

	stored, err := p.PostRepo.Upsert(ctx, target.Username, records)
	if err != nil {
		log.Error("Failed to store posts", "error", err)
		result.Err = fmt.Errorf("store posts: %w", err)
		return result
	}
	result.Stored = stored

	log.Info("Profile parsed", "posts", result.Posts, "files", len(result.Files), "stored", stored)
	return result
}

// fetchFailureAttrs adds the error kind and HTTP status, when known, to a log line.
func fetchFailureAttrs(err error) []any {
	attrs := []any{"error", err}
	if code := errors.GetCode(err); code != "" {
		attrs = append(attrs, "code", code)
	}
	if status := errors.GetStatusCode(err); status != 0 {
		attrs = append(attrs, "status", status)
	}
	return attrs
}

const maxErrorText = 200

// summary renders results as a MarkdownV2 message.
func summary(results []domain.ProfileResult) string {
	var sb strings.Builder
	sb.WriteString("*Instagram export finished*\n")
	for _, r := range results {
		name := formatter.EscapeMarkdownV2(r.Username)
		if r.Err != nil {
			fmt.Fprintf(&sb, "\n❌ %s: %s", name, formatter.EscapeMarkdownV2(formatter.Truncate(r.Err.Error(), maxErrorText)))
			continue
		}
		fmt.Fprintf(&sb, "\n✅ %s: %s posts", name, formatter.FormatNumber(r.Posts))
		if len(r.Files) > 0 {
			fmt.Fprintf(&sb, ", %d files", len(r.Files))
		}
		if r.Stored > 0 {
			fmt.Fprintf(&sb, ", %s stored", formatter.FormatNumber(r.Stored))
		}
	}
	return sb.String()
}
