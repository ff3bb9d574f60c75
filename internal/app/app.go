package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/orgball2608/insta-post-exporter/internal/command"
	"github.com/orgball2608/insta-post-exporter/internal/command/commandimpl"
	"github.com/orgball2608/insta-post-exporter/internal/export"
	"github.com/orgball2608/insta-post-exporter/internal/export/exportimpl"
	"github.com/orgball2608/insta-post-exporter/internal/instagram"
	"github.com/orgball2608/insta-post-exporter/internal/instagram/instagramimpl"
	"github.com/orgball2608/insta-post-exporter/internal/parser"
	"github.com/orgball2608/insta-post-exporter/internal/parser/parserimpl"
	"github.com/orgball2608/insta-post-exporter/internal/ratelimit"
	repositories "github.com/orgball2608/insta-post-exporter/internal/repositories/fx"
	"github.com/orgball2608/insta-post-exporter/internal/telegram"
	"github.com/orgball2608/insta-post-exporter/internal/telegram/telegramimpl"
	"github.com/orgball2608/insta-post-exporter/pkg/config"
	"github.com/orgball2608/insta-post-exporter/pkg/formatter"
	"github.com/orgball2608/insta-post-exporter/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		logger.FxOption,
		NewLimiter,
		instagramimpl.NewFetcher,
		telegramimpl.New,
	),
	fx.Provide(
		fx.Annotate(
			instagramimpl.New,
			fx.As(new(instagram.Client)),
		),
		fx.Annotate(
			exportimpl.New,
			fx.As(new(export.Exporter)),
		),
		fx.Annotate(
			parserimpl.New,
			fx.As(new(parser.Client)),
		),
		fx.Annotate(
			commandimpl.New,
			fx.As(new(command.Client)),
		),
	),
	repositories.Module,
)

const commandRestartDelay = 5 * time.Second

// Daemon schedules parsing and cleanup, serves /healthz and answers chat
// commands when telegram is configured, until the app stops.
var Daemon = fx.Invoke(run)

// New builds the application around an already loaded config. Callers append
// fx.Populate or fx.Invoke options to pick what runs.
func New(cfg *config.Config, opts ...fx.Option) *fx.App {
	boot := logger.New(logger.Opts{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	return fx.New(append([]fx.Option{
		fx.Logger(boot),
		fx.Supply(cfg),
		Module,
	}, opts...)...)
}

func NewLimiter(cfg *config.Config) ratelimit.Limiter {
	return ratelimit.NewInMemoryLimiter(cfg.Parser.MinInterval)
}

func run(lc fx.Lifecycle, log logger.Logger, cfg *config.Config, tgClient telegram.Client,
	pClient parser.Client, cmdClient command.Client) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           healthMux(log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go startHttpServer(log, srv)

			if err := pClient.ScheduleParsing(ctx); err != nil {
				log.Error("Schedule parsing error", "error", err)
				tgClient.SendMessageToUser(formatter.EscapeMarkdownV2("Schedule parsing error: " + err.Error()))
				return err
			}

			if err := pClient.ScheduleDatabaseCleanup(ctx); err != nil {
				log.Error("Schedule cleanup error", "error", err)
				return err
			}

			if cfg.NotifyEnabled() {
				go handleCommands(ctx, log, cmdClient)
			}
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			return srv.Shutdown(stopCtx)
		},
	})
}

// handleCommands restarts the command handler until ctx is done.
func handleCommands(ctx context.Context, log logger.Logger, cmdClient command.Client) {
	for ctx.Err() == nil {
		if err := cmdClient.HandleCommand(ctx); err != nil && ctx.Err() == nil {
			log.Error("Command error", "error", err)
			select {
			case <-ctx.Done():
			case <-time.After(commandRestartDelay):
			}
		}
	}
}

func startHttpServer(log logger.Logger, srv *http.Server) {
	log.Info("Starting server", "addr", srv.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("Server failed to start", "error", err)
	}
}

func healthMux(log logger.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		healthCheckHandler(w, r, log)
	})
	return mux
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request, logger logger.Logger) {
	logger.Debug("Health check request received", "method", r.Method, "url", r.URL.String())
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		logger.Error("Failed to write response", "error", err)
	}
}
