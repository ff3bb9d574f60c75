package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	With(args ...any) Logger
	WithComponent(name string) Logger
}

type Opts struct {
	Env       string
	Level     string
	SentryDSN string
	Output    io.Writer
}

type Impl struct {
	*slog.Logger
	sentry bool
}

var _ Logger = (*Impl)(nil)

// New builds a slog logger writing through zerolog. Records at error level are
// also sent to Sentry when a DSN is given.
func New(opts Opts) *Impl {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level := ParseLevel(opts.Level)

	// The slog handler stamps each record with its own time field.
	var zl zerolog.Logger
	if opts.Env == "" || opts.Env == "development" {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.DateTime})
	} else {
		zl = zerolog.New(out)
	}

	handlers := []slog.Handler{
		slogzerolog.Option{Level: level, Logger: &zl}.NewZerologHandler(),
	}

	withSentry := false
	if opts.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         opts.SentryDSN,
			Environment: opts.Env,
		})
		if err != nil {
			zl.Warn().Err(err).Msg("Failed to initialize sentry, continuing without it")
		} else {
			handlers = append(handlers, slogsentry.Option{Level: slog.LevelError}.NewSentryHandler())
			withSentry = true
		}
	}

	return &Impl{
		Logger: slog.New(slogmulti.Fanout(handlers...)),
		sentry: withSentry,
	}
}

// ParseLevel maps debug|info|warn|error to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Impl) With(args ...any) Logger {
	return &Impl{Logger: l.Logger.With(args...), sentry: l.sentry}
}

func (l *Impl) WithComponent(name string) Logger {
	return l.With("component", name)
}

// Printf lets fx report its own events through this logger.
func (l *Impl) Printf(format string, args ...any) {
	l.Logger.Debug(fmt.Sprintf(format, args...))
}

// Flush waits for buffered Sentry events.
func (l *Impl) Flush() {
	if l.sentry {
		sentry.Flush(2 * time.Second)
	}
}
