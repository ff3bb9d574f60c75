package parserimpl

import (
	"time"

	"github.com/orgball2608/insta-post-exporter/internal/export"
	"github.com/orgball2608/insta-post-exporter/internal/instagram"
	"github.com/orgball2608/insta-post-exporter/internal/parser"
	"github.com/orgball2608/insta-post-exporter/internal/ratelimit"
	"github.com/orgball2608/insta-post-exporter/internal/repositories/post"
	"github.com/orgball2608/insta-post-exporter/internal/telegram"
	"github.com/orgball2608/insta-post-exporter/pkg/config"
	"github.com/orgball2608/insta-post-exporter/pkg/errors"
	"github.com/orgball2608/insta-post-exporter/pkg/logger"
	"github.com/orgball2608/insta-post-exporter/pkg/retry"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Instagram instagram.Client
	Exporter  export.Exporter
	PostRepo  post.Repository
	Telegram  telegram.Client
	Limiter   ratelimit.Limiter
	Logger    logger.Logger
	Config    *config.Config
}

type ParserImpl struct {
	Instagram instagram.Client
	Exporter  export.Exporter
	PostRepo  post.Repository
	Telegram  telegram.Client
	Limiter   ratelimit.Limiter
	Logger    logger.Logger
	Config    *config.Config

	formats []export.Format
	retry   retry.Config
}

func New(opts Opts) (*ParserImpl, error) {
	formats, err := export.ParseFormats(opts.Config.Export.Formats)
	if err != nil {
		return nil, err
	}

	return &ParserImpl{
		Instagram: opts.Instagram,
		Exporter:  opts.Exporter,
		PostRepo:  opts.PostRepo,
		Telegram:  opts.Telegram,
		Limiter:   opts.Limiter,
		Logger:    opts.Logger.WithComponent("Parser"),
		Config:    opts.Config,
		formats:   formats,
		retry: retry.Config{
			MaxRetries:      opts.Config.Scraper.Retries,
			InitialInterval: time.Second,
			MaxInterval:     15 * time.Second,
			Multiplier:      2,
			Retryable:       errors.IsNetworkFailure,
		},
	}, nil
}

var _ parser.Client = (*ParserImpl)(nil)

// location resolves Parser.Timezone, falling back to local time.
func (p *ParserImpl) location() *time.Location {
	loc, err := time.LoadLocation(p.Config.Parser.Timezone)
	if err != nil {
		p.Logger.Warn("Failed to load timezone, using local timezone", "timezone", p.Config.Parser.Timezone, "error", err)
		return time.Local
	}
	return loc
}
