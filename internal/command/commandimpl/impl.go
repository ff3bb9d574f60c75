package commandimpl

import (
	"github.com/orgball2608/insta-post-exporter/internal/command"
	"github.com/orgball2608/insta-post-exporter/internal/parser"
	"github.com/orgball2608/insta-post-exporter/internal/repositories/post"
	"github.com/orgball2608/insta-post-exporter/internal/telegram"
	"github.com/orgball2608/insta-post-exporter/pkg/config"
	"github.com/orgball2608/insta-post-exporter/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Telegram telegram.Client
	Parser   parser.Client
	PostRepo post.Repository
	Logger   logger.Logger
	Config   *config.Config
}

type CommandImpl struct {
	Telegram telegram.Client
	Parser   parser.Client
	PostRepo post.Repository
	Logger   logger.Logger
	Config   *config.Config
}

func New(opts Opts) *CommandImpl {
	return &CommandImpl{
		Telegram: opts.Telegram,
		Parser:   opts.Parser,
		PostRepo: opts.PostRepo,
		Logger:   opts.Logger.WithComponent("Command"),
		Config:   opts.Config,
	}
}

var _ command.Client = (*CommandImpl)(nil)
