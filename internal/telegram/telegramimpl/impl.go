package telegramimpl

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/insta-post-exporter/internal/telegram"
	"github.com/orgball2608/insta-post-exporter/pkg/config"
	"github.com/orgball2608/insta-post-exporter/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type TelegramImpl struct {
	TgBot  *tgbotapi.BotAPI
	Logger logger.Logger
	Config *config.Config
}

var _ telegram.Client = (*TelegramImpl)(nil)

// New returns a bot client when a token and user are configured, and Nop otherwise.
func New(opts Opts) (telegram.Client, error) {
	if !opts.Config.NotifyEnabled() {
		return Nop{Logger: opts.Logger.WithComponent("Telegram")}, nil
	}
	tg, err := newWithEndpoint(opts, tgbotapi.APIEndpoint)
	if err != nil {
		return nil, err
	}
	return tg, nil
}

func newWithEndpoint(opts Opts, endpoint string) (*TelegramImpl, error) {
	log := opts.Logger.WithComponent("Telegram")

	tgBot, err := tgbotapi.NewBotAPIWithAPIEndpoint(opts.Config.Telegram.Token, endpoint)
	if err != nil {
		log.Error("Error creating bot", "error", err)
		return nil, err
	}

	log.Info("Authorized telegram bot", "bot", tgBot.Self.UserName)
	return &TelegramImpl{
		TgBot:  tgBot,
		Logger: log,
		Config: opts.Config,
	}, nil
}
