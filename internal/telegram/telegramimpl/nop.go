package telegramimpl

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/insta-post-exporter/internal/telegram"
	"github.com/orgball2608/insta-post-exporter/pkg/logger"
)

// Nop drops every message. It stands in when notifications are not configured.
type Nop struct {
	Logger logger.Logger
}

var _ telegram.Client = Nop{}

func (n Nop) SendMessage(chatID int64, _ string) (int, error) {
	n.Logger.Debug("Telegram disabled, dropping message", "chatID", chatID)
	return 0, nil
}

func (n Nop) SendMessageToUser(string) {
	n.Logger.Debug("Telegram disabled, dropping message to user")
}

// GetUpdatesChan returns a channel that never delivers.
func (n Nop) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return make(chan tgbotapi.Update)
}

func (n Nop) StopReceivingUpdates() {}
