package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

//go:generate go run go.uber.org/mock/mockgen -source=telegram.go -destination=mocks/mock.go
type Client interface {
	// SendMessage sends MarkdownV2 text to chatID and returns the message id.
	SendMessage(chatID int64, text string) (int, error)

	// SendMessageToUser sends MarkdownV2 text to the configured user. Failures are logged.
	SendMessageToUser(message string)

	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}
