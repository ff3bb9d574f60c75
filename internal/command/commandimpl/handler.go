package commandimpl

import (
	"context"
	"errors"
	"runtime/debug"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpMessage = `👋 *Instagram post exporter*

/export <username> \[max\] \- export the posts of a public profile
/history <username> \- list the latest stored posts
/help \- show this guide`

const unknownCommand = `Unknown command\. Type /help to see the list of available commands\.`

func (c *CommandImpl) HandleCommand(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := c.Telegram.GetUpdatesChan(u)
	c.Logger.Info("Command handler started, listening for updates.")

	for {
		select {
		case <-ctx.Done():
			c.Logger.Info("Command handler shutting down.")
			c.Telegram.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				c.Logger.Warn("Telegram updates channel closed unexpectedly")
				return errors.New("telegram updates channel closed")
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}

			go func(msg *tgbotapi.Message) {
				defer func() {
					if r := recover(); r != nil {
						c.Logger.Error("Panic recovered while processing an update", "panic", r, "stack", string(debug.Stack()))
					}
				}()

				if err := c.processCommand(ctx, msg); err != nil {
					c.Logger.Error("Error processing command",
						"command", msg.Command(),
						"error", err)
				}
			}(update.Message)
		}
	}
}

func (c *CommandImpl) processCommand(ctx context.Context, msg *tgbotapi.Message) error {
	chatID := msg.Chat.ID

	if msg.From == nil || msg.From.ID != c.Config.Telegram.User {
		c.Logger.Warn("Ignoring command from unknown user", "chatID", chatID)
		_, err := c.Telegram.SendMessage(chatID, "Sorry, this bot only answers its owner\\.")
		return err
	}

	c.Logger.Info("Command received", "command", msg.Command(), "args", msg.CommandArguments())

	switch msg.Command() {
	case "start", "help":
		_, err := c.Telegram.SendMessage(chatID, helpMessage)
		return err
	case "export":
		return c.handleExport(ctx, chatID, msg.CommandArguments())
	case "history":
		return c.handleHistory(ctx, chatID, msg.CommandArguments())
	default:
		_, err := c.Telegram.SendMessage(chatID, unknownCommand)
		return err
	}
}
