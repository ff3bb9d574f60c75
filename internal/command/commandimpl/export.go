package commandimpl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/orgball2608/insta-post-exporter/internal/parser"
	"github.com/orgball2608/insta-post-exporter/pkg/formatter"
)

const historySize = 10

// handleExport parses one profile. The run summary reaches the owner through
// the parser's own notification.
func (c *CommandImpl) handleExport(ctx context.Context, chatID int64, args string) error {
	fields := strings.Fields(args)
	if len(fields) == 0 || len(fields) > 2 {
		_, err := c.Telegram.SendMessage(chatID, "Please provide a username: /export <username> \\[max\\]")
		return err
	}

	targets, err := parser.ReadTargets(strings.NewReader(strings.Join(fields, ",")), c.Config.Scraper.MaxPosts)
	if err == nil && len(targets) == 0 {
		err = fmt.Errorf("invalid username %q", fields[0])
	}
	if err != nil {
		_, sendErr := c.Telegram.SendMessage(chatID, formatter.EscapeMarkdownV2(err.Error()))
		return sendErr
	}
	target := targets[0]

	initial := fmt.Sprintf("Exporting posts of @%s\\.\\.\\. ⏳", formatter.EscapeMarkdownV2(target.Username))
	if _, err := c.Telegram.SendMessage(chatID, initial); err != nil {
		return fmt.Errorf("failed to send initial message: %w", err)
	}

	exportCtx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	results := c.Parser.ParseProfiles(exportCtx, targets)
	if len(results) == 1 && results[0].Err != nil {
		return fmt.Errorf("export of %s failed: %w", target.Username, results[0].Err)
	}
	return nil
}

func (c *CommandImpl) handleHistory(ctx context.Context, chatID int64, args string) error {
	username := strings.TrimPrefix(strings.TrimSpace(args), "@")
	if username == "" {
		_, err := c.Telegram.SendMessage(chatID, "Please provide a username: /history <username>")
		return err
	}
	if !c.Config.StoreEnabled() {
		_, err := c.Telegram.SendMessage(chatID, "History needs a record store, none is configured\\.")
		return err
	}

	records, err := c.PostRepo.GetLatestByUsername(ctx, username, historySize)
	if err != nil {
		return fmt.Errorf("failed to load history for %s: %w", username, err)
	}

	name := formatter.EscapeMarkdownV2(username)
	if len(records) == 0 {
		_, err := c.Telegram.SendMessage(chatID, fmt.Sprintf("No stored posts for @%s\\.", name))
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "*Latest posts of @%s*\n", name)
	for i := range records {
		r := &records[i]
		sb.WriteString("\n• ")
		code := formatter.EscapeMarkdownV2(value(r.ShortCode))
		if r.PostURL != nil {
			fmt.Fprintf(&sb, "[%s](%s)", code, *r.PostURL)
		} else {
			sb.WriteString(code)
		}
		if r.PostDate != nil {
			fmt.Fprintf(&sb, " %s", formatter.EscapeMarkdownV2(*r.PostDate))
		}
		if r.LikeCount != nil {
			fmt.Fprintf(&sb, ", %s likes", formatter.EscapeMarkdownV2(formatter.FormatNumber(*r.LikeCount)))
		}
	}

	_, err = c.Telegram.SendMessage(chatID, sb.String())
	return err
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
