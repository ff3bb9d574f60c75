package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/orgball2608/insta-post-exporter/internal/app"
	"github.com/orgball2608/insta-post-exporter/internal/domain"
	"github.com/orgball2608/insta-post-exporter/internal/repositories/post"
	"github.com/orgball2608/insta-post-exporter/pkg/formatter"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

const captionWidth = 60

func newHistoryCmd(root *rootOptions) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "history <username>",
		Short: "Lists the latest stored posts of a profile.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if !cfg.StoreEnabled() {
				return errors.New("history needs a record store, set postgres.host")
			}

			var repo post.Repository
			fxApp := app.New(cfg, fx.Populate(&repo))
			if err := fxApp.Err(); err != nil {
				return err
			}

			startCtx, cancel := context.WithTimeout(cmd.Context(), fxApp.StartTimeout())
			defer cancel()
			if err := fxApp.Start(startCtx); err != nil {
				return err
			}
			defer func() {
				stopCtx, cancel := context.WithTimeout(context.Background(), fxApp.StopTimeout())
				defer cancel()
				_ = fxApp.Stop(stopCtx)
			}()

			records, err := repo.GetLatestByUsername(cmd.Context(), args[0], count)
			if err != nil {
				return err
			}
			renderHistory(cmd.OutOrStdout(), records)
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 20, "number of posts to list, 0 for all")

	return cmd
}

func renderHistory(out io.Writer, records []domain.PostRecord) {
	t := newTable(out)
	t.AppendHeader(table.Row{"Date", "Short code", "Likes", "Comments", "Caption"})
	for i := range records {
		r := &records[i]
		t.AppendRow(table.Row{
			deref(r.PostDate),
			deref(r.ShortCode),
			formatCount(r.LikeCount),
			formatCount(r.CommentCount),
			formatter.Truncate(firstLine(deref(r.Caption)), captionWidth),
		})
	}
	t.Render()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatCount(n *int64) string {
	if n == nil {
		return ""
	}
	return formatter.FormatNumber(*n)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
