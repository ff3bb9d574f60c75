package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/orgball2608/insta-post-exporter/internal/app"
	"github.com/orgball2608/insta-post-exporter/internal/domain"
	"github.com/orgball2608/insta-post-exporter/internal/parser"
	"github.com/orgball2608/insta-post-exporter/pkg/config"
	"github.com/orgball2608/insta-post-exporter/pkg/errors"
	"github.com/orgball2608/insta-post-exporter/pkg/formatter"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

type scrapeFlags struct {
	usernames []string
	inputFile string
	maxPosts  int
	formats   []string
	outputDir string
}

// apply copies the flags the user set over cfg. Positional args count as usernames.
func (f *scrapeFlags) apply(cmd *cobra.Command, args []string, cfg *config.Config) error {
	flags := cmd.Flags()

	usernames := append(slices.Clone(f.usernames), args...)
	switch {
	case len(usernames) > 0:
		cfg.Parser.Usernames = usernames
	case flags.Changed("input-file"):
		cfg.Parser.Usernames = nil
	}
	if flags.Changed("input-file") {
		cfg.Parser.InputFile = f.inputFile
	}
	if flags.Changed("max-posts") {
		if f.maxPosts < 0 {
			return fmt.Errorf("--max-posts must not be negative, got %d", f.maxPosts)
		}
		cfg.Scraper.MaxPosts = f.maxPosts
	}
	if flags.Changed("formats") {
		cfg.Export.Formats = f.formats
	}
	if flags.Changed("output-dir") {
		cfg.Export.OutputDir = f.outputDir
	}
	return nil
}

func newScrapeCmd(root *rootOptions) *cobra.Command {
	f := &scrapeFlags{}

	cmd := &cobra.Command{
		Use:   "scrape [username...]",
		Short: "Fetches every post of the given profiles once and writes the export files.",
		Example: `  insta-post-exporter scrape nasa
  insta-post-exporter scrape -u nasa -u esa -m 100 -f json,excel
  insta-post-exporter scrape -i data/inputs.txt -o exports`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if err := f.apply(cmd, args, cfg); err != nil {
				return err
			}

			targets, err := parser.LoadTargets(cfg.Parser.InputFile, cfg.Parser.Usernames, cfg.Scraper.MaxPosts)
			if errors.IsInvalidInput(err) {
				return fmt.Errorf("%w (pass usernames as arguments or point --input-file at a list)", err)
			}
			if err != nil {
				return err
			}
			if len(targets) == 0 {
				return fmt.Errorf("no usernames found in %s", cfg.Parser.InputFile)
			}

			var client parser.Client
			fxApp := app.New(cfg, fx.Populate(&client))
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

			return runScrape(cmd.Context(), cmd.OutOrStdout(), client, targets)
		},
	}

	f.register(cmd)

	return cmd
}

func (f *scrapeFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringArrayVarP(&f.usernames, "username", "u", nil, "profile handle to export, repeatable")
	flags.StringVarP(&f.inputFile, "input-file", "i", "", "file with one handle per line")
	flags.IntVarP(&f.maxPosts, "max-posts", "m", 0, "maximum posts per profile, 0 for all")
	flags.StringSliceVarP(&f.formats, "formats", "f", nil, "output formats: json, csv, excel, html")
	flags.StringVarP(&f.outputDir, "output-dir", "o", "", "directory for the export files")
}

// runScrape parses targets, prints a results table and fails when any profile failed.
func runScrape(ctx context.Context, out io.Writer, client parser.Client, targets []domain.ProfileTarget) error {
	results := client.ParseProfiles(ctx, targets)
	renderResults(out, results)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d profiles failed", failed, len(results))
	}
	return nil
}

func renderResults(out io.Writer, results []domain.ProfileResult) {
	t := newTable(out)
	t.AppendHeader(table.Row{"#", "Profile", "Posts", "Stored", "Files", "Status"})

	total := 0
	for i, r := range results {
		status := "ok"
		if r.Err != nil {
			status = formatter.Truncate(r.Err.Error(), 80)
		}
		total += r.Posts
		t.AppendRow(table.Row{
			i + 1,
			r.Username,
			formatter.FormatNumber(r.Posts),
			formatter.FormatNumber(r.Stored),
			filesCell(r.Files),
			status,
		})
	}
	t.AppendFooter(table.Row{"", "Total", formatter.FormatNumber(total), "", "", ""})
	t.Render()
}

func filesCell(files map[string]string) string {
	paths := make([]string, 0, len(files))
	for _, p := range files {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return strings.Join(paths, "\n")
}
