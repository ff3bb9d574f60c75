package cli

import (
	"context"

	"github.com/orgball2608/insta-post-exporter/pkg/config"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.Load(o.configPath)
	}
	return config.New()
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "insta-post-exporter",
		Short:         "insta-post-exporter exports the posts of public Instagram profiles to JSON, CSV, Excel and HTML.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"settings file (defaults to $CONFIG_PATH, then "+config.DefaultPath+")")

	cmd.AddCommand(
		newScrapeCmd(opts),
		newScheduleCmd(opts),
		newHistoryCmd(opts),
	)
	return cmd
}

func ExecuteContext(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
