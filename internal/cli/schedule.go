package cli

import (
	"context"

	"github.com/orgball2608/insta-post-exporter/internal/app"
	"github.com/spf13/cobra"
)

func newScheduleCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Runs as a daemon, exporting profiles on the configured cron schedule.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			fxApp := app.New(cfg, app.Daemon)
			if err := fxApp.Err(); err != nil {
				return err
			}

			startCtx, cancel := context.WithTimeout(cmd.Context(), fxApp.StartTimeout())
			defer cancel()
			if err := fxApp.Start(startCtx); err != nil {
				return err
			}

			select {
			case <-fxApp.Done():
			case <-cmd.Context().Done():
			}

			stopCtx, cancel := context.WithTimeout(context.Background(), fxApp.StopTimeout())
			defer cancel()
			return fxApp.Stop(stopCtx)
		},
	}
}
