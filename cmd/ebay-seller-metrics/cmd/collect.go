package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func collectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collect",
		Short: "Collect one snapshot locally and print it",
		Long: "Refresh the configured token, query every enabled eBay endpoint once and\n" +
			"print the resulting snapshot. Nothing is stored and no notifications are\n" +
			"sent. Requires ebay.refresh_token in the config.",
		Example: `  ebay-seller-metrics collect --config config.yaml
  ebay-seller-metrics collect --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Ebay.Timeout*4)
			defer cancel()

			token, err := a.session.Token(ctx)
			if err != nil {
				return fmt.Errorf("obtaining access token: %w", err)
			}

			snap := a.collector().Collect(ctx, token)
			if jsonOutput() {
				return outputJSON(snap.Record(""))
			}
			return printSnapshot(os.Stdout, snap.CollectedAt, snap.Map(), snap.Degraded)
		},
	}
}
