package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func snapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Show the latest snapshot from the server",
		Example: `  ebay-seller-metrics snapshot
  ebay-seller-metrics snapshot --output json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			snap, err := newClient().GetSnapshot(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(snap)
			}
			return printSnapshot(os.Stdout, snap.CollectedAt, snap.Metrics, snap.Degraded)
		},
	}
}

func sensorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sensors",
		Short: "List every metric with its display name and current value",
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := newClient().ListSensors(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(s)
			}
			if s.CollectedAt == nil {
				fmt.Println("No snapshot collected yet; values are zero.")
			}
			return printSensorsTable(os.Stdout, s.Sensors)
		},
	}
}

func pollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "poll",
		Short: "Trigger a poll on the server and print the result",
		RunE: func(_ *cobra.Command, _ []string) error {
			snap, err := newClient().TriggerPoll(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(snap)
			}
			return printSnapshot(os.Stdout, snap.CollectedAt, snap.Metrics, snap.Degraded)
		},
	}
}
