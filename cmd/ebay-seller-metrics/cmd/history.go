package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	historyRoot := &cobra.Command{
		Use:   "history",
		Short: "View poll runs and stored snapshots",
	}

	historyRoot.AddCommand(
		historyPollsCmd(),
		historySnapshotsCmd(),
	)

	return historyRoot
}

func historyPollsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "polls",
		Short: "List recent poll runs",
		Example: `  ebay-seller-metrics history polls
  ebay-seller-metrics history polls --limit 5 --output json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			runs, err := newClient().ListPolls(context.Background(), limit)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(runs)
			}
			if len(runs) == 0 {
				fmt.Println("No poll runs found.")
				return nil
			}
			return printPollRunsTable(os.Stdout, runs)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs")
	return cmd
}

func historySnapshotsCmd() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "List stored snapshots, newest first",
		RunE: func(_ *cobra.Command, _ []string) error {
			page, err := newClient().ListSnapshots(context.Background(), limit, offset)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(page)
			}
			if len(page.Snapshots) == 0 {
				fmt.Println("No snapshots found.")
				return nil
			}
			return printSnapshotPage(os.Stdout, page)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of snapshots")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of snapshots to skip")
	return cmd
}
