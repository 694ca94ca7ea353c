// Package cmd implements the ebay-seller-metrics commands: the service
// itself, one-shot collection and authorization helpers, and a client for a
// running server's API.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/donaldgifford/ebay-seller-metrics/internal/api/client"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "ebay-seller-metrics",
		Short: "Collect eBay seller metrics and serve them over HTTP",
		Long: "ebay-seller-metrics polls the eBay seller APIs on a schedule, folds the\n" +
			"responses into a snapshot of seller metrics, and exposes the latest\n" +
			"snapshot, its history and Prometheus gauges over HTTP. It also runs the\n" +
			"OAuth2 authorization-code flow needed to obtain a refresh token.",
		SilenceUsage: true,
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "config.yaml", "service config file path")
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")

	cobra.CheckErr(viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(collectCmd())
	rootCmd.AddCommand(authCmd())
	rootCmd.AddCommand(snapshotCmd())
	rootCmd.AddCommand(sensorsCmd())
	rootCmd.AddCommand(pollCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(versionCmd())
}

// initConfig lets ESM_SERVER and ESM_OUTPUT stand in for the flags.
func initConfig() {
	viper.SetEnvPrefix("ESM")
	viper.AutomaticEnv()
}

func newClient() *apiclient.Client {
	return apiclient.New(viper.GetString("server"))
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
