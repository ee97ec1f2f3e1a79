package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "emailcrawler",
	Short: "Crawl a site and collect the email addresses it publishes",
	Long: `emailcrawler fetches a seed page, follows its links for a number of
rounds and collects every email address found on the way.

Examples:
  # Serve the web form and JSON API
  emailcrawler serve --config-path config/config.toml

  # One-off crawl, two rounds deep, only addresses ending in example.com
  emailcrawler extract example.com --depth 2 --domain example.com --format csv`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config-path", "config/config.toml", "path to config file in .toml format")
	rootCmd.AddCommand(newServeCmd(), newExtractCmd())
}

func newLogger() *zap.Logger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
