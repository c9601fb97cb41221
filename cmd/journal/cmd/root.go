package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trade-journal-go/internal/client"
	"trade-journal-go/internal/logger"
)

var (
	serverAddr string
	apiToken   string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "journal",
	Short: "A personal trading journal",
	Long: `Journal records buy/sell transactions, categorizes trades by
setup, type, market and account, and reports performance per month,
quarter and year.

Client commands (upload, report) talk to a running journal server;
admin commands (user) work directly against the database.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverAddr, "server", envOr("JOURNAL_SERVER", "http://localhost:8080"), "journal server address")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", envOr("JOURNAL_TOKEN", ""), "API token")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// newLogger builds the CLI logger; commands share one console format.
func newLogger() (*zap.Logger, error) {
	return logger.NewLogger(logLevel, "console")
}

// newClient builds the API client from the persistent flags.
func newClient() (*client.Client, error) {
	log, err := newLogger()
	if err != nil {
		return nil, err
	}
	return client.New(serverAddr, apiToken, log), nil
}
