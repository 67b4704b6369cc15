// Package root contains the root command for the application
package root

import (
	"fjacquet/budget-ledger/internal/config"
	"fjacquet/budget-ledger/internal/forecast"
	"fjacquet/budget-ledger/internal/importer"
	"fjacquet/budget-ledger/internal/ledger"
	"fjacquet/budget-ledger/internal/normalize"
	"fjacquet/budget-ledger/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Output string
	Format string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "budget-ledger",
		Short: "A CLI tool to track monthly household budgets and forecast spending.",
		Long: `budget-ledger keeps one budget record per calendar month, with shared-cost
splitting and housing-allowance handling, and computes trends, forecasts and
spending advisories across the stored months.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to budget-ledger!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize and configure logging
			config.LoadEnv()
			Log = config.ConfigureLogging()

			// Set the configured logger everywhere
			store.SetLogger(Log)
			ledger.SetLogger(Log)
			normalize.SetLogger(Log)
			importer.SetLogger(Log)
			forecast.SetLogger(Log)

			if delim := config.GetConfig().CSV.Delimiter; delim != "" {
				importer.SetDelimiter([]rune(delim)[0])
			}
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", "text", "Output format (text or json)")
}
