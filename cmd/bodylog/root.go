package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"bodylog/internal/config"
)

var (
	configPath string
	cfg        config.Config
	logger     *slog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bodylog",
	Short: "Track body measurements, BMI and meals",
	Long: `bodylog keeps a local history of body measurements and meals.
It serves a JSON API for the web frontend and offers a few commands for
quick entry and export from the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = os.Getenv("BODYLOG_CONFIG")
		}
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
		logger = cfg.NewLogger(os.Stderr)
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file (default $BODYLOG_CONFIG)")
}
