package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/regpipe/pkg/config"
	"github.com/YuminosukeSato/regpipe/pkg/log"
)

var (
	cfgFile  string
	logLevel string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "regpipe",
	Short: "Train and evaluate a linear regression model on a CSV dataset",
	Long: `regpipe runs a fixed training pipeline: ingest a CSV file, clean it,
split it into train and test partitions, fit a regression model and report
MSE, RMSE and R2 on the held-out rows.

Settings come from built-in defaults, an optional YAML file (--config) and
REGPIPE_* environment variables. Command-line flags win over all of them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.Error("regpipe failed", log.ErrAttr(err))
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

func loadConfig(cmd *cobra.Command) error {
	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		c.LogLevel = logLevel
	}
	l, err := log.SetupLogger(c.LogLevel)
	if err != nil {
		return err
	}
	log.SetupWarnings(os.Stderr)

	cfg = c
	logger = l
	return nil
}
