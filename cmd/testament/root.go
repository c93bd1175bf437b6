package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"testament/internal/platform/config"
	"testament/internal/platform/logger"
)

var rootCmd = &cobra.Command{
	Use:   "testament",
	Short: "Digital will ledger, registry and distribution engine",
	Long: `testament keeps each owner's will: beneficiary allocations, a digital
balance and tokenized physical assets. Death and grant-of-probate records from
the government registry move a will through its lifecycle until the estate is
distributed.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (defaults to $TESTAMENT_CONFIG)")
}

func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger.New(cfg.Log.Level, cfg.Log.Format), nil
}
