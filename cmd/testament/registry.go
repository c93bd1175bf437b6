package main

import (
	"github.com/spf13/cobra"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Manage the mock government registry",
}

var registrySeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Store the demo death record and grant of probate, dated today",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(a *app) error {
			return a.registry.Seed(cmd.Context())
		})
	},
}

var registryClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every registry record",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(a *app) error {
			return a.registry.Clear(cmd.Context())
		})
	},
}

func init() {
	registryCmd.AddCommand(registrySeedCmd, registryClearCmd)
	rootCmd.AddCommand(registryCmd)
}

func withApp(cmd *cobra.Command, fn func(*app) error) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	a, err := newApp(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()
	return fn(a)
}
