package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"testament/internal/platform/httpserver"
	"testament/internal/platform/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the will and registry HTTP APIs",
	Long: `Serves the will API, the mock registry API (in local registry mode) and
/metrics. With --relay the lifecycle relay runs in the same process, which is
the only way to use it with in-memory storage.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		withRelay, _ := cmd.Flags().GetBool("relay")
		seed, _ := cmd.Flags().GetBool("seed")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := a.Close(); err != nil {
				logger.Error("shutdown", "error", err)
			}
		}()

		if seed {
			if err := a.registry.Seed(ctx); err != nil {
				return err
			}
		}

		g, ctx := errgroup.WithContext(ctx)
		srv := httpserver.New(cfg.Server.Addr, a.router(metrics.New()))
		g.Go(func() error {
			return httpserver.Run(ctx, srv, logger)
		})
		if withRelay {
			if err := a.startRelay(ctx, g); err != nil {
				return err
			}
		}
		return ignoreCanceled(g.Wait())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Bool("relay", false, "Run the lifecycle relay in process")
	serveCmd.Flags().Bool("seed", false, "Load the demo registry records at startup")
}

func ignoreCanceled(err error) error {
	if err == nil || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
