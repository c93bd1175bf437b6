package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"testament/internal/platform/config"
	"testament/internal/platform/kafka/consumer"
	"testament/internal/relay"
)

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Advance wills from registry events and relay the audit outbox",
	Long: `Runs the lifecycle relay on its own: it consumes registry events from
Kafka, polls the registry for today's records, settles estates when
auto-distribution is enabled, and publishes the audit outbox to Kafka.
It shares state with "serve" only through Postgres.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Storage.Driver != config.StoragePostgres {
			logger.Warn("standalone relay with in-memory storage sees no wills; use serve --relay")
		}

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

		g, ctx := errgroup.WithContext(ctx)
		if err := a.startRelay(ctx, g); err != nil {
			return err
		}
		return ignoreCanceled(g.Wait())
	},
}

func init() {
	rootCmd.AddCommand(relayCmd)
}

// startRelay adds the poller, the registry event consumer and the outbox
// relay to g. The last two need Kafka; the outbox relay also needs Postgres.
func (a *app) startRelay(ctx context.Context, g *errgroup.Group) error {
	metrics := relay.NewMetrics()
	logger := a.logger.With("component", "relay")
	r := relay.New(a.wills, a.registryLookup,
		relay.WithLogger(logger),
		relay.WithMetrics(metrics),
		relay.WithInterval(a.cfg.Relay.PollInterval),
		relay.WithAutoDistribute(a.cfg.Relay.AutoDistribute),
	)
	g.Go(func() error { return r.Run(ctx) })

	if !a.cfg.KafkaEnabled() {
		logger.Info("kafka not configured; relay polls only")
		return nil
	}

	router := consumer.NewRouter(logger, nil)
	router.Register(a.cfg.Kafka.Topic, consumer.HandlerFunc(r.HandleEvent))
	c, err := consumer.New(consumer.Config{
		Brokers: a.cfg.Kafka.Brokers,
		Group:   a.cfg.Kafka.Group,
		Topics:  []string{a.cfg.Kafka.Topic},
	}, router, logger)
	if err != nil {
		return err
	}
	g.Go(func() error { return c.Run(ctx) })

	if a.outbox != nil {
		o := relay.NewOutbox(a.outbox, a.producer, a.cfg.Kafka.AuditTopic,
			relay.WithOutboxInterval(a.cfg.Relay.OutboxInterval),
			relay.WithOutboxLogger(logger),
			relay.WithOutboxMetrics(metrics),
		)
		g.Go(func() error { return o.Run(ctx) })
	}
	return nil
}
