package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"testament/internal/platform/config"
	"testament/internal/platform/kafka"
	"testament/internal/platform/kafka/producer"
	"testament/internal/platform/postgres"
	redisplatform "testament/internal/platform/redis"
	"testament/internal/platform/tracing"
	registrycache "testament/internal/registry/cache"
	registryclient "testament/internal/registry/client"
	"testament/internal/registry/events"
	registrymetrics "testament/internal/registry/metrics"
	registryservice "testament/internal/registry/service"
	registrystore "testament/internal/registry/store"
	"testament/internal/relay"
	willmetrics "testament/internal/will/metrics"
	willservice "testament/internal/will/service"
	assetstore "testament/internal/will/store/asset"
	payoutstore "testament/internal/will/store/payout"
	willstore "testament/internal/will/store/will"
	audit "testament/pkg/platform/audit"
	auditpublisher "testament/pkg/platform/audit/publisher"
	auditmemory "testament/pkg/platform/audit/store/memory"
	auditpostgres "testament/pkg/platform/audit/store/postgres"
)

const keyPrefix = "testament:"

// app is the composition root shared by every command.
type app struct {
	cfg    config.Config
	logger *slog.Logger

	db       *sql.DB
	redis    *redisplatform.Client
	producer *producer.Producer
	outbox   *auditpostgres.Store

	registry       *registryservice.Service
	registryLookup relay.Registry
	wills          *willservice.Service
	audit          *auditpublisher.Publisher

	closers []func() error
}

// newApp opens every configured backend. Close releases them in reverse
// order.
func newApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger}
	if err := a.open(ctx); err != nil {
		if cerr := a.Close(); cerr != nil {
			logger.Warn("cleanup after failed start", "error", cerr)
		}
		return nil, err
	}
	return a, nil
}

func (a *app) open(ctx context.Context) error {
	cfg, logger := a.cfg, a.logger

	shutdown, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, func() error { return shutdown(context.Background()) })

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	if a.redis, err = redisplatform.New(ctx, cfg.Redis); err != nil {
		return err
	}
	if a.redis != nil {
		a.closers = append(a.closers, a.redis.Close)
	}

	if cfg.KafkaEnabled() {
		if err := kafka.EnsureTopics(ctx, cfg.Kafka.Brokers, cfg.Kafka.Partitions, 1, cfg.Kafka.Topic, cfg.Kafka.AuditTopic); err != nil {
			return err
		}
		if a.producer, err = producer.New(cfg.Kafka.Brokers, logger); err != nil {
			return err
		}
		a.closers = append(a.closers, func() error { a.producer.Close(); return nil })
	}

	if err := a.buildRegistry(ctx, loc); err != nil {
		return err
	}
	return a.buildWills(ctx, loc)
}

func (a *app) buildRegistry(ctx context.Context, loc *time.Location) error {
	opts := []registryservice.Option{
		registryservice.WithLogger(a.logger.With("component", "registry")),
		registryservice.WithMetrics(registrymetrics.New()),
		registryservice.WithLocation(loc),
		registryservice.WithDataDir(a.cfg.Registry.DataDir),
	}
	if a.cfg.Registry.CacheTTL > 0 {
		if a.redis != nil {
			opts = append(opts, registryservice.WithCache(registrycache.NewRedis(a.redis.Client, keyPrefix, a.cfg.Registry.CacheTTL)))
		} else {
			opts = append(opts, registryservice.WithCache(registrycache.NewMemory(a.cfg.Registry.CacheTTL)))
		}
	}
	if a.producer != nil {
		opts = append(opts, registryservice.WithPublisher(events.NewKafkaPublisher(a.producer, a.cfg.Kafka.Topic)))
	}

	var store registryservice.Store
	if a.cfg.Registry.SQLitePath == "" {
		store = registrystore.NewInMemory()
	} else {
		sqlite, err := registrystore.OpenSQLite(ctx, a.cfg.Registry.SQLitePath)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, sqlite.Close)
		store = sqlite
	}
	a.registry = registryservice.New(store, opts...)
	return nil
}

func (a *app) buildWills(ctx context.Context, loc *time.Location) error {
	var (
		wills    willservice.WillStore
		assets   willservice.AssetStore
		payouts  willservice.PayoutStore
		tx       willservice.StoreTx
		auditLog audit.Store
	)
	switch a.cfg.Storage.Driver {
	case config.StoragePostgres:
		db, err := postgres.Open(ctx, a.cfg.Storage.PostgresDSN)
		if err != nil {
			return err
		}
		a.db = db
		a.closers = append(a.closers, db.Close)
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		wills = willstore.NewPostgres(db)
		assets = assetstore.NewPostgres(db)
		payouts = payoutstore.NewPostgres(db)
		tx = willservice.NewPostgresTx(db, a.cfg.Server.TxTimeout)
		a.outbox = auditpostgres.New(db)
		auditLog = a.outbox
	default:
		wills = willstore.NewInMemory()
		assets = assetstore.NewInMemory()
		payouts = payoutstore.NewInMemory()
		tx = willservice.NewShardedTx(a.cfg.Server.TxTimeout)
		auditLog = auditmemory.NewInMemoryStore()
	}
	if a.redis != nil {
		tx = willservice.NewLockedTx(redisplatform.NewLocker(a.redis.Client, keyPrefix), tx, a.cfg.Redis.LockTTL)
	}

	var registries willservice.Registries
	switch a.cfg.Registry.Mode {
	case config.RegistryRemote:
		remote := registryclient.NewHTTP(a.cfg.Registry.BaseURL, a.cfg.Registry.Timeout,
			registryclient.WithLogger(a.logger.With("component", "registry-client")),
		)
		registries = willservice.Registries{Death: remote, Probate: remote}
		a.registryLookup = remote
	default:
		local := registryclient.NewLocal(a.registry)
		registries = willservice.Registries{Death: local, Probate: local}
		a.registryLookup = local
	}

	a.audit = auditpublisher.NewPublisher(auditLog, auditpublisher.WithLogger(a.logger))
	a.closers = append(a.closers, func() error { a.audit.Close(); return nil })

	a.wills = willservice.New(wills, assets, payouts, registries,
		willservice.WithLogger(a.logger.With("component", "will")),
		willservice.WithMetrics(willmetrics.New()),
		willservice.WithAuditPublisher(a.audit),
		willservice.WithTx(tx),
		willservice.WithLocation(loc),
	)
	return nil
}

// Close runs every registered closer, last opened first.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	if len(errs) > 0 {
		return fmt.Errorf("close app: %w", errors.Join(errs...))
	}
	return nil
}
