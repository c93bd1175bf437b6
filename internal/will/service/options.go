package service

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	willmetrics "testament/internal/will/metrics"
	"testament/internal/will/ports"
)

type serviceConfig struct {
	logger         *slog.Logger
	metrics        *willmetrics.Metrics
	auditPublisher ports.AuditPort
	tx             StoreTx
	location       *time.Location
	tracer         trace.Tracer
}

type Option func(*serviceConfig)

func WithLogger(logger *slog.Logger) Option {
	return func(c *serviceConfig) {
		c.logger = logger
	}
}

func WithMetrics(m *willmetrics.Metrics) Option {
	return func(c *serviceConfig) {
		c.metrics = m
	}
}

func WithAuditPublisher(publisher ports.AuditPort) Option {
	return func(c *serviceConfig) {
		c.auditPublisher = publisher
	}
}

// WithTx sets the per-owner transaction boundary. Defaults to an in-memory
// sharded lock.
func WithTx(tx StoreTx) Option {
	return func(c *serviceConfig) {
		c.tx = tx
	}
}

// WithLocation sets the timezone used to decide whether a registry record is
// dated "today". Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(c *serviceConfig) {
		c.location = loc
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(c *serviceConfig) {
		c.tracer = tracer
	}
}
