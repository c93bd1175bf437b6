package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"testament/internal/platform/config"
	"testament/internal/platform/metrics"
	"testament/internal/ratelimit"
	ratelimitstore "testament/internal/ratelimit/store"
	registryhandler "testament/internal/registry/handler"
	willhandler "testament/internal/will/handler"
	"testament/pkg/platform/httputil"
	"testament/pkg/platform/middleware/request"
	"testament/pkg/platform/middleware/requesttime"
)

// router mounts the will API and, when the registry runs in process, the
// registry API. httpMetrics may be nil.
func (a *app) router(httpMetrics *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recovery(a.logger))
	r.Use(request.Logger(a.logger))
	r.Use(requesttime.Middleware)
	if httpMetrics != nil {
		r.Use(httpMetrics.Middleware)
	}
	if a.cfg.RateLimit.Enabled {
		r.Use(a.rateLimiter(httpMetrics != nil).Middleware)
	}

	if httpMetrics != nil {
		r.Handle("/metrics", metrics.Handler())
	}
	r.Get("/healthz", a.handleHealth)
	willhandler.New(a.wills, a.logger, a.cfg.Server.AdminToken).Register(r)
	if a.cfg.Registry.Mode == config.RegistryLocal {
		registryhandler.New(a.registry, a.logger, a.cfg.Server.AdminToken).Register(r)
	}
	return otelhttp.NewHandler(r, "testament")
}

func (a *app) rateLimiter(withMetrics bool) *ratelimit.Limiter {
	var store ratelimit.Store = ratelimitstore.NewInMemory()
	if a.redis != nil {
		store = ratelimitstore.NewRedis(a.redis.Client, keyPrefix)
	}
	opts := []ratelimit.Option{ratelimit.WithLogger(a.logger)}
	if withMetrics {
		opts = append(opts, ratelimit.WithMetrics(ratelimit.NewMetrics()))
	}
	limits := ratelimit.Limits{
		Window: a.cfg.RateLimit.Window,
		Read:   a.cfg.RateLimit.Read,
		Write:  a.cfg.RateLimit.Write,
	}
	return ratelimit.New(store, limits, opts...)
}

type healthResponse struct {
	Status   string            `json:"status"`
	Backends map[string]string `json:"backends"`
}

func (a *app) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := healthResponse{Status: "ok", Backends: map[string]string{}}
	check := func(name string, err error) {
		if err != nil {
			resp.Status = "degraded"
			resp.Backends[name] = err.Error()
			return
		}
		resp.Backends[name] = "ok"
	}
	if a.db != nil {
		check("postgres", a.db.PingContext(ctx))
	}
	if a.redis != nil {
		check("redis", a.redis.Health(ctx))
	}
	if a.producer != nil {
		check("kafka", a.producer.Ping(ctx))
	}
	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	httputil.WriteJSON(w, status, resp)
}
