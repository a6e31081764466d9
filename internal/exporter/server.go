package exporter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/creamcroissant/trackerctl/internal/bootstrap"
	"github.com/creamcroissant/trackerctl/internal/config"
	"github.com/creamcroissant/trackerctl/internal/job"
)

// Exporter serves /metrics and /healthz and refreshes the gauges on a
// cron schedule.
type Exporter struct {
	cfg       config.ExporterConfig
	registry  *prometheus.Registry
	collector *Collector
	scheduler *job.Scheduler
	logger    *slog.Logger
}

// New wires an exporter over stats. Collectors registered on registry by
// other components (gateway metrics) are served as well.
func New(cfg config.ExporterConfig, registry *prometheus.Registry, stats StatsSource, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		cfg:       cfg,
		registry:  registry,
		collector: NewCollector(registry, cfg.Namespace, stats),
		scheduler: job.NewScheduler(logger, cfg.Timeout),
		logger:    logger,
	}
}

// Handler returns the HTTP surface.
func (e *Exporter) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{Registry: e.registry}))
	return r
}

// Run scrapes once, starts the schedule and serves until ctx is done.
func (e *Exporter) Run(ctx context.Context) error {
	e.scheduler.RunNow(e.collector)
	if _, err := e.scheduler.Register(e.cfg.Schedule, e.collector); err != nil {
		return err
	}
	e.scheduler.Start()
	defer func() { <-e.scheduler.Stop().Done() }()

	srv := bootstrap.NewHTTPServer(e.cfg.Addr, e.Handler())
	ln, err := net.Listen("tcp", e.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", e.cfg.Addr, err)
	}
	e.logger.Info("exporter listening", "addr", ln.Addr().String(), "schedule", e.cfg.Schedule)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
