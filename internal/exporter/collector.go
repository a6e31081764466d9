// Package exporter publishes tracker statistics as Prometheus gauges.
package exporter

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/creamcroissant/trackerctl/internal/model"
)

// ErrScrapeFailed is returned when the stats load did not succeed.
var ErrScrapeFailed = errors.New("stats load failed")

// StatsSource is the dashboard controller as seen by the collector.
type StatsSource interface {
	Load(ctx context.Context) bool
	Items() model.Stats
}

// Collector periodically loads tracker stats and mirrors them into gauges.
type Collector struct {
	stats StatsSource
	now   func() time.Time

	up         prometheus.Gauge
	lastScrape prometheus.Gauge
	totals     *prometheus.GaugeVec
	bytes      *prometheus.GaugeVec
	subsystems *prometheus.GaugeVec
}

// NewCollector registers the tracker gauges on reg.
func NewCollector(reg prometheus.Registerer, namespace string, stats StatsSource) *Collector {
	if namespace == "" {
		namespace = "tracker"
	}
	factory := promauto.With(reg)
	return &Collector{
		stats: stats,
		now:   time.Now,
		up: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "up",
			Help:      "Whether the last stats scrape succeeded.",
		}),
		lastScrape: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_scrape_timestamp_seconds",
			Help:      "Unix time of the last successful stats scrape.",
		}),
		totals: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "objects",
			Help:      "Tracker object counts by kind.",
		}, []string{"kind"}),
		bytes: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "transfer_bytes",
			Help:      "Cumulative transferred bytes by direction.",
		}, []string{"direction"}),
		subsystems: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "subsystem_value",
			Help:      "Subsystem counters (rate limiting, verification, lookup tables).",
		}, []string{"subsystem", "field"}),
	}
}

// Name implements job.Runnable.
func (c *Collector) Name() string { return "tracker_stats" }

// Run implements job.Runnable.
func (c *Collector) Run(ctx context.Context) error {
	if !c.stats.Load(ctx) {
		c.up.Set(0)
		return ErrScrapeFailed
	}
	c.publish(c.stats.Items())
	c.up.Set(1)
	c.lastScrape.Set(float64(c.now().Unix()))
	return nil
}

func (c *Collector) publish(s model.Stats) {
	c.totals.WithLabelValues("users").Set(float64(s.Users))
	c.totals.WithLabelValues("torrents").Set(float64(s.Torrents))
	c.totals.WithLabelValues("peers").Set(float64(s.Peers))
	c.totals.WithLabelValues("active_swarms").Set(float64(s.ActiveSwarms))
	c.totals.WithLabelValues("snatches").Set(float64(s.TotalSnatches))
	c.totals.WithLabelValues("hnr").Set(float64(s.HnRCount))
	c.totals.WithLabelValues("active_bans").Set(float64(s.ActiveBans))
	c.totals.WithLabelValues("whitelisted_clients").Set(float64(s.WhitelistedClients))

	c.bytes.WithLabelValues("up").Set(float64(s.TotalUploaded))
	c.bytes.WithLabelValues("down").Set(float64(s.TotalDownloaded))

	if s.ETS != nil {
		c.subsystems.WithLabelValues("ets", "passkeys").Set(float64(s.ETS.Passkeys))
		c.subsystems.WithLabelValues("ets", "whitelist").Set(float64(s.ETS.Whitelist))
		c.subsystems.WithLabelValues("ets", "banned_ips").Set(float64(s.ETS.BannedIPs))
	}
	if s.RateLimiting != nil {
		c.subsystems.WithLabelValues("rate_limiting", "ips_tracked").Set(float64(s.RateLimiting.TotalIPsTracked))
	}
	if s.Verification != nil {
		c.subsystems.WithLabelValues("verification", "cache_size").Set(float64(s.Verification.CacheSize))
		c.subsystems.WithLabelValues("verification", "verified").Set(float64(s.Verification.VerifiedCount))
		c.subsystems.WithLabelValues("verification", "failed").Set(float64(s.Verification.FailedCount))
	}
	if s.Bonus != nil {
		c.subsystems.WithLabelValues("bonus", "base_points").Set(s.Bonus.BasePoints)
	}
}
