package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/creamcroissant/trackerctl/internal/exporter"
)

func init() {
	var addr, schedule string
	var exporterCmd = &cobra.Command{
		Use:   "exporter",
		Short: "Serve tracker statistics as Prometheus metrics",
		Long: `Exporter scrapes GET /stats on a cron schedule and serves the result on
/metrics, together with the admin API call metrics of this process.`,
		RunE: run(func(ctx context.Context, a *app, _ []string) error {
			cfg := a.cfg.Exporter
			if addr != "" {
				cfg.Addr = addr
			}
			if schedule != "" {
				cfg.Schedule = schedule
			}
			return exporter.New(cfg, a.registry, a.set.Dashboard, a.logger).Run(ctx)
		}),
	}
	exporterCmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from exporter.addr)")
	exporterCmd.Flags().StringVar(&schedule, "schedule", "", "Cron schedule for scrapes (default from exporter.schedule)")
	rootCmd.AddCommand(exporterCmd)
}
