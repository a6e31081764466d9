package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	// stats
	rootCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show the tracker dashboard",
		RunE: run(func(ctx context.Context, a *app, _ []string) error {
			if err := check(a.set.Dashboard.Load(ctx)); err != nil {
				return err
			}
			s := a.set.Dashboard.Items()
			return a.print(s, func() table { return statsTable(s) })
		}),
	})

	// connect
	rootCmd.AddCommand(&cobra.Command{
		Use:   "connect",
		Short: "Verify and remember the API endpoint",
		Long: `Connect stores the resolved API URL and token in the state database,
then probes GET /stats. The stored endpoint is reused by later invocations
that do not pass --api-url or --token.`,
		RunE: run(func(ctx context.Context, a *app, _ []string) error {
			if err := check(a.connector.Connect(ctx, a.profile)); err != nil {
				return err
			}
			if !a.state.Demo() {
				fmt.Fprintf(a.out, "Connected to %s\n", a.profile.BaseURL)
			}
			return nil
		}),
	})

	// system
	var systemCmd = &cobra.Command{
		Use:   "system",
		Short: "Maintenance actions and verification cache",
		RunE: run(func(ctx context.Context, a *app, _ []string) error {
			if err := check(a.set.System.Load(ctx)); err != nil {
				return err
			}
			v := a.set.System.Items()
			return a.print(v, func() table { return verificationTable(v) })
		}),
	}
	actions := []struct {
		use, short string
		fn         func(a *app) func(context.Context) bool
	}{
		{"flush", "Flush in-memory stats to the database", func(a *app) func(context.Context) bool { return a.set.System.Flush }},
		{"hnr-check", "Run hit-and-run detection", func(a *app) func(context.Context) bool { return a.set.System.CheckHnR }},
		{"calc-bonus", "Recompute bonus points", func(a *app) func(context.Context) bool { return a.set.System.CalculateBonus }},
		{"cleanup-bans", "Remove expired bans", func(a *app) func(context.Context) bool { return a.set.System.CleanupBans }},
		{"clear-cache", "Clear the torrent verification cache", func(a *app) func(context.Context) bool { return a.set.System.ClearCache }},
	}
	for _, act := range actions {
		fn := act.fn
		systemCmd.AddCommand(&cobra.Command{
			Use:   act.use,
			Short: act.short,
			RunE: run(func(ctx context.Context, a *app, _ []string) error {
				return check(fn(a)(ctx))
			}),
		})
	}
	rootCmd.AddCommand(systemCmd)
}
