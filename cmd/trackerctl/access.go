package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/creamcroissant/trackerctl/internal/controller"
)

// 客户端白名单、IP 封禁与限流
func init() {
	// whitelist
	var whitelistCmd = &cobra.Command{
		Use:   "whitelist",
		Short: "Client whitelist management",
	}
	whitelistCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List whitelisted clients",
		RunE: run(func(ctx context.Context, a *app, _ []string) error {
			if err := check(a.set.Whitelist.Load(ctx)); err != nil {
				return err
			}
			items := a.set.Whitelist.Items()
			return a.print(items, func() table { return whitelistTable(items) })
		}),
	})
	whitelistCmd.AddCommand(&cobra.Command{
		Use:   "add <prefix> <name...>",
		Short: "Whitelist a peer id prefix",
		Args:  cobra.MinimumNArgs(2),
		RunE: run(func(ctx context.Context, a *app, args []string) error {
			a.set.Whitelist.Draft.Set(controller.WhitelistDraft{Prefix: args[0], Name: strings.Join(args[1:], " ")})
			return check(a.set.Whitelist.Add(ctx))
		}),
	})
	whitelistCmd.AddCommand(&cobra.Command{
		Use:   "remove <prefix>",
		Short: "Remove a whitelisted prefix",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, a *app, args []string) error {
			return check(a.set.Whitelist.RemovePrefix(ctx, args[0]))
		}),
	})
	rootCmd.AddCommand(whitelistCmd)

	// bans
	var bansCmd = &cobra.Command{
		Use:   "bans",
		Short: "IP ban management",
	}
	var activeOnly bool
	var bansListCmd = &cobra.Command{
		Use:   "list",
		Short: "List bans",
		RunE: run(func(ctx context.Context, a *app, _ []string) error {
			a.set.Bans.SetActiveOnly(activeOnly)
			if err := check(a.set.Bans.Load(ctx)); err != nil {
				return err
			}
			items := a.set.Bans.Items()
			return a.print(items, func() table { return bansTable(items) })
		}),
	}
	bansListCmd.Flags().BoolVar(&activeOnly, "active", false, "Only bans that have not expired")
	bansCmd.AddCommand(bansListCmd)

	var reason, duration string
	var banCmd = &cobra.Command{
		Use:   "ban <ip>",
		Short: "Ban an IP address",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, a *app, args []string) error {
			a.set.Bans.Draft.Set(controller.BanDraft{IP: args[0], Reason: reason, Duration: duration})
			return check(a.set.Bans.Ban(ctx))
		}),
	}
	banCmd.Flags().StringVarP(&reason, "reason", "r", "", "Reason shown to operators")
	banCmd.Flags().StringVarP(&duration, "duration", "d", "", "Duration in seconds (empty for permanent)")
	bansCmd.AddCommand(banCmd)

	bansCmd.AddCommand(&cobra.Command{
		Use:   "unban <ip>",
		Short: "Lift a ban",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, a *app, args []string) error {
			return check(a.set.Bans.Unban(ctx, args[0]))
		}),
	})
	bansCmd.AddCommand(&cobra.Command{
		Use:   "cleanup",
		Short: "Remove expired bans",
		RunE: run(func(ctx context.Context, a *app, _ []string) error {
			return check(a.set.Bans.Cleanup(ctx))
		}),
	})
	rootCmd.AddCommand(bansCmd)

	// ratelimits
	var rateCmd = &cobra.Command{
		Use:   "ratelimits",
		Short: "Rate limiter overview and per-IP state",
		RunE: run(func(ctx context.Context, a *app, _ []string) error {
			if err := check(a.set.RateLimits.Load(ctx)); err != nil {
				return err
			}
			s := a.set.RateLimits.Items()
			return a.print(s, func() table { return rateLimitTable(s) })
		}),
	}
	rateCmd.AddCommand(&cobra.Command{
		Use:   "check <ip>",
		Short: "Show the tracked buckets of an IP",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, a *app, args []string) error {
			if err := check(a.set.RateLimits.Check(ctx, args[0])); err != nil {
				return err
			}
			s := a.set.RateLimits.IPState.Value()
			return a.print(s, func() table { return ipStateTable(s) })
		}),
	})
	rateCmd.AddCommand(&cobra.Command{
		Use:   "reset <ip>",
		Short: "Clear the counters of an IP",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, a *app, args []string) error {
			return check(a.set.RateLimits.Reset(ctx, args[0]))
		}),
	})
	rootCmd.AddCommand(rateCmd)
}
