package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/creamcroissant/trackerctl/internal/controller"
	"github.com/creamcroissant/trackerctl/internal/format"
	"github.com/creamcroissant/trackerctl/internal/model"
)

func init() {
	var snatchesCmd = &cobra.Command{
		Use:   "snatches",
		Short: "Completion records",
	}

	printSnatches := func(a *app, items []model.Snatch) error {
		return a.print(items, func() table { return snatchesTable(items) })
	}

	snatchesCmd.AddCommand(&cobra.Command{
		Use:   "user <id>",
		Short: "Snatches of a user",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, a *app, args []string) error {
			if err := check(a.set.Snatches.ByUser(ctx, args[0])); err != nil {
				return err
			}
			return printSnatches(a, a.set.Snatches.Items())
		}),
	})
	snatchesCmd.AddCommand(&cobra.Command{
		Use:   "torrent <id>",
		Short: "Snatches of a torrent",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, a *app, args []string) error {
			if err := check(a.set.Snatches.ByTorrent(ctx, args[0])); err != nil {
				return err
			}
			return printSnatches(a, a.set.Snatches.Items())
		}),
	})
	snatchesCmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one snatch",
		Args:  cobra.ExactArgs(1),
		RunE: withID("snatch", func(ctx context.Context, a *app, id int64) error {
			if err := check(a.set.Snatches.Get(ctx, id)); err != nil {
				return err
			}
			sn := a.set.Snatches.Detail.Value()
			return a.print(sn, func() table { return snatchesTable([]model.Snatch{sn}) })
		}),
	})
	snatchesCmd.AddCommand(&cobra.Command{
		Use:   "clear-hnr <id>",
		Short: "Clear the hit-and-run flag of a snatch",
		Args:  cobra.ExactArgs(1),
		RunE: withID("snatch", func(ctx context.Context, a *app, id int64) error {
			return check(a.set.Snatches.ClearHnR(ctx, id))
		}),
	})
	snatchesCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a snatch",
		Args:  cobra.ExactArgs(1),
		RunE: withID("snatch", func(ctx context.Context, a *app, id int64) error {
			return check(a.set.Snatches.Delete(ctx, id))
		}),
	})
	rootCmd.AddCommand(snatchesCmd)

	// hnr
	var hnrCmd = &cobra.Command{
		Use:   "hnr",
		Short: "Hit-and-run list",
		RunE: run(func(ctx context.Context, a *app, _ []string) error {
			if err := check(a.set.HnR.Load(ctx)); err != nil {
				return err
			}
			return printSnatches(a, a.set.HnR.Items())
		}),
	}
	hnrCmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Run hit-and-run detection",
		RunE: run(func(ctx context.Context, a *app, _ []string) error {
			return check(a.set.HnR.Check(ctx))
		}),
	})
	hnrCmd.AddCommand(&cobra.Command{
		Use:   "clear <snatch-id>",
		Short: "Clear a hit-and-run flag",
		Args:  cobra.ExactArgs(1),
		RunE: withID("snatch", func(ctx context.Context, a *app, id int64) error {
			return check(a.set.HnR.Clear(ctx, id))
		}),
	})
	rootCmd.AddCommand(hnrCmd)

	// bonus
	var bonusCmd = &cobra.Command{
		Use:   "bonus",
		Short: "Bonus point settings and balances",
		RunE: run(func(ctx context.Context, a *app, _ []string) error {
			if err := check(a.set.Bonus.Load(ctx)); err != nil {
				return err
			}
			s := a.set.Bonus.Items()
			return a.print(s, func() table { return bonusTable(s) })
		}),
	}
	bonusCmd.AddCommand(&cobra.Command{
		Use:   "points <user-id>",
		Short: "Show a user's balance",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, a *app, args []string) error {
			a.set.Bonus.Draft.Set(controller.BonusDraft{UserID: args[0]})
			bal, ok := a.set.Bonus.Points(ctx)
			if err := check(ok); err != nil {
				return err
			}
			return a.print(bal, func() table {
				return pairs("User", id(bal.UserID), "Points", format.Points(bal.BonusPoints))
			})
		}),
	})
	pointsCmd := func(use, short string, fn func(b *controller.Bonus) func(context.Context) bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <user-id> <points>",
			Short: short,
			Args:  cobra.ExactArgs(2),
			RunE: run(func(ctx context.Context, a *app, args []string) error {
				a.set.Bonus.Draft.Set(controller.BonusDraft{UserID: args[0], Points: args[1]})
				return check(fn(a.set.Bonus)(ctx))
			}),
		}
	}
	bonusCmd.AddCommand(
		pointsCmd("add", "Credit points to a user", func(b *controller.Bonus) func(context.Context) bool { return b.Add }),
		pointsCmd("remove", "Deduct points from a user", func(b *controller.Bonus) func(context.Context) bool { return b.Deduct }),
		pointsCmd("redeem", "Convert points into upload credit", func(b *controller.Bonus) func(context.Context) bool { return b.Redeem }),
	)
	bonusCmd.AddCommand(&cobra.Command{
		Use:   "calculate",
		Short: "Recompute points for every user",
		RunE: run(func(ctx context.Context, a *app, _ []string) error {
			return check(a.set.Bonus.Calculate(ctx))
		}),
	})
	rootCmd.AddCommand(bonusCmd)
}
