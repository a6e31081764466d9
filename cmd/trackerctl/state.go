package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/creamcroissant/trackerctl/internal/connection"
	"github.com/creamcroissant/trackerctl/internal/migrations"
)

// 本地状态库：保存的连接信息与迁移
func init() {
	var stateCmd = &cobra.Command{
		Use:   "state",
		Short: "Local state database management",
	}

	stateCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the remembered connection settings",
		RunE: run(func(ctx context.Context, a *app, _ []string) error {
			entries, err := a.store.Entries(ctx)
			if err != nil {
				return err
			}
			t := table{header: []string{"KEY", "VALUE", "UPDATED"}, empty: "Nothing stored."}
			for _, e := range entries {
				value := e.Value
				if e.Key == connection.KeyAdminToken {
					value = mask(value)
				}
				t.rows = append(t.rows, []string{e.Key, value, time.Unix(e.UpdatedAt, 0).Format(time.DateTime)})
			}
			fmt.Fprintf(a.out, "State: %s\n", a.cfg.State.Path)
			return a.printTable(t)
		}),
	})

	stateCmd.AddCommand(&cobra.Command{
		Use:   "forget",
		Short: "Remove the remembered API URL and token",
		RunE: run(func(ctx context.Context, a *app, _ []string) error {
			return a.store.Forget(ctx)
		}),
	})

	stateCmd.AddCommand(&cobra.Command{
		Use:   "migrate [up|down|status]",
		Short: "State schema migration management",
		Args:  cobra.MaximumNArgs(1),
		RunE: run(func(ctx context.Context, a *app, args []string) error {
			action := "status"
			if len(args) > 0 {
				action = args[0]
			}
			switch action {
			case "up":
				if err := migrations.Up(a.db); err != nil {
					return err
				}
			case "down":
				if err := migrations.Down(a.db); err != nil {
					return err
				}
			case "status":
			default:
				return fmt.Errorf("unknown migrate action %q", action)
			}
			v, err := migrations.Version(a.db)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Schema version: %d\n", v)
			return nil
		}),
	})

	rootCmd.AddCommand(stateCmd)
}

// mask 只保留令牌末尾四位。
func mask(token string) string {
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}
