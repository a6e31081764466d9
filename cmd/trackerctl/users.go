package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/creamcroissant/trackerctl/internal/controller"
	"github.com/creamcroissant/trackerctl/internal/model"
	"github.com/creamcroissant/trackerctl/internal/source"
)

func parseID(kind, s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s ID %q", kind, s)
	}
	return n, nil
}

// withID 解析第一个参数为数字 ID 后执行 fn。
func withID(kind string, fn func(ctx context.Context, a *app, id int64) error) func(cmd *cobra.Command, args []string) error {
	return run(func(ctx context.Context, a *app, args []string) error {
		n, err := parseID(kind, args[0])
		if err != nil {
			return err
		}
		return fn(ctx, a, n)
	})
}

func init() {
	var usersCmd = &cobra.Command{
		Use:   "users",
		Short: "User account management",
	}

	// users list
	usersCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: run(func(ctx context.Context, a *app, _ []string) error {
			if err := check(a.set.Users.Load(ctx)); err != nil {
				return err
			}
			items := a.set.Users.Items()
			return a.print(items, func() table { return usersTable(items) })
		}),
	})

	// users search <query>
	usersCmd.AddCommand(&cobra.Command{
		Use:   "search <query>",
		Short: "Search users by passkey or ID (at least 3 characters)",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, a *app, args []string) error {
			if err := check(a.set.Users.Search(ctx, args[0])); err != nil {
				return err
			}
			items := a.set.Users.Items()
			return a.print(items, func() table { return usersTable(items) })
		}),
	})

	// users show <id>
	usersCmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: withID("user", func(ctx context.Context, a *app, id int64) error {
			var u model.User
			if err := check(a.set.Users.Read(ctx, source.Get(fmt.Sprintf("/users/%d", id)), &u)); err != nil {
				return err
			}
			return a.print(u, func() table { return usersTable([]model.User{u}) })
		}),
	})

	// users create
	var passkey string
	var createCmd = &cobra.Command{
		Use:   "create",
		Short: "Create a user; the backend generates a passkey unless one is given",
		RunE: run(func(ctx context.Context, a *app, _ []string) error {
			a.set.Users.Draft.Set(controller.UserDraft{Passkey: passkey})
			return check(a.set.Users.Create(ctx))
		}),
	}
	createCmd.Flags().StringVar(&passkey, "passkey", "", "Passkey for the new user")
	usersCmd.AddCommand(createCmd)

	// users edit <id>
	var (
		uploaded   int64
		downloaded int64
		operation  string
		canLeech   bool
	)
	var editCmd = &cobra.Command{
		Use:   "edit <id>",
		Short: "Update transfer counters and leech permission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withID("user", func(ctx context.Context, a *app, id int64) error {
				if !a.set.Users.Edit(ctx, id) {
					return errFailed
				}
				edit := a.set.Users.Editing.Value()
				flags := cmd.Flags()
				if flags.Changed("uploaded") {
					edit.Uploaded = uploaded
				}
				if flags.Changed("downloaded") {
					edit.Downloaded = downloaded
				}
				if flags.Changed("operation") {
					edit.Operation = operation
				}
				if flags.Changed("can-leech") {
					edit.CanLeech = canLeech
				}
				a.set.Users.Editing.Set(edit)
				return check(a.set.Users.SaveEdit(ctx))
			})(cmd, args)
		},
	}
	editCmd.Flags().Int64Var(&uploaded, "uploaded", 0, "Uploaded bytes")
	editCmd.Flags().Int64Var(&downloaded, "downloaded", 0, "Downloaded bytes")
	editCmd.Flags().StringVar(&operation, "operation", controller.OpSet, "Counter operation: set, add, subtract")
	editCmd.Flags().BoolVar(&canLeech, "can-leech", true, "Allow the user to download")
	usersCmd.AddCommand(editCmd)

	// users reset-passkey <id>
	usersCmd.AddCommand(&cobra.Command{
		Use:   "reset-passkey <id>",
		Short: "Issue a new passkey",
		Args:  cobra.ExactArgs(1),
		RunE: withID("user", func(ctx context.Context, a *app, id int64) error {
			return check(a.set.Users.ResetPasskey(ctx, id))
		}),
	})

	// users clear-warnings <id>
	usersCmd.AddCommand(&cobra.Command{
		Use:   "clear-warnings <id>",
		Short: "Reset the hit-and-run warning count",
		Args:  cobra.ExactArgs(1),
		RunE: withID("user", func(ctx context.Context, a *app, id int64) error {
			return check(a.set.Users.ClearWarnings(ctx, id))
		}),
	})

	// users delete <id>
	usersCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: withID("user", func(ctx context.Context, a *app, id int64) error {
			return check(a.set.Users.Delete(ctx, id))
		}),
	})

	rootCmd.AddCommand(usersCmd)
}
