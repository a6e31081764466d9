package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/creamcroissant/trackerctl/internal/controller"
	"github.com/creamcroissant/trackerctl/internal/model"
	"github.com/creamcroissant/trackerctl/internal/source"
)

func init() {
	var torrentsCmd = &cobra.Command{
		Use:   "torrents",
		Short: "Torrent registration and ratio rules",
	}

	// torrents list
	torrentsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered torrents",
		RunE: run(func(ctx context.Context, a *app, _ []string) error {
			if err := check(a.set.Torrents.Load(ctx)); err != nil {
				return err
			}
			items := a.set.Torrents.Items()
			return a.print(items, func() table { return torrentsTable(items) })
		}),
	})

	// torrents show <id>
	torrentsCmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one torrent",
		Args:  cobra.ExactArgs(1),
		RunE: withID("torrent", func(ctx context.Context, a *app, id int64) error {
			var t model.Torrent
			if err := check(a.set.Torrents.Read(ctx, source.Get(fmt.Sprintf("/torrents/%d", id)), &t)); err != nil {
				return err
			}
			return a.print(t, func() table { return torrentsTable([]model.Torrent{t}) })
		}),
	})

	// torrents register <info-hash>
	torrentsCmd.AddCommand(&cobra.Command{
		Use:   "register <info-hash>",
		Short: "Register a 40 character hex info hash",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, a *app, args []string) error {
			a.set.Torrents.Draft.Set(controller.TorrentDraft{InfoHash: args[0]})
			return check(a.set.Torrents.Register(ctx))
		}),
	})

	// torrents freeleech <id>
	var off bool
	var freeleechCmd = &cobra.Command{
		Use:   "freeleech <id>",
		Short: "Enable freeleech (or disable with --off)",
		Args:  cobra.ExactArgs(1),
		RunE: withID("torrent", func(ctx context.Context, a *app, id int64) error {
			return check(a.set.Torrents.SetFreeleech(ctx, id, !off))
		}),
	}
	freeleechCmd.Flags().BoolVar(&off, "off", false, "Disable freeleech")
	torrentsCmd.AddCommand(freeleechCmd)

	// torrents edit <id>
	var (
		upMult   float64
		downMult float64
		seeders  int
		leechers int
	)
	var editCmd = &cobra.Command{
		Use:   "edit <id>",
		Short: "Update multipliers and swarm counters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withID("torrent", func(ctx context.Context, a *app, id int64) error {
				if !a.set.Torrents.Edit(ctx, id) {
					return errFailed
				}
				edit := a.set.Torrents.Editing.Value()
				flags := cmd.Flags()
				if flags.Changed("upload-multiplier") {
					edit.UploadMultiplier = upMult
				}
				if flags.Changed("download-multiplier") {
					edit.DownloadMultiplier = downMult
				}
				if flags.Changed("seeders") {
					edit.Seeders = seeders
				}
				if flags.Changed("leechers") {
					edit.Leechers = leechers
				}
				a.set.Torrents.Editing.Set(edit)
				return check(a.set.Torrents.SaveEdit(ctx))
			})(cmd, args)
		},
	}
	editCmd.Flags().Float64Var(&upMult, "upload-multiplier", 1, "Upload multiplier")
	editCmd.Flags().Float64Var(&downMult, "download-multiplier", 1, "Download multiplier")
	editCmd.Flags().IntVar(&seeders, "seeders", 0, "Seeder count")
	editCmd.Flags().IntVar(&leechers, "leechers", 0, "Leecher count")
	torrentsCmd.AddCommand(editCmd)

	// torrents delete <id>
	torrentsCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a torrent",
		Args:  cobra.ExactArgs(1),
		RunE: withID("torrent", func(ctx context.Context, a *app, id int64) error {
			return check(a.set.Torrents.Delete(ctx, id))
		}),
	})

	// swarms
	rootCmd.AddCommand(&cobra.Command{
		Use:   "swarms",
		Short: "Show active swarms",
		RunE: run(func(ctx context.Context, a *app, _ []string) error {
			if err := check(a.set.Swarms.Load(ctx)); err != nil {
				return err
			}
			items := a.set.Swarms.Items()
			return a.print(items, func() table { return swarmsTable(items) })
		}),
	})

	rootCmd.AddCommand(torrentsCmd)
}
