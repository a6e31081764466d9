package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Build info - injected via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "trackerctl",
	Short: "Tracker admin console",
	Long: `trackerctl administers a BitTorrent tracker through its admin API.

Every command runs against the live API unless --demo is given (or the API
URL carries demo=1), in which case a built-in sample dataset is served and
no network traffic is produced.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default: ./trackerctl.yaml or $XDG_CONFIG_HOME/trackerctl/)")
	pf.String("api-url", "", "Admin API base URL")
	pf.String("token", "", "Admin token sent as X-Admin-Token")
	pf.Bool("demo", false, "Serve the built-in demo dataset instead of calling the API")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.StringP("output", "o", "", "Output format: table, json, yaml")
	pf.String("state", "", "Path of the local state database")
	pf.BoolP("yes", "y", false, "Answer yes to every confirmation prompt")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "trackerctl %s (commit %s, built %s)\n", Version, Commit, BuildTime)
		},
	})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		// 操作失败时通知已经输出到 stderr
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
