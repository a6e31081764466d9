package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/creamcroissant/trackerctl/internal/bootstrap"
	"github.com/creamcroissant/trackerctl/internal/config"
	"github.com/creamcroissant/trackerctl/internal/connection"
	"github.com/creamcroissant/trackerctl/internal/controller"
	"github.com/creamcroissant/trackerctl/internal/gateway"
	"github.com/creamcroissant/trackerctl/internal/notifier"
	"github.com/creamcroissant/trackerctl/internal/repository/sqlite"
	"github.com/creamcroissant/trackerctl/internal/source"
	"github.com/creamcroissant/trackerctl/internal/support/logging"
)

// errFailed 表示操作已失败且原因已经通过通知输出。
var errFailed = errors.New("operation failed")

// check converts a controller outcome into a command error.
func check(ok bool) error {
	if !ok {
		return errFailed
	}
	return nil
}

// app 汇总一次命令执行所需的全部组件。
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	db        *sql.DB
	store     *connection.Store
	profile   connection.Profile
	state     *connection.State
	board     *notifier.Board
	gateway   *gateway.Gateway
	registry  *prometheus.Registry
	set       *controller.Set
	connector *controller.Connector
	out       io.Writer
}

type appOptions struct {
	// interactive 为 TUI 模式：日志写入文件，通知不回显到终端。
	interactive bool
	confirm     controller.Confirmer
}

func newApp(cmd *cobra.Command, opts appOptions) (*app, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(file, cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logOpts := logging.Options{
		Level:      cfg.Log.SlogLevel(),
		Format:     cfg.Log.Format,
		AddSource:  cfg.Log.AddSource,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	}
	if opts.interactive && logOpts.File == "" {
		logOpts.File = filepath.Join(cfg.StateDir(), "trackerctl.log")
	}
	logger := logging.New(logOpts)

	db, err := bootstrap.OpenState(cfg.State.Path)
	if err != nil {
		return nil, fmt.Errorf("open state: %w", err)
	}
	store := connection.NewStore(sqlite.NewStore(db).Settings())
	stored, err := store.Load(cmd.Context())
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load connection: %w", err)
	}
	profile := connection.Resolve(cfg, stored)

	boardOpts := []notifier.Option{notifier.WithLogger(logger)}
	if !opts.interactive {
		boardOpts = append(boardOpts, notifier.WithWriter(cmd.ErrOrStderr()))
	}
	board := notifier.NewBoard(boardOpts...)

	registry := prometheus.NewRegistry()
	gw := gateway.New(profile.BaseURL, profile.Token, board,
		gateway.WithRateLimit(cfg.API.RateLimit),
		gateway.WithMetrics(gateway.NewMetrics(registry, cfg.Exporter.Namespace)),
		gateway.WithLogger(logger),
	)

	state := connection.NewState(connection.DetectMode(cfg))
	confirm := opts.confirm
	if confirm == nil {
		if yes, _ := cmd.Flags().GetBool("yes"); yes {
			confirm = controller.AutoConfirm
		} else {
			confirm = stdinConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr())
		}
	}
	deps := controller.Deps{
		Source:  source.Select(state.Demo(), gw, board),
		Notify:  board,
		Confirm: confirm,
		Logger:  logger,
	}

	logger.Debug("session ready", "mode", state.Mode().String(), "api", profile.BaseURL)

	return &app{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		store:     store,
		profile:   profile,
		state:     state,
		board:     board,
		gateway:   gw,
		registry:  registry,
		set:       controller.NewSet(deps),
		connector: controller.NewConnector(state, store, gw, deps),
		out:       cmd.OutOrStdout(),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

// run 包装子命令：构建 app，执行 fn，最后释放资源。
func run(fn func(ctx context.Context, a *app, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd.Context(), a, args)
	}
}

// stdinConfirmer asks on w and reads a y/N answer from r.
func stdinConfirmer(r io.Reader, w io.Writer) controller.Confirmer {
	reader := bufio.NewReader(r)
	return controller.ConfirmFunc(func(_ context.Context, prompt string) bool {
		fmt.Fprintf(w, "%s [y/N]: ", prompt)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	})
}

// stdinIsTerminal reports whether stdin is attached to a character device.
func stdinIsTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
