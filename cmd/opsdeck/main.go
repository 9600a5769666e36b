// Command opsdeck follows multi-agent orchestration runs: headless, as a
// terminal dashboard, or as an MCP server, and can replay a recorded backend.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oneclickai/opsdeck/internal/backend"
	"github.com/oneclickai/opsdeck/internal/config"
	"github.com/oneclickai/opsdeck/internal/domain/activity"
	"github.com/oneclickai/opsdeck/internal/domain/session"
	"github.com/oneclickai/opsdeck/internal/sqlite"
	"github.com/spf13/cobra"
)

var version = "dev"

// logsAnnotation marks commands whose stdout belongs to a renderer, so logs
// are discarded unless OPSDECK_LOG_PATH sends them to a file.
const logsAnnotation = "logs"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	a := &app{}
	err := newRootCmd(a).ExecuteContext(ctx)
	a.close()
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// app carries what every subcommand shares once the root has loaded config.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	closers []io.Closer
}

func newRootCmd(a *app) *cobra.Command {
	var (
		configPath string
		backendURL string
		logLevel   string
	)

	root := &cobra.Command{
		Use:          "opsdeck",
		Short:        "Follow multi-agent orchestration runs",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if configPath != "" {
				if err := os.Setenv("OPSDECK_CONFIG_PATH", configPath); err != nil {
					return err
				}
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			if backendURL != "" {
				cfg.Backend.BaseURL = backendURL
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			a.cfg = cfg
			return a.setupLogging(cmd)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (overrides OPSDECK_CONFIG_PATH)")
	root.PersistentFlags().StringVar(&backendURL, "backend", "", "orchestration backend base URL")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(
		newRunCmd(a),
		newDashboardCmd(a),
		newRenderCmd(a),
		newMCPCmd(a),
		newReplayCmd(a),
	)
	return root
}

func (a *app) setupLogging(cmd *cobra.Command) error {
	var w io.Writer = cmd.ErrOrStderr()
	if cmd.Annotations[logsAnnotation] == "discard" {
		w = io.Discard
	}
	if path := os.Getenv("OPSDECK_LOG_PATH"); path != "" {
		file, err := openCappedLog(path, maxLogSizeBytes, keepLogSizeBytes)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "log file error: %v\n", err)
		} else {
			a.closers = append(a.closers, file)
			w = file
		}
	}
	a.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLogLevel(a.cfg.Log.Level),
	}))
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
	a.closers = nil
}

func (a *app) backendClient() *backend.Client {
	return backend.NewClient(backend.Options{
		BaseURL:      a.cfg.Backend.BaseURL,
		RunPath:      a.cfg.Backend.RunPath,
		HealthPath:   a.cfg.Backend.HealthPath,
		ChunkTimeout: a.cfg.Stream.ChunkTimeout,
	}, a.logger)
}

// newStore builds the session store, journaling to sqlite when db.path is set.
func (a *app) newStore(runner session.Runner) (*session.Store, error) {
	opts := []session.Option{
		session.WithLogger(a.logger),
		session.WithRunTimeout(a.cfg.Stream.RunTimeout),
	}
	if path := a.cfg.DB.Path; path != "" {
		if err := ensureDBDir(path); err != nil {
			return nil, fmt.Errorf("prepare database path: %w", err)
		}
		db, err := sqlite.Open(path)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db)
		opts = append(opts, session.WithJournal(activity.NewService(sqlite.NewActivityRepository(db), a.logger)))
	}
	return session.NewStore(runner, opts...), nil
}

// backendLabel describes the backend and whether it answered a health check.
func (a *app) backendLabel(ctx context.Context, client *backend.Client) string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	status, err := client.Health(ctx)
	if err != nil {
		if errors.Is(err, backend.ErrConnection) {
			return client.BaseURL() + " (unreachable)"
		}
		return client.BaseURL() + " (unknown)"
	}
	return fmt.Sprintf("%s (%s, %d agents)", client.BaseURL(), status.Status, status.Agents)
}
