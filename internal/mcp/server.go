package mcp

import (
	"context"
	"io"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/oneclickai/opsdeck/internal/backend"
	"github.com/oneclickai/opsdeck/internal/domain/activity"
	"github.com/oneclickai/opsdeck/internal/domain/project"
)

// Sessions defines the session store operations needed by MCP.
type Sessions interface {
	Summaries() []project.Summary
	Get(id string) (*project.Project, error)
	ActiveID() string
	SetActive(id string) error
	AddProject() *project.Project
	CloseProject(id string) error
	Rename(id, name string) error
	Run(ctx context.Context, id, intent string) error
	Reset(id string) error
	Wait(ctx context.Context, id string) error
	Journal(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// HealthChecker probes the orchestration backend.
type HealthChecker interface {
	Health(ctx context.Context) (*backend.HealthStatus, error)
}

// Config contains server configuration.
type Config struct {
	Sessions Sessions
	// Backend is optional; without it the backend_health tool reports
	// that no backend is configured.
	Backend HealthChecker
	Version string
	Logger  *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Version == "" {
		cfg.Version = "0.1.0"
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "opsdeck",
		Version: cfg.Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, NewHandler(cfg.Sessions, cfg.Backend, cfg.Logger))

	return server
}
