package mcp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/oneclickai/opsdeck/internal/domain/activity"
	"github.com/oneclickai/opsdeck/internal/domain/project"
	"github.com/oneclickai/opsdeck/internal/visualize"
)

const defaultWaitTimeout = 120 * time.Second

// Handler implements the MCP tools over the session store.
type Handler struct {
	sessions Sessions
	backend  HealthChecker
	logger   *slog.Logger
}

// NewHandler creates a new MCP handler. backend may be nil.
func NewHandler(sessions Sessions, backend HealthChecker, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{sessions: sessions, backend: backend, logger: logger}
}

func (h *Handler) ListProjects(_ context.Context, _ EmptyParams) (any, error) {
	return ListProjectsResponse{
		ActiveID: h.sessions.ActiveID(),
		Projects: h.sessions.Summaries(),
	}, nil
}

func (h *Handler) CreateProject(_ context.Context, _ EmptyParams) (any, error) {
	p := h.sessions.AddProject()
	return h.projectResponse(p, 0), nil
}

func (h *Handler) GetProject(_ context.Context, req GetProjectParams) (any, error) {
	p, err := h.sessions.Get(h.resolveID(req.ID))
	if err != nil {
		return nil, err
	}
	return h.projectResponse(p, req.LogTail), nil
}

func (h *Handler) SelectProject(_ context.Context, req SelectProjectParams) (any, error) {
	if err := h.sessions.SetActive(req.ID); err != nil {
		return nil, err
	}
	return StatusResponse{Status: "selected", ID: req.ID}, nil
}

func (h *Handler) RenameProject(_ context.Context, req RenameProjectParams) (any, error) {
	id := h.resolveID(req.ID)
	if err := h.sessions.Rename(id, req.Name); err != nil {
		return nil, err
	}
	p, err := h.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	return h.projectResponse(p, 0), nil
}

func (h *Handler) CloseProject(_ context.Context, req ProjectParams) (any, error) {
	id := h.resolveID(req.ID)
	if err := h.sessions.CloseProject(id); err != nil {
		return nil, err
	}
	return StatusResponse{Status: "closed", ID: id}, nil
}

func (h *Handler) ResetProject(_ context.Context, req ProjectParams) (any, error) {
	id := h.resolveID(req.ID)
	if err := h.sessions.Reset(id); err != nil {
		return nil, err
	}
	p, err := h.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	return h.projectResponse(p, 0), nil
}

// RunProject starts a run. With Wait set it blocks until the run ends or the
// wait times out; a timed out wait still returns the running snapshot.
func (h *Handler) RunProject(ctx context.Context, req RunProjectParams) (any, error) {
	id := h.resolveID(req.ID)
	if err := h.sessions.Run(ctx, id, req.Intent); err != nil {
		return nil, err
	}
	if req.Wait {
		timeout := defaultWaitTimeout
		if req.TimeoutSeconds > 0 {
			timeout = time.Duration(req.TimeoutSeconds) * time.Second
		}
		waitCtx, cancel := context.WithTimeout(ctx, timeout)
		err := h.sessions.Wait(waitCtx, id)
		cancel()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
	}
	p, err := h.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	return h.projectResponse(p, 0), nil
}

func (h *Handler) RenderPlan(_ context.Context, req RenderPlanParams) (any, error) {
	view, err := visualize.ParseView(req.View)
	if err != nil {
		return nil, err
	}
	p, err := h.sessions.Get(h.resolveID(req.ID))
	if err != nil {
		return nil, err
	}
	geometry, err := visualize.Render(view, p.Plan, p.Report)
	if err != nil {
		return nil, err
	}
	return RenderPlanResponse{ProjectID: p.ID, View: string(view), Geometry: geometry}, nil
}

func (h *Handler) GetRecentActivity(ctx context.Context, req GetRecentActivityParams) (any, error) {
	opts := activity.ListActivityOptions{
		ProjectID: req.ProjectID,
		Limit:     req.Limit,
		Offset:    req.Offset,
	}
	if req.Type != "" {
		typ := activity.ActivityType(req.Type)
		opts.ActivityType = &typ
	}
	if req.SinceMinutes > 0 {
		opts.Since = time.Now().Add(-time.Duration(req.SinceMinutes) * time.Minute)
	}
	entries, err := h.sessions.Journal(ctx, opts)
	if err != nil {
		return nil, err
	}
	resp := make([]ActivityEntryResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, ActivityEntryResponse{
			Timestamp: entry.CreatedAt,
			Type:      entry.ActivityType,
			ProjectID: entry.ProjectID,
			Summary:   entry.Summary,
			Details:   entry.Details,
		})
	}
	return resp, nil
}

func (h *Handler) BackendHealth(ctx context.Context, _ EmptyParams) (any, error) {
	if h.backend == nil {
		return nil, ErrNoBackend
	}
	status, err := h.backend.Health(ctx)
	if err != nil {
		return nil, err
	}
	return HealthResponse{Status: status.Status, Agents: status.Agents}, nil
}

func (h *Handler) resolveID(id string) string {
	if id == "" {
		return h.sessions.ActiveID()
	}
	return id
}

func (h *Handler) projectResponse(p *project.Project, logTail int) ProjectResponse {
	log := p.Log
	if logTail > 0 && len(log) > logTail {
		log = log[len(log)-logTail:]
	}
	resp := ProjectResponse{
		ID:            p.ID,
		Name:          p.Name,
		Intent:        p.Intent,
		Status:        p.Status,
		Error:         p.Error,
		Active:        p.ID == h.sessions.ActiveID(),
		LogLength:     len(p.Log),
		Log:           log,
		AgentStatuses: p.AgentStatuses,
		HasPlan:       p.Plan != nil,
		StartedAt:     p.StartedAt,
		FinishedAt:    p.FinishedAt,
	}
	if p.Plan != nil {
		resp.Product = p.Plan.Product
		resp.TotalDays = p.Plan.Timeline.TotalDays.Float()
	}
	return resp
}
