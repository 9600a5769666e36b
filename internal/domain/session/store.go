package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/oneclickai/opsdeck/internal/domain/activity"
	"github.com/oneclickai/opsdeck/internal/domain/event"
	"github.com/oneclickai/opsdeck/internal/domain/project"
	"github.com/oneclickai/opsdeck/internal/repository/memory"
	"github.com/oneclickai/opsdeck/internal/stream"
	"golang.org/x/sync/errgroup"
)

const defaultChangeBuffer = 64

// run is the handle of one in-flight stream.
type run struct {
	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}
}

// Store owns the ordered collection of projects and every run feeding them.
// All mutation goes through its methods; readers get deep copies.
type Store struct {
	mu       sync.Mutex
	projects []*project.Project
	activeID string
	ordinal  int
	runs     map[string]*run
	gen      uint64
	closed   bool

	runner     Runner
	journal    *activity.Service
	logger     *slog.Logger
	runTimeout time.Duration
	changes    chan string
	group      errgroup.Group
}

// NewStore creates a store holding one idle project, which is active.
func NewStore(runner Runner, opts ...Option) *Store {
	s := &Store{
		runs:    make(map[string]*run),
		runner:  runner,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		changes: make(chan string, defaultChangeBuffer),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.journal == nil {
		s.journal = activity.NewService(memory.NewActivityRepository(0), s.logger)
	}

	p := s.newProjectLocked()
	s.activeID = p.ID
	s.note(p.ID, activity.TypeProjectCreated, "Created "+p.Name, nil)
	return s
}

// Changes delivers the id of each project whose state changed. Notifications
// are dropped while the buffer is full, so consumers should re-read the store
// rather than count them. The channel is closed by Close.
func (s *Store) Changes() <-chan string { return s.changes }

// Projects returns snapshots of every project in display order.
func (s *Store) Projects() []*project.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*project.Project, len(s.projects))
	for i, p := range s.projects {
		out[i] = p.Clone()
	}
	return out
}

// Summaries lists every project in display order.
func (s *Store) Summaries() []project.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]project.Summary, len(s.projects))
	for i, p := range s.projects {
		out[i] = p.Summarize(p.ID == s.activeID)
	}
	return out
}

// Get returns a snapshot of one project.
func (s *Store) Get(id string) (*project.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, _, err := s.findLocked(id)
	if err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

// Active returns a snapshot of the selected project.
func (s *Store) Active() *project.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, _, err := s.findLocked(s.activeID)
	if err != nil {
		// Unreachable while the collection invariant holds.
		return s.projects[0].Clone()
	}
	return p.Clone()
}

// ActiveID returns the id of the selected project.
func (s *Store) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// SetActive selects a project. No project state changes.
func (s *Store) SetActive(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, _, err := s.findLocked(id); err != nil {
		return err
	}
	s.activeID = id
	s.notifyLocked(id)
	return nil
}

// AddProject appends a new idle project and selects it.
func (s *Store) AddProject() *project.Project {
	s.mu.Lock()
	p := s.newProjectLocked()
	s.activeID = p.ID
	s.notifyLocked(p.ID)
	snap := p.Clone()
	s.mu.Unlock()

	s.note(snap.ID, activity.TypeProjectCreated, "Created "+snap.Name, nil)
	return snap
}

// CloseProject removes a project, aborting its run. Closing the last project
// leaves a fresh idle one in its place; closing the selected project selects
// its left neighbour (or the new first project).
func (s *Store) CloseProject(id string) error {
	s.mu.Lock()
	p, idx, err := s.findLocked(id)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.cancelRunLocked(id)
	s.projects = append(s.projects[:idx], s.projects[idx+1:]...)

	var replacement *project.Project
	if len(s.projects) == 0 {
		replacement = s.newProjectLocked()
	}
	if s.activeID == id {
		next := idx - 1
		if next < 0 {
			next = 0
		}
		s.activeID = s.projects[next].ID
	}
	s.notifyLocked(id)
	s.notifyLocked(s.activeID)
	s.mu.Unlock()

	s.logger.Info("project closed", "project_id", id, "name", p.Name)
	s.note(id, activity.TypeProjectClosed, "Closed "+p.Name, map[string]any{"status": p.Status})
	if replacement != nil {
		s.note(replacement.ID, activity.TypeProjectCreated, "Created "+replacement.Name, nil)
	}
	return nil
}

// Rename sets a project's display label.
func (s *Store) Rename(id, name string) error {
	s.mu.Lock()
	p, _, err := s.findLocked(id)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	old := p.Name
	if err := p.Rename(name); err != nil {
		s.mu.Unlock()
		return err
	}
	renamed := p.Name
	s.notifyLocked(id)
	s.mu.Unlock()

	s.note(id, activity.TypeProjectRenamed, fmt.Sprintf("Renamed %s to %s", old, renamed), nil)
	return nil
}

// Run starts a new run of intent on a project. It returns once the run is
// registered; records are applied in the background as they arrive.
func (s *Store) Run(ctx context.Context, id, intent string) error {
	if s.runner == nil {
		return ErrNoRunner
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	p, _, err := s.findLocked(id)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if err := p.Start(intent); err != nil {
		s.mu.Unlock()
		return err
	}

	s.gen++
	// The run outlives the request that started it; it ends on completion,
	// cancellation through the store, or the run timeout.
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	if s.runTimeout > 0 {
		var cancelTimeout context.CancelFunc
		runCtx, cancelTimeout = context.WithTimeout(runCtx, s.runTimeout)
		parentCancel := cancel
		cancel = func() {
			cancelTimeout()
			parentCancel()
		}
	}
	r := &run{gen: s.gen, cancel: cancel, done: make(chan struct{})}
	// A completed run may still hold its stream open.
	s.cancelRunLocked(id)
	s.runs[id] = r
	trimmed := p.Intent
	s.notifyLocked(id)
	s.logger.Info("run started", "project_id", id, "name", p.Name)
	s.note(id, activity.TypeRunStarted, "Run started: "+p.Name, map[string]any{"intent": trimmed})
	// Registered under the lock so Close never waits on a group that is
	// still growing.
	s.group.Go(func() error {
		s.execute(runCtx, id, trimmed, r)
		return nil
	})
	s.mu.Unlock()
	return nil
}

// ApplyRecord folds one record into a project outside of any run.
func (s *Store) ApplyRecord(id string, rec event.Record) error {
	s.mu.Lock()
	p, _, err := s.findLocked(id)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	before := p.Status
	if err := p.Apply(rec); err != nil {
		s.mu.Unlock()
		return err
	}
	completed := before == project.StatusRunning && p.Status == project.StatusCompleted
	if completed {
		s.cancelRunLocked(id)
	}
	s.notifyLocked(id)
	s.mu.Unlock()

	s.noteRecord(id, rec, completed)
	return nil
}

// Fail marks a running project failed and aborts its stream.
func (s *Store) Fail(id, message string) error {
	s.mu.Lock()
	p, _, err := s.findLocked(id)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if err := p.Fail(message); err != nil {
		s.mu.Unlock()
		return err
	}
	s.cancelRunLocked(id)
	s.notifyLocked(id)
	s.mu.Unlock()

	s.logger.Warn("run failed", "project_id", id, "error", message)
	s.note(id, activity.TypeRunFailed, "Run failed", map[string]any{"error": message})
	return nil
}

// Reset aborts any run of a project and returns it to idle.
func (s *Store) Reset(id string) error {
	s.mu.Lock()
	p, _, err := s.findLocked(id)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.cancelRunLocked(id)
	p.Reset()
	name := p.Name
	s.notifyLocked(id)
	s.mu.Unlock()

	s.note(id, activity.TypeProjectReset, "Reset "+name, nil)
	return nil
}

// Wait blocks until the project's current run, if any, has finished.
func (s *Store) Wait(ctx context.Context, id string) error {
	s.mu.Lock()
	if _, _, err := s.findLocked(id); err != nil {
		s.mu.Unlock()
		return err
	}
	r := s.runs[id]
	s.mu.Unlock()
	if r == nil {
		return nil
	}
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Journal lists recent lifecycle activity.
func (s *Store) Journal(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	return s.journal.GetRecentActivity(ctx, opts)
}

// Close aborts every run and waits for their read loops to exit. Projects
// stay readable; starting new runs fails with ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	for id := range s.runs {
		s.cancelRunLocked(id)
	}
	s.mu.Unlock()

	err := s.group.Wait()
	close(s.changes)
	return err
}

// execute drives one run from request to terminal state.
func (s *Store) execute(ctx context.Context, id, intent string, r *run) {
	defer close(r.done)
	defer r.cancel()

	logger := s.logger.With("project_id", id)
	body, err := s.runner.StartRun(ctx, intent)
	if err != nil {
		s.finish(id, r, stream.Summary{}, err)
		return
	}
	defer body.Close()

	sum, err := stream.Ingest(ctx, body, func(rec event.Record) error {
		return s.applyFromRun(id, r.gen, rec)
	}, logger)
	s.finish(id, r, sum, err)
}

// applyFromRun applies a streamed record unless its run has been superseded.
func (s *Store) applyFromRun(id string, gen uint64, rec event.Record) error {
	s.mu.Lock()
	cur, ok := s.runs[id]
	if !ok || cur.gen != gen {
		s.mu.Unlock()
		return errStaleRun
	}
	p, _, err := s.findLocked(id)
	if err != nil {
		s.mu.Unlock()
		return errStaleRun
	}
	before := p.Status
	if err := p.Apply(rec); err != nil {
		s.mu.Unlock()
		s.logger.Debug("record not applied", "project_id", id, "type", rec.Type, "error", err)
		return nil
	}
	completed := before == project.StatusRunning && p.Status == project.StatusCompleted
	if completed {
		// Stop reading; finish unregisters the handle once the body closes.
		cur.cancel()
	}
	s.notifyLocked(id)
	s.mu.Unlock()

	s.noteRecord(id, rec, completed)
	return nil
}

// finish settles a project once its stream has ended. Runs that were
// cancelled through the store have already been unregistered and are ignored.
func (s *Store) finish(id string, r *run, sum stream.Summary, runErr error) {
	s.mu.Lock()
	if s.runs[id] != r {
		s.mu.Unlock()
		return
	}
	delete(s.runs, id)
	p, _, err := s.findLocked(id)
	if err != nil {
		s.mu.Unlock()
		return
	}

	var (
		completed bool
		failMsg   string
	)
	switch {
	case runErr == nil:
		// A clean end without a complete record counts as success.
		completed = p.Complete()
	case errors.Is(runErr, context.DeadlineExceeded):
		failMsg = fmt.Sprintf("run exceeded the %s limit", s.runTimeout)
	case errors.Is(runErr, context.Canceled):
		failMsg = "run cancelled"
	default:
		failMsg = runErr.Error()
	}
	failed := failMsg != "" && p.Fail(failMsg) == nil
	s.notifyLocked(id)
	s.mu.Unlock()

	switch {
	case completed:
		s.logger.Info("run completed", "project_id", id, "records", sum.Records, "dropped", sum.Dropped, "implicit", true)
		s.note(id, activity.TypeRunCompleted, "Run completed", map[string]any{
			"records":  sum.Records,
			"dropped":  sum.Dropped,
			"implicit": true,
		})
	case failed:
		s.logger.Warn("run failed", "project_id", id, "error", failMsg)
		s.note(id, activity.TypeRunFailed, "Run failed", map[string]any{"error": failMsg, "records": sum.Records})
	}
}

func (s *Store) noteRecord(id string, rec event.Record, completed bool) {
	switch {
	case rec.Type == event.TypePlan:
		s.note(id, activity.TypePlanReceived, "Plan received", nil)
	case completed:
		s.logger.Info("run completed", "project_id", id, "implicit", false)
		s.note(id, activity.TypeRunCompleted, "Run completed", map[string]any{"implicit": false})
	}
}

func (s *Store) note(id string, typ activity.ActivityType, summary string, details map[string]any) {
	s.journal.Note(context.Background(), id, typ, summary, details)
}

func (s *Store) newProjectLocked() *project.Project {
	s.ordinal++
	p := project.New(s.ordinal)
	s.projects = append(s.projects, p)
	return p
}

func (s *Store) findLocked(id string) (*project.Project, int, error) {
	for i, p := range s.projects {
		if p.ID == id {
			return p, i, nil
		}
	}
	return nil, -1, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
}

// cancelRunLocked unregisters and aborts a project's run, if any.
func (s *Store) cancelRunLocked(id string) {
	if r, ok := s.runs[id]; ok {
		delete(s.runs, id)
		r.cancel()
	}
}

func (s *Store) notifyLocked(id string) {
	if s.closed {
		return
	}
	select {
	case s.changes <- id:
	default:
	}
}
