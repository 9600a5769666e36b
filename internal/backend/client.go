package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

const errorBodyLimit = 512

// Options configures a Client.
type Options struct {
	BaseURL      string
	RunPath      string
	HealthPath   string
	ChunkTimeout time.Duration // 0 disables the idle limit
	HTTPClient   *http.Client
}

// Client issues run requests against the orchestration backend.
type Client struct {
	baseURL      string
	runPath      string
	healthPath   string
	chunkTimeout time.Duration
	http         *http.Client
	logger       *slog.Logger
}

// HealthStatus is the backend's health payload.
type HealthStatus struct {
	Status string `json:"status"`
	Agents int    `json:"agents"`
}

type runRequest struct {
	Intent string `json:"intent"`
}

// NewClient creates a backend client.
func NewClient(opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	hc := opts.HTTPClient
	if hc == nil {
		// No overall timeout: run responses are long-lived streams.
		hc = &http.Client{}
	}
	runPath := opts.RunPath
	if runPath == "" {
		runPath = "/api/run"
	}
	healthPath := opts.HealthPath
	if healthPath == "" {
		healthPath = "/api/health"
	}
	return &Client{
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		runPath:      runPath,
		healthPath:   healthPath,
		chunkTimeout: opts.ChunkTimeout,
		http:         hc,
		logger:       logger,
	}
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string { return c.baseURL }

// StartRun posts intent to the run endpoint and returns the streaming body.
// The caller must close it. Failures to connect and non-2xx responses are
// returned as *ConnectionError.
func (c *Client) StartRun(ctx context.Context, intent string) (io.ReadCloser, error) {
	body, err := json.Marshal(runRequest{Intent: intent})
	if err != nil {
		return nil, fmt.Errorf("encoding run request: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	url := c.baseURL + c.runPath
	req, err := http.NewRequestWithContext(runCtx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("building run request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.http.Do(req)
	if err != nil {
		cancel()
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, c.connectionError(url, 0, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer cancel()
		defer resp.Body.Close()
		return nil, c.connectionError(url, resp.StatusCode, statusDetail(resp))
	}

	c.logger.Debug("run stream opened", "url", url, "status", resp.StatusCode)
	return newIdleTimeoutReader(resp.Body, c.chunkTimeout, cancel), nil
}

// Health queries the health endpoint.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	url := c.baseURL + c.healthPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building health request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, c.connectionError(url, 0, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.connectionError(url, resp.StatusCode, statusDetail(resp))
	}
	var status HealthStatus
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64*1024)).Decode(&status); err != nil {
		return nil, fmt.Errorf("decoding health response: %w", err)
	}
	return &status, nil
}

func (c *Client) connectionError(url string, status int, cause error) *ConnectionError {
	return &ConnectionError{
		URL:        url,
		StatusCode: status,
		Err:        cause,
		Hint:       fmt.Sprintf("Make sure the orchestration backend is running at %s, or point backend.base_url (OPSDECK_BACKEND_URL) at it", c.baseURL),
	}
}

func statusDetail(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	text := strings.TrimSpace(string(b))
	if text == "" {
		return nil
	}
	return errors.New(text)
}

// idleTimeoutReader aborts the request when no Read completes within timeout.
type idleTimeoutReader struct {
	rc      io.ReadCloser
	timeout time.Duration
	cancel  context.CancelFunc

	mu       sync.Mutex
	timer    *time.Timer
	timedOut bool
}

func newIdleTimeoutReader(rc io.ReadCloser, timeout time.Duration, cancel context.CancelFunc) *idleTimeoutReader {
	r := &idleTimeoutReader{rc: rc, timeout: timeout, cancel: cancel}
	if timeout > 0 {
		r.timer = time.AfterFunc(timeout, r.expire)
	}
	return r
}

func (r *idleTimeoutReader) expire() {
	r.mu.Lock()
	r.timedOut = true
	r.mu.Unlock()
	r.cancel()
}

func (r *idleTimeoutReader) Read(p []byte) (int, error) {
	n, err := r.rc.Read(p)
	if r.timer == nil {
		return n, err
	}
	r.mu.Lock()
	timedOut := r.timedOut
	r.mu.Unlock()
	if timedOut {
		return n, fmt.Errorf("%w (%s)", ErrChunkTimeout, r.timeout)
	}
	if n > 0 {
		r.timer.Reset(r.timeout)
	}
	return n, err
}

func (r *idleTimeoutReader) Close() error {
	if r.timer != nil {
		r.timer.Stop()
	}
	err := r.rc.Close()
	r.cancel()
	return err
}
