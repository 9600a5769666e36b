package replay

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Options configures the replay backend.
type Options struct {
	Recording *Recording
	// Delay is the pause between frames.
	Delay time.Duration
	// ChunkSize splits the body into writes of at most this many bytes,
	// flushed one by one. Zero writes whole frames.
	ChunkSize int
	// Agents is reported by the health endpoint.
	Agents int
	Logger *slog.Logger
}

type runRequest struct {
	Intent string `json:"intent" binding:"required"`
}

// NewRouter returns the replay backend: POST /api/run streams the recording
// and GET /api/health reports readiness.
func NewRouter(opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(opts.Logger))

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "agents": opts.Agents})
	})

	r.POST("/api/run", func(c *gin.Context) {
		var req runRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if opts.Recording == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no recording loaded"})
			return
		}
		opts.Logger.Info("replaying run", "intent", req.Intent, "payloads", len(opts.Recording.Payloads))

		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Status(http.StatusOK)

		ctx := c.Request.Context()
		for i, p := range opts.Recording.Payloads {
			if i > 0 && opts.Delay > 0 {
				select {
				case <-ctx.Done():
					return
				case <-time.After(opts.Delay):
				}
			}
			if err := writeChunked(c.Writer, []byte("data: "+p+"\n\n"), opts.ChunkSize); err != nil {
				opts.Logger.Debug("client went away", "error", err)
				return
			}
		}
	})

	return r
}

func writeChunked(w gin.ResponseWriter, frame []byte, size int) error {
	if size <= 0 {
		size = len(frame)
	}
	for len(frame) > 0 {
		n := min(size, len(frame))
		if _, err := w.Write(frame[:n]); err != nil {
			return err
		}
		w.Flush()
		frame = frame[n:]
	}
	return nil
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
