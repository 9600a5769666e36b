package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oneclickai/opsdeck/internal/replay"
	"github.com/spf13/cobra"
)

func newReplayCmd(a *app) *cobra.Command {
	var (
		file   string
		delay  time.Duration
		chunk  int
		agents int
	)
	cmd := &cobra.Command{
		Use:     "replay",
		Short:   "Serve a recorded run as the orchestration backend",
		Example: `  opsdeck replay --file bicycle.sse --delay 300ms --chunk 48`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				return errors.New("--file is required")
			}
			rec, err := replay.LoadRecordingFile(file)
			if err != nil {
				return err
			}
			gin.SetMode(gin.ReleaseMode)
			router := replay.NewRouter(replay.Options{
				Recording: rec,
				Delay:     delay,
				ChunkSize: chunk,
				Agents:    agents,
				Logger:    a.logger,
			})
			addr := a.cfg.Addr()
			a.logger.Info("replaying recording", "file", file, "payloads", len(rec.Payloads), "addr", addr)
			return serveUntilDone(cmd.Context(), a.logger, &http.Server{
				Addr:              addr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "recorded SSE body or JSON Lines file")
	cmd.Flags().DurationVar(&delay, "delay", 250*time.Millisecond, "pause between frames")
	cmd.Flags().IntVar(&chunk, "chunk", 0, "split frames into writes of at most this many bytes")
	cmd.Flags().IntVar(&agents, "agents", 5, "agent count reported by the health endpoint")
	return cmd
}
