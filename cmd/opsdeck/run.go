package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/oneclickai/opsdeck/internal/backend"
	"github.com/oneclickai/opsdeck/internal/domain/agent"
	"github.com/oneclickai/opsdeck/internal/domain/event"
	"github.com/oneclickai/opsdeck/internal/domain/plan"
	"github.com/oneclickai/opsdeck/internal/domain/project"
	"github.com/spf13/cobra"
)

// runSummary is printed once a headless run ends.
type runSummary struct {
	ID        string                  `json:"id"`
	Intent    string                  `json:"intent"`
	Status    project.Status          `json:"status"`
	Error     string                  `json:"error,omitempty"`
	Events    int                     `json:"events"`
	Agents    map[string]agent.Status `json:"agents"`
	Product   string                  `json:"product,omitempty"`
	TotalDays float64                 `json:"total_days,omitempty"`
	Costs     *plan.CostSummary       `json:"costs,omitempty"`
	Duration  string                  `json:"duration"`
}

func newRunCmd(a *app) *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "run [intent]",
		Short: "Run one intent headless and print its log and summary",
		Example: `  opsdeck run "Buy parts for a bicycle and ship it to Paris"
  opsdeck run --check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := a.backendClient()
			intent := strings.TrimSpace(strings.Join(args, " "))
			if check {
				if err := checkBackend(cmd.Context(), cmd.OutOrStdout(), client); err != nil {
					return err
				}
				if intent == "" {
					return nil
				}
			}
			if intent == "" {
				return errors.New("an intent is required")
			}
			return a.runHeadless(cmd.Context(), cmd.OutOrStdout(), client, intent)
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "check backend health first")
	return cmd
}

func checkBackend(ctx context.Context, out io.Writer, client *backend.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	status, err := client.Health(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "backend %s: %s, %d agents\n", client.BaseURL(), status.Status, status.Agents)
	return nil
}

func (a *app) runHeadless(ctx context.Context, out io.Writer, runner *backend.Client, intent string) error {
	store, err := a.newStore(runner)
	if err != nil {
		return err
	}
	defer store.Close()

	id := store.ActiveID()
	if err := store.Run(ctx, id, intent); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- store.Wait(ctx, id) }()

	printed := 0
	flush := func() *project.Project {
		p, err := store.Get(id)
		if err != nil {
			return nil
		}
		for ; printed < len(p.Log); printed++ {
			printLogLine(out, p.Log[printed])
		}
		return p
	}

	for {
		select {
		case <-store.Changes():
			flush()
		case err := <-done:
			if err != nil {
				return fmt.Errorf("run interrupted: %w", err)
			}
			p := flush()
			if p == nil {
				return fmt.Errorf("project %s disappeared", id)
			}
			return printSummary(out, p)
		}
	}
}

func printLogLine(out io.Writer, ev event.LogEvent) {
	name := ev.AgentName
	if name == "" {
		name = ev.AgentID
	}
	line := fmt.Sprintf("%s [%s] %s", ev.Timestamp.Format("15:04:05"), name, ev.Event)
	if ev.Details != "" {
		line += ": " + ev.Details
	}
	fmt.Fprintln(out, line)
}

func printSummary(out io.Writer, p *project.Project) error {
	fmt.Fprintf(out, "status: %s\n", p.Status)

	sum := runSummary{
		ID:       p.ID,
		Intent:   p.Intent,
		Status:   p.Status,
		Error:    p.Error,
		Events:   len(p.Log),
		Agents:   p.AgentStatuses,
		Duration: p.FinishedAt.Sub(p.StartedAt).Round(time.Millisecond).String(),
	}
	if p.Plan != nil {
		sum.Product = p.Plan.Product
		sum.TotalDays = p.Plan.Timeline.Total()
		costs := p.Plan.CostSummary
		sum.Costs = &costs
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sum); err != nil {
		return err
	}
	if p.Status == project.StatusError {
		return fmt.Errorf("run failed: %s", p.Error)
	}
	return nil
}
