package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/oneclickai/opsdeck/internal/domain/plan"
	"github.com/oneclickai/opsdeck/internal/visualize"
	"github.com/spf13/cobra"
)

func newRenderCmd(_ *app) *cobra.Command {
	var (
		planPath   string
		reportPath string
		viewName   string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the geometry of one plan view as JSON",
		Example: `  opsdeck render --plan plan.json --view timeline
  cat plan.json | opsdeck render --plan - --view lanes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := visualize.ParseView(viewName)
			if err != nil {
				return err
			}

			var p *plan.Plan
			if planPath != "" {
				data, err := readInput(cmd.InOrStdin(), planPath)
				if err != nil {
					return err
				}
				if p, err = plan.Parse(data); err != nil {
					return err
				}
			}
			var report *plan.CoordinationReport
			if reportPath != "" {
				data, err := readInput(cmd.InOrStdin(), reportPath)
				if err != nil {
					return err
				}
				if report, err = plan.ParseReport(data); err != nil {
					return err
				}
			}

			geometry, err := visualize.Render(view, p, report)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(geometry)
		},
	}
	cmd.Flags().StringVar(&planPath, "plan", "", "plan JSON file, - for stdin")
	cmd.Flags().StringVar(&reportPath, "report", "", "separate coordination report JSON file")
	cmd.Flags().StringVar(&viewName, "view", string(visualize.ViewTimeline), "timeline, graph, map or lanes")
	return cmd
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
