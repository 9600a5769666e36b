package main

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/oneclickai/opsdeck/internal/tui"
	"github.com/spf13/cobra"
)

func newDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "dashboard",
		Short:       "Open the terminal dashboard",
		Long:        "Open the terminal dashboard. Logs are discarded unless OPSDECK_LOG_PATH names a file.",
		Annotations: map[string]string{logsAnnotation: "discard"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			client := a.backendClient()
			store, err := a.newStore(client)
			if err != nil {
				return err
			}
			defer store.Close()

			model := tui.New(ctx, store,
				tui.WithLogger(a.logger),
				tui.WithBackendLabel(a.backendLabel(ctx, client)),
			)
			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return err
			}
			return nil
		},
	}
}
