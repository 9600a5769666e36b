package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerTools adds every tool to server.
func registerTools(server *sdkmcp.Server, h *Handler) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "ping",
		Description: "Check that the server is alive",
	}, func(context.Context, *sdkmcp.CallToolRequest, EmptyParams) (*sdkmcp.CallToolResult, any, error) {
		return &sdkmcp.CallToolResult{Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: "pong"}}}, nil, nil
	})

	// Projects
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List every tracked project in tab order with its status and the active project id",
	}, toolHandler(h.ListProjects))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Add a new idle project and select it",
	}, toolHandler(h.CreateProject))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get a project's status, log, agent statuses and whether a plan is available",
	}, toolHandler(h.GetProject))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "select_project",
		Description: "Make a project the active one",
	}, toolHandler(h.SelectProject))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "rename_project",
		Description: "Change a project's display name",
	}, toolHandler(h.RenameProject))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "close_project",
		Description: "Close a project, aborting its run; closing the last project leaves a fresh idle one",
	}, toolHandler(h.CloseProject))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reset_project",
		Description: "Abort any run of a project and return it to idle",
	}, toolHandler(h.ResetProject))

	// Runs
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "run_project",
		Description: "Send an intent to the orchestration backend and stream the run into a project",
	}, toolHandler(h.RunProject))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "backend_health",
		Description: "Probe the orchestration backend",
	}, toolHandler(h.BackendHealth))

	// Plans
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "render_plan",
		Description: "Render a project's plan as timeline, graph, map or lanes geometry",
	}, toolHandler(h.RenderPlan))

	// Journal
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_recent_activity",
		Description: "List recent lifecycle activity, newest first",
	}, toolHandler(h.GetRecentActivity))
}

// toolHandler adapts a handler method to the SDK. Results are returned as
// JSON text; domain errors become tool errors carrying an APIError.
func toolHandler[In any](fn func(context.Context, In) (any, error)) sdkmcp.ToolHandlerFor[In, any] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
		out, err := fn(ctx, in)
		if err != nil {
			return errorResult(mapError(err))
		}
		return jsonResult(out, false)
	}
}

func errorResult(apiErr *APIError) (*sdkmcp.CallToolResult, any, error) {
	return jsonResult(apiErr, true)
}

func jsonResult(v any, isError bool) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding tool result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
		IsError: isError,
	}, nil, nil
}
