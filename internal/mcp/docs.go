package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `opsdeck tracks orchestration runs as Projects and renders their final plans.

Core concepts:
- Project: one tab. Status is idle, running, completed or error. Exactly one project is active.
- Run: an intent sent to the orchestration backend. Its event stream fills the project's log,
  agent statuses and, at the end, its plan.
- Plan: the execution plan produced by a run. It renders as four views: timeline, graph, map, lanes.

Default workflow:
1) Orient: list_projects (the active project is the default target of every tool).
2) Start: run_project(intent, wait=true) or run_project then poll get_project.
3) Inspect: get_project(log_tail=N) for progress; render_plan(view) once has_plan is true.
4) Recover: a failed run stays in error until reset_project or a new run_project.

Docs:
- opsdeck://docs/index
- opsdeck://docs/run-lifecycle
- opsdeck://docs/views
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "opsdeck://docs/index",
		Name:        "docs_index",
		Title:       "opsdeck docs index",
		Description: "Entry point: tools, what to read and known limitations.",
		Content: `# opsdeck: Agent Docs Index

## Quick start

1. ` + "`list_projects`" + ` to see tabs and the active project.
2. ` + "`run_project`" + ` with an intent. Pass ` + "`wait: true`" + ` to block until the run ends.
3. ` + "`get_project`" + ` to read the log and per-agent status.
4. ` + "`render_plan`" + ` with a view once the project has a plan.

## Docs

- ` + "`opsdeck://docs/run-lifecycle`" + `: project states, completion and failure.
- ` + "`opsdeck://docs/views`" + `: what each plan view contains.

## Limitations

- Runs are never retried. Re-run explicitly after a failure.
- State lives in memory for the life of the server; only the activity journal may be persisted.
`,
	},
	{
		URI:         "opsdeck://docs/run-lifecycle",
		Name:        "run_lifecycle",
		Title:       "Run lifecycle",
		Description: "Project state machine, completion rules and error codes.",
		Content: `# Run lifecycle

` + "```" + `
idle --run--> running --complete record or stream end--> completed
running --transport failure / timeout / abort--> error
completed | error --reset--> idle
` + "```" + `

- A run on a project that is already running fails with ` + "`ALREADY_RUNNING`" + `.
- A stream that ends without an explicit completion record still completes the project.
- Closing or resetting a project aborts its stream. Records of an aborted run are never applied.
- Agent status is ` + "`complete`" + ` when the latest event tag of that agent contains a completion
  keyword (complete, finished, ready, planned, generated), otherwise ` + "`active`" + `.
- ` + "`BACKEND_UNREACHABLE`" + ` carries a recovery hint naming the backend URL setting.
`,
	},
	{
		URI:         "opsdeck://docs/views",
		Name:        "views",
		Title:       "Plan views",
		Description: "Geometry returned by render_plan for each view.",
		Content: `# Plan views

- ` + "`timeline`" + `: eight phases in order. Supplier, manufacturer, logistics and retailer phases
  carry day ranges and bar widths in percent (sum <= 100, minimum 8 for non-zero spans).
  Includes day axis ticks and a cost summary.
- ` + "`graph`" + `: orchestrator, four role agents, selected partners and the customer with x/y
  positions, plus request, partner and hand-off edges.
- ` + "`map`" + `: markers at [lon, lat] for every partner with known coordinates and the customer,
  with supply, assembly and delivery routes. Partners without coordinates are omitted.
- ` + "`lanes`" + `: message exchanges between canonical participants. Only lanes that carry a
  message are returned; messages naming unknown participants are counted as skipped.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
