package agent

// Status is the coarse progress state of one agent within a run.
type Status string

const (
	StatusActive   Status = "active"
	StatusComplete Status = "complete"
)

// completionKeywords are the substrings of an event tag that mark the agent's
// step as finished. Matching is case-sensitive; event tags are lower snake case.
//
//	quotes_generated     -> generated
//	assembly_plan_ready  -> ready
//	route_planned        -> planned
//	delivery_planned     -> planned
//	plan_complete        -> complete
var completionKeywords = []string{
	"complete",
	"finished",
	"ready",
	"planned",
	"generated",
}

// Keywords returns a copy of the completion keyword table.
func Keywords() []string {
	out := make([]string, len(completionKeywords))
	copy(out, completionKeywords)
	return out
}
