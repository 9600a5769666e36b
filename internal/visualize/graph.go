package visualize

import (
	"fmt"
	"math"

	"github.com/oneclickai/opsdeck/internal/domain/plan"
)

// Layout constants of the dependency graph.
const (
	NodeSpacing   = 180.0
	MinRowWidth   = 800.0
	OrchestratorY = 40.0
	AgentRowY     = 220.0
	PartnerRowY   = 420.0
)

// Point is a position on the canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node roles.
const (
	RoleOrchestrator = "orchestrator"
	RoleAgent        = "agent"
	RolePartner      = "partner"
	RoleCustomer     = "customer"
)

// Node is a vertex of the dependency graph.
type Node struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	Label    string `json:"label"`
	Sublabel string `json:"sublabel,omitempty"`
	Position Point  `json:"position"`
}

// Edge kinds.
const (
	EdgeRequest = "request"
	EdgePartner = "partner"
	EdgeHandoff = "handoff"
)

// Edge connects two nodes.
type Edge struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Kind     string `json:"kind"`
	Label    string `json:"label,omitempty"`
	Animated bool   `json:"animated,omitempty"`
}

// Graph is the rendered agent dependency graph.
type Graph struct {
	Width float64 `json:"width"`
	Nodes []Node  `json:"nodes"`
	Edges []Edge  `json:"edges"`
}

// Node returns the node with the given id.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

type agentSlot struct {
	id       string
	label    string
	sublabel string
	column   float64
}

var agentSlots = [4]agentSlot{
	{"supplier_agent", "Supplier Agent", "Parts & Materials", 0.5},
	{"mfg_agent", "Manufacturer Agent", "Assembly", 1.7},
	{"log_agent", "Logistics Agent", "Shipping & Routing", 2.9},
	{"ret_agent", "Retailer Agent", "Delivery & CX", 4.1},
}

// BuildGraph lays out the orchestrator, the four role agents, the selected
// partners and the customer as a three-row graph.
func BuildGraph(p *plan.Plan) Graph {
	if p == nil {
		return Graph{}
	}

	suppliers := supplierPartners(p)
	rowWidth := math.Max(float64(len(suppliers))*NodeSpacing, MinRowWidth)
	agentSpacing := rowWidth / 5

	g := Graph{Width: rowWidth}
	edgeN := 0
	addEdge := func(source, target, kind, label string, animated bool) {
		g.Edges = append(g.Edges, Edge{
			ID:       fmt.Sprintf("e-%d", edgeN),
			Source:   source,
			Target:   target,
			Kind:     kind,
			Label:    label,
			Animated: animated,
		})
		edgeN++
	}

	g.Nodes = append(g.Nodes, Node{
		ID:       "procurement",
		Role:     RoleOrchestrator,
		Label:    "Procurement Agent",
		Sublabel: "Orchestrator",
		Position: Point{X: rowWidth/2 - 80, Y: OrchestratorY},
	})
	for _, slot := range agentSlots {
		g.Nodes = append(g.Nodes, Node{
			ID:       slot.id,
			Role:     RoleAgent,
			Label:    slot.label,
			Sublabel: slot.sublabel,
			Position: Point{X: agentSpacing * slot.column, Y: AgentRowY},
		})
		addEdge("procurement", slot.id, EdgeRequest, "A2A Request", true)
	}

	// Suppliers are centred under the supplier agent.
	supplierX := agentSpacing * agentSlots[0].column
	startX := supplierX - float64(len(suppliers)-1)*NodeSpacing/2
	for i, s := range suppliers {
		label := firstWords(s.Name, 2)
		if label == "" {
			label = fmt.Sprintf("Supplier %d", i+1)
		}
		id := fmt.Sprintf("sup_%d", i)
		g.Nodes = append(g.Nodes, Node{
			ID:       id,
			Role:     RolePartner,
			Label:    label,
			Sublabel: s.Location,
			Position: Point{X: startX + float64(i)*NodeSpacing, Y: PartnerRowY},
		})
		addEdge("supplier_agent", id, EdgePartner, "", false)
	}

	if name := manufacturerName(p); name != "" {
		g.Nodes = append(g.Nodes, Node{
			ID:       "mfg_partner",
			Role:     RolePartner,
			Label:    firstWords(name, 3),
			Sublabel: p.Manufacturer.SelectedDetails.Location,
			Position: Point{X: agentSpacing * agentSlots[1].column, Y: PartnerRowY},
		})
		addEdge("mfg_agent", "mfg_partner", EdgePartner, "", false)
	}

	if name := logisticsName(p); name != "" {
		g.Nodes = append(g.Nodes, Node{
			ID:       "log_partner",
			Role:     RolePartner,
			Label:    firstWords(name, 3),
			Sublabel: p.Logistics.SelectedDetails.Place(),
			Position: Point{X: agentSpacing * agentSlots[2].column, Y: PartnerRowY},
		})
		addEdge("log_agent", "log_partner", EdgePartner, "", false)
	}

	g.Nodes = append(g.Nodes, Node{
		ID:       "customer",
		Role:     RoleCustomer,
		Label:    "Customer",
		Sublabel: "Final Delivery",
		Position: Point{X: agentSpacing * agentSlots[3].column, Y: PartnerRowY},
	})
	addEdge("ret_agent", "customer", EdgePartner, "", false)

	addEdge("supplier_agent", "mfg_agent", EdgeHandoff, "Part Specs", false)
	addEdge("mfg_agent", "log_agent", EdgeHandoff, "Pickup Info", false)
	addEdge("log_agent", "ret_agent", EdgeHandoff, "Delivery Plan", false)

	return g
}

// supplierPartners returns the detailed suppliers, or bare entries built
// from the selected names when no details were sent.
func supplierPartners(p *plan.Plan) []plan.Partner {
	if len(p.Suppliers.SelectedDetails) > 0 {
		return p.Suppliers.SelectedDetails
	}
	out := make([]plan.Partner, 0, len(p.Suppliers.Selected))
	for _, name := range p.Suppliers.Selected {
		out = append(out, plan.Partner{Name: name})
	}
	return out
}
