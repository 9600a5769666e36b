package visualize_test

import (
	"testing"

	"github.com/oneclickai/opsdeck/internal/domain/plan"
	"github.com/oneclickai/opsdeck/internal/visualize"
	"github.com/stretchr/testify/require"
)

func TestBuildGraph_Nodes(t *testing.T) {
	g := visualize.BuildGraph(loadPlan(t))

	require.Equal(t, visualize.MinRowWidth, g.Width)
	require.Len(t, g.Nodes, 11)

	root, ok := g.Node("procurement")
	require.True(t, ok)
	require.Equal(t, visualize.Point{X: 320, Y: visualize.OrchestratorY}, root.Position)

	sup, ok := g.Node("sup_0")
	require.True(t, ok)
	require.Equal(t, "Shenzhen Precision", sup.Label)
	require.Equal(t, "Shenzhen, China", sup.Sublabel)

	mfg, ok := g.Node("mfg_partner")
	require.True(t, ok)
	require.Equal(t, "Munich Assembly GmbH", mfg.Label)

	hub, ok := g.Node("log_partner")
	require.True(t, ok)
	require.Equal(t, "Rotterdam", hub.Sublabel)

	customer, ok := g.Node("customer")
	require.True(t, ok)
	require.Equal(t, visualize.RoleCustomer, customer.Role)
}

func TestBuildGraph_SuppliersCentredUnderAgent(t *testing.T) {
	for _, n := range []int{1, 2, 3, 6, 9} {
		p := &plan.Plan{}
		for range n {
			p.Suppliers.SelectedDetails = append(p.Suppliers.SelectedDetails, plan.Partner{})
		}
		g := visualize.BuildGraph(p)

		agent, ok := g.Node("supplier_agent")
		require.True(t, ok)

		sum := 0.0
		count := 0
		for _, node := range g.Nodes {
			if node.Role == visualize.RolePartner {
				sum += node.Position.X
				count++
				require.Equal(t, visualize.PartnerRowY, node.Position.Y)
			}
		}
		require.Equal(t, n, count)
		require.InDelta(t, agent.Position.X, sum/float64(n), 1e-9)
		require.GreaterOrEqual(t, g.Width, float64(n)*visualize.NodeSpacing)
	}
}

func TestBuildGraph_Edges(t *testing.T) {
	g := visualize.BuildGraph(loadPlan(t))

	require.Len(t, g.Edges, 13)
	for i, e := range g.Edges[:4] {
		require.Equal(t, "procurement", e.Source, i)
		require.Equal(t, visualize.EdgeRequest, e.Kind)
		require.Equal(t, "A2A Request", e.Label)
	}

	var handoffs [][2]string
	ids := map[string]bool{}
	for _, e := range g.Edges {
		require.False(t, ids[e.ID], "duplicate edge id %s", e.ID)
		ids[e.ID] = true
		if e.Kind == visualize.EdgeHandoff {
			handoffs = append(handoffs, [2]string{e.Source, e.Target})
		}
		_, ok := g.Node(e.Source)
		require.True(t, ok, e.Source)
		_, ok = g.Node(e.Target)
		require.True(t, ok, e.Target)
	}
	require.Equal(t, [][2]string{
		{"supplier_agent", "mfg_agent"},
		{"mfg_agent", "log_agent"},
		{"log_agent", "ret_agent"},
	}, handoffs)
}

func TestBuildGraph_OptionalPartners(t *testing.T) {
	g := visualize.BuildGraph(&plan.Plan{Suppliers: plan.Suppliers{Selected: plan.StringList{"Acme"}}})

	_, ok := g.Node("mfg_partner")
	require.False(t, ok)
	_, ok = g.Node("log_partner")
	require.False(t, ok)

	sup, ok := g.Node("sup_0")
	require.True(t, ok)
	require.Equal(t, "Acme", sup.Label)

	g = visualize.BuildGraph(&plan.Plan{Suppliers: plan.Suppliers{SelectedDetails: []plan.Partner{{}}}})
	sup, ok = g.Node("sup_0")
	require.True(t, ok)
	require.Equal(t, "Supplier 1", sup.Label)
}

func TestBuildGraph_Deterministic(t *testing.T) {
	p := loadPlan(t)
	require.Equal(t, visualize.BuildGraph(p), visualize.BuildGraph(p))
}

func TestBuildGraph_NilPlan(t *testing.T) {
	g := visualize.BuildGraph(nil)
	require.Empty(t, g.Nodes)
	require.Empty(t, g.Edges)
}
