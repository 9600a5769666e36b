package visualize_test

import (
	"testing"

	"github.com/oneclickai/opsdeck/internal/domain/plan"
	"github.com/oneclickai/opsdeck/internal/visualize"
	"github.com/stretchr/testify/require"
)

func TestBuildMap_Markers(t *testing.T) {
	m := visualize.BuildMap(loadPlan(t))

	roles := make([]string, len(m.Markers))
	for i, mk := range m.Markers {
		roles[i] = mk.Role
		require.True(t, mk.Coordinates.Valid, mk.ID)
		require.NotEmpty(t, mk.RoleLabel)
	}
	require.Equal(t, []string{
		visualize.MarkerSupplier, visualize.MarkerSupplier,
		visualize.MarkerManufacturer, visualize.MarkerLogistics, visualize.MarkerCustomer,
	}, roles)

	taipei := m.Markers[1]
	require.Equal(t, "Taipei Cycle Works", taipei.Name)
	require.InDelta(t, 121.56, taipei.Coordinates.Lon, 1e-9)
	require.InDelta(t, 25.03, taipei.Coordinates.Lat, 1e-9)
	require.Equal(t, "General parts", taipei.Specialization)

	require.Equal(t, "5 days", m.Markers[0].LeadTime)
	require.Equal(t, "3 days", m.Markers[2].AssemblyTime)

	// Partners report reliability as whole percentages.
	require.InDelta(t, 0.95, m.Markers[0].Reliability, 1e-9)
	require.Zero(t, taipei.Reliability)
	require.InDelta(t, 0.92, m.Markers[2].Reliability, 1e-9)
	require.InDelta(t, 0.88, m.Markers[3].Reliability, 1e-9)

	hub := m.Markers[3]
	require.Equal(t, "Rotterdam", hub.Location)
	require.Equal(t, "road, rail", hub.Modes)
	require.Equal(t, 120.0, hub.ShippingCost)
	require.Equal(t, "Logistics Hub", hub.RoleLabel)

	require.Equal(t, visualize.CustomerDestination, m.Markers[4].Coordinates)
	require.Equal(t, visualize.MapStats{Suppliers: 2, Markers: 5, Routes: 4}, m.Stats)
}

func TestBuildMap_Routes(t *testing.T) {
	m := visualize.BuildMap(loadPlan(t))

	type hop struct{ kind, from, to string }
	var hops []hop
	for _, r := range m.Routes {
		hops = append(hops, hop{r.Kind, r.From, r.To})
	}
	require.Equal(t, []hop{
		{visualize.RouteSupply, "supplier_0", "manufacturer"},
		{visualize.RouteSupply, "supplier_1", "manufacturer"},
		{visualize.RouteAssembly, "manufacturer", "logistics"},
		{visualize.RouteDelivery, "logistics", "customer"},
	}, hops)
	require.Equal(t, plan.NewCoordinate(4.48, 51.92), m.Routes[3].Start)
}

func TestBuildMap_UnresolvedEntitiesOmitted(t *testing.T) {
	p := loadPlan(t)
	p.Manufacturer.SelectedDetails.Coordinates = plan.Coordinate{}
	m := visualize.BuildMap(p)

	for _, mk := range m.Markers {
		require.NotEqual(t, visualize.MarkerManufacturer, mk.Role)
	}
	require.Len(t, m.Routes, 1)
	require.Equal(t, visualize.RouteDelivery, m.Routes[0].Kind)

	p.Logistics.SelectedDetails.Coordinates = plan.Coordinate{}
	m = visualize.BuildMap(p)
	require.Empty(t, m.Routes)
	require.Equal(t, 3, m.Stats.Markers)
}

func TestBuildMap_EmptyPlan(t *testing.T) {
	m := visualize.BuildMap(&plan.Plan{})
	require.Len(t, m.Markers, 1)
	require.Equal(t, visualize.MarkerCustomer, m.Markers[0].Role)
	require.Empty(t, m.Routes)

	require.Empty(t, visualize.BuildMap(nil).Markers)
}
