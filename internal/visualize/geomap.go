package visualize

import (
	"fmt"

	"github.com/oneclickai/opsdeck/internal/domain/plan"
)

// Marker roles.
const (
	MarkerSupplier     = "supplier"
	MarkerManufacturer = "manufacturer"
	MarkerLogistics    = "logistics"
	MarkerCustomer     = "customer"
)

// Route kinds.
const (
	RouteSupply   = "supply"
	RouteAssembly = "assembly"
	RouteDelivery = "delivery"
)

// CustomerDestination is the fixed delivery point every delivery route ends at.
var CustomerDestination = plan.NewCoordinate(2.35, 48.85)

var roleLabels = map[string]string{
	MarkerSupplier:     "Supplier",
	MarkerManufacturer: "Manufacturer",
	MarkerLogistics:    "Logistics Hub",
	MarkerCustomer:     "Customer",
}

// Marker is one located entity on the map.
type Marker struct {
	ID             string          `json:"id"`
	Role           string          `json:"role"`
	RoleLabel      string          `json:"role_label"`
	Name           string          `json:"name"`
	Location       string          `json:"location,omitempty"`
	Coordinates    plan.Coordinate `json:"coordinates"`
	Reliability    float64         `json:"reliability,omitempty"`
	Specialization string          `json:"specialization,omitempty"`
	Certifications []string        `json:"certifications,omitempty"`
	LeadTime       string          `json:"lead_time,omitempty"`
	CostMultiplier float64         `json:"cost_multiplier,omitempty"`
	FacilitySize   string          `json:"facility_size,omitempty"`
	AssemblyTime   string          `json:"assembly_time,omitempty"`
	Modes          string          `json:"modes,omitempty"`
	ShippingCost   float64         `json:"shipping_cost_usd,omitempty"`
	TransitTime    string          `json:"transit_time,omitempty"`
}

// Route is a directed segment between two markers.
type Route struct {
	Kind  string          `json:"kind"`
	Label string          `json:"label"`
	From  string          `json:"from"`
	To    string          `json:"to"`
	Start plan.Coordinate `json:"start"`
	End   plan.Coordinate `json:"end"`
}

// MapStats summarizes the network.
type MapStats struct {
	Suppliers int `json:"suppliers"`
	Markers   int `json:"markers"`
	Routes    int `json:"routes"`
}

// MapLayout is the rendered supply-chain map.
type MapLayout struct {
	Markers []Marker `json:"markers"`
	Routes  []Route  `json:"routes"`
	Stats   MapStats `json:"stats"`
}

// BuildMap places every partner with a resolvable coordinate and connects
// them supplier → manufacturer → logistics hub → customer. Entities without
// a coordinate are left out along with their routes.
func BuildMap(p *plan.Plan) MapLayout {
	if p == nil {
		return MapLayout{}
	}
	var out MapLayout

	var suppliers []Marker
	for i, s := range p.Suppliers.SelectedDetails {
		if !s.Coordinates.Valid {
			continue
		}
		m := Marker{
			ID:             fmt.Sprintf("supplier_%d", i),
			Role:           MarkerSupplier,
			Name:           s.Name,
			Location:       s.Location,
			Coordinates:    s.Coordinates,
			Reliability:    s.Reliability.Float(),
			Specialization: s.Specialization,
			Certifications: s.Certifications,
			CostMultiplier: s.CostMultiplier.Float(),
		}
		if m.Name == "" {
			m.Name = fmt.Sprintf("Supplier %d", i+1)
		}
		if m.Specialization == "" {
			m.Specialization = "General parts"
		}
		if d := s.LeadTimeDays.Float(); d > 0 {
			m.LeadTime = formatDays(d) + " days"
		}
		suppliers = append(suppliers, m)
	}
	out.Markers = append(out.Markers, suppliers...)
	out.Stats.Suppliers = len(suppliers)

	var manufacturer, hub *Marker
	if d := p.Manufacturer.SelectedDetails; d.Coordinates.Valid {
		m := Marker{
			ID:             "manufacturer",
			Role:           MarkerManufacturer,
			Name:           manufacturerName(p),
			Location:       d.Location,
			Coordinates:    d.Coordinates,
			Reliability:    d.Reliability.Float(),
			Specialization: d.Specialization,
			FacilitySize:   d.FacilitySize,
		}
		if m.Specialization == "" {
			m.Specialization = "Assembly"
		}
		if days := p.Manufacturer.AssemblyPlan.TotalAssemblyTimeDays.Float(); days > 0 {
			m.AssemblyTime = formatDays(days) + " days"
		}
		manufacturer = &m
	}

	if d := p.Logistics.SelectedDetails; d.Coordinates.Valid {
		m := Marker{
			ID:           "logistics",
			Role:         MarkerLogistics,
			Name:         logisticsName(p),
			Location:     d.Place(),
			Coordinates:  d.Coordinates,
			Reliability:  d.Reliability.Float(),
			Modes:        d.Modes.Join(", "),
			ShippingCost: p.Logistics.ShippingCostUSD.Float(),
		}
		if days := p.Logistics.Route.TotalDurationDays.Float(); days > 0 {
			m.TransitTime = formatDays(days) + " days"
		}
		hub = &m
	}
	if manufacturer != nil {
		out.Markers = append(out.Markers, *manufacturer)
	}
	if hub != nil {
		out.Markers = append(out.Markers, *hub)
	}

	customer := Marker{
		ID:          "customer",
		Role:        MarkerCustomer,
		Name:        "Customer",
		Location:    "Delivery Destination",
		Coordinates: CustomerDestination,
	}
	out.Markers = append(out.Markers, customer)

	for i := range out.Markers {
		out.Markers[i].RoleLabel = roleLabels[out.Markers[i].Role]
	}

	if manufacturer != nil {
		for _, s := range suppliers {
			out.Routes = append(out.Routes, newRoute(RouteSupply, "Parts", s, *manufacturer))
		}
		if hub != nil {
			out.Routes = append(out.Routes, newRoute(RouteAssembly, "Assembled", *manufacturer, *hub))
		}
	}
	if hub != nil {
		out.Routes = append(out.Routes, newRoute(RouteDelivery, "Delivery", *hub, customer))
	}

	out.Stats.Markers = len(out.Markers)
	out.Stats.Routes = len(out.Routes)
	return out
}

func newRoute(kind, label string, from, to Marker) Route {
	return Route{
		Kind:  kind,
		Label: label,
		From:  from.ID,
		To:    to.ID,
		Start: from.Coordinates,
		End:   to.Coordinates,
	}
}
