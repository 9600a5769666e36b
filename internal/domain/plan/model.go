package plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrNotObject is returned when a plan or report document is not a JSON object.
var ErrNotObject = errors.New("document is not a JSON object")

var errBlankComponent = errors.New("blank component")

// Plan is the final execution-plan document produced by an orchestration run.
// Every section is a value so that a missing section decodes to its zero value;
// consumers never need to check for presence before reading a field.
type Plan struct {
	ProjectID          string             `json:"project_id,omitempty"`
	Product            string             `json:"product,omitempty"`
	Intent             string             `json:"intent,omitempty"`
	Status             string             `json:"status,omitempty"`
	Components         []Component        `json:"components,omitempty"`
	Timeline           Timeline           `json:"timeline"`
	Suppliers          Suppliers          `json:"suppliers"`
	Manufacturer       Manufacturer       `json:"manufacturer"`
	Logistics          Logistics          `json:"logistics"`
	Retailer           Retailer           `json:"retailer"`
	CostSummary        CostSummary        `json:"cost_summary"`
	CoordinationReport CoordinationReport `json:"coordination_report"`
}

// UnmarshalJSON decodes the plan section by section. A section or field of
// the wrong shape is left at its zero value instead of rejecting the plan.
func (p *Plan) UnmarshalJSON(data []byte) error {
	type fields Plan
	var f fields
	if !decodeLenient(data, reflect.ValueOf(&f).Elem()) {
		return ErrNotObject
	}
	*p = Plan(f)
	return nil
}

// Component is one part group identified from the intent.
type Component struct {
	Name              string `json:"name"`
	Category          string `json:"category,omitempty"`
	Specifications    string `json:"specifications,omitempty"`
	EstimatedQuantity Number `json:"estimated_quantity,omitempty"`
	Priority          string `json:"priority,omitempty"`
}

// UnmarshalJSON accepts a bare component name as well as a component record.
func (c *Component) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		name = strings.TrimSpace(name)
		if name == "" {
			return errBlankComponent
		}
		*c = Component{Name: name}
		return nil
	}
	type fields Component
	var f fields
	if !decodeLenient(data, reflect.ValueOf(&f).Elem()) {
		return ErrNotObject
	}
	*c = Component(f)
	return nil
}

// Timeline holds the day spans of the four pipeline stages.
type Timeline struct {
	PartsProcurementDays Number `json:"parts_procurement_days"`
	AssemblyDays         Number `json:"assembly_days"`
	ShippingDays         Number `json:"shipping_days"`
	DeliveryDays         Number `json:"delivery_days"`
	TotalDays            Number `json:"total_days"`
}

// StageSum returns the sum of the four stage spans.
func (t Timeline) StageSum() float64 {
	return float64(t.PartsProcurementDays + t.AssemblyDays + t.ShippingDays + t.DeliveryDays)
}

// Total returns total_days, falling back to the stage sum and finally to 1
// so it can always be used as a divisor.
func (t Timeline) Total() float64 {
	if t.TotalDays > 0 {
		return float64(t.TotalDays)
	}
	if sum := t.StageSum(); sum > 0 {
		return sum
	}
	return 1
}

// Partner describes a selected supplier, manufacturer or logistics provider.
type Partner struct {
	Name           string     `json:"name,omitempty"`
	Location       string     `json:"location,omitempty"`
	Hub            string     `json:"hub,omitempty"`
	Coordinates    Coordinate `json:"coordinates"`
	Reliability    Ratio      `json:"reliability,omitempty"`
	Specialization string     `json:"specialization,omitempty"`
	Certifications StringList `json:"certifications,omitempty"`
	LeadTimeDays   Number     `json:"lead_time_days,omitempty"`
	CostMultiplier Number     `json:"cost_multiplier,omitempty"`
	FacilitySize   string     `json:"facility_size,omitempty"`
	Modes          StringList `json:"modes,omitempty"`
}

// Place returns the hub when set, otherwise the location.
func (p Partner) Place() string {
	if p.Hub != "" {
		return p.Hub
	}
	return p.Location
}

// Suppliers is the supplier section of the plan.
type Suppliers struct {
	ComponentCount  Number           `json:"component_count"`
	QuoteCount      Number           `json:"quote_count,omitempty"`
	Selected        StringList       `json:"selected,omitempty"`
	SelectedDetails []Partner        `json:"selected_details,omitempty"`
	Quotes          []map[string]any `json:"quotes,omitempty"`
	TotalPartsCost  Number           `json:"total_parts_cost_usd,omitempty"`
}

// AssemblyPlan describes the manufacturer's build.
type AssemblyPlan struct {
	Steps                 []json.RawMessage `json:"steps,omitempty"`
	Facility              string            `json:"facility,omitempty"`
	TotalAssemblyTimeDays Number            `json:"total_assembly_time_days,omitempty"`
}

// Manufacturer is the manufacturer section of the plan.
type Manufacturer struct {
	Selected           string       `json:"selected,omitempty"`
	SelectedDetails    Partner      `json:"selected_details"`
	AssemblyPlan       AssemblyPlan `json:"assembly_plan"`
	CanAssemble        bool         `json:"can_assemble,omitempty"`
	SelectionRationale string       `json:"selection_rationale,omitempty"`
}

// Route is the chosen shipping route.
type Route struct {
	Segments          []json.RawMessage `json:"segments,omitempty"`
	Mode              string            `json:"mode,omitempty"`
	RiskLevel         string            `json:"risk_level,omitempty"`
	TotalDurationDays Number            `json:"total_duration_days,omitempty"`
}

// Logistics is the logistics section of the plan.
type Logistics struct {
	Selected           string  `json:"selected,omitempty"`
	SelectedDetails    Partner `json:"selected_details"`
	Route              Route   `json:"route"`
	Recommended        string  `json:"recommended,omitempty"`
	ShippingCostUSD    Number  `json:"shipping_cost_usd,omitempty"`
	SelectionRationale string  `json:"selection_rationale,omitempty"`
}

// Retailer is the retailer section of the plan.
type Retailer struct {
	Selected           string         `json:"selected,omitempty"`
	DeliveryPlan       map[string]any `json:"delivery_plan,omitempty"`
	CustomerExperience map[string]any `json:"customer_experience,omitempty"`
	RetailPriceUSD     Number         `json:"retail_price_usd,omitempty"`
}

// CostSummary totals the plan's costs.
type CostSummary struct {
	PartsCostUSD    Number `json:"parts_cost_usd"`
	ShippingCostUSD Number `json:"shipping_cost_usd"`
	TotalCostUSD    Number `json:"total_cost_usd"`
	RetailPriceUSD  Number `json:"retail_price_usd"`
}

// Message is one exchange between two participants of the run.
type Message struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Message  string `json:"message"`
	Protocol string `json:"protocol,omitempty"`
}

// CoordinationReport summarizes how the agents cooperated.
type CoordinationReport struct {
	AgentsInvolved         Number            `json:"agents_involved,omitempty"`
	DiscoveryPaths         []json.RawMessage `json:"discovery_paths,omitempty"`
	TrustVerification      json.RawMessage   `json:"trust_verification,omitempty"`
	PolicyEnforcement      json.RawMessage   `json:"policy_enforcement,omitempty"`
	MessageExchanges       []Message         `json:"message_exchanges,omitempty"`
	CommunicationFlow      []Message         `json:"communication_flow,omitempty"`
	SelectionCriteria      StringList        `json:"selection_criteria,omitempty"`
	TotalPartnersEvaluated map[string]Number `json:"total_partners_evaluated,omitempty"`
	PartnersShortlisted    map[string]Number `json:"partners_shortlisted,omitempty"`
}

// UnmarshalJSON decodes the report field by field, like Plan.
func (r *CoordinationReport) UnmarshalJSON(data []byte) error {
	type fields CoordinationReport
	var f fields
	if !decodeLenient(data, reflect.ValueOf(&f).Elem()) {
		return ErrNotObject
	}
	*r = CoordinationReport(f)
	return nil
}

// Messages returns message_exchanges, or communication_flow when the former is empty.
func (r CoordinationReport) Messages() []Message {
	if len(r.MessageExchanges) > 0 {
		return r.MessageExchanges
	}
	return r.CommunicationFlow
}

// IsZero reports whether the report carries no messages and no partner counts.
func (r CoordinationReport) IsZero() bool {
	return len(r.Messages()) == 0 && len(r.TotalPartnersEvaluated) == 0 && r.AgentsInvolved == 0
}

// PartnersEvaluated sums total_partners_evaluated.
func (r CoordinationReport) PartnersEvaluated() int {
	total := 0
	for _, n := range r.TotalPartnersEvaluated {
		total += n.Int()
	}
	return total
}

// Parse decodes a plan document.
func Parse(data []byte) (*Plan, error) {
	var p Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	return &p, nil
}

// ParseReport decodes a standalone coordination report.
func ParseReport(data []byte) (*CoordinationReport, error) {
	var r CoordinationReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse coordination report: %w", err)
	}
	return &r, nil
}
