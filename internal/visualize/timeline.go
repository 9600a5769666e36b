package visualize

import (
	"fmt"
	"math"

	"github.com/oneclickai/opsdeck/internal/domain/plan"
)

// MinPhaseWidth is the smallest bar width, in percent, of a phase with a
// non-zero day span.
const MinPhaseWidth = 8.0

// Phase is one step of the coordination timeline.
type Phase struct {
	Key      string  `json:"key"`
	Label    string  `json:"label"`
	Agent    string  `json:"agent"`
	Details  string  `json:"details"`
	Duration string  `json:"duration"`
	Status   string  `json:"status"`
	DayBased bool    `json:"day_based"`
	Days     float64 `json:"days,omitempty"`
	StartDay float64 `json:"start_day,omitempty"`
	EndDay   float64 `json:"end_day,omitempty"`
	DayRange string  `json:"day_range,omitempty"`
	// Width is the share of the duration bar in percent; zero for phases
	// without a day span.
	Width float64 `json:"width"`
}

// Tick is one label of the day axis.
type Tick struct {
	Day   int    `json:"day"`
	Label string `json:"label"`
}

// CostItem is one entry of the cost summary.
type CostItem struct {
	Label string  `json:"label"`
	USD   float64 `json:"usd"`
}

// Timeline is the rendered coordination timeline.
type Timeline struct {
	Product   string     `json:"product,omitempty"`
	TotalDays float64    `json:"total_days"`
	Phases    []Phase    `json:"phases"`
	Ticks     []Tick     `json:"ticks,omitempty"`
	Costs     []CostItem `json:"costs,omitempty"`
}

// phaseStyle describes one fixed phase. stage indexes the timeline's day
// spans; -1 marks a reasoning step that renders with a fixed duration.
type phaseStyle struct {
	key      string
	label    string
	agent    string
	stage    int
	duration string
}

var phaseStyles = [8]phaseStyle{
	{"intent_analysis", "Intent Analysis", "Procurement Agent", -1, "~2s"},
	{"registry_discovery", "Registry & Discovery", "Procurement Agent", -1, "~1s"},
	{"supplier_quotes", "Supplier Coordination", "Supplier Agent", 0, ""},
	{"trust_verification", "Trust & Verification", "Procurement Agent", -1, "~1s"},
	{"manufacturer", "Manufacturer Planning", "Manufacturer Agent", 1, ""},
	{"logistics", "Logistics Routing", "Logistics Agent", 2, ""},
	{"retailer", "Retailer & Delivery", "Retailer Agent", 3, ""},
	{"compilation", "Plan Compilation", "Procurement Agent", -1, "~1s"},
}

// BuildTimeline lays out the eight coordination phases of p. report stands in
// for the plan's own coordination report when that one is empty.
func BuildTimeline(p *plan.Plan, report *plan.CoordinationReport) Timeline {
	if p == nil {
		return Timeline{}
	}
	cr := p.CoordinationReport
	if cr.IsZero() && report != nil {
		cr = *report
	}

	tl := p.Timeline
	stageDays := [4]float64{
		tl.PartsProcurementDays.Float(),
		tl.AssemblyDays.Float(),
		tl.ShippingDays.Float(),
		tl.DeliveryDays.Float(),
	}
	for i, d := range stageDays {
		if d < 0 {
			stageDays[i] = 0
		}
	}
	widths := phaseWidths(stageDays, tl.Total())

	components := len(p.Components)
	if components == 0 {
		components = p.Suppliers.ComponentCount.Int()
	}
	quotes := len(p.Suppliers.Quotes)
	if quotes == 0 {
		quotes = p.Suppliers.QuoteCount.Int()
	}
	suppliers := len(p.Suppliers.SelectedDetails)
	if suppliers == 0 {
		suppliers = len(p.Suppliers.Selected)
	}
	transit := p.Logistics.Route.TotalDurationDays.Float()
	if transit == 0 {
		transit = stageDays[2]
	}

	registry := "Queried the agent registry and shortlisted top candidates."
	if n := cr.PartnersEvaluated(); n > 0 {
		registry = fmt.Sprintf("Queried the agent registry. Scored %d partners and shortlisted top candidates.", n)
	}

	details := [8]string{
		fmt.Sprintf("Analyzed user intent. Decomposed into %d component groups.", components),
		registry,
		fmt.Sprintf("%d quotes generated across %d suppliers. Parts sourced and verified.", quotes, suppliers),
		"Partner certifications verified against compliance policy.",
		fmt.Sprintf("Selected %s. Assembly plan created with quality checks.", orDash(manufacturerName(p))),
		fmt.Sprintf("Selected %s. Route planned. Duration: %s days.", orDash(logisticsName(p)), formatDays(transit)),
		"Delivery plan finalized. Packaging, tracking, warranty and support configured.",
		"Final execution plan compiled and delivered to the user.",
	}

	out := Timeline{Product: p.Product, TotalDays: tl.TotalDays.Float(), Phases: make([]Phase, 0, len(phaseStyles))}
	if out.TotalDays == 0 {
		out.TotalDays = tl.StageSum()
	}

	offset := 0.0
	for i, style := range phaseStyles {
		ph := Phase{
			Key:     style.key,
			Label:   style.label,
			Agent:   style.agent,
			Details: details[i],
			Status:  "complete",
		}
		if stage := style.stage; stage >= 0 {
			days := stageDays[stage]
			ph.DayBased = true
			ph.Days = days
			ph.Duration = formatDays(days) + " days"
			ph.Width = widths[stage]
			if days > 0 {
				ph.StartDay = offset + 1
				ph.EndDay = offset + days
				ph.DayRange = fmt.Sprintf("Day %s → %s", formatDays(ph.StartDay), formatDays(ph.EndDay))
				offset += days
			}
		} else {
			ph.Duration = style.duration
		}
		out.Phases = append(out.Phases, ph)
	}

	if out.TotalDays > 0 {
		out.Ticks = dayTicks(out.TotalDays)
	}
	if cs := p.CostSummary; cs != (plan.CostSummary{}) {
		out.Costs = []CostItem{
			{Label: "Parts", USD: cs.PartsCostUSD.Float()},
			{Label: "Shipping", USD: cs.ShippingCostUSD.Float()},
			{Label: "Total", USD: cs.TotalCostUSD.Float()},
			{Label: "Retail", USD: cs.RetailPriceUSD.Float()},
		}
	}
	return out
}

// phaseWidths converts stage spans into bar widths in percent. Each non-zero
// stage gets days/total of the bar, raised to MinPhaseWidth; when the floors
// push the sum past 100 the unfloored stages are scaled down to make room.
func phaseWidths(days [4]float64, total float64) [4]float64 {
	var widths [4]float64
	if total <= 0 {
		return widths
	}

	var raw [4]float64
	fixed := [4]bool{}
	for i, d := range days {
		if d <= 0 {
			fixed[i] = true
			continue
		}
		raw[i] = d / total * 100
		widths[i] = math.Max(raw[i], MinPhaseWidth)
	}
	if sum(widths) <= 100 {
		return widths
	}

	for i := range days {
		if days[i] > 0 && raw[i] <= MinPhaseWidth {
			fixed[i] = true
		}
	}
	for {
		fixedSum, freeRaw := 0.0, 0.0
		for i := range days {
			if fixed[i] {
				fixedSum += widths[i]
			} else {
				freeRaw += raw[i]
			}
		}
		if freeRaw == 0 {
			return widths
		}
		scale := (100 - fixedSum) / freeRaw
		changed := false
		for i := range days {
			if fixed[i] {
				continue
			}
			w := raw[i] * scale
			if w < MinPhaseWidth {
				widths[i] = MinPhaseWidth
				fixed[i] = true
				changed = true
				continue
			}
			widths[i] = w
		}
		if !changed {
			return widths
		}
	}
}

func dayTicks(total float64) []Tick {
	days := []int{
		1,
		int(math.Round(total / 4)),
		int(math.Round(total / 2)),
		int(math.Round(total * 3 / 4)),
		int(math.Round(total)),
	}
	ticks := make([]Tick, len(days))
	for i, d := range days {
		ticks[i] = Tick{Day: d, Label: fmt.Sprintf("Day %d", d)}
	}
	return ticks
}

func sum(v [4]float64) float64 {
	return v[0] + v[1] + v[2] + v[3]
}

func manufacturerName(p *plan.Plan) string {
	if p.Manufacturer.SelectedDetails.Name != "" {
		return p.Manufacturer.SelectedDetails.Name
	}
	return p.Manufacturer.Selected
}

func logisticsName(p *plan.Plan) string {
	if p.Logistics.SelectedDetails.Name != "" {
		return p.Logistics.SelectedDetails.Name
	}
	return p.Logistics.Selected
}

func orDash(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
