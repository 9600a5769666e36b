package visualize_test

import (
	"strings"
	"testing"

	"github.com/oneclickai/opsdeck/internal/domain/plan"
	"github.com/stretchr/testify/require"
)

var longMessage = strings.Repeat("route ", 20)

const bicyclePlan = `{
	"product": "Bicycle",
	"components": [{"name": "frame"}, {"name": "wheels"}, {"name": "brakes"}],
	"timeline": {"parts_procurement_days": 5, "assembly_days": 3, "shipping_days": 4, "delivery_days": 2, "total_days": 14},
	"suppliers": {
		"quotes": [{}, {}, {}, {}],
		"selected_details": [
			{"name": "Shenzhen Precision Parts Co", "location": "Shenzhen, China", "coordinates": [114.06, 22.54], "reliability": "95%", "lead_time_days": 5},
			{"name": "Taipei Cycle Works", "location": "Taipei, Taiwan", "coordinates": {"x": 25.03, "y": 121.56}},
			{"name": "Nowhere Supplies", "location": "Unknown"}
		]
	},
	"manufacturer": {
		"selected": "Munich Assembly GmbH Werk 2",
		"selected_details": {"name": "Munich Assembly GmbH Werk 2", "location": "Munich, Germany", "coordinates": [11.58, 48.14], "reliability": "92%"},
		"assembly_plan": {"total_assembly_time_days": 3}
	},
	"logistics": {
		"selected": "EuroFreight",
		"selected_details": {"name": "EuroFreight Logistics", "hub": "Rotterdam", "location": "Netherlands", "coordinates": [4.48, 51.92], "reliability": "88%", "modes": ["road", "rail"]},
		"route": {"total_duration_days": 4},
		"shipping_cost_usd": "120"
	},
	"cost_summary": {"parts_cost_usd": 400, "shipping_cost_usd": 120, "total_cost_usd": 520, "retail_price_usd": 899},
	"coordination_report": {
		"total_partners_evaluated": {"suppliers": 6, "manufacturers": 3},
		"message_exchanges": [
			{"from": "user", "to": "Procurement Agent", "message": "Buy parts for a bicycle"},
			{"from": "procurement", "to": "supplier", "message": "Request quotes", "protocol": "A2A"},
			{"from": "Supplier Agent", "to": "Mystery Bot", "message": "lost"},
			{"from": "SYSTEM", "to": " Logistics ", "message": "LONG"}
		]
	}
}`

func loadPlan(t *testing.T) *plan.Plan {
	t.Helper()
	p, err := plan.Parse([]byte(strings.Replace(bicyclePlan, "LONG", longMessage, 1)))
	require.NoError(t, err)
	return p
}
