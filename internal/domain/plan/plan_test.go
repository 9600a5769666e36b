package plan_test

import (
	"encoding/json"
	"testing"

	"github.com/oneclickai/opsdeck/internal/domain/plan"
	"github.com/stretchr/testify/require"
)

func TestParse_MissingSectionsDecodeToZero(t *testing.T) {
	p, err := plan.Parse([]byte(`{"timeline":{"total_days":10}}`))
	require.NoError(t, err)
	require.Equal(t, 10.0, p.Timeline.TotalDays.Float())
	require.Empty(t, p.Suppliers.SelectedDetails)
	require.Empty(t, p.Manufacturer.Selected)
	require.False(t, p.Manufacturer.SelectedDetails.Coordinates.Valid)
	require.True(t, p.CoordinationReport.IsZero())
}

func TestParse_RejectsNonObject(t *testing.T) {
	_, err := plan.Parse([]byte(`[1,2]`))
	require.ErrorIs(t, err, plan.ErrNotObject)
}

func TestParse_MismatchedFieldsBlankOnlyThemselves(t *testing.T) {
	p, err := plan.Parse([]byte(`{
		"components": ["frame", {"name": "wheels", "specifications": {"size": "29in"}, "estimated_quantity": "2"}, 7, ""],
		"timeline": {"total_days": 12},
		"suppliers": {
			"quotes": "pending",
			"selected": "Shenzhen Precision Parts Co",
			"selected_details": ["Shenzhen Precision Parts Co", {"name": "Taipei Cycle Works", "reliability": "90%"}]
		},
		"manufacturer": {"selected": "Munich Assembly", "selected_details": [], "can_assemble": "true", "assembly_plan": {"steps": "weld"}},
		"logistics": {"selected": 42, "route": {"mode": ["air"], "total_duration_days": 4}},
		"retailer": {"delivery_plan": "standard", "retail_price_usd": 899},
		"coordination_report": {"message_exchanges": [{"from": "user", "to": "Procurement Agent", "message": "hi"}, "noise"], "trust_verification": {"ok": true}}
	}`))
	require.NoError(t, err)

	require.Len(t, p.Components, 2)
	require.Equal(t, plan.Component{Name: "frame"}, p.Components[0])
	require.Equal(t, "wheels", p.Components[1].Name)
	require.Empty(t, p.Components[1].Specifications)
	require.Equal(t, 2, p.Components[1].EstimatedQuantity.Int())

	require.Equal(t, 12, p.Timeline.TotalDays.Int())

	require.Nil(t, p.Suppliers.Quotes)
	require.Equal(t, plan.StringList{"Shenzhen Precision Parts Co"}, p.Suppliers.Selected)
	require.Len(t, p.Suppliers.SelectedDetails, 1)
	require.Equal(t, "Taipei Cycle Works", p.Suppliers.SelectedDetails[0].Name)
	require.InDelta(t, 0.9, p.Suppliers.SelectedDetails[0].Reliability.Float(), 1e-9)

	require.Equal(t, "Munich Assembly", p.Manufacturer.Selected)
	require.Empty(t, p.Manufacturer.SelectedDetails.Name)
	require.True(t, p.Manufacturer.CanAssemble)
	require.Empty(t, p.Manufacturer.AssemblyPlan.Steps)

	require.Equal(t, "42", p.Logistics.Selected)
	require.Empty(t, p.Logistics.Route.Mode)
	require.Equal(t, 4, p.Logistics.Route.TotalDurationDays.Int())

	require.Nil(t, p.Retailer.DeliveryPlan)
	require.Equal(t, 899, p.Retailer.RetailPriceUSD.Int())

	require.Len(t, p.CoordinationReport.Messages(), 1)
	require.JSONEq(t, `{"ok": true}`, string(p.CoordinationReport.TrustVerification))
}

func TestParseReport_Tolerant(t *testing.T) {
	r, err := plan.ParseReport([]byte(`{"agents_involved": "5", "selection_criteria": "cost", "total_partners_evaluated": ["x"]}`))
	require.NoError(t, err)
	require.Equal(t, 5, r.AgentsInvolved.Int())
	require.Equal(t, plan.StringList{"cost"}, r.SelectionCriteria)
	require.Nil(t, r.TotalPartnersEvaluated)

	_, err = plan.ParseReport([]byte(`"done"`))
	require.ErrorIs(t, err, plan.ErrNotObject)
}

func TestRatio_Percentages(t *testing.T) {
	var v struct {
		A plan.Ratio `json:"a"`
		B plan.Ratio `json:"b"`
		C plan.Ratio `json:"c"`
		D plan.Ratio `json:"d"`
		E plan.Ratio `json:"e"`
		F plan.Ratio `json:"f"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"95%","b":0.8,"c":"0.7","d":92,"e":"high","f":" 88 % "}`), &v))
	require.InDelta(t, 0.95, v.A.Float(), 1e-9)
	require.InDelta(t, 0.8, v.B.Float(), 1e-9)
	require.InDelta(t, 0.7, v.C.Float(), 1e-9)
	require.InDelta(t, 0.92, v.D.Float(), 1e-9)
	require.Zero(t, v.E.Float())
	require.InDelta(t, 0.88, v.F.Float(), 1e-9)
}

func TestNumber_Lenient(t *testing.T) {
	var v struct {
		A plan.Number `json:"a"`
		B plan.Number `json:"b"`
		C plan.Number `json:"c"`
		D plan.Number `json:"d"`
		E plan.Number `json:"e"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":12.5,"b":"7","c":null,"d":"soon","e":{"x":1}}`), &v))
	require.Equal(t, 12.5, v.A.Float())
	require.Equal(t, 7.0, v.B.Float())
	require.Zero(t, v.C.Float())
	require.Zero(t, v.D.Float())
	require.Zero(t, v.E.Float())
	require.Equal(t, 13, v.A.Int())
}

func TestStringList_ArrayOrScalar(t *testing.T) {
	var v struct {
		A plan.StringList `json:"a"`
		B plan.StringList `json:"b"`
		C plan.StringList `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":["x","y"],"b":"solo","c":null}`), &v))
	require.Equal(t, plan.StringList{"x", "y"}, v.A)
	require.Equal(t, plan.StringList{"solo"}, v.B)
	require.Nil(t, v.C)
	require.Equal(t, "x, y", v.A.Join(", "))
}

func TestCoordinate_Forms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
		lon   float64
		lat   float64
	}{
		{name: "pair", input: `[121.47, 31.23]`, valid: true, lon: 121.47, lat: 31.23},
		{name: "named xy", input: `{"x": 31.23, "y": 121.47}`, valid: true, lon: 121.47, lat: 31.23},
		{name: "named lat lon", input: `{"lat": 48.85, "lon": 2.35}`, valid: true, lon: 2.35, lat: 48.85},
		{name: "string numbers", input: `["2.35", "48.85"]`, valid: true, lon: 2.35, lat: 48.85},
		{name: "short pair", input: `[1]`},
		{name: "out of range", input: `[200, 10]`},
		{name: "null", input: `null`},
		{name: "text", input: `"Shanghai"`},
		{name: "missing field", input: `{"x": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c plan.Coordinate
			require.NoError(t, json.Unmarshal([]byte(tt.input), &c))
			require.Equal(t, tt.valid, c.Valid)
			if tt.valid {
				require.InDelta(t, tt.lon, c.Lon, 1e-9)
				require.InDelta(t, tt.lat, c.Lat, 1e-9)
			}
		})
	}
}

func TestCoordinate_MarshalPair(t *testing.T) {
	out, err := json.Marshal(plan.NewCoordinate(2.35, 48.85))
	require.NoError(t, err)
	require.JSONEq(t, `[2.35, 48.85]`, string(out))

	out, err = json.Marshal(plan.Coordinate{})
	require.NoError(t, err)
	require.Equal(t, "null", string(out))
}

func TestTimeline_Total(t *testing.T) {
	require.Equal(t, 10.0, plan.Timeline{TotalDays: 10, AssemblyDays: 3}.Total())
	require.Equal(t, 5.0, plan.Timeline{AssemblyDays: 3, ShippingDays: 2}.Total())
	require.Equal(t, 1.0, plan.Timeline{}.Total())
}

func TestCoordinationReport_Messages(t *testing.T) {
	r, err := plan.ParseReport([]byte(`{
		"communication_flow": [{"from":"User","to":"Procurement Agent","message":"hi"}],
		"total_partners_evaluated": {"suppliers": 4, "manufacturers": "2"}
	}`))
	require.NoError(t, err)
	require.Len(t, r.Messages(), 1)
	require.Equal(t, 6, r.PartnersEvaluated())
	require.False(t, r.IsZero())

	r.MessageExchanges = []plan.Message{{From: "a", To: "b"}, {From: "b", To: "a"}}
	require.Len(t, r.Messages(), 2)
}

func TestPartner_Place(t *testing.T) {
	require.Equal(t, "Rotterdam", plan.Partner{Hub: "Rotterdam", Location: "NL"}.Place())
	require.Equal(t, "NL", plan.Partner{Location: "NL"}.Place())
}
