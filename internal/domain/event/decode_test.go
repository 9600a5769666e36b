package event_test

import (
	"testing"
	"time"

	"github.com/oneclickai/opsdeck/internal/domain/event"
	"github.com/stretchr/testify/require"
)

var arrival = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func TestDecode_Log(t *testing.T) {
	rec, err := event.Decode([]byte(`{"type":"log","timestamp":"2026-02-28T10:11:12.345678Z","agent_id":"supplier_alpha","agent_name":"Supplier Alpha","event":"quotes_generated","details":"3 quotes","phase":"procurement","data":{"n":3}}`), arrival)
	require.NoError(t, err)
	require.Equal(t, event.TypeLog, rec.Type)
	require.NotNil(t, rec.Log)
	require.Equal(t, "supplier_alpha", rec.Log.AgentID)
	require.Equal(t, "quotes_generated", rec.Log.Event)
	require.Equal(t, "procurement", rec.Log.Phase)
	require.JSONEq(t, `{"n":3}`, string(rec.Log.Data))
	require.Equal(t, 2026, rec.Log.Timestamp.Year())
	require.Equal(t, time.February, rec.Log.Timestamp.Month())
}

func TestDecode_LogTimestampFallback(t *testing.T) {
	rec, err := event.Decode([]byte(`{"type":"log","agent_id":"a","event":"x"}`), arrival)
	require.NoError(t, err)
	require.Equal(t, arrival, rec.Log.Timestamp)

	rec, err = event.Decode([]byte(`{"type":"log","timestamp":"yesterday","agent_id":"a"}`), arrival)
	require.NoError(t, err)
	require.Equal(t, arrival, rec.Log.Timestamp)
}

func TestDecode_PlanAndReport(t *testing.T) {
	rec, err := event.Decode([]byte(`{"type":"plan","data":{"timeline":{"total_days":10}}}`), arrival)
	require.NoError(t, err)
	require.Equal(t, event.TypePlan, rec.Type)
	require.Equal(t, 10, rec.Plan.Timeline.TotalDays.Int())

	rec, err = event.Decode([]byte(`{"type":"report","data":{"message_exchanges":[{"from":"User","to":"System","message":"go"}]}}`), arrival)
	require.NoError(t, err)
	require.Equal(t, event.TypeReport, rec.Type)
	require.Len(t, rec.Report.Messages(), 1)
}

func TestDecode_Complete(t *testing.T) {
	rec, err := event.Decode([]byte(`{"type":"complete"}`), arrival)
	require.NoError(t, err)
	require.Equal(t, event.TypeComplete, rec.Type)
}

func TestDecode_Rejects(t *testing.T) {
	tests := map[string]string{
		"truncated":       `{"type":"log","agent_id":`,
		"not object":      `["log"]`,
		"plan no data":    `{"type":"plan"}`,
		"plan bad data":   `{"type":"plan","data":"soon"}`,
		"wrong log field": `{"type":"log","agent_id":7}`,
	}
	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := event.Decode([]byte(payload), arrival)
			require.ErrorIs(t, err, event.ErrMalformed)
		})
	}

	_, err := event.Decode([]byte(`{"type":"heartbeat"}`), arrival)
	require.ErrorIs(t, err, event.ErrUnknownType)
}
