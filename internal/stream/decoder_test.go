package stream

import (
	"strings"
	"testing"
	"time"

	"github.com/oneclickai/opsdeck/internal/domain/event"
	"github.com/stretchr/testify/require"
)

const sampleStream = "data: {\"type\":\"log\",\"timestamp\":\"2026-02-28T10:00:00Z\",\"agent_id\":\"supplier_alpha\",\"agent_name\":\"Supplier Alpha\",\"event\":\"discovering_parts\",\"details\":\"Münster → 東京 🚲\"}\n\n" +
	"data: {\"type\":\"log\",\"timestamp\":\"2026-02-28T10:00:01Z\",\"agent_id\":\"supplier_alpha\",\"agent_name\":\"Supplier Alpha\",\"event\":\"quotes_generated\",\"details\":\"3 quotes\"}\n\n" +
	"data: {\"type\":\"plan\",\"data\":{\"timeline\":{\"total_days\":10},\"manufacturer\":{\"selected\":\"Ölwerk GmbH\"}}}\n\n" +
	"data: {\"type\":\"complete\"}\n\n"

func decodeChunks(chunks ...string) []event.Record {
	d := NewDecoder(nil)
	var out []event.Record
	for _, c := range chunks {
		out = append(out, d.Feed([]byte(c))...)
	}
	return append(out, d.Flush()...)
}

func TestDecoder_SingleChunk(t *testing.T) {
	recs := decodeChunks(sampleStream)
	require.Len(t, recs, 4)
	require.Equal(t, event.TypeLog, recs[0].Type)
	require.Equal(t, "Münster → 東京 🚲", recs[0].Log.Details)
	require.Equal(t, "quotes_generated", recs[1].Log.Event)
	require.Equal(t, event.TypePlan, recs[2].Type)
	require.Equal(t, "Ölwerk GmbH", recs[2].Plan.Manufacturer.Selected)
	require.Equal(t, event.TypeComplete, recs[3].Type)
}

func TestDecoder_EverySplitPointMatchesSingleChunk(t *testing.T) {
	want := decodeChunks(sampleStream)
	for i := 1; i < len(sampleStream); i++ {
		got := decodeChunks(sampleStream[:i], sampleStream[i:])
		require.Equal(t, want, got, "split at byte %d", i)
	}
}

func TestDecoder_ByteAtATime(t *testing.T) {
	want := decodeChunks(sampleStream)
	chunks := make([]string, 0, len(sampleStream))
	for i := 0; i < len(sampleStream); i++ {
		chunks = append(chunks, sampleStream[i:i+1])
	}
	require.Equal(t, want, decodeChunks(chunks...))
}

func TestDecoder_ThreeWaySplits(t *testing.T) {
	want := decodeChunks(sampleStream)
	for i := 1; i < len(sampleStream); i += 7 {
		for j := i + 1; j < len(sampleStream); j += 11 {
			got := decodeChunks(sampleStream[:i], sampleStream[i:j], sampleStream[j:])
			require.Equal(t, want, got, "split at %d and %d", i, j)
		}
	}
}

func TestDecoder_PartialFrameRetained(t *testing.T) {
	d := NewDecoder(nil)
	require.Empty(t, d.Feed([]byte(`data: {"type":"comp`)))
	require.Equal(t, len(`data: {"type":"comp`), d.Pending())
	require.Empty(t, d.Feed([]byte("lete\"}\n")))
	recs := d.Feed([]byte("\n"))
	require.Len(t, recs, 1)
	require.Equal(t, event.TypeComplete, recs[0].Type)
	require.Zero(t, d.Pending())
}

func TestDecoder_MalformedPayloadSkipped(t *testing.T) {
	in := "data: {\"type\":\"log\",\"agent_id\":\"a\",\"event\":\"x\"}\n\n" +
		"data: {\"type\":\"log\",\"agent_id\":\n\n" +
		"data: not json at all\n\n" +
		"data: {\"type\":\"heartbeat\"}\n\n" +
		"data: {\"type\":\"log\",\"agent_id\":\"b\",\"event\":\"y\"}\n\n" +
		"data: {\"type\":\"complete\"}\n\n"
	d := NewDecoder(nil)
	recs := d.Feed([]byte(in))
	require.Len(t, recs, 3)
	require.Equal(t, "a", recs[0].Log.AgentID)
	require.Equal(t, "b", recs[1].Log.AgentID)
	require.Equal(t, event.TypeComplete, recs[2].Type)
	require.Equal(t, 3, d.Dropped())
}

func TestDecoder_MultipleDataLinesAndNoise(t *testing.T) {
	in := ": keepalive\n" +
		"event: progress\n" +
		"data: {\"type\":\"log\",\"agent_id\":\"a\"}\n" +
		"data: {\"type\":\"log\",\"agent_id\":\"b\"}\n" +
		"\n" +
		"data:{\"type\":\"complete\"}\n\n"
	recs := decodeChunks(in)
	require.Len(t, recs, 2)
	require.Equal(t, "a", recs[0].Log.AgentID)
	require.Equal(t, "b", recs[1].Log.AgentID)
}

func TestDecoder_CRLFDelimiters(t *testing.T) {
	in := strings.ReplaceAll(sampleStream, "\n", "\r\n")
	want := decodeChunks(sampleStream)
	for i := 1; i < len(in); i += 3 {
		require.Equal(t, want, decodeChunks(in[:i], in[i:]), "split at byte %d", i)
	}
}

func TestDecoder_FlushUnterminatedFrame(t *testing.T) {
	d := NewDecoder(nil)
	require.Empty(t, d.Feed([]byte(`data: {"type":"complete"}`)))
	recs := d.Flush()
	require.Len(t, recs, 1)
	require.Empty(t, d.Flush())
}

func TestDecoder_UntimedRecordsStampedAtArrival(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	calls := 0
	d := NewDecoder(nil)
	d.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Second)
	}
	untimed := func(tag string) string {
		return `data: {"type":"log","agent_id":"a","event":"` + tag + `"}`
	}

	// The first frame starts in chunk 1 and ends in chunk 2, which also
	// carries a whole second frame and the start of a third.
	require.Empty(t, d.Feed([]byte(untimed("first")+"\n")))
	recs := d.Feed([]byte("\n" + untimed("second") + "\n\n" + untimed("third")))
	require.Len(t, recs, 2)
	require.Equal(t, base.Add(1*time.Second), recs[0].Log.Timestamp)
	require.Equal(t, base.Add(2*time.Second), recs[1].Log.Timestamp)

	// Decoding later does not move the stamp of a frame that already arrived.
	recs = d.Flush()
	require.Len(t, recs, 1)
	require.Equal(t, "third", recs[0].Log.Event)
	require.Equal(t, base.Add(2*time.Second), recs[0].Log.Timestamp)
	require.Equal(t, 2, calls)
}

func TestDecoder_PlanWithMismatchedSectionKept(t *testing.T) {
	stream := `data: {"type":"plan","data":{"components":["frame","wheels"],"suppliers":{"quotes":"pending"},"manufacturer":{"selected":"Munich Assembly","selected_details":{"reliability":"92%"}},"timeline":{"total_days":10}}}` + "\n\n"
	d := NewDecoder(nil)
	recs := append(d.Feed([]byte(stream)), d.Flush()...)
	require.Zero(t, d.Dropped())
	require.Len(t, recs, 1)
	p := recs[0].Plan
	require.NotNil(t, p)
	require.Len(t, p.Components, 2)
	require.Nil(t, p.Suppliers.Quotes)
	require.Equal(t, "Munich Assembly", p.Manufacturer.Selected)
	require.InDelta(t, 0.92, p.Manufacturer.SelectedDetails.Reliability.Float(), 1e-9)
	require.Equal(t, 10, p.Timeline.TotalDays.Int())
}
