package stream

import (
	"bytes"
	"io"
	"log/slog"
	"time"

	"github.com/oneclickai/opsdeck/internal/domain/event"
)

// DataPrefix marks a payload line inside a frame.
const DataPrefix = "data: "

const previewLimit = 120

// Decoder turns arbitrarily split chunks of an event stream into records.
// Frames end at a blank line; each "data: " line of a frame is one JSON
// payload. Bytes are buffered undecoded so a chunk boundary inside a
// multi-byte character or a delimiter loses nothing.
//
// Records whose payload carries no usable timestamp are stamped with the
// arrival time of the chunk holding the first byte of their frame, so a
// frame is dated when it reached the client rather than when it was decoded.
//
// A Decoder is not safe for concurrent use; each stream owns one.
type Decoder struct {
	buf   []byte
	scan  int       // bytes of buf already scanned for line breaks
	since time.Time // arrival of the first pending byte
	now   func() time.Time

	logger  *slog.Logger
	dropped int
}

// NewDecoder creates a decoder. A nil logger discards drop diagnostics.
func NewDecoder(logger *slog.Logger) *Decoder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Decoder{now: time.Now, logger: logger}
}

// Feed appends chunk to the pending buffer and returns the records of every
// frame it completes, in order.
func (d *Decoder) Feed(chunk []byte) []event.Record {
	now := d.now()
	if len(d.buf) == 0 {
		d.since = now
	}
	d.buf = append(d.buf, chunk...)

	var out []event.Record
	frameStart := 0
	pos := d.scan
	for {
		i := bytes.IndexByte(d.buf[pos:], '\n')
		if i < 0 {
			break
		}
		line := bytes.TrimSuffix(d.buf[pos:pos+i], []byte{'\r'})
		pos += i + 1
		if len(line) == 0 {
			out = d.decodeFrame(d.buf[frameStart:pos], d.since, out)
			frameStart = pos
			d.since = now
		}
	}

	rest := len(d.buf) - frameStart
	copy(d.buf, d.buf[frameStart:])
	d.buf = d.buf[:rest]
	d.scan = pos - frameStart
	return out
}

// Flush decodes whatever remains in the buffer as a final frame. It is called
// once the stream has ended; an unterminated last frame is still delivered.
func (d *Decoder) Flush() []event.Record {
	if len(d.buf) == 0 {
		return nil
	}
	out := d.decodeFrame(d.buf, d.since, nil)
	d.buf = d.buf[:0]
	d.scan = 0
	return out
}

// Pending returns the number of buffered bytes not yet resolved into a frame.
func (d *Decoder) Pending() int { return len(d.buf) }

// Dropped returns how many payloads were discarded as malformed or unknown.
func (d *Decoder) Dropped() int { return d.dropped }

func (d *Decoder) decodeFrame(frame []byte, arrived time.Time, out []event.Record) []event.Record {
	for len(frame) > 0 {
		var line []byte
		if i := bytes.IndexByte(frame, '\n'); i >= 0 {
			line, frame = frame[:i], frame[i+1:]
		} else {
			line, frame = frame, nil
		}
		line = bytes.TrimSuffix(line, []byte{'\r'})
		payload, ok := bytes.CutPrefix(line, []byte(DataPrefix))
		if !ok {
			continue
		}
		rec, err := event.Decode(payload, arrived)
		if err != nil {
			d.dropped++
			d.logger.Debug("dropping stream payload", "error", err, "payload", preview(payload))
			continue
		}
		out = append(out, rec)
	}
	return out
}

func preview(b []byte) string {
	if len(b) <= previewLimit {
		return string(b)
	}
	return string(b[:previewLimit]) + "..."
}
