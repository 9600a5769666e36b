package replay

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oneclickai/opsdeck/internal/stream"
)

// ErrEmptyRecording indicates a recording without any payload.
var ErrEmptyRecording = errors.New("recording has no payloads")

// maxLine bounds one recorded line; plan payloads can be large.
const maxLine = 4 << 20

// Recording is an ordered list of event payloads to serve.
type Recording struct {
	Payloads []string
}

// LoadRecording reads a recording. Both captured SSE bodies ("data: " lines
// separated by blank lines) and JSON Lines files are accepted. Payloads are
// kept verbatim, malformed ones included.
func LoadRecording(r io.Reader) (*Recording, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	var rec Recording
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		switch {
		case strings.HasPrefix(line, stream.DataPrefix):
			rec.Payloads = append(rec.Payloads, line[len(stream.DataPrefix):])
		case strings.HasPrefix(strings.TrimSpace(line), "{"):
			rec.Payloads = append(rec.Payloads, strings.TrimSpace(line))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading recording: %w", err)
	}
	if len(rec.Payloads) == 0 {
		return nil, ErrEmptyRecording
	}
	return &rec, nil
}

// LoadRecordingFile reads a recording from disk.
func LoadRecordingFile(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening recording: %w", err)
	}
	defer f.Close()
	return LoadRecording(f)
}

// Body renders the recording as an SSE body.
func (r *Recording) Body() []byte {
	var buf bytes.Buffer
	for _, p := range r.Payloads {
		buf.WriteString(stream.DataPrefix)
		buf.WriteString(p)
		buf.WriteString("\n\n")
	}
	return buf.Bytes()
}
