// Package chrometrace models Chrome's trace event format, the JSON
// schema consumed by about://tracing, Perfetto and compatible viewers.
package chrometrace

import (
	"encoding/json"
	"fmt"
	"io"
)

// CompleteEvent is the phase of an event that carries both its start
// timestamp and its duration in a single entry.
const CompleteEvent = "X"

// Trace is one event in a trace.
type Trace struct {
	Name            string         `json:"name"`
	Category        string         `json:"cat"`
	EventType       string         `json:"ph"`
	TimestampMicros int            `json:"ts"`
	DurationMicros  int            `json:"dur"`
	ProcessID       int            `json:"pid"`
	ThreadID        int            `json:"tid"`
	Args            map[string]any `json:"args"`
}

// Write serializes traces as a single JSON array. A nil slice still
// produces an empty array, which viewers accept as an empty trace.
func Write(w io.Writer, traces []Trace, pretty bool) error {
	if traces == nil {
		traces = []Trace{}
	}
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(traces); err != nil {
		return fmt.Errorf("encode trace: %w", err)
	}
	return nil
}
