package telemetry

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// BodySample is one body's state at the end of a tick.
type BodySample struct {
	Tick            int     `csv:"tick"`
	BodyID          uint64  `csv:"body_id"`
	Kind            string  `csv:"kind"`
	State           string  `csv:"state"`
	X               float64 `csv:"x"`
	Y               float64 `csv:"y"`
	VX              float64 `csv:"vx"`
	VY              float64 `csv:"vy"`
	Speed           float64 `csv:"speed"`
	Rotation        float64 `csv:"rotation"`
	AngularVelocity float64 `csv:"angular_velocity"`
}

// TickSummary is the world-wide state at the end of a tick.
type TickSummary struct {
	Tick       int     `csv:"tick"`
	Elapsed    float64 `csv:"elapsed"`
	Bodies     int     `csv:"bodies"`
	Asteroids  int     `csv:"asteroids"`
	Particles  int     `csv:"particles"`
	Collisions int     `csv:"collisions"`
	Score      int     `csv:"score"`
}

// Writer appends records of type T to w as CSV. The header goes out with the
// first non-empty write only.
type Writer[T any] struct {
	w             io.Writer
	headerWritten bool
}

// NewWriter creates a CSV writer over w.
func NewWriter[T any](w io.Writer) *Writer[T] {
	return &Writer[T]{w: w}
}

// Write appends records.
func (cw *Writer[T]) Write(records ...T) error {
	if cw == nil || len(records) == 0 {
		return nil
	}

	if !cw.headerWritten {
		if err := gocsv.Marshal(records, cw.w); err != nil {
			return fmt.Errorf("writing csv: %w", err)
		}
		cw.headerWritten = true
		return nil
	}

	if err := gocsv.MarshalWithoutHeaders(records, cw.w); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}
