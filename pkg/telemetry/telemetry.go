// Package telemetry collects the directional debug vectors bodies emit while
// the debug flag is on, and exports per-tick body samples as CSV.
package telemetry

import (
	"sort"

	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// Tags for the vectors bodies record.
const (
	TagVelocity     = "velocity"
	TagAcceleration = "acceleration"
	TagDirection    = "direction"
)

// DebugVector is an arrow to draw over a body.
type DebugVector struct {
	Position  physics.Vector2D
	Direction physics.Vector2D
	Tag       string
	Magnitude float64
	Thickness float64
	// Priority orders drawing, lowest first.
	Priority int
}

// End returns the tip of the arrow.
func (v DebugVector) End() physics.Vector2D {
	return v.Position.Add(v.Direction.WithLength(v.Magnitude))
}

// Recorder receives debug vectors.
type Recorder interface {
	Record(v DebugVector)
}

// Sink is a single-frame queue of debug vectors. Bodies record during the
// tick; the renderer drains once per draw.
type Sink struct {
	vectors []DebugVector
}

// NewSink creates an empty sink.
func NewSink() *Sink {
	return &Sink{}
}

// Record queues v. Vectors without a direction are dropped.
func (s *Sink) Record(v DebugVector) {
	if v.Direction.IsEmpty() {
		return
	}
	s.vectors = append(s.vectors, v)
}

// Drain returns the queued vectors in priority order and clears the sink.
func (s *Sink) Drain() []DebugVector {
	out := s.vectors
	s.vectors = nil
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}

// Len returns the number of queued vectors.
func (s *Sink) Len() int {
	return len(s.vectors)
}

// Discard is a Recorder that drops everything.
var Discard Recorder = discard{}

type discard struct{}

func (discard) Record(DebugVector) {}
