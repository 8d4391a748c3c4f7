package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/sony/gobreaker"
)

// ExportSettings configure the circuit breaker in front of a CSV export.
type ExportSettings struct {
	Name string
	// MaxFailures is the number of consecutive failed writes that opens
	// the breaker.
	MaxFailures int
	// Cooldown is how long an open breaker drops records before trying
	// again.
	Cooldown time.Duration
	// OnStateChange is told about breaker transitions. May be nil.
	OnStateChange func(name string, from, to gobreaker.State)
}

// Export writes records through a circuit breaker. While the destination
// keeps failing the breaker opens and records are dropped instead of
// stalling the simulation.
type Export[T any] struct {
	writer  *Writer[T]
	breaker *gobreaker.CircuitBreaker
	dropped int
}

// NewExport creates an export of T records to w.
func NewExport[T any](w io.Writer, settings ExportSettings) *Export[T] {
	maxFailures := uint32(max(settings.MaxFailures, 1))
	return &Export[T]{
		writer: NewWriter[T](w),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        settings.Name,
			MaxRequests: 1,
			Timeout:     settings.Cooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxFailures
			},
			OnStateChange: settings.OnStateChange,
		}),
	}
}

// Write appends records. Records that could not be written are counted as
// dropped; gobreaker.ErrOpenState is returned while the breaker is open.
func (e *Export[T]) Write(records ...T) error {
	if len(records) == 0 {
		return nil
	}
	_, err := e.breaker.Execute(func() (interface{}, error) {
		return nil, e.writer.Write(records...)
	})
	if err != nil {
		e.dropped += len(records)
		return fmt.Errorf("export %s: %w", e.breaker.Name(), err)
	}
	return nil
}

// Dropped returns how many records were not written.
func (e *Export[T]) Dropped() int { return e.dropped }

// State returns the breaker state.
func (e *Export[T]) State() gobreaker.State { return e.breaker.State() }
