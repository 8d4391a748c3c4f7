package entity

import (
	"github.com/opd-ai/go-asteroids/pkg/input"
	"github.com/opd-ai/go-asteroids/pkg/physics"
	"github.com/opd-ai/go-asteroids/pkg/telemetry"
)

// Frame is the per-tick context every body update receives. It carries the
// collaborators the simulation needs instead of process-wide state.
type Frame struct {
	// Dt is the elapsed time of this tick in seconds.
	Dt       float64
	Screen   physics.Screen
	Rand     physics.Random
	Commands input.Snapshot
	// Telemetry receives debug vectors while Debug is set. May be nil.
	Telemetry telemetry.Recorder
	Debug     bool
}

// Lifecycle is the entity-specific behavior of a body. The set of
// implementations is closed: *Asteroid, *Particle and *Drone.
type Lifecycle interface {
	Kind() Kind

	// control runs before integration and may apply forces.
	control(b *Body, f *Frame)
	// tick runs after integration for bodies that are still enabled.
	tick(b *Body, f *Frame)
	die()
	reset(b *Body, f *Frame) bool
}
