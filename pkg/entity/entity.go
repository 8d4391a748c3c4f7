// pkg/entity/entity.go
package entity

import (
	"image/color"

	"github.com/opd-ai/go-asteroids/pkg/physics"
	"github.com/opd-ai/go-asteroids/pkg/telemetry"
)

// ID is a unique identifier for a body
type ID uint64

// Kind names the lifecycle variant of a body
type Kind int

const (
	KindAsteroid Kind = iota
	KindParticle
	KindDrone
)

func (k Kind) String() string {
	switch k {
	case KindAsteroid:
		return "asteroid"
	case KindParticle:
		return "particle"
	case KindDrone:
		return "drone"
	default:
		return "unknown"
	}
}

// State is where a body is in its lifecycle
type State int

const (
	// StateEnabled bodies are updated and can collide.
	StateEnabled State = iota
	// StateDisabled bodies are parked until Reset.
	StateDisabled
	// StateDead bodies stay dead until an explicit Reset.
	StateDead
)

func (s State) String() string {
	switch s {
	case StateEnabled:
		return "enabled"
	case StateDisabled:
		return "disabled"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// CollisionPolicy is what a collision does to the body that owns it
type CollisionPolicy int

const (
	CollideNone CollisionPolicy = iota
	// CollideHurt damages the body by the other body's collision damage.
	CollideHurt
	// CollideDie kills the body outright.
	CollideDie
	// CollideColorChange tints the body for the frame.
	CollideColorChange
)

func (p CollisionPolicy) String() string {
	switch p {
	case CollideNone:
		return "none"
	case CollideHurt:
		return "hurt"
	case CollideDie:
		return "die"
	case CollideColorChange:
		return "color_change"
	default:
		return "unknown"
	}
}

// Collider is the collision component of a body
type Collider struct {
	// Dimensions is the full width and height of the body.
	Dimensions physics.Vector2D
	Policy     CollisionPolicy
	// Damage is dealt to the other body on contact.
	Damage float64
	// Bodies sharing a non-zero group never interact.
	Group   int
	Enabled bool
}

// Default tints
var (
	DefaultTint = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	HitTint     = color.RGBA{R: 255, G: 64, B: 64, A: 255}
)

// Body is a simulated object: kinematics, collision and lifecycle
// components plus the visual state a renderer reads.
type Body struct {
	ID         ID
	Kinematics *physics.Mover
	Collider   Collider
	Boundary   physics.BoundaryPolicy
	Visible    bool
	Tint       color.RGBA
	BaseTint   color.RGBA

	lifecycle Lifecycle
	state     State
	// velocity at the moment of death, kept for split children
	lastVelocity physics.Vector2D
}

func newBody(id ID, mover *physics.Mover, collider Collider, boundary physics.BoundaryPolicy, lc Lifecycle) *Body {
	return &Body{
		ID:         id,
		Kinematics: mover,
		Collider:   collider,
		Boundary:   boundary,
		Visible:    true,
		Tint:       DefaultTint,
		BaseTint:   DefaultTint,
		lifecycle:  lc,
		state:      StateEnabled,
	}
}

// Kind returns the lifecycle variant.
func (b *Body) Kind() Kind { return b.lifecycle.Kind() }

// Lifecycle returns the lifecycle component.
func (b *Body) Lifecycle() Lifecycle { return b.lifecycle }

// Asteroid returns the asteroid component, if the body is one.
func (b *Body) Asteroid() (*Asteroid, bool) {
	a, ok := b.lifecycle.(*Asteroid)
	return a, ok
}

// Particle returns the particle component, if the body is one.
func (b *Body) Particle() (*Particle, bool) {
	p, ok := b.lifecycle.(*Particle)
	return p, ok
}

// State returns the lifecycle state.
func (b *Body) State() State { return b.state }

// Enabled reports whether the body is updated each tick.
func (b *Body) Enabled() bool { return b.state == StateEnabled }

// Dead reports whether the body has died.
func (b *Body) Dead() bool { return b.state == StateDead }

// Position is a shortcut for the kinematic position.
func (b *Body) Position() physics.Vector2D { return b.Kinematics.Position() }

// CollisionShape implements physics.Collidable.
func (b *Body) CollisionShape() physics.Shape {
	return physics.Shape{Center: b.Kinematics.Position(), Dimensions: b.Collider.Dimensions}
}

// Collidable implements physics.Collidable.
func (b *Body) Collidable() bool {
	return b.Enabled() && b.Visible && b.Collider.Enabled
}

// Interacts reports whether b and other may collide at all.
func (b *Body) Interacts(other *Body) bool {
	if b == other {
		return false
	}
	g := b.Collider.Group
	return g == 0 || g != other.Collider.Group
}

// Update runs one tick: control hooks, integration, boundary policy,
// acceleration reset, lifecycle timers and telemetry. Bodies that are not
// enabled are skipped.
func (b *Body) Update(f *Frame) physics.BoundaryOutcome {
	if !b.Enabled() {
		return physics.Inside
	}
	m := b.Kinematics

	b.lifecycle.control(b, f)
	m.Step(f.Dt)

	outcome := physics.ApplyBoundary(b.Boundary, m, b.Collider.Dimensions, f.Screen, f.Rand)
	if outcome == physics.Exited {
		b.Die()
	}
	m.ResetAcceleration()

	if b.Enabled() {
		b.lifecycle.tick(b, f)
	}
	if f.Debug && f.Telemetry != nil && b.Enabled() {
		b.record(f.Telemetry)
	}
	return outcome
}

func (b *Body) record(r telemetry.Recorder) {
	m := b.Kinematics
	pos := m.Position()
	r.Record(telemetry.DebugVector{
		Position:  pos,
		Direction: m.Direction(),
		Tag:       telemetry.TagDirection,
		Magnitude: b.Collider.Dimensions.Length(),
		Thickness: 1,
		Priority:  0,
	})
	r.Record(telemetry.DebugVector{
		Position:  pos,
		Direction: m.Velocity(),
		Tag:       telemetry.TagVelocity,
		Magnitude: m.Speed(),
		Thickness: 2,
		Priority:  1,
	})
	acc := m.DebugAcceleration()
	r.Record(telemetry.DebugVector{
		Position:  pos,
		Direction: acc,
		Tag:       telemetry.TagAcceleration,
		Magnitude: acc.Length(),
		Thickness: 2,
		Priority:  2,
	})
	m.ResetDebugAcceleration()
}

// Die zeroes health or time to live, hides the body and halts it. The body
// stays dead until Reset.
func (b *Body) Die() {
	b.lifecycle.die()
	if b.state != StateDead {
		b.lastVelocity = b.Kinematics.Velocity()
	}
	b.state = StateDead
	b.Visible = false
	b.Kinematics.Halt()
}

// Disable parks an enabled body until Reset.
func (b *Body) Disable() {
	if b.state == StateEnabled {
		b.state = StateDisabled
	}
}

// Reset restores full health or lifetime, shows the body again and sends it
// back in. It reports false when the body cannot come back, which is the
// case for invalidly constructed bodies.
func (b *Body) Reset(f *Frame) bool {
	if !b.lifecycle.reset(b, f) {
		return false
	}
	b.state = StateEnabled
	b.Visible = true
	b.Tint = b.BaseTint
	return true
}

// Hurt deals damage. Only asteroids take damage; it reports whether the
// body died from it.
func (b *Body) Hurt(amount float64) bool {
	a, ok := b.Asteroid()
	if !ok || !b.Enabled() {
		return false
	}
	if a.hurt(amount) {
		b.Die()
		return true
	}
	return false
}

// Flash tints the body for the current frame.
func (b *Body) Flash(tint color.RGBA) {
	b.Tint = tint
}

// ClearTint restores the base tint.
func (b *Body) ClearTint() {
	b.Tint = b.BaseTint
}
