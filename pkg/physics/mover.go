// pkg/physics/mover.go
package physics

import (
	"errors"
	"fmt"
)

// Tuning constants of the integration pipeline.
const (
	// ForceNoiseFloor drops mass-scaled forces at or below this magnitude.
	ForceNoiseFloor = 0.05
	// FrictionScale multiplies the friction coefficient.
	FrictionScale = 0.86
	// DefaultGearCount is used when a MoverConfig does not name one.
	DefaultGearCount = 5
)

// ErrInvalidMass is returned when a mover is configured with mass <= 0.
var ErrInvalidMass = errors.New("invalid mass")

// MoverConfig holds the tuning of a single body.
type MoverConfig struct {
	Mass             float64 `yaml:"mass"`
	Friction         float64 `yaml:"friction"`
	FrictionEnabled  bool    `yaml:"friction_enabled"`
	MaxAcceleration  float64 `yaml:"max_acceleration"`
	Acceleration     float64 `yaml:"acceleration"`
	AccelerationStep float64 `yaml:"acceleration_step"`
	MaxSpeed         float64 `yaml:"max_speed"`
	SpeedStep        float64 `yaml:"speed_step"`
	MaxAngularSpeed  float64 `yaml:"max_angular_speed"`
	AngularStep      float64 `yaml:"angular_step"`
	GearCount        int     `yaml:"gear_count"`
}

// Mover owns the kinematic state of a body and integrates it once per tick.
type Mover struct {
	position          Vector2D
	velocity          Vector2D
	acceleration      Vector2D
	debugAcceleration Vector2D
	direction         Vector2D
	rotation          float64

	mass             float64
	friction         float64
	frictionEnabled  bool
	restAcceleration float64

	accelLimit   Extents
	speedLimit   Extents
	angularLimit Extents
	gears        Gears
}

// NewMover creates a mover at position facing heading (radians).
func NewMover(cfg MoverConfig, position Vector2D, heading float64) (*Mover, error) {
	if !(cfg.Mass > 0) || !isFinite(cfg.Mass) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMass, cfg.Mass)
	}
	accel, err := NewExtents(cfg.MaxAcceleration, cfg.Acceleration, cfg.AccelerationStep, true)
	if err != nil {
		return nil, fmt.Errorf("acceleration limit: %w", err)
	}
	speed, err := NewExtents(cfg.MaxSpeed, 0, cfg.SpeedStep, true)
	if err != nil {
		return nil, fmt.Errorf("speed limit: %w", err)
	}
	angular, err := NewExtents(cfg.MaxAngularSpeed, 0, cfg.AngularStep, false)
	if err != nil {
		return nil, fmt.Errorf("angular speed limit: %w", err)
	}
	gearCount := cfg.GearCount
	if gearCount == 0 {
		gearCount = DefaultGearCount
	}
	gears, err := NewGears(gearCount, 0, cfg.MaxSpeed)
	if err != nil {
		return nil, err
	}
	// accelerations under the noise floor are snapped away like dropped forces
	accel.SetTolerance(ForceNoiseFloor)

	return &Mover{
		position:         position.Sanitize(),
		direction:        FromAngle(heading, 1),
		rotation:         WrapAngle(heading),
		mass:             cfg.Mass,
		friction:         cfg.Friction,
		frictionEnabled:  cfg.FrictionEnabled,
		restAcceleration: accel.Value(),
		accelLimit:       accel,
		speedLimit:       speed,
		angularLimit:     angular,
		gears:            gears,
	}, nil
}

// Clone returns an independent copy of the mover.
func (m *Mover) Clone() *Mover {
	c := *m
	return &c
}

// ApplyForce accumulates f/mass into the acceleration. Forces whose scaled
// magnitude does not exceed ForceNoiseFloor are dropped.
func (m *Mover) ApplyForce(f Vector2D) {
	force := f.Sanitize().Scale(1 / m.mass)
	if force.Length() <= ForceNoiseFloor {
		return
	}
	m.acceleration = m.acceleration.Add(force)
}

// Step runs friction, rotation, acceleration clamp, velocity and position
// integration in that order. Velocity takes the acceleration as a per-tick
// impulse while position is scaled by dt.
func (m *Mover) Step(dt float64) {
	m.applyFriction()
	m.updateRotation(dt)

	m.acceleration = clampMagnitude(m.acceleration, &m.accelLimit)
	m.debugAcceleration = m.debugAcceleration.Add(m.acceleration)

	m.velocity = clampMagnitude(m.velocity.Add(m.acceleration), &m.speedLimit)
	if !m.velocity.IsEmpty() {
		m.direction = m.velocity.Normalize()
	}

	m.position = m.position.Add(m.velocity.Scale(dt))
}

// ResetAcceleration clears the per-tick acceleration.
func (m *Mover) ResetAcceleration() {
	m.acceleration = Vector2D{}
}

func (m *Mover) applyFriction() {
	if !m.frictionEnabled || m.velocity.IsEmpty() {
		return
	}
	speed := m.velocity.Length()
	if m.speedLimit.CloseToZero(speed) {
		return
	}
	// a coasting body whose drag would be dropped as noise stops outright
	if FrictionScale*m.friction*speed <= ForceNoiseFloor && m.acceleration.IsEmpty() {
		m.velocity = Vector2D{}
		return
	}
	m.ApplyForce(m.velocity.Normalize().Scale(-FrictionScale * m.friction * m.mass * speed))
}

func (m *Mover) updateRotation(dt float64) {
	if m.frictionEnabled {
		m.angularLimit.IncrementBy(m.friction * -m.angularLimit.Value())
	}
	if m.angularLimit.CloseToZero(m.angularLimit.Value()) {
		m.angularLimit.SetValue(0)
	}
	m.rotation = WrapAngle(m.rotation + m.angularLimit.Value()*dt)
}

// clampMagnitude limits |v| to the range, zeroing it inside the zero band.
func clampMagnitude(v Vector2D, limit *Extents) Vector2D {
	v = v.Sanitize()
	magnitude := limit.Clamp(v.Length())
	if limit.CloseToZero(magnitude) {
		return Vector2D{}
	}
	return v.WithLength(magnitude)
}

// Halt stops all linear motion.
func (m *Mover) Halt() {
	m.velocity = Vector2D{}
	m.acceleration = Vector2D{}
}

// Position returns the current position.
func (m *Mover) Position() Vector2D { return m.position }

// SetPosition moves the body without integrating.
func (m *Mover) SetPosition(p Vector2D) { m.position = p.Sanitize() }

// Velocity returns the current velocity.
func (m *Mover) Velocity() Vector2D { return m.velocity }

// SetVelocity replaces the velocity, clamped to the speed limit.
func (m *Mover) SetVelocity(v Vector2D) {
	m.velocity = clampMagnitude(v, &m.speedLimit)
	if !m.velocity.IsEmpty() {
		m.direction = m.velocity.Normalize()
	}
}

// Speed returns |velocity|.
func (m *Mover) Speed() float64 { return m.velocity.Length() }

// Acceleration returns the acceleration accumulated this tick.
func (m *Mover) Acceleration() Vector2D { return m.acceleration }

// DebugAcceleration returns the running total of integrated accelerations.
func (m *Mover) DebugAcceleration() Vector2D { return m.debugAcceleration }

// ResetDebugAcceleration clears the telemetry accumulator.
func (m *Mover) ResetDebugAcceleration() { m.debugAcceleration = Vector2D{} }

// Direction returns the unit heading of travel.
func (m *Mover) Direction() Vector2D { return m.direction }

// Rotation returns the sprite rotation in [-π, π].
func (m *Mover) Rotation() float64 { return m.rotation }

// SetRotation sets the rotation, wrapped into [-π, π].
func (m *Mover) SetRotation(r float64) { m.rotation = WrapAngle(r) }

// AngularVelocity returns the stored angular speed in radians per second.
func (m *Mover) AngularVelocity() float64 { return m.angularLimit.Value() }

// Mass returns the body mass.
func (m *Mover) Mass() float64 { return m.mass }

// FrictionEnabled reports whether friction is applied each tick.
func (m *Mover) FrictionEnabled() bool { return m.frictionEnabled }

// SetFriction toggles friction and sets its coefficient.
func (m *Mover) SetFriction(enabled bool, coefficient float64) {
	m.frictionEnabled = enabled
	m.friction = coefficient
}

// AccelerationLimit exposes the acceleration range for in-place changes.
func (m *Mover) AccelerationLimit() *Extents { return &m.accelLimit }

// SpeedLimit exposes the speed range for in-place changes.
func (m *Mover) SpeedLimit() *Extents { return &m.speedLimit }

// AngularSpeedLimit exposes the angular speed range for in-place changes.
func (m *Mover) AngularSpeedLimit() *Extents { return &m.angularLimit }

// Gears returns the throttle gear table.
func (m *Mover) Gears() Gears { return m.gears }

// SetMaxSpeed changes the speed ceiling in place and rescales the gears.
func (m *Mover) SetMaxSpeed(maximum float64) {
	m.speedLimit.SetMaximum(maximum)
	if gears, err := NewGears(m.gears.Count(), 0, m.speedLimit.Maximum()); err == nil {
		m.gears = gears
	}
	m.velocity = clampMagnitude(m.velocity, &m.speedLimit)
}
