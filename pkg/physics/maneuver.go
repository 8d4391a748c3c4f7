package physics

import "math"

// Maneuver tuning.
const (
	// LowSpeed is the speed under which brakes and turns switch to their
	// gentle variants.
	LowSpeed = 6.0
	// BrakeResidual is the speed left along the heading after a low-speed brake.
	BrakeResidual = 0.0001
	// BrakeSpinDecay scales the angular velocity on every brake.
	BrakeSpinDecay = 0.68
	// TurnNudge is the per-unit-mass sideways force of a low-speed turn.
	TurnNudge = 0.1
	// TurnGain weighs the current acceleration in a high-speed turn.
	TurnGain = 4.0
	// TurnResistance divides the spin a turn adds.
	TurnResistance = 1.5
)

// Throttle pushes along the heading with the current acceleration value and
// ramps that value up. Higher gears ramp faster.
func (m *Mover) Throttle() {
	speed := m.speedLimit.Clamp(m.Speed())
	boost := m.gears.Fraction(speed) * m.accelLimit.Step()
	m.ApplyForce(m.direction.Scale(m.accelLimit.Value()))
	m.accelLimit.IncrementBy(m.accelLimit.Step() + boost)
}

// Coast ramps the acceleration value back towards its resting value.
func (m *Mover) Coast() {
	if m.accelLimit.Value() <= m.restAcceleration {
		return
	}
	m.accelLimit.SetValue(math.Max(m.accelLimit.Value()-m.accelLimit.Step(), m.restAcceleration))
}

// Brake slows the body. Under LowSpeed the velocity collapses to a residual
// along the heading so the direction survives; above it an opposing force is
// applied. Spin always decays.
func (m *Mover) Brake() {
	speed := m.Speed()
	if speed < LowSpeed {
		m.velocity = m.direction.Scale(BrakeResidual)
	} else {
		magnitude := math.Min(m.accelLimit.Maximum(), m.accelLimit.Value())
		// the impulse never reverses the direction of travel
		magnitude = math.Min(magnitude, speed*m.mass)
		m.ApplyForce(m.velocity.Normalize().Scale(-magnitude))
	}
	m.angularLimit.SetValue(m.angularLimit.Value() * BrakeSpinDecay)
}

// TurnLeft steers counter-clockwise.
func (m *Mover) TurnLeft() { m.turn(false) }

// TurnRight steers clockwise.
func (m *Mover) TurnRight() { m.turn(true) }

func (m *Mover) turn(clockwise bool) {
	heading := m.velocity
	if heading.IsEmpty() {
		heading = m.direction
	}
	side := heading.Normalize().Perpendicular(clockwise)
	speed := m.Speed()

	if speed < LowSpeed {
		m.ApplyForce(side.Scale(TurnNudge * m.mass))
	} else {
		magnitude := m.acceleration.Length()*TurnGain/m.mass + m.accelLimit.Value()
		m.ApplyForce(side.Scale(m.accelLimit.Clamp(magnitude)))
	}
	m.accelLimit.Increment()

	spin := m.accelLimit.Step() / (TurnResistance * m.mass) * (speed / m.mass)
	if !clockwise {
		spin = -spin
	}
	m.angularLimit.IncrementBy(spin)
}

// RotateClockwise adds one angular step of spin.
func (m *Mover) RotateClockwise() {
	m.angularLimit.Increment()
}

// RotateCounterClockwise removes one angular step of spin.
func (m *Mover) RotateCounterClockwise() {
	m.angularLimit.Decrement()
}
