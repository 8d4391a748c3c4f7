package physics

import (
	"errors"
	"fmt"
	"math"
)

// DefaultToleranceRatio sizes the hysteresis band of an Extents as a share of
// its distance when no explicit tolerance is set.
const DefaultToleranceRatio = 0.005

// ErrInvalidExtents is returned for a range that cannot satisfy minimum <= maximum.
var ErrInvalidExtents = errors.New("invalid extents")

// Extents is a scalar clamped into [-maximum, maximum], or [0, maximum] when
// the zero is the floor. Every mutation re-clamps the stored value.
type Extents struct {
	maximum     float64
	value       float64
	step        float64
	tolerance   float64
	zeroIsFloor bool
}

// NewExtents builds a range. A negative or non-finite maximum or step is
// rejected rather than coerced.
func NewExtents(maximum, value, step float64, zeroIsFloor bool) (Extents, error) {
	if !isFinite(maximum) || maximum < 0 {
		return Extents{}, fmt.Errorf("%w: maximum %v", ErrInvalidExtents, maximum)
	}
	if !isFinite(step) || step < 0 {
		return Extents{}, fmt.Errorf("%w: step %v", ErrInvalidExtents, step)
	}
	if math.IsNaN(value) {
		return Extents{}, fmt.Errorf("%w: value is NaN", ErrInvalidExtents)
	}
	e := Extents{
		maximum:     maximum,
		step:        step,
		tolerance:   -1,
		zeroIsFloor: zeroIsFloor,
	}
	e.SetValue(value)
	return e, nil
}

// MustExtents is like NewExtents but panics on invalid input.
func MustExtents(maximum, value, step float64, zeroIsFloor bool) Extents {
	e, err := NewExtents(maximum, value, step, zeroIsFloor)
	if err != nil {
		panic(err)
	}
	return e
}

// Maximum returns the upper bound.
func (e *Extents) Maximum() float64 { return e.maximum }

// Minimum returns the lower bound.
func (e *Extents) Minimum() float64 {
	if e.zeroIsFloor {
		return 0
	}
	return -e.maximum
}

// Value returns the stored, clamped value.
func (e *Extents) Value() float64 { return e.value }

// Step returns the default increment.
func (e *Extents) Step() float64 { return e.step }

// ZeroIsFloor reports whether the range is [0, maximum].
func (e *Extents) ZeroIsFloor() bool { return e.zeroIsFloor }

// Distance is maximum - minimum.
func (e *Extents) Distance() float64 { return e.maximum - e.Minimum() }

// Center is minimum + distance/2.
func (e *Extents) Center() float64 { return e.Minimum() + e.Distance()/2 }

// Tolerance is the half-width of the "close to" bands. It scales with the
// distance rather than using Center, which is 0 for symmetric ranges and
// half the range for zero-floored ones.
func (e *Extents) Tolerance() float64 {
	if e.tolerance >= 0 {
		return e.tolerance
	}
	return e.Distance() * DefaultToleranceRatio
}

// SetTolerance overrides the hysteresis half-width. Negative values restore
// the default.
func (e *Extents) SetTolerance(t float64) {
	e.tolerance = t
}

// SetMaximum stores |m| and re-clamps the value.
func (e *Extents) SetMaximum(m float64) {
	e.maximum = math.Abs(m)
	e.value = e.Clamp(e.value)
}

// SetStep stores |step|.
func (e *Extents) SetStep(step float64) {
	e.step = math.Abs(step)
}

// SetValue stores v clamped into the range.
func (e *Extents) SetValue(v float64) {
	e.value = e.Clamp(v)
}

// Increment adds one step.
func (e *Extents) Increment() { e.IncrementBy(e.step) }

// IncrementBy adds amount and clamps.
func (e *Extents) IncrementBy(amount float64) {
	e.SetValue(e.value + amount)
}

// Decrement subtracts one step.
func (e *Extents) Decrement() { e.DecrementBy(e.step) }

// DecrementBy subtracts amount and clamps.
func (e *Extents) DecrementBy(amount float64) {
	e.SetValue(e.value - amount)
}

// Clamp returns x limited to the range without touching the stored value.
// NaN clamps to the minimum.
func (e *Extents) Clamp(x float64) float64 {
	minimum := e.Minimum()
	switch {
	case math.IsNaN(x), x < minimum:
		return minimum
	case x > e.maximum:
		return e.maximum
	default:
		return x
	}
}

// CloseToMinimum reports x < minimum + tolerance.
func (e *Extents) CloseToMinimum(x float64) bool {
	return x < e.Minimum()+e.Tolerance()
}

// CloseToMaximum reports x > maximum - tolerance.
func (e *Extents) CloseToMaximum(x float64) bool {
	return x > e.maximum-e.Tolerance()
}

// CloseToZero reports |x| < tolerance.
func (e *Extents) CloseToZero(x float64) bool {
	return math.Abs(x) < e.Tolerance()
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
