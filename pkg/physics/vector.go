// pkg/physics/vector.go
package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// emptyLength is the length below which a vector is treated as having no direction.
const emptyLength = 1e-9

// Vector2D represents a 2D vector with x and y components
type Vector2D struct {
	X float64
	Y float64
}

func (v Vector2D) vec() r2.Vec { return r2.Vec(v) }

// Add returns the sum of two vectors
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D(r2.Add(v.vec(), other.vec()))
}

// Sub returns the difference between two vectors
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D(r2.Sub(v.vec(), other.vec()))
}

// Scale multiplies the vector by a scalar value
func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D(r2.Scale(factor, v.vec()))
}

// Length returns the magnitude of the vector
func (v Vector2D) Length() float64 {
	return r2.Norm(v.vec())
}

// LengthSquared returns magnitude squared (optimization for comparisons)
func (v Vector2D) LengthSquared() float64 {
	return r2.Norm2(v.vec())
}

// Normalize returns a unit vector in the same direction.
// Empty vectors normalize to the zero vector.
func (v Vector2D) Normalize() Vector2D {
	if v.IsEmpty() {
		return Vector2D{}
	}
	return Vector2D(r2.Unit(v.vec()))
}

// WithLength returns a vector along v with the given magnitude.
func (v Vector2D) WithLength(length float64) Vector2D {
	return v.Normalize().Scale(length)
}

// Distance returns the distance between two vectors
func (v Vector2D) Distance(other Vector2D) float64 {
	return v.Sub(other).Length()
}

// Angle returns the angle of the vector in radians
func (v Vector2D) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// FromAngle creates a vector from an angle and magnitude
func FromAngle(angle float64, magnitude float64) Vector2D {
	return Vector2D{
		X: magnitude * math.Cos(angle),
		Y: magnitude * math.Sin(angle),
	}
}

// Dot returns the dot product of two vectors
func (v Vector2D) Dot(other Vector2D) float64 {
	return r2.Dot(v.vec(), other.vec())
}

// Rotate rotates the vector by angle (in radians) around the origin
func (v Vector2D) Rotate(angle float64) Vector2D {
	return Vector2D(r2.Rotate(v.vec(), angle, r2.Vec{}))
}

// Perpendicular returns v rotated by a quarter turn. Screen coordinates grow
// downwards, so clockwise is a positive rotation.
func (v Vector2D) Perpendicular(clockwise bool) Vector2D {
	if clockwise {
		return Vector2D{X: -v.Y, Y: v.X}
	}
	return Vector2D{X: v.Y, Y: -v.X}
}

// IsEmpty reports whether the vector carries no usable direction: near-zero
// length, NaN or infinite components.
func (v Vector2D) IsEmpty() bool {
	if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
		return true
	}
	length := v.Length()
	return math.IsInf(length, 0) || length < emptyLength
}

// Sanitize returns the zero vector for empty vectors and v otherwise.
func (v Vector2D) Sanitize() Vector2D {
	if v.IsEmpty() {
		return Vector2D{}
	}
	return v
}

// MaybeVector is an optional vector. The zero value is absent.
type MaybeVector struct {
	Value Vector2D
	Valid bool
}

// SomeVector wraps v as a present optional.
func SomeVector(v Vector2D) MaybeVector {
	return MaybeVector{Value: v, Valid: true}
}

// Or returns the wrapped vector, or def when absent.
func (m MaybeVector) Or(def Vector2D) Vector2D {
	if !m.Valid {
		return def
	}
	return m.Value
}

// WrapAngle maps an angle in radians into [-π, π].
func WrapAngle(angle float64) float64 {
	if angle >= -math.Pi && angle <= math.Pi {
		return angle
	}
	wrapped := math.Mod(angle+math.Pi, 2*math.Pi)
	if wrapped < 0 {
		wrapped += 2 * math.Pi
	}
	return wrapped - math.Pi
}
