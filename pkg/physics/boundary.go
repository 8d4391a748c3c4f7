package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// BoundaryPad is the per-axis share of a body's dimension added around the
// screen, so a body has fully left the view before its policy fires.
const BoundaryPad = 0.55

// BoundaryPolicy decides what happens when a body leaves the padded screen.
type BoundaryPolicy int

const (
	// BoundaryWrap re-enters from the opposite edge.
	BoundaryWrap BoundaryPolicy = iota
	// BoundaryRespawn relocates to a random screen edge with a fresh push.
	BoundaryRespawn
	// BoundaryDie kills the body.
	BoundaryDie
)

func (p BoundaryPolicy) String() string {
	switch p {
	case BoundaryWrap:
		return "wrap"
	case BoundaryRespawn:
		return "respawn"
	case BoundaryDie:
		return "die"
	default:
		return "unknown"
	}
}

// BoundaryOutcome reports what a boundary evaluation did.
type BoundaryOutcome int

const (
	Inside BoundaryOutcome = iota
	Wrapped
	Respawned
	Exited
)

// Screen is the visible area, with its origin in the top-left corner.
type Screen struct {
	Width  float64
	Height float64
}

// Center returns the middle of the screen.
func (s Screen) Center() Vector2D {
	return Vector2D{X: s.Width / 2, Y: s.Height / 2}
}

// Bounds returns the screen as a box.
func (s Screen) Bounds() r2.Box {
	return r2.Box{Max: r2.Vec{X: s.Width, Y: s.Height}}
}

// Random is the randomness the boundary and spawn math needs.
type Random interface {
	// Range returns a uniform integer in [lo, hi).
	Range(lo, hi int) int
	// Sign returns -1 or 1.
	Sign() int
}

// PaddedBounds grows the screen by BoundaryPad × dims on every side.
func PaddedBounds(screen Screen, dims Vector2D) r2.Box {
	pad := Vector2D{X: math.Abs(dims.X), Y: math.Abs(dims.Y)}.Scale(BoundaryPad)
	return r2.Box{
		Min: r2.Vec{X: -pad.X, Y: -pad.Y},
		Max: r2.Vec{X: screen.Width + pad.X, Y: screen.Height + pad.Y},
	}
}

// OutOfBounds reports whether pos lies strictly outside the padded screen.
func OutOfBounds(pos, dims Vector2D, screen Screen) bool {
	b := PaddedBounds(screen, dims)
	return pos.X < b.Min.X || pos.X > b.Max.X || pos.Y < b.Min.Y || pos.Y > b.Max.Y
}

// Wrap carries pos across the padded screen on each axis it has crossed.
// The other axis is left untouched.
func Wrap(pos, dims Vector2D, screen Screen) (Vector2D, bool) {
	b := PaddedBounds(screen, dims)
	width := b.Max.X - b.Min.X
	height := b.Max.Y - b.Min.Y
	wrapped := false

	switch {
	case pos.X > b.Max.X:
		pos.X -= width
		wrapped = true
	case pos.X < b.Min.X:
		pos.X += width
		wrapped = true
	}
	switch {
	case pos.Y > b.Max.Y:
		pos.Y -= height
		wrapped = true
	case pos.Y < b.Min.Y:
		pos.Y += height
		wrapped = true
	}
	return pos, wrapped
}

// SpawnOnEdge picks one of the four screen edges uniformly and returns a point
// on the strip just outside it, no deeper than half the body.
func SpawnOnEdge(dims Vector2D, screen Screen, rnd Random) Vector2D {
	depthX := max(1, int(math.Abs(dims.X)/2))
	depthY := max(1, int(math.Abs(dims.Y)/2))
	alongX := float64(rnd.Range(0, max(1, int(screen.Width))))
	alongY := float64(rnd.Range(0, max(1, int(screen.Height))))

	switch rnd.Range(0, 4) {
	case 0: // left
		return Vector2D{X: -float64(rnd.Range(1, depthX+1)), Y: alongY}
	case 1: // right
		return Vector2D{X: screen.Width + float64(rnd.Range(1, depthX+1)), Y: alongY}
	case 2: // top
		return Vector2D{X: alongX, Y: -float64(rnd.Range(1, depthY+1))}
	default: // bottom
		return Vector2D{X: alongX, Y: screen.Height + float64(rnd.Range(1, depthY+1))}
	}
}

// InwardVelocity aims from pos at a random point in the middle of the screen
// with a speed between a quarter and three quarters of the speed limit.
func InwardVelocity(pos Vector2D, screen Screen, speed *Extents, rnd Random) Vector2D {
	target := Vector2D{
		X: screen.Width/4 + float64(rnd.Range(0, max(1, int(screen.Width/2)))),
		Y: screen.Height/4 + float64(rnd.Range(0, max(1, int(screen.Height/2)))),
	}
	heading := target.Sub(pos)
	if heading.IsEmpty() {
		heading = screen.Center().Sub(pos)
	}
	if heading.IsEmpty() {
		heading = Vector2D{X: 1}
	}
	lo := int(speed.Maximum() * 0.25)
	hi := int(speed.Maximum()*0.75) + 1
	return heading.WithLength(float64(rnd.Range(lo, hi)))
}

// SpinNudge returns a random signed spin of one to three angular steps.
func SpinNudge(angular *Extents, rnd Random) float64 {
	return float64(rnd.Sign()) * float64(rnd.Range(1, 4)) * angular.Step()
}

// Respawn moves the body to a screen edge and pushes it back in.
func (m *Mover) Respawn(dims Vector2D, screen Screen, rnd Random) {
	m.position = SpawnOnEdge(dims, screen, rnd)
	m.acceleration = Vector2D{}
	m.SetVelocity(InwardVelocity(m.position, screen, &m.speedLimit, rnd))
	m.angularLimit.IncrementBy(SpinNudge(&m.angularLimit, rnd))
}

// ApplyBoundary evaluates policy after integration. Exited means the caller
// has to retire the body.
func ApplyBoundary(policy BoundaryPolicy, m *Mover, dims Vector2D, screen Screen, rnd Random) BoundaryOutcome {
	switch policy {
	case BoundaryWrap:
		pos, wrapped := Wrap(m.position, dims, screen)
		if !wrapped {
			return Inside
		}
		m.position = pos
		return Wrapped
	case BoundaryRespawn:
		if !OutOfBounds(m.position, dims, screen) {
			return Inside
		}
		m.Respawn(dims, screen, rnd)
		return Respawned
	case BoundaryDie:
		if !OutOfBounds(m.position, dims, screen) {
			return Inside
		}
		return Exited
	default:
		return Inside
	}
}
