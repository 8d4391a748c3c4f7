package physics

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidGears is returned for a gear table without any gear.
var ErrInvalidGears = errors.New("invalid gears")

// Gears maps a magnitude onto one of count equal-width bands between minimum
// and maximum.
type Gears struct {
	count   int
	minimum float64
	maximum float64
}

// NewGears creates a gear table with count bands.
func NewGears(count int, minimum, maximum float64) (Gears, error) {
	if count < 1 {
		return Gears{}, fmt.Errorf("%w: count %d", ErrInvalidGears, count)
	}
	if !isFinite(minimum) || !isFinite(maximum) {
		return Gears{}, fmt.Errorf("%w: bounds [%v, %v]", ErrInvalidGears, minimum, maximum)
	}
	return Gears{count: count, minimum: minimum, maximum: maximum}, nil
}

// Count returns the number of gears.
func (g Gears) Count() int { return g.count }

// Gear returns how many of the thresholds minimum, minimum+step, ... value
// exceeds, so the result lies in [0, Count()].
func (g Gears) Gear(value float64) int {
	if g.count < 1 {
		return 0
	}
	step := math.Abs(g.maximum-g.minimum) / float64(g.count)
	gear := 0
	for gear < g.count && value > g.minimum+float64(gear)*step {
		gear++
	}
	return gear
}

// Fraction returns Gear(value) / Count().
func (g Gears) Fraction(value float64) float64 {
	if g.count < 1 {
		return 0
	}
	return float64(g.Gear(value)) / float64(g.count)
}
