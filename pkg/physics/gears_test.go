package physics

import (
	"errors"
	"testing"
)

func TestNewGears_RejectsEmptyTable(t *testing.T) {
	if _, err := NewGears(0, 0, 10); !errors.Is(err, ErrInvalidGears) {
		t.Errorf("expected ErrInvalidGears, got %v", err)
	}
}

func TestGears_Gear(t *testing.T) {
	g, err := NewGears(4, 0, 100)
	if err != nil {
		t.Fatalf("NewGears() failed: %v", err)
	}

	tests := []struct {
		value float64
		gear  int
	}{
		{-5, 0},
		{0, 0},
		{0.1, 1},
		{25, 1},
		{25.1, 2},
		{74, 3},
		{76, 4},
		{1000, 4},
	}

	for _, tt := range tests {
		if got := g.Gear(tt.value); got != tt.gear {
			t.Errorf("Gear(%v) = %d, expected %d", tt.value, got, tt.gear)
		}
	}
	if got := g.Fraction(1000); got != 1 {
		t.Errorf("Fraction(1000) = %v, expected 1", got)
	}
}

func TestGears_Monotonic(t *testing.T) {
	g, err := NewGears(7, 0, 350)
	if err != nil {
		t.Fatalf("NewGears() failed: %v", err)
	}

	previous := g.Gear(0)
	for v := 0.0; v <= 500; v += 0.5 {
		gear := g.Gear(v)
		if gear < previous {
			t.Fatalf("Gear(%v) = %d dropped below %d", v, gear, previous)
		}
		if gear < 0 || gear > g.Count() {
			t.Fatalf("Gear(%v) = %d outside [0, %d]", v, gear, g.Count())
		}
		previous = gear
	}
}
