package rng

import "testing"

func TestSource_Deterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		if x, y := a.Range(0, 1000), b.Range(0, 1000); x != y {
			t.Fatalf("draw %d: %d != %d for the same seed", i, x, y)
		}
	}
	if a.Seed() != 42 {
		t.Errorf("Seed() = %d, expected 42", a.Seed())
	}
}

func TestSource_Range(t *testing.T) {
	s := New(1)
	tests := []struct {
		name   string
		lo, hi int
	}{
		{"small", 0, 4},
		{"negative", -10, -5},
		{"single", 3, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 500; i++ {
				if got := s.Range(tt.lo, tt.hi); got < tt.lo || got >= tt.hi {
					t.Fatalf("Range(%d, %d) = %d", tt.lo, tt.hi, got)
				}
			}
		})
	}

	if got := s.Range(5, 5); got != 5 {
		t.Errorf("Range(5, 5) = %d, expected lo", got)
	}
	if got := s.Range(9, 2); got != 9 {
		t.Errorf("Range(9, 2) = %d, expected lo", got)
	}
}

func TestSource_SignCoversBoth(t *testing.T) {
	s := New(3)
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		v := s.Sign()
		if v != -1 && v != 1 {
			t.Fatalf("Sign() = %d", v)
		}
		seen[v] = true
	}
	if !seen[-1] || !seen[1] {
		t.Errorf("Sign() never produced both values: %v", seen)
	}
}

func TestSource_Float(t *testing.T) {
	s := New(5)
	for i := 0; i < 500; i++ {
		if f := s.Float(-2, 2); f < -2 || f >= 2 {
			t.Fatalf("Float(-2, 2) = %v", f)
		}
		if a := s.Angle(); a < -3.1416 || a >= 3.1416 {
			t.Fatalf("Angle() = %v", a)
		}
	}
}
