// pkg/physics/collision_test.go
package physics

import (
	"sort"
	"testing"
)

type testBody struct {
	shape   Shape
	enabled bool
}

func (b testBody) CollisionShape() Shape { return b.shape }
func (b testBody) Collidable() bool      { return b.enabled }

func body(x, y, w, h float64) testBody {
	return testBody{
		shape:   Shape{Center: Vector2D{X: x, Y: y}, Dimensions: Vector2D{X: w, Y: h}},
		enabled: true,
	}
}

func TestCircle_Collides(t *testing.T) {
	tests := []struct {
		name     string
		c1, c2   Circle
		expected bool
	}{
		{"overlapping", Circle{Vector2D{0, 0}, 5}, Circle{Vector2D{3, 4}, 5}, true},
		{"touching_is_not_overlap", Circle{Vector2D{0, 0}, 5}, Circle{Vector2D{10, 0}, 5}, false},
		{"apart", Circle{Vector2D{0, 0}, 1}, Circle{Vector2D{10, 10}, 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c1.Collides(tt.c2); got != tt.expected {
				t.Errorf("Collides() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestShape_Geometry(t *testing.T) {
	s := Shape{Center: Vector2D{X: 10, Y: 20}, Dimensions: Vector2D{X: 6, Y: 8}}
	if s.Radius() != 10 {
		t.Errorf("Radius() = %v, expected 10", s.Radius())
	}
	b := s.Bounds()
	if b.Min.X != 7 || b.Min.Y != 16 || b.Max.X != 13 || b.Max.Y != 24 {
		t.Errorf("Bounds() = %+v, expected half extents around the center", b)
	}
}

func TestProximityAndCollision(t *testing.T) {
	tests := []struct {
		name      string
		a, b      testBody
		proximity bool
		collision bool
	}{
		{"same_spot", body(0, 0, 4, 4), body(0, 0, 4, 4), true, true},
		{"overlapping_boxes", body(0, 0, 10, 10), body(6, 6, 10, 10), true, true},
		// radii 6 each reach across 10, but the 3.6 wide boxes stay apart
		{"circles_only", body(0, 0, 3.6, 4.8), body(10, 0, 3.6, 4.8), true, false},
		{"far_apart", body(0, 0, 2, 2), body(100, 100, 2, 2), false, false},
		{"contained", body(0, 0, 20, 20), body(1, 1, 2, 2), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Proximity(tt.a, tt.b); got != tt.proximity {
				t.Errorf("Proximity() = %v, expected %v", got, tt.proximity)
			}
			if got := Collision(tt.a, tt.b); got != tt.collision {
				t.Errorf("Collision() = %v, expected %v", got, tt.collision)
			}
			if Proximity(tt.a, tt.b) != Proximity(tt.b, tt.a) || Collision(tt.a, tt.b) != Collision(tt.b, tt.a) {
				t.Error("collision tests are not symmetric")
			}
			if Collision(tt.a, tt.b) && !Proximity(tt.a, tt.b) {
				t.Error("collision without proximity")
			}
		})
	}
}

func TestCollision_DisabledBodiesNeverTouch(t *testing.T) {
	a := body(0, 0, 10, 10)
	b := body(0, 0, 10, 10)
	b.enabled = false
	if Proximity(a, b) || Collision(a, b) || Collision(b, a) {
		t.Error("disabled body took part in a collision")
	}
}

func TestQuadTree_InsertAndQuery(t *testing.T) {
	qt := NewQuadTree[int](Rect{Center: Vector2D{X: 50, Y: 50}, Width: 100, Height: 100}, 2)

	points := []Vector2D{{10, 10}, {20, 20}, {80, 80}, {90, 10}, {15, 12}, {50, 50}}
	for i, p := range points {
		if !qt.Insert(p, i) {
			t.Fatalf("Insert(%v) rejected a point inside the boundary", p)
		}
	}
	if qt.Insert(Vector2D{X: 150, Y: 50}, 99) {
		t.Error("Insert accepted a point outside the boundary")
	}
	if !qt.Divided {
		t.Error("tree should have subdivided past its capacity")
	}

	got := qt.Query(Rect{Center: Vector2D{X: 15, Y: 15}, Width: 20, Height: 20})
	sort.Ints(got)
	expected := []int{0, 1, 4}
	if len(got) != len(expected) {
		t.Fatalf("Query() = %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Query() = %v, expected %v", got, expected)
			break
		}
	}

	if all := qt.Query(qt.Boundary); len(all) != len(points) {
		t.Errorf("full query returned %d objects, expected %d", len(all), len(points))
	}
}

func TestQuadTree_SamePointDoesNotRecurseForever(t *testing.T) {
	qt := NewQuadTree[int](Rect{Center: Vector2D{}, Width: 64, Height: 64}, 1)
	for i := 0; i < 50; i++ {
		qt.Insert(Vector2D{X: 3, Y: 3}, i)
	}
	if got := qt.Query(Rect{Center: Vector2D{X: 3, Y: 3}, Width: 1, Height: 1}); len(got) != 50 {
		t.Errorf("Query() found %d objects, expected 50", len(got))
	}
}

func TestQuadTree_Clear(t *testing.T) {
	qt := NewQuadTree[string](Rect{Center: Vector2D{X: 5, Y: 5}, Width: 10, Height: 10}, 1)
	qt.Insert(Vector2D{X: 1, Y: 1}, "a")
	qt.Insert(Vector2D{X: 9, Y: 9}, "b")

	qt.Clear()
	if qt.Divided || len(qt.Query(qt.Boundary)) != 0 {
		t.Error("Clear left objects behind")
	}
	qt.Insert(Vector2D{X: 2, Y: 2}, "c")
	if got := qt.Query(qt.Boundary); len(got) != 1 || got[0] != "c" {
		t.Errorf("Query() after Clear = %v, expected [c]", got)
	}
}

func BenchmarkQuadTree_Query(b *testing.B) {
	qt := NewQuadTree[int](Rect{Center: Vector2D{X: 500, Y: 500}, Width: 1000, Height: 1000}, 4)
	for i := 0; i < 1000; i++ {
		qt.Insert(Vector2D{X: float64(i*37%1000) + 0.5, Y: float64(i*91%1000) + 0.5}, i)
	}
	area := Rect{Center: Vector2D{X: 250, Y: 250}, Width: 100, Height: 100}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = qt.Query(area)
	}
}
