// pkg/physics/collision.go
package physics

import "gonum.org/v1/gonum/spatial/r2"

// Circle represents a circular collision shape
type Circle struct {
	Center Vector2D
	Radius float64
}

// Collides checks if two circles are strictly overlapping
func (c Circle) Collides(other Circle) bool {
	reach := c.Radius + other.Radius
	return other.Center.Sub(c.Center).LengthSquared() < reach*reach
}

// Shape is the collision geometry of a body: its center and full width and
// height.
type Shape struct {
	Center     Vector2D
	Dimensions Vector2D
}

// Radius is the length of the dimension vector. It circumscribes the body
// with room to spare.
func (s Shape) Radius() float64 {
	return s.Dimensions.Length()
}

// Circle returns the broad-phase circle.
func (s Shape) Circle() Circle {
	return Circle{Center: s.Center, Radius: s.Radius()}
}

// Bounds returns the axis-aligned bounding box.
func (s Shape) Bounds() r2.Box {
	half := s.Dimensions.Scale(0.5)
	return r2.Box{
		Min: r2.Vec{X: s.Center.X - half.X, Y: s.Center.Y - half.Y},
		Max: r2.Vec{X: s.Center.X + half.X, Y: s.Center.Y + half.Y},
	}
}

// Collidable is anything the collision engine can test.
type Collidable interface {
	CollisionShape() Shape
	// Collidable reports whether the body is enabled, visible and has
	// collisions switched on.
	Collidable() bool
}

// Overlaps reports whether two boxes strictly intersect.
func Overlaps(a, b r2.Box) bool {
	return a.Min.X < b.Max.X && b.Min.X < a.Max.X &&
		a.Min.Y < b.Max.Y && b.Min.Y < a.Max.Y
}

// Proximity is the broad-phase test: both bodies can collide and their
// circles overlap.
func Proximity(a, b Collidable) bool {
	if !a.Collidable() || !b.Collidable() {
		return false
	}
	return a.CollisionShape().Circle().Collides(b.CollisionShape().Circle())
}

// Collision narrows Proximity with an AABB test.
func Collision(a, b Collidable) bool {
	if !Proximity(a, b) {
		return false
	}
	return Overlaps(a.CollisionShape().Bounds(), b.CollisionShape().Bounds())
}

// maxQuadDepth stops subdivision when many objects share a point.
const maxQuadDepth = 8

// QuadTree for spatial partitioning
type QuadTree[T any] struct {
	Boundary  Rect
	Capacity  int
	Points    []Vector2D
	Objects   []T
	Divided   bool
	NorthWest *QuadTree[T]
	NorthEast *QuadTree[T]
	SouthWest *QuadTree[T]
	SouthEast *QuadTree[T]

	depth int
}

// Rect represents a rectangular area
type Rect struct {
	Center Vector2D
	Width  float64
	Height float64
}

// Contains reports whether point lies in the half-open rectangle.
func (r Rect) Contains(point Vector2D) bool {
	return point.X >= r.Center.X-r.Width/2 &&
		point.X < r.Center.X+r.Width/2 &&
		point.Y >= r.Center.Y-r.Height/2 &&
		point.Y < r.Center.Y+r.Height/2
}

// Box converts the rectangle to an r2.Box.
func (r Rect) Box() r2.Box {
	return r2.Box{
		Min: r2.Vec{X: r.Center.X - r.Width/2, Y: r.Center.Y - r.Height/2},
		Max: r2.Vec{X: r.Center.X + r.Width/2, Y: r.Center.Y + r.Height/2},
	}
}

// NewQuadTree creates a new quad tree with the given boundary and capacity
func NewQuadTree[T any](boundary Rect, capacity int) *QuadTree[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &QuadTree[T]{
		Boundary: boundary,
		Capacity: capacity,
		Points:   make([]Vector2D, 0, capacity),
		Objects:  make([]T, 0, capacity),
	}
}

// Insert stores object at point. It returns false when point is outside the
// tree.
func (qt *QuadTree[T]) Insert(point Vector2D, object T) bool {
	if !qt.Boundary.Contains(point) {
		return false
	}

	if !qt.Divided && (len(qt.Points) < qt.Capacity || qt.depth >= maxQuadDepth) {
		qt.Points = append(qt.Points, point)
		qt.Objects = append(qt.Objects, object)
		return true
	}

	if !qt.Divided {
		qt.Subdivide()
	}

	return qt.NorthWest.Insert(point, object) ||
		qt.NorthEast.Insert(point, object) ||
		qt.SouthWest.Insert(point, object) ||
		qt.SouthEast.Insert(point, object)
}

// Subdivide splits the quadtree into four quadrants and pushes its points
// down into them.
func (qt *QuadTree[T]) Subdivide() {
	x := qt.Boundary.Center.X
	y := qt.Boundary.Center.Y
	w := qt.Boundary.Width / 2
	h := qt.Boundary.Height / 2

	nw := Rect{Center: Vector2D{X: x - w/2, Y: y - h/2}, Width: w, Height: h}
	ne := Rect{Center: Vector2D{X: x + w/2, Y: y - h/2}, Width: w, Height: h}
	sw := Rect{Center: Vector2D{X: x - w/2, Y: y + h/2}, Width: w, Height: h}
	se := Rect{Center: Vector2D{X: x + w/2, Y: y + h/2}, Width: w, Height: h}

	qt.NorthWest = qt.child(nw)
	qt.NorthEast = qt.child(ne)
	qt.SouthWest = qt.child(sw)
	qt.SouthEast = qt.child(se)
	qt.Divided = true

	points, objects := qt.Points, qt.Objects
	qt.Points = nil
	qt.Objects = nil
	for i, p := range points {
		_ = qt.NorthWest.Insert(p, objects[i]) ||
			qt.NorthEast.Insert(p, objects[i]) ||
			qt.SouthWest.Insert(p, objects[i]) ||
			qt.SouthEast.Insert(p, objects[i])
	}
}

func (qt *QuadTree[T]) child(boundary Rect) *QuadTree[T] {
	c := NewQuadTree[T](boundary, qt.Capacity)
	c.depth = qt.depth + 1
	return c
}

// Clear empties the tree while keeping its boundary.
func (qt *QuadTree[T]) Clear() {
	qt.Points = make([]Vector2D, 0, qt.Capacity)
	qt.Objects = make([]T, 0, qt.Capacity)
	qt.Divided = false
	qt.NorthWest, qt.NorthEast, qt.SouthWest, qt.SouthEast = nil, nil, nil, nil
}

// Query returns all objects whose point lies inside area
func (qt *QuadTree[T]) Query(area Rect) []T {
	var found []T
	qt.query(area, &found)
	return found
}

func (qt *QuadTree[T]) query(area Rect, found *[]T) {
	if !qt.intersects(area) {
		return
	}

	for i, point := range qt.Points {
		if area.Contains(point) {
			*found = append(*found, qt.Objects[i])
		}
	}

	if !qt.Divided {
		return
	}

	qt.NorthWest.query(area, found)
	qt.NorthEast.query(area, found)
	qt.SouthWest.query(area, found)
	qt.SouthEast.query(area, found)
}

func (qt *QuadTree[T]) intersects(area Rect) bool {
	return !(area.Center.X-area.Width/2 > qt.Boundary.Center.X+qt.Boundary.Width/2 ||
		area.Center.X+area.Width/2 < qt.Boundary.Center.X-qt.Boundary.Width/2 ||
		area.Center.Y-area.Height/2 > qt.Boundary.Center.Y+qt.Boundary.Height/2 ||
		area.Center.Y+area.Height/2 < qt.Boundary.Center.Y-qt.Boundary.Height/2)
}
