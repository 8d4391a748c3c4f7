// pkg/engine/systems.go
package engine

import (
	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/event"
	"github.com/opd-ai/go-asteroids/pkg/input"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// System priorities. Higher runs first.
const (
	ControlPriority   = 40
	MotionPriority    = 30
	CollisionPriority = 20
	LifecyclePriority = 10
)

// ControlSystem samples the command oracle and prepares the tick frame.
type ControlSystem struct {
	world *World
}

// Priority implements ecs.Prioritizer.
func (s *ControlSystem) Priority() int { return ControlPriority }

// Remove implements ecs.System.
func (s *ControlSystem) Remove(ecs.BasicEntity) {}

// Update implements ecs.System.
func (s *ControlSystem) Update(float32) {
	w := s.world
	commands := input.Capture(w.oracle)
	if commands.Pressed(input.Debug) {
		w.debug = !w.debug
	}
	w.frame = entity.Frame{
		Dt:        w.dt,
		Screen:    w.screen,
		Rand:      w.rand,
		Commands:  commands,
		Telemetry: w.sink,
		Debug:     w.debug,
	}
}

// MotionSystem updates every body: control hooks, integration, boundary
// policy and lifecycle timers.
type MotionSystem struct {
	world  *World
	bodies []*entity.Body
}

// Add registers a body.
func (s *MotionSystem) Add(b *entity.Body) {
	s.bodies = append(s.bodies, b)
}

// Priority implements ecs.Prioritizer.
func (s *MotionSystem) Priority() int { return MotionPriority }

// Remove implements ecs.System.
func (s *MotionSystem) Remove(basic ecs.BasicEntity) {
	s.bodies = removeBody(s.bodies, entity.ID(basic.ID()))
}

// Update implements ecs.System.
func (s *MotionSystem) Update(float32) {
	w := s.world
	for _, b := range s.bodies {
		switch b.Update(&w.frame) {
		case physics.Respawned:
			w.bus.Publish(event.NewBodyEvent(event.BodyRespawned, w, uint64(b.ID), b.Kind().String()))
		case physics.Exited:
			w.logger.Debug(w.ctx, "body left the screen", "body_id", uint64(b.ID), "kind", b.Kind().String())
		}
	}
}

// CollisionSystem finds touching pairs through a quad tree rebuilt every
// tick and applies each body's collision policy.
type CollisionSystem struct {
	world     *World
	bodies    []*entity.Body
	index     *physics.QuadTree[*entity.Body]
	destroyed []*entity.Body
	lastCount int
}

// Add registers a body.
func (s *CollisionSystem) Add(b *entity.Body) {
	s.bodies = append(s.bodies, b)
}

// Priority implements ecs.Prioritizer.
func (s *CollisionSystem) Priority() int { return CollisionPriority }

// Remove implements ecs.System.
func (s *CollisionSystem) Remove(basic ecs.BasicEntity) {
	s.bodies = removeBody(s.bodies, entity.ID(basic.ID()))
}

// resize sets the index boundary to the screen plus a full screen of margin
// on every side, so bodies in the boundary padding are still indexed.
func (s *CollisionSystem) resize(screen physics.Screen) {
	boundary := physics.Rect{
		Center: screen.Center(),
		Width:  screen.Width * 3,
		Height: screen.Height * 3,
	}
	s.index = physics.NewQuadTree[*entity.Body](boundary, s.world.cfg.Simulation.QuadTreeCapacity)
}

// Update implements ecs.System.
func (s *CollisionSystem) Update(float32) {
	w := s.world
	s.destroyed = s.destroyed[:0]
	s.lastCount = 0

	for _, b := range s.bodies {
		b.ClearTint()
	}

	reach := s.populate()
	for _, a := range s.bodies {
		if !a.Collidable() {
			continue
		}
		shape := a.CollisionShape()
		span := 2 * (shape.Radius() + reach)
		area := physics.Rect{Center: shape.Center, Width: span, Height: span}

		for _, b := range s.index.Query(area) {
			if b.ID <= a.ID || !a.Interacts(b) {
				continue
			}
			if !physics.Collision(a, b) {
				continue
			}
			s.lastCount++
			w.bus.Publish(event.NewCollisionEvent(w, uint64(a.ID), uint64(b.ID)))
			s.resolve(a, b)
			s.resolve(b, a)
			if !a.Collidable() {
				break
			}
		}
	}
}

// populate indexes every collidable body and returns the largest radius.
func (s *CollisionSystem) populate() float64 {
	s.index.Clear()
	reach := 0.0
	for _, b := range s.bodies {
		if !b.Collidable() {
			continue
		}
		if s.index.Insert(b.Position(), b) {
			reach = max(reach, b.CollisionShape().Radius())
		}
	}
	return reach
}

// resolve applies target's policy for touching other.
func (s *CollisionSystem) resolve(target, other *entity.Body) {
	switch target.Collider.Policy {
	case entity.CollideHurt:
		if target.Hurt(other.Collider.Damage) {
			s.destroyed = append(s.destroyed, target)
		}
	case entity.CollideDie:
		if !target.Dead() {
			target.Die()
			s.destroyed = append(s.destroyed, target)
		}
	case entity.CollideColorChange:
		target.Flash(entity.HitTint)
	}
}

// LifecycleSystem turns collision kills into score, split children and
// debris, removes dead bodies and refills empty waves.
type LifecycleSystem struct {
	world *World
}

// Priority implements ecs.Prioritizer.
func (s *LifecycleSystem) Priority() int { return LifecyclePriority }

// Remove implements ecs.System.
func (s *LifecycleSystem) Remove(ecs.BasicEntity) {}

// Update implements ecs.System.
func (s *LifecycleSystem) Update(float32) {
	w := s.world
	for _, b := range w.collision.destroyed {
		s.destroy(b)
	}

	var dead []*entity.Body
	for _, b := range w.motion.bodies {
		if b.Dead() {
			dead = append(dead, b)
		}
	}
	for _, b := range dead {
		w.remove(b)
	}

	if w.cfg.Waves.Refill && w.Count(entity.KindAsteroid) == 0 {
		if err := w.startWave(); err != nil {
			w.logger.Error(w.ctx, "wave refill failed", err, "wave", w.wave)
		}
	}
}

func (s *LifecycleSystem) destroy(b *entity.Body) {
	w := s.world
	at := b.Position()

	if a, ok := b.Asteroid(); ok {
		w.award(a.Value)
		if children := s.split(b, a); len(children) > 0 {
			w.bus.Publish(event.NewSplitEvent(w, uint64(b.ID), children))
			w.logger.Debug(w.ctx, "asteroid split", "body_id", uint64(b.ID),
				"level", a.Level, "children", len(children))
		}
	}
	w.EmitBurst(at, w.cfg.Burst.Count)
}

// split spawns the children of a destroyed asteroid. They keep the parent's
// dimensions and fan out around its last heading, one level lower and a
// little faster.
func (s *LifecycleSystem) split(parent *entity.Body, a *entity.Asteroid) []uint64 {
	w := s.world
	if !a.CanSplit() {
		return nil
	}
	n := a.SplitCount()
	ids := make([]uint64, 0, n)
	for i := 0; i < n; i++ {
		basic := ecs.NewBasic()
		child, ok := parent.Split(entity.ID(basic.ID()))
		if !ok {
			break
		}
		child.Collider.Group = parent.Collider.Group

		m := child.Kinematics
		v := m.Velocity()
		if v.IsEmpty() {
			v = physics.FromAngle(w.rand.Angle(), m.SpeedLimit().Maximum()*0.25)
		}
		offset := (float64(i) - float64(n-1)/2) * SplitSpread
		m.SetVelocity(v.Rotate(offset + w.rand.Float(-0.1, 0.1)).Scale(SplitSpeedup))
		m.AngularSpeedLimit().IncrementBy(physics.SpinNudge(m.AngularSpeedLimit(), w.rand))

		w.add(basic, child)
		ids = append(ids, uint64(child.ID))
	}
	return ids
}

func removeBody(bodies []*entity.Body, id entity.ID) []*entity.Body {
	for i, b := range bodies {
		if b.ID == id {
			return append(bodies[:i], bodies[i+1:]...)
		}
	}
	return bodies
}
