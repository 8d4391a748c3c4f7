package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/event"
	"github.com/opd-ai/go-asteroids/pkg/input"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// quietConfig returns defaults with no drone and no waves so tests place
// every body themselves.
func quietConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Drone.Enabled = false
	cfg.Waves.InitialAsteroids = 0
	cfg.Waves.Refill = false
	return cfg
}

func newTestWorld(t *testing.T, cfg *config.Config) *World {
	t.Helper()
	w, err := NewWorld(cfg)
	if err != nil {
		t.Fatalf("NewWorld() failed: %v", err)
	}
	return w
}

// recorder collects every event of the given types.
type recorder struct {
	events []event.Event
}

func record(bus *event.Bus, types ...event.Type) *recorder {
	r := &recorder{}
	for _, typ := range types {
		bus.Subscribe(typ, func(e event.Event) {
			r.events = append(r.events, e)
		})
	}
	return r
}

func (r *recorder) count(typ event.Type) int {
	n := 0
	for _, e := range r.events {
		if e.GetType() == typ {
			n++
		}
	}
	return n
}

func TestNewWorld_RejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Simulation.DT = 0
	if _, err := NewWorld(cfg); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestNewWorld_SpawnsDroneAndFirstWave(t *testing.T) {
	w := newTestWorld(t, config.DefaultConfig())

	if got := w.Count(entity.KindDrone); got != 1 {
		t.Errorf("drones = %d, want 1", got)
	}
	if got := w.Count(entity.KindAsteroid); got != 4 {
		t.Errorf("asteroids = %d, want 4", got)
	}
	if w.Wave() != 1 {
		t.Errorf("Wave() = %d, want 1", w.Wave())
	}

	screen := w.Screen()
	for _, b := range w.Bodies() {
		a, ok := b.Asteroid()
		if !ok {
			continue
		}
		if a.Level != 3 {
			t.Errorf("asteroid %d level = %d, want 3", b.ID, a.Level)
		}
		pos := b.Position()
		inside := pos.X >= 0 && pos.X <= screen.Width && pos.Y >= 0 && pos.Y <= screen.Height
		if inside {
			t.Errorf("asteroid %d spawned inside the screen at %v", b.ID, pos)
		}
		if b.Collider.Group != AsteroidGroup {
			t.Errorf("asteroid %d group = %d, want %d", b.ID, b.Collider.Group, AsteroidGroup)
		}
	}
}

func TestWorld_DroneDestroysSmallAsteroid(t *testing.T) {
	w := newTestWorld(t, quietConfig())
	events := record(w.Events(), event.ScoreChanged, event.BodyDied, event.BodiesCollided, event.AsteroidSplit)

	at := physics.Vector2D{X: 300, Y: 300}
	drone, err := w.SpawnDrone(physics.SomeVector(at))
	if err != nil {
		t.Fatalf("SpawnDrone() failed: %v", err)
	}
	rock, err := w.SpawnAsteroid(1, physics.SomeVector(at))
	if err != nil {
		t.Fatalf("SpawnAsteroid() failed: %v", err)
	}

	w.Step(w.cfg.Simulation.DT, nil)

	if _, ok := w.Body(rock.ID); ok {
		t.Error("destroyed asteroid is still in the world")
	}
	if w.Score() != 20 {
		t.Errorf("Score() = %d, want 20", w.Score())
	}
	if got := w.Count(entity.KindParticle); got != w.cfg.Burst.Count {
		t.Errorf("particles = %d, want %d", got, w.cfg.Burst.Count)
	}
	if drone.Tint != entity.HitTint {
		t.Errorf("drone tint = %v, want %v", drone.Tint, entity.HitTint)
	}
	if drone.Dead() {
		t.Error("drone died from a color change policy")
	}

	if events.count(event.BodiesCollided) != 1 {
		t.Errorf("collision events = %d, want 1", events.count(event.BodiesCollided))
	}
	if events.count(event.ScoreChanged) != 1 {
		t.Errorf("score events = %d, want 1", events.count(event.ScoreChanged))
	}
	if events.count(event.BodyDied) != 1 {
		t.Errorf("death events = %d, want 1", events.count(event.BodyDied))
	}
	if events.count(event.AsteroidSplit) != 0 {
		t.Error("a level 1 asteroid split")
	}
}

func TestWorld_SplitsLargeAsteroid(t *testing.T) {
	cfg := quietConfig()
	cfg.Drone.Damage = 100
	w := newTestWorld(t, cfg)
	events := record(w.Events(), event.AsteroidSplit)

	at := physics.Vector2D{X: 400, Y: 400}
	if _, err := w.SpawnDrone(physics.SomeVector(at)); err != nil {
		t.Fatalf("SpawnDrone() failed: %v", err)
	}
	rock, err := w.SpawnAsteroid(3, physics.SomeVector(at))
	if err != nil {
		t.Fatalf("SpawnAsteroid() failed: %v", err)
	}
	parentDims := rock.Collider.Dimensions

	w.Step(cfg.Simulation.DT, nil)

	if w.Score() != 60 {
		t.Errorf("Score() = %d, want 60", w.Score())
	}
	if len(events.events) != 1 {
		t.Fatalf("split events = %d, want 1", len(events.events))
	}
	split := events.events[0].(*event.SplitEvent)
	if split.ParentID != uint64(rock.ID) {
		t.Errorf("split parent = %d, want %d", split.ParentID, rock.ID)
	}
	if len(split.ChildIDs) != cfg.Asteroid.SplitCount {
		t.Fatalf("children = %d, want %d", len(split.ChildIDs), cfg.Asteroid.SplitCount)
	}

	for _, id := range split.ChildIDs {
		child, ok := w.Body(entity.ID(id))
		if !ok {
			t.Fatalf("child %d is not in the world", id)
		}
		a, _ := child.Asteroid()
		if a.Level != 2 {
			t.Errorf("child level = %d, want 2", a.Level)
		}
		if child.Collider.Dimensions != parentDims {
			t.Errorf("child dimensions = %v, want the parent's %v", child.Collider.Dimensions, parentDims)
		}
		if child.Collider.Group != AsteroidGroup {
			t.Errorf("child group = %d, want %d", child.Collider.Group, AsteroidGroup)
		}
		if child.Kinematics.Speed() == 0 {
			t.Error("child was spawned at rest")
		}
	}
}

func TestWorld_AsteroidsShareAGroup(t *testing.T) {
	w := newTestWorld(t, quietConfig())
	events := record(w.Events(), event.BodiesCollided)

	at := physics.Vector2D{X: 500, Y: 300}
	for i := 0; i < 3; i++ {
		if _, err := w.SpawnAsteroid(2, physics.SomeVector(at)); err != nil {
			t.Fatalf("SpawnAsteroid() failed: %v", err)
		}
	}

	w.Step(w.cfg.Simulation.DT, nil)

	if len(events.events) != 0 {
		t.Errorf("asteroids collided %d times, want 0", len(events.events))
	}
	if got := w.Count(entity.KindAsteroid); got != 3 {
		t.Errorf("asteroids = %d, want 3", got)
	}
}

func TestWorld_RefillsEmptyWave(t *testing.T) {
	cfg := quietConfig()
	cfg.Waves.InitialAsteroids = 2
	cfg.Waves.Growth = 1
	cfg.Waves.Refill = true
	w := newTestWorld(t, cfg)
	events := record(w.Events(), event.WaveStarted)

	for _, b := range w.Bodies() {
		b.Die()
	}
	w.Step(cfg.Simulation.DT, nil)

	if w.Wave() != 2 {
		t.Errorf("Wave() = %d, want 2", w.Wave())
	}
	if got := w.Count(entity.KindAsteroid); got != 3 {
		t.Errorf("asteroids = %d, want 3", got)
	}
	if len(events.events) != 1 {
		t.Fatalf("wave events = %d, want 1", len(events.events))
	}
	if we := events.events[0].(*event.WaveEvent); we.Wave != 2 || we.Asteroids != 3 {
		t.Errorf("wave event = %+v, want wave 2 with 3 asteroids", we)
	}
	if w.Score() != 0 {
		t.Errorf("bodies that died outside a collision scored %d", w.Score())
	}
}

func TestWorld_ParticlesExpire(t *testing.T) {
	w := newTestWorld(t, quietConfig())
	w.EmitBurst(w.Screen().Center(), 5)
	if got := w.Count(entity.KindParticle); got != 5 {
		t.Fatalf("particles = %d, want 5", got)
	}

	ticks := int(math.Ceil(w.cfg.Particle.Lifetime/w.cfg.Simulation.DT)) + 1
	for i := 0; i < ticks; i++ {
		w.Step(w.cfg.Simulation.DT, nil)
	}

	if got := len(w.Bodies()); got != 0 {
		t.Errorf("bodies after the particle lifetime = %d, want 0", got)
	}
}

func TestWorld_DroneFollowsCommands(t *testing.T) {
	w := newTestWorld(t, quietConfig())
	drone, err := w.SpawnDrone(physics.MaybeVector{})
	if err != nil {
		t.Fatalf("SpawnDrone() failed: %v", err)
	}
	start := drone.Position()

	script := input.NewScripted()
	script.Hold(input.Thrust)
	for i := 0; i < 30; i++ {
		script.Advance()
		w.Step(w.cfg.Simulation.DT, script)
	}

	if drone.Kinematics.Speed() == 0 {
		t.Fatal("drone did not accelerate under thrust")
	}
	if pos := drone.Position(); pos.Y >= start.Y {
		t.Errorf("drone moved to %v, want above %v", pos, start)
	}
}

func TestWorld_DebugToggle(t *testing.T) {
	w := newTestWorld(t, quietConfig())
	if _, err := w.SpawnDrone(physics.MaybeVector{}); err != nil {
		t.Fatalf("SpawnDrone() failed: %v", err)
	}

	script := input.NewScripted()
	script.Hold(input.Debug)
	script.Advance()
	w.Step(w.cfg.Simulation.DT, script)

	if !w.Debug() {
		t.Fatal("pressing debug did not switch debug on")
	}
	if got := w.Telemetry().Len(); got == 0 {
		t.Error("no debug vectors were recorded")
	}

	// Holding the key is not a new press.
	script.Advance()
	w.Step(w.cfg.Simulation.DT, script)
	if !w.Debug() {
		t.Error("holding debug switched it off again")
	}
}

func TestWorld_Deterministic(t *testing.T) {
	run := func() []physics.Vector2D {
		w := newTestWorld(t, config.DefaultConfig())
		for i := 0; i < 240; i++ {
			w.Step(w.cfg.Simulation.DT, nil)
		}
		var out []physics.Vector2D
		for _, s := range w.Samples() {
			out = append(out, physics.Vector2D{X: s.X, Y: s.Y}, physics.Vector2D{X: s.VX, Y: s.VY})
		}
		return out
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("runs produced %d and %d samples", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestWorld_Summary(t *testing.T) {
	w := newTestWorld(t, config.DefaultConfig())
	w.Step(w.cfg.Simulation.DT, nil)
	w.Step(w.cfg.Simulation.DT, nil)

	s := w.Summary()
	if s.Tick != 2 || w.Tick() != 2 {
		t.Errorf("tick = %d, want 2", s.Tick)
	}
	if math.Abs(s.Elapsed-2*w.cfg.Simulation.DT) > 1e-12 {
		t.Errorf("elapsed = %v, want %v", s.Elapsed, 2*w.cfg.Simulation.DT)
	}
	if s.Bodies != len(w.Bodies()) {
		t.Errorf("bodies = %d, want %d", s.Bodies, len(w.Bodies()))
	}
	if s.Asteroids != w.Count(entity.KindAsteroid) {
		t.Errorf("asteroids = %d, want %d", s.Asteroids, w.Count(entity.KindAsteroid))
	}
	if got := len(w.Samples()); got != s.Bodies {
		t.Errorf("samples = %d, want %d", got, s.Bodies)
	}
}

func TestWorld_SetScreenIgnoresEmptyGeometry(t *testing.T) {
	w := newTestWorld(t, quietConfig())
	before := w.Screen()
	w.SetScreen(physics.Screen{Width: 0, Height: 100})
	if w.Screen() != before {
		t.Errorf("Screen() = %v, want %v", w.Screen(), before)
	}
	w.SetScreen(physics.Screen{Width: 640, Height: 480})
	if w.Screen() != (physics.Screen{Width: 640, Height: 480}) {
		t.Errorf("Screen() = %v, want 640x480", w.Screen())
	}
}

func TestSpawnAsteroid_RejectsLevelBelowMinimum(t *testing.T) {
	w := newTestWorld(t, quietConfig())
	if _, err := w.SpawnAsteroid(0, physics.MaybeVector{}); err == nil {
		t.Error("expected an error for level 0")
	}
	if got := len(w.Bodies()); got != 0 {
		t.Errorf("bodies = %d, want 0", got)
	}
}
