// pkg/engine/world.go
package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/event"
	"github.com/opd-ai/go-asteroids/pkg/input"
	"github.com/opd-ai/go-asteroids/pkg/logging"
	"github.com/opd-ai/go-asteroids/pkg/physics"
	"github.com/opd-ai/go-asteroids/pkg/rng"
	"github.com/opd-ai/go-asteroids/pkg/telemetry"
)

// Collision groups. Bodies in the same group pass through each other.
const (
	AsteroidGroup = 1
	ParticleGroup = 2
)

// Split tuning
const (
	// SplitSpread is the angle in radians between sibling headings.
	SplitSpread = 0.5
	// SplitSpeedup scales the parent velocity handed to the children.
	SplitSpeedup = 1.25
)

const halfPi = math.Pi / 2

// World owns every body of a run and advances them one tick at a time
// through its systems: control, motion, collision and lifecycle.
type World struct {
	cfg    *config.Config
	ctx    context.Context
	logger *logging.Logger
	bus    *event.Bus
	rand   *rng.Source
	sink   *telemetry.Sink

	systems   *ecs.World
	control   *ControlSystem
	motion    *MotionSystem
	collision *CollisionSystem
	lifecycle *LifecycleSystem

	bodies   map[entity.ID]*entity.Body
	entities map[entity.ID]ecs.BasicEntity

	screen  physics.Screen
	frame   entity.Frame
	oracle  input.Oracle
	dt      float64
	debug   bool
	tick    int
	elapsed float64
	score   int
	wave    int
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *logging.Logger) Option {
	return func(w *World) { w.logger = l }
}

// WithEventBus sets the bus lifecycle events are published on.
func WithEventBus(b *event.Bus) Option {
	return func(w *World) { w.bus = b }
}

// WithContext sets the context carried into log calls.
func WithContext(ctx context.Context) Option {
	return func(w *World) { w.ctx = ctx }
}

// WithRand replaces the random source seeded from the config.
func WithRand(r *rng.Source) Option {
	return func(w *World) { w.rand = r }
}

// NewWorld builds a world from cfg, spawns the drone if enabled and starts
// the first wave.
func NewWorld(cfg *config.Config, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w := &World{
		cfg:      cfg,
		ctx:      context.Background(),
		sink:     telemetry.NewSink(),
		bodies:   make(map[entity.ID]*entity.Body),
		entities: make(map[entity.ID]ecs.BasicEntity),
		screen:   cfg.ScreenGeometry(),
		dt:       cfg.Simulation.DT,
		debug:    cfg.Simulation.Debug,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logging.Discard()
	}
	if w.bus == nil {
		w.bus = event.NewEventBus()
	}
	if w.rand == nil {
		w.rand = rng.New(cfg.Simulation.Seed)
	}

	w.initSystems()

	if cfg.Drone.Enabled {
		if _, err := w.SpawnDrone(physics.MaybeVector{}); err != nil {
			return nil, logging.WrapError(err, "spawning drone")
		}
	}
	if err := w.startWave(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *World) initSystems() {
	w.systems = &ecs.World{}
	w.control = &ControlSystem{world: w}
	w.motion = &MotionSystem{world: w}
	w.collision = &CollisionSystem{world: w}
	w.lifecycle = &LifecycleSystem{world: w}
	w.collision.resize(w.screen)

	w.systems.AddSystem(w.control)
	w.systems.AddSystem(w.motion)
	w.systems.AddSystem(w.collision)
	w.systems.AddSystem(w.lifecycle)
}

// Step advances the world by dt seconds. commands may be nil for a run
// without player input.
func (w *World) Step(dt float64, commands input.Oracle) {
	w.dt = dt
	w.oracle = commands
	w.systems.Update(float32(dt))
	w.tick++
	w.elapsed += dt
}

// SpawnAsteroid adds an asteroid of the given level. Without a placement it
// enters from a random screen edge, otherwise it starts at the placement
// with a random heading.
func (w *World) SpawnAsteroid(level int, placement physics.MaybeVector) (*entity.Body, error) {
	basic := ecs.NewBasic()
	b, err := entity.NewAsteroid(entity.ID(basic.ID()), w.cfg.Asteroid, level, placement.Value, w.rand.Angle())
	if err != nil {
		return nil, err
	}
	if b.Dead() {
		return nil, fmt.Errorf("asteroid level %d cannot be spawned", level)
	}
	b.Collider.Group = AsteroidGroup

	m := b.Kinematics
	if placement.Valid {
		speed := m.SpeedLimit().Maximum() * w.rand.Float(0.25, 0.75)
		m.SetVelocity(physics.FromAngle(w.rand.Angle(), speed))
		m.AngularSpeedLimit().IncrementBy(physics.SpinNudge(m.AngularSpeedLimit(), w.rand))
	} else {
		m.Respawn(b.Collider.Dimensions, w.screen, w.rand)
	}

	w.add(basic, b)
	return b, nil
}

// SpawnDrone adds a player-steered drone, by default in the middle of the
// screen facing up.
func (w *World) SpawnDrone(placement physics.MaybeVector) (*entity.Body, error) {
	basic := ecs.NewBasic()
	pos := placement.Or(w.screen.Center())
	b, err := entity.NewDrone(entity.ID(basic.ID()), w.cfg.Drone.DroneConfig, pos, -halfPi)
	if err != nil {
		return nil, err
	}
	w.add(basic, b)
	return b, nil
}

// EmitBurst throws count particles out of at in random directions.
func (w *World) EmitBurst(at physics.Vector2D, count int) []*entity.Body {
	out := make([]*entity.Body, 0, count)
	for i := 0; i < count; i++ {
		basic := ecs.NewBasic()
		velocity := physics.FromAngle(w.rand.Angle(), w.cfg.Burst.Speed*w.rand.Float(0.3, 1))
		b, err := entity.NewParticle(entity.ID(basic.ID()), w.cfg.Particle, at, velocity)
		if err != nil {
			w.logger.Error(w.ctx, "particle rejected", err)
			return out
		}
		b.Collider.Group = ParticleGroup
		w.add(basic, b)
		out = append(out, b)
	}
	return out
}

func (w *World) add(basic ecs.BasicEntity, b *entity.Body) {
	w.bodies[b.ID] = b
	w.entities[b.ID] = basic
	w.motion.Add(b)
	w.collision.Add(b)

	w.bus.Publish(event.NewBodyEvent(event.BodySpawned, w, uint64(b.ID), b.Kind().String()))
	w.logger.Debug(w.ctx, "body spawned", "body_id", uint64(b.ID), "kind", b.Kind().String(),
		"x", b.Position().X, "y", b.Position().Y)
}

func (w *World) remove(b *entity.Body) {
	basic, ok := w.entities[b.ID]
	if !ok {
		return
	}
	delete(w.bodies, b.ID)
	delete(w.entities, b.ID)
	w.systems.RemoveEntity(basic)

	w.bus.Publish(event.NewBodyEvent(event.BodyDied, w, uint64(b.ID), b.Kind().String()))
	w.logger.Debug(w.ctx, "body removed", "body_id", uint64(b.ID), "kind", b.Kind().String())
}

func (w *World) startWave() error {
	if w.cfg.Waves.InitialAsteroids == 0 {
		return nil
	}
	w.wave++
	count := w.cfg.Waves.InitialAsteroids + w.cfg.Waves.Growth*(w.wave-1)
	for i := 0; i < count; i++ {
		if _, err := w.SpawnAsteroid(w.cfg.Waves.Level, physics.MaybeVector{}); err != nil {
			return logging.WrapError(err, "starting wave %d", w.wave)
		}
	}
	w.bus.Publish(event.NewWaveEvent(w, w.wave, count))
	w.logger.Info(w.ctx, "wave started", "wave", w.wave, "asteroids", count)
	return nil
}

func (w *World) award(points int) {
	if points == 0 {
		return
	}
	w.score += points
	w.bus.Publish(event.NewScoreEvent(w, points, w.score))
}

// Bodies returns the live bodies in spawn order.
func (w *World) Bodies() []*entity.Body {
	out := make([]*entity.Body, len(w.motion.bodies))
	copy(out, w.motion.bodies)
	return out
}

// Body looks a body up by ID.
func (w *World) Body(id entity.ID) (*entity.Body, bool) {
	b, ok := w.bodies[id]
	return b, ok
}

// Count returns how many live bodies are of kind k.
func (w *World) Count(k entity.Kind) int {
	n := 0
	for _, b := range w.motion.bodies {
		if b.Kind() == k && !b.Dead() {
			n++
		}
	}
	return n
}

// Score returns the accumulated asteroid value.
func (w *World) Score() int { return w.score }

// Tick returns the number of completed steps.
func (w *World) Tick() int { return w.tick }

// Elapsed returns the simulated time in seconds.
func (w *World) Elapsed() float64 { return w.elapsed }

// Wave returns the current wave number.
func (w *World) Wave() int { return w.wave }

// Events returns the lifecycle event bus.
func (w *World) Events() *event.Bus { return w.bus }

// Telemetry returns the debug vector sink. Drain it once per draw.
func (w *World) Telemetry() *telemetry.Sink { return w.sink }

// Debug reports whether bodies record debug vectors.
func (w *World) Debug() bool { return w.debug }

// SetDebug switches debug vector recording.
func (w *World) SetDebug(on bool) { w.debug = on }

// Screen returns the current screen geometry.
func (w *World) Screen() physics.Screen { return w.screen }

// SetScreen updates the screen geometry, for example after a window resize.
func (w *World) SetScreen(s physics.Screen) {
	if s.Width <= 0 || s.Height <= 0 || s == w.screen {
		return
	}
	w.screen = s
	w.collision.resize(s)
}

// Samples returns the state of every live body for CSV export.
func (w *World) Samples() []telemetry.BodySample {
	out := make([]telemetry.BodySample, 0, len(w.motion.bodies))
	for _, b := range w.motion.bodies {
		m := b.Kinematics
		out = append(out, telemetry.BodySample{
			Tick:            w.tick,
			BodyID:          uint64(b.ID),
			Kind:            b.Kind().String(),
			State:           b.State().String(),
			X:               m.Position().X,
			Y:               m.Position().Y,
			VX:              m.Velocity().X,
			VY:              m.Velocity().Y,
			Speed:           m.Speed(),
			Rotation:        m.Rotation(),
			AngularVelocity: m.AngularVelocity(),
		})
	}
	return out
}

// Summary returns the world-wide state after the last step.
func (w *World) Summary() telemetry.TickSummary {
	return telemetry.TickSummary{
		Tick:       w.tick,
		Elapsed:    w.elapsed,
		Bodies:     len(w.motion.bodies),
		Asteroids:  w.Count(entity.KindAsteroid),
		Particles:  w.Count(entity.KindParticle),
		Collisions: w.collision.lastCount,
		Score:      w.score,
	}
}
