// pkg/render/engo/scene.go
package engo

import (
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/engine"
	"github.com/opd-ai/go-asteroids/pkg/logging"
	"github.com/opd-ai/go-asteroids/pkg/physics"
	"github.com/opd-ai/go-asteroids/pkg/render"
)

// MaxStepsPerFrame bounds the catch-up after a slow frame.
const MaxStepsPerFrame = 5

// SimulationScene runs the simulation in an engo window.
type SimulationScene struct {
	cfg    *config.Config
	ctx    context.Context
	logger *logging.Logger

	world    *engine.World
	renderer *EngoRenderer
	hud      *HUDSystem
}

// NewSimulationScene creates the scene. The world is built in Setup.
func NewSimulationScene(ctx context.Context, cfg *config.Config, logger *logging.Logger) *SimulationScene {
	if logger == nil {
		logger = logging.Discard()
	}
	return &SimulationScene{cfg: cfg, ctx: ctx, logger: logger}
}

// Type returns the scene type (required by Engo)
func (scene *SimulationScene) Type() string {
	return "AsteroidsScene"
}

// Preload loads the HUD font when one is configured.
func (scene *SimulationScene) Preload() {
	if scene.cfg.Screen.Font == "" {
		return
	}
	if err := engo.Files.Load(scene.cfg.Screen.Font); err != nil {
		scene.logger.Error(scene.ctx, "loading HUD font failed", err, "font", scene.cfg.Screen.Font)
	}
}

// Setup is called when the scene starts (required by Engo)
func (scene *SimulationScene) Setup(u engo.Updater) {
	w, ok := u.(*ecs.World)
	if !ok {
		panic("engo updater is not an *ecs.World")
	}
	common.SetBackground(color.Black)
	SetupInputBindings()

	world, err := engine.NewWorld(scene.cfg,
		engine.WithLogger(scene.logger),
		engine.WithContext(scene.ctx),
	)
	if err != nil {
		panic("Failed to create world: " + err.Error())
	}
	scene.world = world

	renderSystem := &common.RenderSystem{}
	w.AddSystem(renderSystem)

	assets := NewAssetManager()
	if err := assets.LoadAssets(); err != nil {
		panic("Failed to load assets: " + err.Error())
	}
	scene.renderer = NewEngoRenderer(renderSystem, assets)

	scene.hud = NewHUDSystem(scene.loadFont())
	scene.hud.Attach(renderSystem)
	w.AddSystem(scene.hud)

	w.AddSystem(&SimulationSystem{
		world:    world,
		renderer: scene.renderer,
		hud:      scene.hud,
		step:     scene.cfg.Simulation.DT,
		ctx:      scene.ctx,
		logger:   scene.logger,
	})

	scene.logger.Info(scene.ctx, "scene ready",
		"width", scene.cfg.Screen.Width,
		"height", scene.cfg.Screen.Height,
		"seed", scene.cfg.Simulation.Seed,
	)
}

func (scene *SimulationScene) loadFont() *common.Font {
	if scene.cfg.Screen.Font == "" {
		return nil
	}
	font := &common.Font{URL: scene.cfg.Screen.Font, FG: color.White, Size: 16}
	if err := font.CreatePreloaded(); err != nil {
		scene.logger.Error(scene.ctx, "preparing HUD font failed", err, "font", scene.cfg.Screen.Font)
		return nil
	}
	return font
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *SimulationScene) Exit() {
	if scene.world == nil {
		return
	}
	scene.logger.Info(scene.ctx, "scene closed",
		"ticks", scene.world.Tick(),
		"score", scene.world.Score(),
		"wave", scene.world.Wave(),
	)
}

// Run opens the window and blocks until it is closed.
func Run(ctx context.Context, cfg *config.Config, logger *logging.Logger) {
	engo.Run(engo.RunOptions{
		Title:    cfg.Screen.Title,
		Width:    cfg.Screen.Width,
		Height:   cfg.Screen.Height,
		FPSLimit: cfg.Screen.TargetFPS,
	}, NewSimulationScene(ctx, cfg, logger))
}

// SimulationSystem steps the world at a fixed rate and hands each frame to
// the renderer.
type SimulationSystem struct {
	world    *engine.World
	renderer *EngoRenderer
	hud      *HUDSystem

	step        float64
	accumulator float64
	edges       edgeLatch

	ctx    context.Context
	logger *logging.Logger
}

// Remove satisfies the ecs.System interface
func (s *SimulationSystem) Remove(ecs.BasicEntity) {}

// Update implements ecs.System.
func (s *SimulationSystem) Update(dt float32) {
	if engo.Input.Button(QuitButton).JustPressed() {
		engo.Exit()
		return
	}
	s.world.SetScreen(physics.Screen{
		Width:  float64(engo.GameWidth()),
		Height: float64(engo.GameHeight()),
	})

	keyboard := KeyboardOracle{}
	s.edges.Observe(keyboard)

	var steps int
	steps, s.accumulator = FixedSteps(s.accumulator+float64(dt), s.step, MaxStepsPerFrame)
	if steps > 0 {
		oracle := s.edges.Take(keyboard)
		for i := 0; i < steps; i++ {
			s.world.Step(s.step, oracle)
			oracle = heldOnly{oracle}
		}
	}

	if err := render.Frame(s.renderer, s.world.Bodies(), s.world.Telemetry().Drain()); err != nil {
		s.logger.Error(s.ctx, "render failed", err)
	}
	s.hud.UpdateState(s.world.Summary(), s.world.Wave(), s.world.Debug())
}

// FixedSteps splits accumulated time into whole steps. When more than
// maxSteps are due the backlog is dropped.
func FixedSteps(accumulated, step float64, maxSteps int) (int, float64) {
	if step <= 0 || accumulated < step {
		return 0, max(accumulated, 0)
	}
	n := int(accumulated / step)
	if n > maxSteps {
		return maxSteps, 0
	}
	return n, accumulated - float64(n)*step
}
