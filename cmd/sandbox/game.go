package main

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/ecs/entity"
	"github.com/milk9111/tilephysics/ecs/system"
	"github.com/milk9111/tilephysics/levels"
	"github.com/milk9111/tilephysics/prefabs"
	"golang.design/x/clipboard"
)

const (
	screenWidth  = 480
	screenHeight = 272
)

var background = color.RGBA{R: 18, G: 20, B: 28, A: 255}

type Options struct {
	Level  string
	Config string
	Debug  bool
	Watch  bool
}

type Game struct {
	opts   Options
	cfg    prefabs.PhysicsConfig
	paused bool

	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	hazards   *system.HazardSystem
	behaviors *system.BehaviorSystem

	watcher   *prefabs.Watcher
	clipboard bool
}

func NewGame(opts Options) (*Game, error) {
	cfg, err := prefabs.LoadPhysicsConfig(opts.Config)
	if err != nil {
		return nil, err
	}

	g := &Game{
		opts:      opts,
		cfg:       cfg,
		physics:   system.NewPhysicsSystem(cfg),
		hazards:   system.NewHazardSystem(cfg),
		behaviors: system.NewBehaviorSystem(),
	}
	ebiten.SetTPS(cfg.TicksPerSecond)

	if err := g.loadLevel(); err != nil {
		return nil, err
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("sandbox: clipboard unavailable: %v", err)
	} else {
		g.clipboard = true
	}

	if opts.Watch {
		g.startWatcher()
	}
	return g, nil
}

// loadLevel rebuilds the world from scratch. The physics system is rebuilt
// too so no body of the old world stays registered.
func (g *Game) loadLevel() error {
	lvl, err := levels.Load(g.opts.Level)
	if err != nil {
		return err
	}

	world := ecs.NewWorld()
	if _, err := entity.LoadLevelToWorld(world, lvl); err != nil {
		return fmt.Errorf("sandbox: load level %q: %w", g.opts.Level, err)
	}
	g.physics = system.NewPhysicsSystem(g.cfg)
	g.behaviors.Reload()

	g.world = world
	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewPlayerControllerSystem(),
		g.behaviors,
		g.physics,
		g.hazards,
		system.NewRespawnSystem(),
	)
	log.Printf("sandbox: loaded level %q (%dx%d)", g.opts.Level, lvl.Width, lvl.Height)
	return nil
}

func (g *Game) startWatcher() {
	var dirs []string
	for _, dir := range []string{"prefabs", filepath.Join("prefabs", "scripts"), "levels"} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		log.Printf("sandbox: watch disabled: %v", err)
		return
	}
	g.watcher = w
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.drainReloads()

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF1):
		g.opts.Debug = !g.opts.Debug
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.reloadLevel()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copySnapshot()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	}

	if g.paused && !inpututil.IsKeyJustPressed(ebiten.KeyN) {
		return nil
	}
	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) drainReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("sandbox: watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(path string) {
	switch {
	case filepath.Base(path) == filepath.Base(g.opts.Config):
		cfg, err := prefabs.LoadPhysicsConfig(g.opts.Config)
		if err != nil {
			log.Printf("sandbox: keep previous config: %v", err)
			return
		}
		g.cfg = cfg
		g.physics.ApplyConfig(cfg)
		g.hazards.ApplyConfig(cfg)
		ebiten.SetTPS(cfg.TicksPerSecond)
		log.Printf("sandbox: reloaded %s", path)
	case prefabs.IsScript(path):
		g.behaviors.Reload()
		log.Printf("sandbox: reloaded %s", path)
	default:
		g.reloadLevel()
	}
}

func (g *Game) reloadLevel() {
	if err := g.loadLevel(); err != nil {
		log.Printf("sandbox: reload: %v", err)
	}
}

func (g *Game) copySnapshot() {
	data, err := system.SnapshotYAML(g.world)
	if err != nil {
		log.Printf("sandbox: snapshot: %v", err)
		return
	}
	if !g.clipboard {
		fmt.Print(string(data))
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	log.Printf("sandbox: copied %d bytes of world state", len(data))
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	view := system.FollowPlayer(g.world, screenWidth, screenHeight, 1)
	system.DrawLevel(g.world, screen, view)
	system.DrawPhysicsDebug(g.world, g.physics.Engine(), screen, view)

	if g.opts.Debug {
		system.DrawPlayerStateDebug(g.world, screen)
	}
	status := fmt.Sprintf("TPS: %.0f  tick: %d", ebiten.ActualTPS(), g.scheduler.Ticks())
	if g.paused {
		status += "  [paused, N steps]"
	}
	ebitenutil.DebugPrintAt(screen, status, 10, screenHeight-16)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
