// Package game hosts the neuron network in an Ebitengine window: it feeds
// pointer input to the simulation, renders it every frame and exposes the
// tuning sliders.
package game

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/neuron-network/internal/config"
	"github.com/iburimskiy/neuron-network/internal/logging"
	"github.com/iburimskiy/neuron-network/internal/network"
)

var background = color.RGBA{R: 8, G: 10, B: 18, A: 255}

// Game implements ebiten.Game.
type Game struct {
	cfg *config.Config
	log *slog.Logger
	sim *network.Simulation

	// controls
	count       *slider
	distance    *slider
	connections *slider
	showPanel   bool

	input pointerInput
	audio pulse

	// input edge detection
	prevKey map[ebiten.Key]bool

	// state
	width, height int
	paused        bool
	last          network.FrameStats
	lastErr       error
	stopped       atomic.Bool
}

// New builds a game from cfg. The simulation starts at the configured
// window size and follows the window from then on.
func New(cfg *config.Config, log *slog.Logger) *Game {
	s := cfg.Network.Settings()
	g := &Game{
		cfg:       cfg,
		log:       log,
		sim:       network.New(s, float64(cfg.Window.Width), float64(cfg.Window.Height)),
		showPanel: cfg.Window.Controls,
		prevKey:   map[ebiten.Key]bool{},
		width:     cfg.Window.Width,
		height:    cfg.Window.Height,
	}
	g.count = newSlider("Points", 0, 0, config.MaxCount, s.Count)
	g.distance = newSlider("Distance", 1, 0, config.MaxDistance, int(s.MaxDistance))
	g.connections = newSlider("Connections", 2, 0, config.MaxConnections, s.MaxConnections)

	log.Info("network created",
		"points", len(g.sim.Points()),
		"max_distance", s.MaxDistance,
		"max_connections", s.MaxConnections)
	return g
}

// Simulation exposes the underlying network.
func (g *Game) Simulation() *network.Simulation { return g.sim }

// Stop ends the game loop at the next update.
func (g *Game) Stop() { g.stopped.Store(true) }

// Run opens the window and blocks until the window is closed, Stop is
// called or ctx is done.
func (g *Game) Run(ctx context.Context) error {
	ebiten.SetWindowSize(g.cfg.Window.Width, g.cfg.Window.Height)
	ebiten.SetWindowTitle(g.cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.cfg.Window.TPS)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			g.Stop()
		case <-done:
		}
	}()

	defer g.audio.stop()
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("running game: %w", err)
	}
	g.log.Info("stopped", "frames", g.sim.Frames())
	return nil
}

func (g *Game) Update() error {
	if g.stopped.Load() {
		return ebiten.Termination
	}

	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	g.input.apply(g.input.sample(g.width, g.height), g.sim.Pointer())

	if g.showPanel {
		g.updateSliders()
	}

	if justPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if justPressed(ebiten.KeyH) {
		g.showPanel = !g.showPanel
	}
	if justPressed(ebiten.KeyM) {
		g.audio.togglePause()
	}
	if justPressed(ebiten.KeyO) {
		g.setErr(g.openAudio())
	}
	if justPressed(ebiten.KeyP) {
		g.setErr(g.openPreset())
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.audio.tick(ebiten.TPS())
	return nil
}

func (g *Game) updateSliders() {
	mx, my := ebiten.CursorPosition()
	pressed := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	released := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)

	if v, changed := g.count.update(mx, my, pressed, released); changed {
		g.sim.SetCount(v)
		g.log.Debug("points regenerated", "count", v, "next_id", g.sim.NextID())
	}
	if v, changed := g.distance.update(mx, my, pressed, released); changed {
		g.sim.SetMaxDistance(float64(v))
	}
	if v, changed := g.connections.update(mx, my, pressed, released); changed {
		g.sim.SetMaxConnections(v)
	}
}

// Draw renders one frame of the network. Drawing, link reset and movement
// all happen here so every displayed frame is one simulation step.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	g.width, g.height = w, h
	g.sim.Resize(float64(w), float64(h))

	surface := &screenSurface{dst: screen, glowScale: g.audio.glowScale()}
	if g.paused {
		g.last = g.sim.Draw(surface)
		g.sim.Links().Reset()
	} else {
		g.last = g.sim.Step(surface)
	}
	g.logStats()

	if g.showPanel {
		g.count.draw(screen)
		g.distance.draw(screen)
		g.connections.draw(screen)
	}
	ebitenutil.DebugPrintAt(screen, g.status(), 12, 12)
	ebitenutil.DebugPrintAt(screen, keyHelp, 12, g.height-20)
}

// Layout follows the window so the canvas is resized every frame.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func (g *Game) logStats() {
	ctx := context.Background()
	g.log.Log(ctx, logging.LevelTrace, "frame",
		"frame", g.last.Frame,
		"links", g.last.Links,
		"pointer_lines", g.last.PointerLines)
	if g.last.Frame > 0 && g.last.Frame%config.StatsEvery == 0 {
		g.log.Debug("frame stats",
			"frame", g.last.Frame,
			"points", g.last.Points,
			"links", g.last.Links,
			"max_degree", g.last.MaxDegree,
			"tps", ebiten.ActualTPS(),
			"fps", ebiten.ActualFPS())
	}
}

// keyHelp is printed along the bottom edge.
const keyHelp = "drag sliders  H: controls  O: audio  M: mute  P: preset  Space: pause  Esc/Q: quit"

func (g *Game) status() string {
	status := fmt.Sprintf("points %d  links %d", g.last.Points, g.last.Links)
	if g.paused {
		status += "  [paused]"
	}
	if a := g.audio.status(); a != "" {
		status += " | " + a
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	return status
}

func (g *Game) setErr(err error) {
	if err == nil {
		return
	}
	g.lastErr = err
	g.log.Error("action failed", "error", err)
}

func (g *Game) openAudio() error {
	path, err := pickAudio()
	if err != nil || path == "" {
		return err
	}
	if err := g.audio.load(path); err != nil {
		return err
	}
	g.lastErr = nil
	g.log.Info("audio loaded", "path", path, "duration", g.audio.duration)
	return nil
}

func (g *Game) openPreset() error {
	path, err := pickPreset()
	if err != nil || path == "" {
		return err
	}
	preset, err := config.LoadFromFile(path)
	if err != nil {
		return err
	}
	g.applySettings(preset.Network.Settings())
	g.lastErr = nil
	g.log.Info("preset loaded", "path", path)
	return nil
}

// applySettings pushes s into the simulation and moves the sliders to match.
func (g *Game) applySettings(s network.Settings) {
	g.sim.Apply(s)
	g.count.set(s.Count)
	g.distance.set(int(s.MaxDistance))
	g.connections.set(s.MaxConnections)
}
