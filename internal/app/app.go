//go:build ebiten

package app

import (
	"image/color"
	"log"

	"cellmachine/internal/core"
	"cellmachine/internal/random"
	"cellmachine/internal/render"
	"cellmachine/internal/ui"
	"cellmachine/pkg/sims/life"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// HUDWidth is the width of the parameter panel in pixels.
const HUDWidth = 260

// Game adapts a Life simulation to the ebiten.Game interface.
type Game struct {
	sim     *life.Life
	painter *render.GridPainter
	hud     *ui.HUD
	clock   *core.FrameClock

	onColor  color.Color
	offColor color.Color

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation. Playback advances one
// generation per frame delay of the simulation's options.
func New(sim *life.Life) *Game {
	opts := sim.Options()
	size := sim.Size()
	return &Game{
		sim:      sim,
		painter:  render.NewGridPainter(size.W, size.H),
		hud:      ui.NewHUD(HUDWidth),
		clock:    core.NewFrameClock(opts.DelayCS()),
		onColor:  opts.Palette().Alive(),
		offColor: opts.Palette().Dead(),
		scale:    opts.Dimensions().Scale,
		seed:     opts.RandomSeed(),
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	if err := g.sim.Reset(seed); err != nil {
		log.Printf("reset: %v", err)
		return
	}
	g.seed = seed
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		seed, err := random.NewSeed()
		if err != nil {
			return err
		}
		g.Reset(seed)
	}

	due := g.clock.ShouldAdvance()
	if (!g.paused && due) || g.tickOnce {
		if err := g.sim.Step(); err != nil {
			return err
		}
		g.tickOnce = false
	}
	g.hud.Update(g.sim)
	return nil
}

// Draw renders the current simulation state and the parameter panel.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.onColor, g.offColor, g.scale)
	s := g.sim.Size()
	g.hud.Draw(screen, s.W*g.scale, s.H*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
