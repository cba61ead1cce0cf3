//go:build ebiten

package app

import (
	"context"
	"image/color"
	"time"

	"droidlife/internal/driver"
	"droidlife/internal/render"
	"droidlife/internal/ui"
	"droidlife/pkg/sims/life"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var (
	liveColor = color.RGBA{R: 120, G: 220, B: 120, A: 255}
	deadColor = color.Black
)

// Game adapts a Driver to the ebiten.Game interface.
type Game struct {
	ctx    context.Context
	cfg    *Config
	driver *driver.Driver

	painter *render.GridPainter
	status  *ui.StatusBar

	seed int64
}

// New constructs a Game for the provided driver. ctx bounds the step loop.
func New(ctx context.Context, cfg *Config, d *driver.Driver) *Game {
	g := &Game{
		ctx:      ctx,
		cfg:      cfg,
		driver:   d,
		status:   ui.NewStatusBar(cfg.Width),
		seed:     cfg.Seed,
	}
	d.Refresh()
	return g
}

// Reseed stops the loop, seeds a new World and restarts if it was running.
func (g *Game) Reseed(seed int64) error {
	running := g.driver.IsRunning()
	g.driver.Stop()
	s, err := g.cfg.Seeder(seed)
	if err != nil {
		return err
	}
	if err := g.driver.Seed(s); err != nil {
		return err
	}
	g.seed = seed
	g.painter = nil
	if running {
		return g.driver.Start(g.ctx)
	}
	return nil
}

// Update handles input and drains driver events into the status bar.
func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		g.driver.Stop()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.driver.Stop()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.driver.IsRunning() {
			g.driver.Stop()
		} else if err := g.driver.Start(g.ctx); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) && !g.driver.IsRunning() {
		if err := g.driver.Step(); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.Reseed(g.seed); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := g.Reseed(time.Now().UnixNano()); err != nil {
			return err
		}
	}

drain:
	for {
		select {
		case ev := <-g.driver.Events():
			g.status.Status.Apply(ev)
		default:
			break drain
		}
	}
	return nil
}

// Draw renders the grid under the step lock, then the status bar.
func (g *Game) Draw(screen *ebiten.Image) {
	rows := 0
	g.driver.View(func(w *life.World) {
		if g.painter == nil {
		if g.painter == nil || g.painter.Size() != w.Size() {
			g.painter = render.NewGridPainter(w.Width(), w.Height(), liveColor, deadColor)
		}
		g.painter.Blit(screen, w.Cells(), w.CellSize())
		rows = w.Height() * w.CellSize()
	})
	if rows == 0 {
		rows = g.cfg.Height
	}
	g.status.Draw(screen, rows)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height + ui.StatusBarHeight
}
