//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	// StatusBarHeight is the pixel height reserved below the grid.
	StatusBarHeight = 36

	panelPadding = 6
	lineHeight   = 14
)

// StatusBar draws a Status strip anchored below the simulation view.
type StatusBar struct {
	Status Status

	width int
	panel *ebiten.Image
}

// NewStatusBar constructs a status bar for a view of the given width.
func NewStatusBar(width int) *StatusBar {
	if width < 1 {
		width = 1
	}
	return &StatusBar{width: width}
}

// Draw paints the bar at vertical offset y.
func (b *StatusBar) Draw(screen *ebiten.Image, y int) {
	if b.panel == nil {
		b.panel = ebiten.NewImage(b.width, StatusBarHeight)
	}
	b.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	face := basicfont.Face7x13
	for i, line := range b.Status.Lines() {
		fg := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if i > 0 {
			fg = color.RGBA{R: 160, G: 160, B: 170, A: 255}
		}
		text.Draw(b.panel, line, face, panelPadding, panelPadding+lineHeight*(i+1)-3, fg)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, float64(y))
	screen.DrawImage(b.panel, op)
}
