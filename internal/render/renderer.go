//go:build ebiten

package render

import (
	"image/color"

	"droidlife/pkg/core"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads a World's cells into one image per frame and draws it
// scaled by the cell size.
type GridPainter struct {
	size   core.Size
	colors palette
	img    *ebiten.Image
	buf    []byte
}

// NewGridPainter allocates a painter for a w*h grid drawn with the given
// live and dead colors.
func NewGridPainter(w, h int, live, dead color.Color) *GridPainter {
	return &GridPainter{
		size:   core.Size{W: w, H: h},
		colors: newPalette(live, dead),
		img:    ebiten.NewImage(w, h),
		buf:    make([]byte, 4*w*h),
	}
}

// Blit uploads cells into the painter image and draws it onto dst. Cells
// that do not match the painter size are ignored.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8, cellSize int) {
	if len(cells) != gp.size.W*gp.size.H || !gp.colors.fill(gp.buf, cells) {
		return
	}
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(cellSize), float64(cellSize))
	dst.DrawImage(gp.img, op)
}

// Size returns the grid dimensions the painter was built for.
func (gp *GridPainter) Size() core.Size { return gp.size }
