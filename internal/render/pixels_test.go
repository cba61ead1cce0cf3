package render

import (
	"image/color"
	"slices"
	"testing"
)

func TestPaletteFill(t *testing.T) {
	p := newPalette(color.RGBA{R: 10, G: 200, B: 30, A: 255}, color.Black)
	cells := []uint8{1, 0, 1}
	buf := make([]byte, 4*len(cells))
	if !p.fill(buf, cells) {
		t.Fatal("fill rejected a buffer of the right size")
	}

	want := []byte{
		10, 200, 30, 255,
		0, 0, 0, 255,
		10, 200, 30, 255,
	}
	if !slices.Equal(buf, want) {
		t.Fatalf("buf=%v, expected %v", buf, want)
	}
}

func TestPaletteResolvesColorModels(t *testing.T) {
	p := newPalette(color.Gray{Y: 90}, color.NRGBA{R: 255, A: 128})
	if p.live != [4]byte{90, 90, 90, 255} {
		t.Fatalf("live=%v", p.live)
	}
	// Premultiplied: half-transparent red.
	if p.dead != [4]byte{128, 0, 0, 128} {
		t.Fatalf("dead=%v", p.dead)
	}
}

func TestPaletteFillShortBuffer(t *testing.T) {
	p := newPalette(color.White, color.Black)
	buf := []byte{7, 7, 7, 7}
	if p.fill(buf, []uint8{1, 1}) {
		t.Fatal("fill should reject a buffer smaller than the grid")
	}
	if !slices.Equal(buf, []byte{7, 7, 7, 7}) {
		t.Fatalf("short buffer was modified: %v", buf)
	}
}
