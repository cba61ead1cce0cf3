package render

import "image/color"

// palette holds the RGBA byte quads for live and dead cells, resolved once
// so the per-frame fill is a plain copy.
type palette struct {
	live, dead [4]byte
}

func newPalette(live, dead color.Color) palette {
	return palette{live: rgbaQuad(live), dead: rgbaQuad(dead)}
}

func rgbaQuad(c color.Color) [4]byte {
	n := color.RGBAModel.Convert(c).(color.RGBA)
	return [4]byte{n.R, n.G, n.B, n.A}
}

// fill writes one pixel per cell into buf. It reports false, leaving buf
// untouched, when buf cannot hold every cell.
func (p palette) fill(buf []byte, cells []uint8) bool {
	if len(buf) < 4*len(cells) {
		return false
	}
	for i, c := range cells {
		q := &p.dead
		if c != 0 {
			q = &p.live
		}
		copy(buf[4*i:4*i+4], q[:])
	}
	return true
}
