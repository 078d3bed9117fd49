package tui

import "sort"

type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m}
}

// dot bits indexed by [column][row] within a cell
var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/dotsX, mx%dotsX
	cy, ry := my/dotsY, my%dotsY
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= brailleBits[rx][ry]
}

// mask returns the dot mask of cell (cx, cy).
func (b *brailleBuf) mask(cx, cy int) uint8 { return b.m[cy][cx] }

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	// clip lines that cannot touch the grid; zoomed-in shapes may be huge
	if (x0 < 0 && x1 < 0) || (y0 < 0 && y1 < 0) ||
		(x0 >= b.w*dotsX && x1 >= b.w*dotsX) || (y0 >= b.h*dotsY && y1 >= b.h*dotsY) {
		return
	}
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawPath connects pts in order, closing the ring when closed is set.
func (b *brailleBuf) drawPath(pts [][2]int, closed bool) {
	if len(pts) == 1 {
		b.setPixel(pts[0][0], pts[0][1])
		return
	}
	for i := 0; i+1 < len(pts); i++ {
		b.drawLineMicro(pts[i][0], pts[i][1], pts[i+1][0], pts[i+1][1])
	}
	if closed && len(pts) > 2 {
		a, z := pts[0], pts[len(pts)-1]
		b.drawLineMicro(z[0], z[1], a[0], a[1])
	}
}

// fillPolygon fills a ring with the even-odd rule, one microgrid scanline at a time.
func (b *brailleBuf) fillPolygon(ring [][2]int) {
	if len(ring) < 3 {
		return
	}
	hMic := b.h * dotsY
	var xs []int
	for yMic := 0; yMic < hMic; yMic++ {
		xs = xs[:0]
		for i := 0; i < len(ring); i++ {
			a := ring[i]
			c := ring[(i+1)%len(ring)]
			if a[1] == c[1] { // horizontal edge: skip
				continue
			}
			y0, y1 := a[1], c[1]
			x0, x1 := a[0], c[0]
			if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
				t := float64(yMic-y0) / float64(y1-y0)
				xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for xMic := max(0, xs[i]); xMic <= min(xs[i+1], b.w*dotsX-1); xMic++ {
				b.setPixel(xMic, yMic)
			}
		}
	}
}
