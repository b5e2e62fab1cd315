package viz

import (
	"strings"

	"github.com/jbeda/geom"
)

// brailleBase is the empty braille pattern U+2800. Each cell holds a 2x4
// grid of dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
const brailleBase = 0x2800

var dotBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a monochrome dot raster drawn with braille characters. Dot
// coordinates run from (0, 0) at the top left to (DotsX()-1, DotsY()-1).
type Canvas struct {
	Width, Height int
	cells         []uint8
}

func NewCanvas(w, h int) *Canvas {
	return &Canvas{Width: w, Height: h, cells: make([]uint8, w*h)}
}

func (c *Canvas) DotsX() int { return c.Width * 2 }
func (c *Canvas) DotsY() int { return c.Height * 4 }

// Set turns on the dot at (x, y). Dots outside the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.DotsX() || y >= c.DotsY() {
		return
	}
	c.cells[(y/4)*c.Width+x/2] |= dotBits[y%4][x%2]
}

// IsSet reports whether the dot at (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x >= c.DotsX() || y >= c.DotsY() {
		return false
	}
	return c.cells[(y/4)*c.Width+x/2]&dotBits[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	clear(c.cells)
}

// DrawLine sets every dot on the Bresenham line from (x0, y0) to (x1, y1).
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), -absInt(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Line draws between two points given in dot space, rounding to the
// nearest dot.
func (c *Canvas) Line(a, b geom.Coord) {
	c.DrawLine(round(a.X), round(a.Y), round(b.X), round(b.Y))
}

// Disc sets the dots within r of p.
func (c *Canvas) Disc(p geom.Coord, r float64) {
	cx, cy, ir := round(p.X), round(p.Y), int(r+0.5)
	for y := -ir; y <= ir; y++ {
		for x := -ir; x <= ir; x++ {
			if float64(x*x+y*y) <= r*r+0.5 {
				c.Set(cx+x, cy+y)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(c.Height * (c.Width*3 + 1))
	for row := 0; row < c.Height; row++ {
		for _, cell := range c.cells[row*c.Width : (row+1)*c.Width] {
			b.WriteRune(rune(brailleBase + int(cell)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func round(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
