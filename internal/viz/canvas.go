package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille cells hold 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
const brailleBase = 0x2800

var dotMask = [4][2]uint8{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells addressed in dots. Each cell remembers
// the last ink that touched it so the grid can be coloured per body.
type Canvas struct {
	Width, Height int
	cells         [][]uint8
	ink           [][]int8
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		cells:  make([][]uint8, h),
		ink:    make([][]int8, h),
	}
	for i := range c.cells {
		c.cells[i] = make([]uint8, w)
		c.ink[i] = make([]int8, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) cell(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return row, col, true
}

// Set turns on the dot at (x, y) with the given ink. Dots outside the
// canvas are ignored.
func (c *Canvas) Set(x, y, ink int) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.cells[row][col] |= dotMask[y%4][x%2]
	c.ink[row][col] = int8(ink)
}

func (c *Canvas) Unset(x, y int) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.cells[row][col] &^= dotMask[y%4][x%2]
	if c.cells[row][col] == 0 {
		c.ink[row][col] = -1
	}
}

// IsSet reports whether the dot at (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	row, col, ok := c.cell(x, y)
	return ok && c.cells[row][col]&dotMask[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		for j := range c.cells[i] {
			c.cells[i][j] = 0
			c.ink[i][j] = -1
		}
	}
}

// Line draws with Bresenham's algorithm. The segment is clipped to the
// canvas first, so far off-screen endpoints cost nothing.
func (c *Canvas) Line(x0, y0, x1, y1, ink int) {
	x0, y0, x1, y1, ok := c.clip(x0, y0, x1, y1)
	if !ok {
		return
	}
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, ink)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Dot fills a square of side 2r+1 centred on (x, y).
func (c *Canvas) Dot(x, y, r, ink int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			c.Set(x+dx, y+dy, ink)
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.cells {
		for _, m := range row {
			b.WriteRune(rune(brailleBase + int(m)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Styled renders the canvas with styles indexed by ink. Cells without a
// matching style are written plain.
func (c *Canvas) Styled(styles []lipgloss.Style) string {
	var b strings.Builder
	for i, row := range c.cells {
		for j, m := range row {
			r := string(rune(brailleBase + int(m)))
			if ink := int(c.ink[i][j]); m != 0 && ink >= 0 && ink < len(styles) {
				r = styles[ink].Render(r)
			}
			b.WriteString(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// clip cuts the segment to the dot area with Liang-Barsky. It reports
// false when no part of the segment is visible.
func (c *Canvas) clip(x0, y0, x1, y1 int) (int, int, int, int, bool) {
	w, h := c.Dots()
	if w == 0 || h == 0 {
		return 0, 0, 0, 0, false
	}
	inside := func(x, y int) bool { return x >= 0 && y >= 0 && x < w && y < h }
	if inside(x0, y0) && inside(x1, y1) {
		return x0, y0, x1, y1, true
	}

	fx0, fy0 := float64(x0), float64(y0)
	dx, dy := float64(x1)-fx0, float64(y1)-fy0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, fx0},
		{dx, float64(w-1) - fx0},
		{-dy, fy0},
		{dy, float64(h-1) - fy0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}

	ax, ay := int(math.Round(fx0+t0*dx)), int(math.Round(fy0+t0*dy))
	bx, by := int(math.Round(fx0+t1*dx)), int(math.Round(fy0+t1*dy))
	return ax, ay, bx, by, true
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
