package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

type point struct{ X, Y float32 }

// fillPolygon rasterizes a closed polygon in a rasterizer sized to its
// bounding box, so small shapes stay cheap on large frames.
func (s *Surface) fillPolygon(pts []point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	r := image.Rect(
		int(math.Floor(float64(minX)))-1, int(math.Floor(float64(minY)))-1,
		int(math.Ceil(float64(maxX)))+1, int(math.Ceil(float64(maxY)))+1,
	).Intersect(s.Img.Bounds())
	if r.Empty() {
		return
	}

	ox, oy := float32(r.Min.X), float32(r.Min.Y)
	z := s.raster
	z.Reset(r.Dx(), r.Dy())
	z.MoveTo(pts[0].X-ox, pts[0].Y-oy)
	for _, p := range pts[1:] {
		z.LineTo(p.X-ox, p.Y-oy)
	}
	z.ClosePath()
	z.Draw(s.Img, r, image.NewUniform(c), image.Point{})
}

func (s *Surface) fillCircle(cx, cy, radius float32, c color.Color) {
	const segments = 24
	pts := make([]point, segments)
	for k := range pts {
		a := 2 * math.Pi * float64(k) / segments
		pts[k] = point{cx + radius*float32(math.Cos(a)), cy + radius*float32(math.Sin(a))}
	}
	s.fillPolygon(pts, c)
}

// strokeLine draws a segment of the given width as a quad.
func (s *Surface) strokeLine(x0, y0, x1, y1, width float32, c color.Color) {
	dx, dy := x1-x0, y1-y0
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	s.fillPolygon([]point{
		{x0 + nx, y0 + ny},
		{x1 + nx, y1 + ny},
		{x1 - nx, y1 - ny},
		{x0 - nx, y0 - ny},
	}, c)
}

// arrow draws a shaft from (x0,y0) along (dx,dy) with a triangular head.
func (s *Surface) arrow(x0, y0, dx, dy float32, c color.Color) {
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l < 1 {
		return
	}
	ux, uy := dx/l, dy/l
	head := min(float32(6), l/2)
	x1, y1 := x0+dx, y0+dy
	bx, by := x1-ux*head, y1-uy*head
	s.strokeLine(x0, y0, bx, by, 1.5, c)
	s.fillPolygon([]point{
		{x1, y1},
		{bx - uy*head/2, by + ux*head/2},
		{bx + uy*head/2, by - ux*head/2},
	}, c)
}

func (s *Surface) frame(c color.Color) {
	b := s.Img.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	s.strokeLine(0, 0.5, w, 0.5, 1, c)
	s.strokeLine(0, h-0.5, w, h-0.5, 1, c)
	s.strokeLine(0.5, 0, 0.5, h, 1, c)
	s.strokeLine(w-0.5, 0, w-0.5, h, 1, c)
}

func (s *Surface) caption(x, y int, text string, c color.Color) {
	d := font.Drawer{
		Dst:  s.Img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
