package render

import (
	"fmt"
	"math"

	"github.com/san-kum/threebody/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// Viewport maps world coordinates onto a Width x Height pixel grid with y
// pointing up.
type Viewport struct {
	Min, Max      r2.Vec
	Width, Height int
}

// NewViewport fits the trajectory: each axis spans
// [max(min-pad, -limit), min(max+pad, limit)]. When the clamp leaves an
// empty window the unclamped padded range is used instead.
func NewViewport(h *dynamo.History, opts Options) (Viewport, error) {
	lo, hi := h.Bounds()
	for _, v := range []float64{lo.X, lo.Y, hi.X, hi.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Viewport{}, fmt.Errorf("trajectory bounds are not finite: %v %v", lo, hi)
		}
	}
	xMin, xMax := axisWindow(lo.X, hi.X, opts.Padding, opts.ViewLimit)
	yMin, yMax := axisWindow(lo.Y, hi.Y, opts.Padding, opts.ViewLimit)
	return Viewport{
		Min:    r2.Vec{X: xMin, Y: yMin},
		Max:    r2.Vec{X: xMax, Y: yMax},
		Width:  opts.Width,
		Height: opts.Height,
	}, nil
}

func axisWindow(lo, hi, pad, limit float64) (float64, float64) {
	a := math.Max(lo-pad, -limit)
	b := math.Min(hi+pad, limit)
	if a < b {
		return a, b
	}
	a, b = lo-pad, hi+pad
	if a >= b {
		a, b = lo-1, hi+1
	}
	return a, b
}

// Project returns pixel coordinates for a world position.
func (v Viewport) Project(p r2.Vec) (float32, float32) {
	x := (p.X - v.Min.X) / (v.Max.X - v.Min.X) * float64(v.Width)
	y := float64(v.Height) - (p.Y-v.Min.Y)/(v.Max.Y-v.Min.Y)*float64(v.Height)
	return float32(x), float32(y)
}

// Contains reports whether p lies inside the window.
func (v Viewport) Contains(p r2.Vec) bool {
	return p.X >= v.Min.X && p.X <= v.Max.X && p.Y >= v.Min.Y && p.Y <= v.Max.Y
}
