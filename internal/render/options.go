package render

import (
	"math"

	"github.com/san-kum/threebody/internal/dynamo"
)

// Options configure a render Context.
type Options struct {
	Width  int
	Height int
	FPS    int
	// Stride draws every Stride-th step.
	Stride int
	// ArrowScale is pixels per display unit of force.
	ArrowScale float64
	// MaxArrow is the display magnitude above which force vectors are clamped.
	MaxArrow float64
	// Trail is the number of past snapshots drawn behind each body.
	Trail int
	// ViewLimit bounds the visible window to [-ViewLimit, ViewLimit].
	ViewLimit float64
	// Padding is added around the trajectory bounds, in world units.
	Padding    float64
	BodyRadius float64
	Caption    bool
}

func DefaultOptions() Options {
	return Options{
		Width:      480,
		Height:     480,
		FPS:        30,
		Stride:     1,
		ArrowScale: 20,
		MaxArrow:   2,
		Trail:      60,
		ViewLimit:  300,
		Padding:    1,
		BodyRadius: 5,
		Caption:    true,
	}
}

func (o Options) Validate() error {
	switch {
	case o.Width <= 0:
		return dynamo.InvalidParameter("width", float64(o.Width), "must be positive")
	case o.Height <= 0:
		return dynamo.InvalidParameter("height", float64(o.Height), "must be positive")
	case o.FPS <= 0:
		return dynamo.InvalidParameter("fps", float64(o.FPS), "must be positive")
	case o.Stride <= 0:
		return dynamo.InvalidParameter("stride", float64(o.Stride), "must be positive")
	case o.MaxArrow <= 0 || math.IsNaN(o.MaxArrow):
		return dynamo.InvalidParameter("max_arrow", o.MaxArrow, "must be positive")
	case o.ArrowScale < 0 || math.IsNaN(o.ArrowScale):
		return dynamo.InvalidParameter("arrow_scale", o.ArrowScale, "must not be negative")
	case o.Trail < 0:
		return dynamo.InvalidParameter("trail", float64(o.Trail), "must not be negative")
	case o.ViewLimit <= 0 || math.IsNaN(o.ViewLimit):
		return dynamo.InvalidParameter("view_limit", o.ViewLimit, "must be positive")
	case o.Padding < 0 || math.IsNaN(o.Padding):
		return dynamo.InvalidParameter("padding", o.Padding, "must not be negative")
	}
	return nil
}

// Delay is the per-frame delay in 100ths of a second.
func (o Options) Delay() int {
	d := int(math.Round(100 / float64(o.FPS)))
	if d < 1 {
		d = 1
	}
	return d
}

// FrameSteps lists the history steps that become frames.
func (o Options) FrameSteps(steps int) []int {
	if steps == 0 {
		return []int{0}
	}
	stride := o.Stride
	if stride < 1 {
		stride = 1
	}
	out := make([]int, 0, (steps+stride-1)/stride)
	for k := 0; k < steps; k += stride {
		out = append(out, k)
	}
	return out
}
