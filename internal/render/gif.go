package render

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"io"
	"math"
	"os"

	"github.com/san-kum/threebody/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// Render draws one frame per selected step of h.
func Render(rc *Context, h *dynamo.History) (*gif.GIF, error) {
	if rc == nil {
		return nil, &dynamo.RenderError{Stage: dynamo.StageSetup, Wrapped: errors.New("nil render context")}
	}
	if h == nil {
		return nil, &dynamo.RenderError{Stage: dynamo.StageSetup, Wrapped: dynamo.ErrEmptyHistory}
	}
	if err := h.Validate(); err != nil {
		return nil, &dynamo.RenderError{Stage: dynamo.StageSetup, Wrapped: err}
	}
	vp, err := NewViewport(h, rc.opts)
	if err != nil {
		return nil, &dynamo.RenderError{Stage: dynamo.StageSetup, Wrapped: err}
	}

	steps := rc.opts.FrameSteps(h.Steps())
	anim := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(steps)),
		Delay:     make([]int, 0, len(steps)),
		LoopCount: 0,
		Config: image.Config{
			ColorModel: rc.palette,
			Width:      rc.opts.Width,
			Height:     rc.opts.Height,
		},
	}

	for _, k := range steps {
		img, err := rc.Frame(h, vp, k)
		if err != nil {
			return nil, &dynamo.RenderError{Stage: dynamo.StageRasterize, Wrapped: err}
		}
		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, rc.opts.Delay())
	}
	return anim, nil
}

// Frame draws step k of h.
func (rc *Context) Frame(h *dynamo.History, vp Viewport, k int) (*image.Paletted, error) {
	if k < 0 || k >= len(h.Positions[0]) {
		return nil, fmt.Errorf("step %d outside history of %d snapshots", k, len(h.Positions[0]))
	}
	pos, forces := h.Frame(k)

	s := rc.Acquire()
	defer rc.Release(s)

	s.frame(gridColor)
	if vp.Contains(r2.Vec{}) {
		ox, oy := vp.Project(r2.Vec{})
		s.strokeLine(ox-4, oy, ox+4, oy, 1, gridColor)
		s.strokeLine(ox, oy-4, ox, oy+4, 1, gridColor)
	}

	if rc.opts.Trail > 0 {
		start := max(0, k-rc.opts.Trail)
		for i := 0; i < dynamo.NumBodies; i++ {
			for j := start + 1; j <= k; j++ {
				x0, y0 := vp.Project(h.Positions[i][j-1])
				x1, y1 := vp.Project(h.Positions[i][j])
				age := float64(k-j) / float64(rc.opts.Trail)
				s.strokeLine(x0, y0, x1, y1, 1, rc.shade(i, 0.3+0.7*age))
			}
		}
	}

	radius := float32(rc.opts.BodyRadius)
	for i := 0; i < dynamo.NumBodies; i++ {
		x, y := vp.Project(pos[i])
		s.fillCircle(x, y, radius, rc.shade(i, 0))
	}

	if k < h.Steps() && rc.opts.ArrowScale > 0 {
		for i := 0; i < dynamo.NumBodies; i++ {
			f := forces[i]
			if math.IsNaN(f.X) || math.IsNaN(f.Y) || math.IsInf(f.X, 0) || math.IsInf(f.Y, 0) {
				return nil, fmt.Errorf("body %d: non-finite force %v at step %d", i, f, k)
			}
			d := ClampForce(f, rc.opts.MaxArrow)
			x, y := vp.Project(pos[i])
			scale := float32(rc.opts.ArrowScale)
			s.arrow(x, y, float32(d.X)*scale, -float32(d.Y)*scale, rc.shade(i, 0))
		}
	}

	if rc.opts.Caption {
		s.caption(6, 16, fmt.Sprintf("t = %.2f  step %d", h.Time(k), k), ink)
	}

	return rc.quantize(s), nil
}

type trackingWriter struct {
	w   io.Writer
	err error
}

func (t *trackingWriter) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if err != nil && t.err == nil {
		t.err = err
	}
	return n, err
}

// WriteGIF encodes anim to w. Failures of w are reported as the write stage,
// everything else as the encode stage.
func WriteGIF(w io.Writer, anim *gif.GIF) error {
	if anim == nil || len(anim.Image) == 0 {
		return &dynamo.RenderError{Stage: dynamo.StageEncode, Wrapped: errors.New("no frames to encode")}
	}
	tw := &trackingWriter{w: w}
	if err := gif.EncodeAll(tw, anim); err != nil {
		if tw.err != nil {
			return &dynamo.RenderError{Stage: dynamo.StageWrite, Wrapped: tw.err}
		}
		return &dynamo.RenderError{Stage: dynamo.StageEncode, Wrapped: err}
	}
	return nil
}

// SaveGIF writes anim to path.
func SaveGIF(path string, anim *gif.GIF) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &dynamo.RenderError{Stage: dynamo.StageWrite, Wrapped: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &dynamo.RenderError{Stage: dynamo.StageWrite, Wrapped: cerr}
		}
	}()

	bw := bufio.NewWriter(f)
	if err := WriteGIF(bw, anim); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return &dynamo.RenderError{Stage: dynamo.StageWrite, Wrapped: err}
	}
	return nil
}

// RenderFile renders h and saves it to path.
func RenderFile(rc *Context, h *dynamo.History, path string) (int, error) {
	anim, err := Render(rc, h)
	if err != nil {
		return 0, err
	}
	return len(anim.Image), SaveGIF(path, anim)
}
