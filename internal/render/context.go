package render

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/threebody/internal/dynamo"
	"golang.org/x/image/vector"
)

// fadeLevels is the number of shades per body, from full colour towards
// the background.
const fadeLevels = 8

var (
	background = colorful.Color{R: 1, G: 1, B: 1}
	ink        = colorful.Color{R: 0, G: 0, B: 0}
	gridColor  = colorful.Color{R: 0.8, G: 0.8, B: 0.8}

	// BodyColors are red, green and blue.
	BodyColors = [dynamo.NumBodies]colorful.Color{
		{R: 1, G: 0, B: 0},
		{R: 0, G: 0.5, B: 0},
		{R: 0, G: 0, B: 1},
	}
)

// Surface is an RGBA frame buffer with a rasterizer, borrowed from a
// Context for the duration of one frame.
type Surface struct {
	Img    *image.RGBA
	raster *vector.Rasterizer
}

// Context is owned by the caller and carries everything a render needs.
// It is safe for concurrent use.
type Context struct {
	opts    Options
	palette color.Palette
	shades  [dynamo.NumBodies][fadeLevels]color.Color
	pool    sync.Pool
}

func NewContext(opts Options) (*Context, error) {
	if err := opts.Validate(); err != nil {
		return nil, &dynamo.RenderError{Stage: dynamo.StageSetup, Wrapped: err}
	}

	rc := &Context{opts: opts}
	rc.palette = color.Palette{background, ink, gridColor}
	for i, c := range BodyColors {
		for l := 0; l < fadeLevels; l++ {
			shade := c.BlendLab(background, float64(l)/fadeLevels).Clamped()
			rc.shades[i][l] = shade
			rc.palette = append(rc.palette, shade)
		}
	}

	rect := image.Rect(0, 0, opts.Width, opts.Height)
	rc.pool = sync.Pool{
		New: func() interface{} {
			return &Surface{Img: image.NewRGBA(rect), raster: vector.NewRasterizer(0, 0)}
		},
	}
	return rc, nil
}

func (rc *Context) Options() Options { return rc.opts }

func (rc *Context) Palette() color.Palette { return rc.palette }

// Acquire returns a surface cleared to the background colour.
// Every Acquire must be paired with Release.
func (rc *Context) Acquire() *Surface {
	s := rc.pool.Get().(*Surface)
	draw.Draw(s.Img, s.Img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	return s
}

func (rc *Context) Release(s *Surface) {
	if s == nil || s.Img.Bounds().Dx() != rc.opts.Width || s.Img.Bounds().Dy() != rc.opts.Height {
		return
	}
	rc.pool.Put(s)
}

// shade returns body i's colour faded by t in [0,1].
func (rc *Context) shade(i int, t float64) color.Color {
	l := int(t * fadeLevels)
	if l < 0 {
		l = 0
	}
	if l >= fadeLevels {
		l = fadeLevels - 1
	}
	return rc.shades[i][l]
}

// quantize maps the surface onto the context palette.
func (rc *Context) quantize(s *Surface) *image.Paletted {
	p := image.NewPaletted(s.Img.Bounds(), rc.palette)
	draw.Draw(p, p.Bounds(), s.Img, image.Point{}, draw.Src)
	return p
}
