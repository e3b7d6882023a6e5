package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/threebody/internal/dynamo"
	"github.com/san-kum/threebody/internal/render"
)

// TrajectorySVG draws one path per body over a shared, padded window.
// The starting positions are marked with a circle.
func TrajectorySVG(h *dynamo.History, width, height int) (string, error) {
	if h == nil {
		return "", dynamo.ErrEmptyHistory
	}
	if err := h.Validate(); err != nil {
		return "", err
	}
	if width <= 0 || height <= 0 {
		return "", dynamo.InvalidParameter("size", float64(width*height), "width and height must be positive")
	}

	lo, hi := h.Bounds()
	rangeX := hi.X - lo.X
	rangeY := hi.Y - lo.Y
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX := lo.X - rangeX*0.1
	minY := lo.Y - rangeY*0.1
	rangeX *= 1.2
	rangeY *= 1.2

	project := func(x, y float64) (float64, float64) {
		return (x - minX) / rangeX * float64(width), float64(height) - (y-minY)/rangeY*float64(height)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, width, height, width, height)

	for i := 0; i < dynamo.NumBodies; i++ {
		color := render.BodyColors[i].Hex()
		fmt.Fprintf(&sb, `<path id="body%d" fill="none" stroke="%s" stroke-width="1.5" d="`, i+1, color)
		for k, p := range h.Positions[i] {
			x, y := project(p.X, p.Y)
			if k == 0 {
				fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")

		x, y := project(h.Positions[i][0].X, h.Positions[i][0].Y)
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="4" fill="%s"/>
`, x, y, color)
	}

	sb.WriteString("</svg>\n")
	return sb.String(), nil
}
