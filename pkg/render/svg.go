package render

import (
	"bytes"
	"fmt"

	"github.com/planhaus/planhaus/pkg/plan"
)

// DefaultScale is the SVG pixels-per-space-unit factor.
const DefaultScale = 40.0

// Room fill colors keyed by room type; unknown types fall back to the
// "general" color.
var typeColors = map[string]string{
	"general":  "#dbeafe",
	"bedroom":  "#ede9fe",
	"kitchen":  "#fef3c7",
	"bathroom": "#cffafe",
	"living":   "#dcfce7",
	"office":   "#fee2e2",
}

// SVGOption configures floor-plan rendering.
type SVGOption func(*svgRenderer)

// WithScale sets the pixels-per-unit scale factor.
func WithScale(scale float64) SVGOption {
	return func(r *svgRenderer) {
		if scale > 0 {
			r.scale = scale
		}
	}
}

// WithGrid draws a one-unit background grid.
func WithGrid() SVGOption {
	return func(r *svgRenderer) { r.grid = true }
}

type svgRenderer struct {
	scale float64
	grid  bool
}

// FloorPlanSVG renders the placed rooms of a layout document as a top-down
// floor plan. Rooms are labeled rectangles in space coordinates; the space
// boundary is drawn as an outer frame.
func FloorPlanSVG(doc plan.Document, opts ...SVGOption) []byte {
	r := svgRenderer{scale: DefaultScale}
	for _, opt := range opts {
		opt(&r)
	}

	width := doc.Dimensions.Width * r.scale
	height := doc.Dimensions.Height * r.scale

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="#fafaf9" stroke="#1c1917" stroke-width="2"/>`+"\n",
		width, height)

	if r.grid {
		renderGrid(&buf, doc.Dimensions.Width, doc.Dimensions.Height, r.scale)
	}

	for _, room := range doc.Rooms {
		if room.Position == nil {
			continue
		}
		renderRoom(&buf, room, r.scale)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderGrid(buf *bytes.Buffer, w, h, scale float64) {
	for x := 1.0; x < w; x++ {
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="0" x2="%.1f" y2="%.1f" stroke="#e7e5e4" stroke-width="0.5"/>`+"\n",
			x*scale, x*scale, h*scale)
	}
	for y := 1.0; y < h; y++ {
		fmt.Fprintf(buf, `  <line x1="0" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#e7e5e4" stroke-width="0.5"/>`+"\n",
			y*scale, w*scale, y*scale)
	}
}

func renderRoom(buf *bytes.Buffer, room plan.RoomDoc, scale float64) {
	x := room.Position.X * scale
	y := room.Position.Y * scale
	w := room.Dimensions.Width * scale
	h := room.Dimensions.Height * scale

	fill, ok := typeColors[room.Type]
	if !ok {
		fill = typeColors["general"]
	}

	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#44403c" stroke-width="1.5"/>`+"\n",
		x, y, w, h, fill)

	// Name centered in the room; size label below it.
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="%.1f" fill="#1c1917">%s</text>`+"\n",
		x+w/2, y+h/2, scale*0.35, escapeXML(room.Name))
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="%.1f" fill="#78716c">%gx%g</text>`+"\n",
		x+w/2, y+h/2+scale*0.45, scale*0.28, room.Dimensions.Width, room.Dimensions.Height)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '&':
			buf.WriteString("&amp;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
