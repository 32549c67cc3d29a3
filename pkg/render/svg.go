package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/matzehuels/polyskel/pkg/geom"
	"github.com/matzehuels/polyskel/pkg/skeleton"
)

// Scene bundles the inputs of a geometric rendering: the source polygon and
// the skeleton computed from it. Either part may be empty; an empty scene
// renders as a blank frame.
type Scene struct {
	Polygon  geom.Polygon
	Skeleton skeleton.Skeleton
}

// branchPalette colors branch overlays. Colors repeat when a skeleton has
// more branches than palette entries.
var branchPalette = []string{
	"#0984e3", "#00b894", "#e17055", "#6c5ce7", "#fdcb6e", "#d63031",
}

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width       float64
	height      float64
	padding     float64
	longestPath []geom.Point
	branches    [][]geom.Point
	showNodes   bool
}

// WithSize sets the output frame size in pixels (default 800x600).
func WithSize(width, height float64) SVGOption {
	return func(r *svgRenderer) { r.width, r.height = width, height }
}

// WithLongestPath overlays the given path as a highlighted polyline.
func WithLongestPath(path []geom.Point) SVGOption {
	return func(r *svgRenderer) { r.longestPath = path }
}

// WithBranches colors each branch of the skeleton separately.
func WithBranches(branches [][]geom.Point) SVGOption {
	return func(r *svgRenderer) { r.branches = branches }
}

// WithNodes draws a dot at every skeleton node.
func WithNodes() SVGOption {
	return func(r *svgRenderer) { r.showNodes = true }
}

// RenderSVG draws the polygon outline with the skeleton overlaid, to scale.
// The world coordinate system is mapped into the frame with uniform scaling
// and a vertical flip (SVG grows downward, geometry grows upward).
func RenderSVG(s Scene, opts ...SVGOption) []byte {
	r := svgRenderer{width: 800, height: 600, padding: 20}
	for _, opt := range opts {
		opt(&r)
	}

	tx := newTransform(s, r.width, r.height, r.padding)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, r.height, r.width, r.height)

	renderPolygon(&buf, s.Polygon, tx)

	if len(r.branches) > 0 {
		renderBranches(&buf, r.branches, tx)
	} else {
		renderSkeletonEdges(&buf, s.Skeleton, tx)
	}

	if len(r.longestPath) >= 2 {
		renderPolyline(&buf, r.longestPath, tx,
			`fill="none" stroke="#d63031" stroke-width="3" stroke-linecap="round"`)
	}

	if r.showNodes {
		for _, n := range s.Skeleton.Nodes {
			x, y := tx.apply(n)
			fmt.Fprintf(&buf, `  <circle cx="%.2f" cy="%.2f" r="3" fill="#2d3436"/>`+"\n", x, y)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// transform maps world coordinates into the SVG frame.
type transform struct {
	scale      float64
	minX, maxY float64
	offX, offY float64
}

func newTransform(s Scene, width, height, padding float64) transform {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(p geom.Point) {
		minX, minY = math.Min(minX, p.X), math.Min(minY, p.Y)
		maxX, maxY = math.Max(maxX, p.X), math.Max(maxY, p.Y)
	}
	for _, v := range s.Polygon.Vertices {
		grow(v)
	}
	for _, n := range s.Skeleton.Nodes {
		grow(n)
	}
	if math.IsInf(minX, 1) {
		// Nothing to draw; identity keeps the output well-formed.
		return transform{scale: 1}
	}

	w, h := maxX-minX, maxY-minY
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	scale := math.Min((width-2*padding)/w, (height-2*padding)/h)

	return transform{
		scale: scale,
		minX:  minX,
		maxY:  maxY,
		offX:  (width - scale*w) / 2,
		offY:  (height - scale*h) / 2,
	}
}

// apply maps a world point to frame coordinates, flipping the Y axis.
func (t transform) apply(p geom.Point) (x, y float64) {
	return t.offX + (p.X-t.minX)*t.scale, t.offY + (t.maxY-p.Y)*t.scale
}

func renderPolygon(buf *bytes.Buffer, p geom.Polygon, tx transform) {
	if p.Len() < 2 {
		return
	}
	buf.WriteString(`  <path d="`)
	for i, v := range p.Vertices {
		x, y := tx.apply(v)
		if i == 0 {
			fmt.Fprintf(buf, "M %.2f %.2f", x, y)
		} else {
			fmt.Fprintf(buf, " L %.2f %.2f", x, y)
		}
	}
	buf.WriteString(` Z" fill="#dfe6e9" stroke="#2d3436" stroke-width="2"/>` + "\n")
}

func renderSkeletonEdges(buf *bytes.Buffer, sk skeleton.Skeleton, tx transform) {
	for _, e := range sk.Edges {
		x1, y1 := tx.apply(e.Start)
		x2, y2 := tx.apply(e.End)
		fmt.Fprintf(buf,
			`  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#0984e3" stroke-width="2" stroke-linecap="round"/>`+"\n",
			x1, y1, x2, y2)
	}
}

func renderBranches(buf *bytes.Buffer, branches [][]geom.Point, tx transform) {
	for i, br := range branches {
		color := branchPalette[i%len(branchPalette)]
		renderPolyline(buf, br, tx, fmt.Sprintf(
			`fill="none" stroke="%s" stroke-width="2" stroke-linecap="round"`, color))
	}
}

func renderPolyline(buf *bytes.Buffer, pts []geom.Point, tx transform, attrs string) {
	if len(pts) < 2 {
		return
	}
	buf.WriteString(`  <polyline points="`)
	for i, p := range pts {
		x, y := tx.apply(p)
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(buf, "%.2f,%.2f", x, y)
	}
	fmt.Fprintf(buf, `" %s/>`+"\n", attrs)
}
