package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/polyskel/pkg/skeleton"
)

// DOTOptions configures node-link diagram rendering of a skeleton.
type DOTOptions struct {
	// Labels includes node coordinates as labels.
	// When false, nodes are drawn as unlabeled points.
	Labels bool

	// Scale multiplies skeleton coordinates before pinning them as Graphviz
	// positions (points). Skeleton coordinates are often small; a scale of
	// ~40 gives readable diagrams for unit-sized shapes.
	Scale float64
}

// ToDOT converts a skeleton to Graphviz DOT format for node-link
// visualization. Node positions are pinned to the skeleton coordinates (via
// the neato layout engine), so the diagram preserves the skeleton's actual
// geometry. The resulting DOT string can be rendered using [RenderDOT],
// or passed to any Graphviz toolchain.
func ToDOT(sk skeleton.Skeleton, opts DOTOptions) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = 40
	}

	var buf bytes.Buffer
	buf.WriteString("graph skeleton {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=point, width=0.12, color=\"#2d3436\"];\n")
	buf.WriteString("  edge [color=\"#0984e3\", penwidth=2];\n")
	buf.WriteString("\n")

	// Node IDs are positional; coordinates are carried in the pos attribute.
	index := make(map[[2]float64]int, len(sk.Nodes))
	for i, n := range sk.Nodes {
		index[[2]float64{n.X, n.Y}] = i
		if opts.Labels {
			fmt.Fprintf(&buf, "  n%d [pos=\"%.4f,%.4f!\", shape=circle, width=0.3, label=\"(%.4g, %.4g)\", fontsize=8];\n",
				i, n.X*scale, n.Y*scale, n.X, n.Y)
		} else {
			fmt.Fprintf(&buf, "  n%d [pos=\"%.4f,%.4f!\"];\n", i, n.X*scale, n.Y*scale)
		}
	}

	buf.WriteString("\n")
	for _, e := range sk.Edges {
		u, okU := index[[2]float64{e.Start.X, e.Start.Y}]
		v, okV := index[[2]float64{e.End.X, e.End.Y}]
		if !okU || !okV {
			// Hand-built skeletons may carry unresolvable edges; skip them
			// the same way the graph queries do.
			continue
		}
		fmt.Fprintf(&buf, "  n%d -- n%d;\n", u, v)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderDOT renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [ToPDF]
// or [ToPNG].
func RenderDOT(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.-]+)\s+([0-9.-]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
