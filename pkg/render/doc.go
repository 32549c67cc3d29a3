// Package render turns polygons and their skeletons into visual outputs.
//
// # Overview
//
// Two rendering paths are provided:
//
//   - Geometric SVG ([RenderSVG]): draws the polygon outline and the skeleton
//     overlay to scale, optionally highlighting the longest path and branch
//     colors. This is the primary output for inspecting skeleton geometry.
//   - Graphviz ([ToDOT] + [RenderDOT]): renders the skeleton as an abstract
//     node-link diagram with pinned coordinates, useful for debugging graph
//     topology (degrees, components) independent of scale.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Both rendering paths share
// them.
//
//	svg := render.RenderSVG(scene)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
package render
