// Package io provides JSON import and export for polygons.
//
// # Overview
//
// This package reads polygon boundaries from JSON in the formats commonly
// produced by drawing tools and GIS exports, and writes them back in the
// canonical form. The format is designed for:
//
//   - Feeding arbitrary polygon outlines into the skeletonization pipeline
//   - Integration with external tools that produce or consume boundary data
//   - Round-trip preservation: import, skeletonize, export, re-import
//
// # JSON Formats
//
// The canonical form is an object with a "vertices" array:
//
//	{
//	  "vertices": [
//	    {"x": 0, "y": 0},
//	    {"x": 10, "y": 0},
//	    {"x": 10, "y": 10}
//	  ]
//	}
//
// Two shorthand forms are accepted on import:
//
//	[{"x": 0, "y": 0}, {"x": 10, "y": 0}, {"x": 10, "y": 10}]
//	[[0, 0], [10, 0], [10, 10]]
//
// Vertices are interpreted as a closed ring; a repeated final vertex is
// tolerated. Winding order does not matter, the pipeline normalizes it.
//
// # Import
//
// Use [ImportPolygon] to read from a file path, or [ReadPolygon] to read
// from any io.Reader:
//
//	poly, err := io.ImportPolygon("shape.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Export
//
// Use [ExportPolygon] or [WritePolygon] to write the canonical form.
package io
