package skeleton

import (
	"testing"

	"github.com/matzehuels/polyskel/pkg/geom"
)

func TestChordalAxis_Triangle(t *testing.T) {
	sk := Compute(trianglePoly(), ChordalAxis)

	// A single-triangle polygon gets centroid spokes: one per edge midpoint.
	if sk.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3", sk.EdgeCount())
	}
	if sk.NodeCount() != 4 {
		t.Errorf("NodeCount() = %d, want 4", sk.NodeCount())
	}
}

func TestChordalAxis_SquareTerminalFallback(t *testing.T) {
	sk := Compute(squarePoly(), ChordalAxis)

	// A square triangulates into two terminal ears; the terminal bridge
	// keeps the axis non-empty: centroid → diagonal midpoint → centroid.
	if sk.EdgeCount() < 2 {
		t.Errorf("EdgeCount() = %d, want >= 2", sk.EdgeCount())
	}
	if sk.IsEmpty() {
		t.Fatal("chordal axis of square is empty")
	}
}

func TestChordalAxis_LShape(t *testing.T) {
	sk := Compute(lShapePoly(), ChordalAxis)
	if sk.EdgeCount() < 1 {
		t.Fatalf("EdgeCount() = %d, want >= 1", sk.EdgeCount())
	}
	if branches := sk.Branches(); len(branches) < 1 {
		t.Errorf("Branches() = %d, want >= 1", len(branches))
	}
	if path := sk.LongestPath(); len(path) < 2 {
		t.Errorf("LongestPath() = %d points, want >= 2", len(path))
	}
}

// Sleeve and junction contributions stay inside their triangle, so every
// chordal node must lie strictly inside or on the polygon.
func TestChordalAxis_NodesInside(t *testing.T) {
	for _, tc := range []struct {
		name string
		poly geom.Polygon
	}{
		{"t-shape", tShapePoly()},
		{"arrow", arrowPoly()},
		{"star", starPoly()},
		{"person", personPoly()},
	} {
		sk := Compute(tc.poly, ChordalAxis)
		if sk.IsEmpty() {
			t.Errorf("%s: chordal axis is empty", tc.name)
			continue
		}
		for _, n := range sk.Nodes {
			if !tc.poly.Contains(n, 1e-3) {
				t.Errorf("%s: node %v outside polygon", tc.name, n)
			}
		}
	}
}

// The chordal axis never touches original polygon vertices: every node is a
// chord midpoint or a triangle centroid.
func TestChordalAxis_NoOriginalVertexNodes(t *testing.T) {
	poly := tShapePoly()
	sk := Compute(poly, ChordalAxis)
	for _, n := range sk.Nodes {
		if touchesVertex(n, poly) {
			t.Errorf("node %v coincides with an original vertex", n)
		}
	}
}
