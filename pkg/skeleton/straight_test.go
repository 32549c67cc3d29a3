package skeleton

import (
	"math"
	"testing"

	"github.com/matzehuels/polyskel/pkg/geom"
)

func TestStraightSkeleton_Square(t *testing.T) {
	sk := Compute(squarePoly(), StraightSkeleton)

	// Four spokes meeting in the center: 4 original vertices + 1 interior
	// node, one spoke per vertex.
	if sk.NodeCount() < 5 {
		t.Errorf("NodeCount() = %d, want >= 5", sk.NodeCount())
	}
	if sk.EdgeCount() < 4 {
		t.Errorf("EdgeCount() = %d, want >= 4", sk.EdgeCount())
	}

	center := geom.Point{X: 5, Y: 5}
	found := false
	for _, n := range sk.Nodes {
		if n.Eq(center, 1e-3) {
			found = true
		}
	}
	if !found {
		t.Errorf("no node near center %v; nodes: %v", center, sk.Nodes)
	}
}

func TestStraightSkeleton_Rectangle(t *testing.T) {
	sk := Compute(rectanglePoly(), StraightSkeleton)

	// A 20×10 rectangle collapses to a horizontal ridge between (5,5) and
	// (15,5) with a spoke per corner.
	if sk.NodeCount() < 6 {
		t.Errorf("NodeCount() = %d, want >= 6", sk.NodeCount())
	}
	if sk.EdgeCount() < 5 {
		t.Errorf("EdgeCount() = %d, want >= 5", sk.EdgeCount())
	}

	core := sk.CoreEdges(rectanglePoly())
	if len(core) < 1 {
		t.Fatalf("CoreEdges() = %d edges, want >= 1 (the ridge)", len(core))
	}
	ridge := geom.Segment{Start: geom.Point{X: 5, Y: 5}, End: geom.Point{X: 15, Y: 5}}
	found := false
	for _, e := range core {
		if e.Eq(ridge, 1e-3) {
			found = true
		}
	}
	if !found {
		t.Errorf("ridge %v not among core edges %v", ridge, core)
	}
}

func TestStraightSkeleton_Triangle(t *testing.T) {
	sk := Compute(trianglePoly(), StraightSkeleton)

	// A triangle collapses in a single peak event: three spokes to the
	// incenter.
	if sk.EdgeCount() < 3 {
		t.Errorf("EdgeCount() = %d, want >= 3", sk.EdgeCount())
	}
	if sk.NodeCount() < 4 {
		t.Errorf("NodeCount() = %d, want >= 4", sk.NodeCount())
	}
}

// TestStraightSkeleton_MinimumSize checks the size floor: every original
// vertex contributes a spoke, and the wavefront must collapse in at least
// one interior node.
func TestStraightSkeleton_MinimumSize(t *testing.T) {
	fixtures := []struct {
		name string
		poly geom.Polygon
	}{
		{"square", squarePoly()},
		{"rectangle", rectanglePoly()},
		{"triangle", trianglePoly()},
		{"l-shape", lShapePoly()},
		{"t-shape", tShapePoly()},
		{"arrow", arrowPoly()},
	}
	for _, tc := range fixtures {
		sk := Compute(tc.poly, StraightSkeleton)
		n := tc.poly.Len()
		if sk.NodeCount() < n+1 {
			t.Errorf("%s: NodeCount() = %d, want >= %d", tc.name, sk.NodeCount(), n+1)
		}
		if sk.EdgeCount() < n {
			t.Errorf("%s: EdgeCount() = %d, want >= %d", tc.name, sk.EdgeCount(), n)
		}
	}
}

// Every original vertex must appear as a skeleton node: the wavefront
// starts there and its first arc is anchored at the vertex.
func TestStraightSkeleton_OriginalVerticesAreNodes(t *testing.T) {
	for _, poly := range []geom.Polygon{squarePoly(), lShapePoly(), tShapePoly()} {
		sk := Compute(poly, StraightSkeleton)
		for _, v := range poly.Vertices {
			found := false
			for _, n := range sk.Nodes {
				if n.Eq(v, nodeTol) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("original vertex %v missing from skeleton nodes", v)
			}
		}
	}
}

func TestStraightSkeleton_LeafCoreSplit(t *testing.T) {
	poly := rectanglePoly()
	sk := Compute(poly, StraightSkeleton)
	leaf, core := sk.SplitLeafCore(poly)
	if len(leaf)+len(core) != sk.EdgeCount() {
		t.Errorf("SplitLeafCore() partitions %d+%d edges, want %d",
			len(leaf), len(core), sk.EdgeCount())
	}
	if len(leaf) < 4 {
		t.Errorf("LeafEdges() = %d, want >= 4 (one spoke per corner)", len(leaf))
	}
	for _, e := range leaf {
		onStart := touchesVertex(e.Start, poly)
		onEnd := touchesVertex(e.End, poly)
		if !onStart && !onEnd {
			t.Errorf("leaf edge %v touches no original vertex", e)
		}
	}
}

func TestStraightSkeleton_LShapeRidge(t *testing.T) {
	poly := lShapePoly()
	sk := Compute(poly, StraightSkeleton)

	// The reflex corner at (5,5) bends the skeleton: both arms contribute a
	// ridge, so interior structure must exist beyond bare spokes.
	if core := sk.CoreEdges(poly); len(core) < 1 {
		t.Errorf("CoreEdges() = %d, want >= 1", len(core))
	}
	if path := sk.LongestPath(); len(path) < 3 {
		t.Errorf("LongestPath() = %d points, want >= 3", len(path))
	}
}

func TestStraightSkeleton_EdgeLengthFloor(t *testing.T) {
	sk := Compute(tShapePoly(), StraightSkeleton)
	for _, e := range sk.Edges {
		if e.Length() < nodeTol {
			t.Errorf("edge %v shorter than node tolerance", e)
		}
	}
}

func TestStraightSkeleton_ScaleInvariantTopology(t *testing.T) {
	small := squarePoly()
	big := geom.NewPolygon(
		geom.Point{X: 0, Y: 0},
		geom.Point{X: 1000, Y: 0},
		geom.Point{X: 1000, Y: 1000},
		geom.Point{X: 0, Y: 1000},
	)
	a := Compute(small, StraightSkeleton)
	b := Compute(big, StraightSkeleton)
	if a.NodeCount() != b.NodeCount() || a.EdgeCount() != b.EdgeCount() {
		t.Errorf("scaled square topology differs: %d/%d vs %d/%d",
			a.NodeCount(), a.EdgeCount(), b.NodeCount(), b.EdgeCount())
	}
}

func TestStraightSkeleton_TotalLengthPositive(t *testing.T) {
	sk := Compute(arrowPoly(), StraightSkeleton)
	if l := sk.TotalLength(); l <= 0 || math.IsNaN(l) {
		t.Errorf("TotalLength() = %v, want > 0", l)
	}
}
