package skeleton

import (
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/polyskel/pkg/geom"
)

// normalized returns the cleaned CCW boundary of a fixture, which is what
// triangulate expects as input.
func normalized(t *testing.T, p geom.Polygon) []geom.Point {
	t.Helper()
	pts, ok := normalizeBoundary(p, geom.Epsilon)
	if !ok {
		t.Fatalf("normalizeBoundary() rejected fixture %v", p.Vertices)
	}
	return pts
}

func TestTriangulate_TriangleCount(t *testing.T) {
	cases := []struct {
		name string
		poly geom.Polygon
	}{
		{"triangle", trianglePoly()},
		{"square", squarePoly()},
		{"l-shape", lShapePoly()},
		{"t-shape", tShapePoly()},
		{"star", starPoly()},
	}
	for _, tc := range cases {
		pts := normalized(t, tc.poly)
		tr := triangulate(pts, geom.Epsilon)
		if want := len(pts) - 2; len(tr.tris) != want {
			t.Errorf("%s: got %d triangles, want %d", tc.name, len(tr.tris), want)
		}
	}
}

// The triangles must partition the interior: their areas sum to the polygon
// area.
func TestTriangulate_AreaPartition(t *testing.T) {
	for _, tc := range []struct {
		name string
		poly geom.Polygon
	}{
		{"square", squarePoly()},
		{"l-shape", lShapePoly()},
		{"arrow", arrowPoly()},
		{"person", personPoly()},
	} {
		pts := normalized(t, tc.poly)
		tr := triangulate(pts, geom.Epsilon)
		sum := 0.0
		for _, tri := range tr.tris {
			sum += triArea(tr.pts[tri[0]], tr.pts[tri[1]], tr.pts[tri[2]])
		}
		if want := tc.poly.Area(); math.Abs(sum-want) > 1e-6 {
			t.Errorf("%s: triangle areas sum to %v, want %v", tc.name, sum, want)
		}
	}
}

// Constrained property: every boundary edge appears as an edge of exactly
// one triangle, unmodified.
func TestTriangulate_BoundaryEdgesPreserved(t *testing.T) {
	pts := normalized(t, lShapePoly())
	tr := triangulate(pts, geom.Epsilon)
	n := len(pts)

	count := make(map[edgeKey]int)
	for _, tri := range tr.tris {
		for e := 0; e < 3; e++ {
			count[newEdgeKey(tri[e], tri[(e+1)%3])]++
		}
	}
	for i := 0; i < n; i++ {
		k := newEdgeKey(i, (i+1)%n)
		if count[k] != 1 {
			t.Errorf("boundary edge %v appears in %d triangles, want 1", k, count[k])
		}
	}
}

// Interior edges are shared by exactly two triangles, and a polygon with n
// vertices has n-3 of them.
func TestTriangulate_InteriorEdges(t *testing.T) {
	pts := normalized(t, tShapePoly())
	tr := triangulate(pts, geom.Epsilon)

	adj := tr.neighbors()
	if want := len(pts) - 3; len(adj) != want {
		t.Errorf("got %d interior edges, want %d", len(adj), want)
	}
	for _, e := range adj {
		if len(e.tris) != 2 {
			t.Errorf("interior edge %v shared by %d triangles, want 2", e.key, len(e.tris))
		}
	}
}

// neighbors must enumerate interior edges in a fixed order; the Voronoi and
// chordal extractors build their node sets in iteration order, so any
// variation here would leak into the emitted skeletons.
func TestTriangulate_NeighborsOrdered(t *testing.T) {
	pts := normalized(t, personPoly())
	tr := triangulate(pts, geom.Epsilon)

	first := tr.neighbors()
	if len(first) == 0 {
		t.Fatal("no interior edges")
	}
	for i := 1; i < len(first); i++ {
		a, b := first[i-1].key, first[i].key
		if a.lo > b.lo || (a.lo == b.lo && a.hi >= b.hi) {
			t.Fatalf("neighbors()[%d]=%v not after %v", i, b, a)
		}
	}
	for run := 0; run < 10; run++ {
		again := tr.neighbors()
		for i := range first {
			if again[i].key != first[i].key {
				t.Fatalf("run %d: neighbors()[%d] = %v, want %v", run, i, again[i].key, first[i].key)
			}
		}
	}
}

func TestTriangulate_BoundaryCount(t *testing.T) {
	pts := normalized(t, squarePoly())
	tr := triangulate(pts, geom.Epsilon)
	if len(tr.tris) != 2 {
		t.Fatalf("got %d triangles, want 2", len(tr.tris))
	}
	// Both ears of a quad have two boundary edges.
	for ti := range tr.tris {
		if got := tr.boundaryCount(ti); got != 2 {
			t.Errorf("triangle %d boundaryCount() = %d, want 2", ti, got)
		}
	}
}

func TestTriangulate_Deterministic(t *testing.T) {
	pts := normalized(t, personPoly())
	a := triangulate(pts, geom.Epsilon)
	b := triangulate(pts, geom.Epsilon)
	if !reflect.DeepEqual(a.tris, b.tris) {
		t.Error("repeated triangulation differs")
	}
}

func TestTriangulate_TooFewPoints(t *testing.T) {
	tr := triangulate([]geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, geom.Epsilon)
	if len(tr.tris) != 0 {
		t.Errorf("got %d triangles for 2 points, want 0", len(tr.tris))
	}
}
