package skeleton

import (
	"math"
	"sort"

	"github.com/matzehuels/polyskel/pkg/geom"
)

// triangulation is a constrained triangulation of a simple polygon's
// interior: every boundary edge appears unmodified as a triangulation edge,
// the triangles partition the interior, and no Steiner points are inserted.
// Triangles reference vertices by index into pts, which preserves the
// normalized boundary order, so edge (i, (i+1) mod n) is a boundary edge by
// construction.
type triangulation struct {
	pts  []geom.Point
	tris [][3]int
}

// edgeKey identifies an undirected triangulation edge by its sorted
// vertex indices.
type edgeKey struct{ lo, hi int }

func newEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{lo: a, hi: b}
}

// isBoundary reports whether the undirected edge (a, b) is a boundary edge
// of the source polygon.
func (t *triangulation) isBoundary(a, b int) bool {
	n := len(t.pts)
	return (a+1)%n == b || (b+1)%n == a
}

// boundaryCount returns the number of boundary edges of triangle ti.
func (t *triangulation) boundaryCount(ti int) int {
	tri := t.tris[ti]
	count := 0
	for e := 0; e < 3; e++ {
		if t.isBoundary(tri[e], tri[(e+1)%3]) {
			count++
		}
	}
	return count
}

// interiorEdge pairs an interior triangulation edge with the one or two
// triangles sharing it.
type interiorEdge struct {
	key  edgeKey
	tris []int
}

// neighbors returns every interior (non-boundary) edge with the triangles
// sharing it, sorted by vertex index. The fixed order keeps downstream
// skeleton construction deterministic for a given input.
func (t *triangulation) neighbors() []interiorEdge {
	adj := make(map[edgeKey][]int)
	for ti, tri := range t.tris {
		for e := 0; e < 3; e++ {
			a, b := tri[e], tri[(e+1)%3]
			if t.isBoundary(a, b) {
				continue
			}
			k := newEdgeKey(a, b)
			adj[k] = append(adj[k], ti)
		}
	}
	out := make([]interiorEdge, 0, len(adj))
	for k, tris := range adj {
		out = append(out, interiorEdge{key: k, tris: tris})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].key.lo != out[j].key.lo {
			return out[i].key.lo < out[j].key.lo
		}
		return out[i].key.hi < out[j].key.hi
	})
	return out
}

// centroid returns the centroid of triangle ti.
func (t *triangulation) centroid(ti int) geom.Point {
	tri := t.tris[ti]
	a, b, c := t.pts[tri[0]], t.pts[tri[1]], t.pts[tri[2]]
	return geom.Point{X: (a.X + b.X + c.X) / 3, Y: (a.Y + b.Y + c.Y) / 3}
}

// triangulate builds a constrained triangulation of the CCW boundary pts by
// ear clipping. Ear selection is deterministic: among all valid ears the one
// with the lexicographically smallest tip coordinate wins (ties fall back to
// the lowest boundary index), so near-collinear configurations resolve the
// same way on every run instead of depending on floating-point scan order.
func triangulate(pts []geom.Point, tol float64) *triangulation {
	n := len(pts)
	t := &triangulation{pts: pts}
	if n < 3 {
		return t
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	for len(idx) > 3 {
		ear := findEar(pts, idx, tol)
		if ear < 0 {
			// Numerically stuck wavefront of ears: clip the most convex
			// vertex to guarantee progress. The triangle may be thin but
			// the triangulation stays a partition.
			ear = mostConvex(pts, idx)
		}
		m := len(idx)
		a, b, c := idx[(ear+m-1)%m], idx[ear], idx[(ear+1)%m]
		if triArea(pts[a], pts[b], pts[c]) > tol {
			t.tris = append(t.tris, [3]int{a, b, c})
		}
		idx = append(idx[:ear], idx[ear+1:]...)
	}
	a, b, c := idx[0], idx[1], idx[2]
	if triArea(pts[a], pts[b], pts[c]) > tol {
		t.tris = append(t.tris, [3]int{a, b, c})
	}
	return t
}

// findEar returns the position in idx of the best valid ear, or -1 when no
// vertex qualifies.
func findEar(pts []geom.Point, idx []int, tol float64) int {
	m := len(idx)
	best := -1
	for i := 0; i < m; i++ {
		a, b, c := idx[(i+m-1)%m], idx[i], idx[(i+1)%m]
		if !isEar(pts, idx, a, b, c, tol) {
			continue
		}
		if best < 0 || lexLess(pts[idx[i]], pts[idx[best]]) {
			best = i
		}
	}
	return best
}

// isEar reports whether vertex b forms a clippable ear (a, b, c): the turn
// at b is convex (CCW) and no other remaining vertex lies inside the
// candidate triangle.
func isEar(pts []geom.Point, idx []int, a, b, c int, tol float64) bool {
	if geom.Orient(pts[a], pts[b], pts[c]) <= tol {
		return false
	}
	for _, j := range idx {
		if j == a || j == b || j == c {
			continue
		}
		if pointInTriangle(pts[j], pts[a], pts[b], pts[c], tol) {
			return false
		}
	}
	return true
}

// mostConvex returns the position in idx with the largest CCW turn.
func mostConvex(pts []geom.Point, idx []int) int {
	m := len(idx)
	best, bestOrient := 0, math.Inf(-1)
	for i := 0; i < m; i++ {
		a, b, c := idx[(i+m-1)%m], idx[i], idx[(i+1)%m]
		if o := geom.Orient(pts[a], pts[b], pts[c]); o > bestOrient {
			best, bestOrient = i, o
		}
	}
	return best
}

// pointInTriangle reports whether p lies strictly inside triangle abc or on
// its boundary. Vertices of the triangle itself are excluded by callers.
func pointInTriangle(p, a, b, c geom.Point, tol float64) bool {
	d1 := geom.Orient(a, b, p)
	d2 := geom.Orient(b, c, p)
	d3 := geom.Orient(c, a, p)
	hasNeg := d1 < -tol || d2 < -tol || d3 < -tol
	hasPos := d1 > tol || d2 > tol || d3 > tol
	return !(hasNeg && hasPos)
}

func triArea(a, b, c geom.Point) float64 {
	return math.Abs(geom.Orient(a, b, c)) / 2
}

// lexLess orders points by X, then Y. Used as the deterministic tie-break
// for ear selection.
func lexLess(a, b geom.Point) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}
