package skeleton

import "github.com/matzehuels/polyskel/pkg/geom"

// Triangle classes by boundary-edge count. A sleeve carries the axis
// through, a junction branches it, and a terminal caps it at a polygon ear.
const (
	triJunction = 0 // no boundary edges: branch point, 3 interior neighbors
	triSleeve   = 1 // one boundary edge: pass-through
	triTerminal = 2 // two boundary edges: polygon ear, connector only
)

// chordalAxis extracts the chordal axis transform from the constrained
// triangulation of the boundary:
//
//   - sleeve triangles contribute one edge connecting the midpoints of
//     their two interior edges
//   - junction triangles contribute three edges from their centroid to each
//     interior edge midpoint
//   - terminal triangles contribute nothing; their single interior edge
//     midpoint is picked up by the neighboring triangle
//
// Suppressing terminal contributions is what keeps the axis free of the
// spurious short branches a medial-axis approach produces at sharp convex
// corners.
//
// When the polygon itself is a triangle (all three edges boundary) the
// centroid is connected to each edge midpoint, the smallest non-empty axis.
// When every triangle is terminal (e.g. a convex quad split into two ears)
// the axis would otherwise be empty, so adjacent terminal pairs are bridged
// centroid-to-centroid through their shared edge midpoint.
func chordalAxis(boundary []geom.Point, opts Options) Skeleton {
	t := triangulate(boundary, opts.Tolerance)
	if len(t.tris) == 0 {
		return Skeleton{}
	}
	b := newBuilder()

	if len(t.tris) == 1 {
		// The polygon is a single triangle: emit centroid spokes.
		tri := t.tris[0]
		c := t.centroid(0)
		for e := 0; e < 3; e++ {
			m := geom.Mid(t.pts[tri[e]], t.pts[tri[(e+1)%3]])
			b.addEdge(c, m)
		}
		return b.skeleton()
	}

	for ti, tri := range t.tris {
		interior := interiorMidpoints(t, tri)
		switch len(interior) {
		case 2: // sleeve
			b.addEdge(interior[0], interior[1])
		case 3: // junction
			c := t.centroid(ti)
			for _, m := range interior {
				b.addEdge(c, m)
			}
		}
		// terminal (1 interior edge): connector only, no own edge
	}

	if len(b.edges) == 0 {
		// All triangles are terminal: bridge each shared interior edge so
		// the axis is non-empty and connected.
		for _, e := range t.neighbors() {
			if len(e.tris) != 2 {
				continue
			}
			m := geom.Mid(t.pts[e.key.lo], t.pts[e.key.hi])
			b.addEdge(t.centroid(e.tris[0]), m)
			b.addEdge(m, t.centroid(e.tris[1]))
		}
	}
	return b.skeleton()
}

// interiorMidpoints returns the midpoints of the triangle's non-boundary
// edges, in edge order.
func interiorMidpoints(t *triangulation, tri [3]int) []geom.Point {
	var out []geom.Point
	for e := 0; e < 3; e++ {
		a, b := tri[e], tri[(e+1)%3]
		if !t.isBoundary(a, b) {
			out = append(out, geom.Mid(t.pts[a], t.pts[b]))
		}
	}
	return out
}
