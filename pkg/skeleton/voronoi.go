package skeleton

import (
	"math"

	"github.com/matzehuels/polyskel/pkg/geom"
)

// voronoiAxis approximates the medial axis by the Voronoi dual of the
// triangulated boundary: triangle circumcenters are connected across shared
// interior edges, then the result is clipped to the polygon interior.
//
// The boundary is densified first (one sample per edge midpoint) so that
// small polygons still produce interior dual structure; without this a
// triangle polygon has a single triangle and therefore no dual edges at all.
//
// Clipping rule (deliberately conservative, see Options.ClipEndpoints):
// a dual edge is discarded whole when its midpoint lies outside the polygon,
// and, by default, also when either endpoint does. Edges are never re-routed
// or re-triangulated, only filtered, so every emitted edge midpoint lies
// inside or on the boundary of the source polygon.
func voronoiAxis(boundary []geom.Point, opts Options) Skeleton {
	dense := densify(boundary, opts.Tolerance)
	poly := geom.Polygon{Vertices: boundary}
	t := triangulate(dense, opts.Tolerance)
	if len(t.tris) == 0 {
		return Skeleton{}
	}

	centers := make([]geom.Point, len(t.tris))
	valid := make([]bool, len(t.tris))
	for ti, tri := range t.tris {
		centers[ti], valid[ti] = circumcenter(t.pts[tri[0]], t.pts[tri[1]], t.pts[tri[2]])
	}

	b := newBuilder()
	for _, e := range t.neighbors() {
		if len(e.tris) != 2 {
			continue
		}
		ta, tb := e.tris[0], e.tris[1]
		if !valid[ta] || !valid[tb] {
			continue
		}
		ca, cb := centers[ta], centers[tb]
		if ca.Dist(cb) < nodeTol {
			continue
		}
		if !poly.Contains(geom.Mid(ca, cb), nodeTol) {
			continue
		}
		if opts.ClipEndpoints && (!poly.Contains(ca, nodeTol) || !poly.Contains(cb, nodeTol)) {
			continue
		}
		b.addEdge(ca, cb)
	}
	return b.skeleton()
}

// densify inserts the midpoint of every boundary edge, doubling the sample
// count. Consecutive duplicates cannot arise because normalizeBoundary has
// already removed zero-length edges.
func densify(boundary []geom.Point, tol float64) []geom.Point {
	n := len(boundary)
	out := make([]geom.Point, 0, 2*n)
	for i, p := range boundary {
		out = append(out, p)
		next := boundary[(i+1)%n]
		if p.Dist(next) > 2*tol {
			out = append(out, geom.Mid(p, next))
		}
	}
	return out
}

// circumcenter returns the center of the circle through a, b and c.
// ok is false for (near-)collinear triangles, whose circumcenter diverges.
func circumcenter(a, b, c geom.Point) (geom.Point, bool) {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) < geom.Epsilon {
		return geom.Point{}, false
	}
	a2 := a.X*a.X + a.Y*a.Y
	b2 := b.X*b.X + b.Y*b.Y
	c2 := c.X*c.X + c.Y*c.Y
	return geom.Point{
		X: (a2*(b.Y-c.Y) + b2*(c.Y-a.Y) + c2*(a.Y-b.Y)) / d,
		Y: (a2*(c.X-b.X) + b2*(a.X-c.X) + c2*(b.X-a.X)) / d,
	}, true
}
