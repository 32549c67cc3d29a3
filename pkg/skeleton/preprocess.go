package skeleton

import (
	"math"

	"github.com/matzehuels/polyskel/pkg/geom"
)

// normalizeBoundary validates and cleans the input polygon:
//
//   - consecutive coincident vertices (within tol) are merged, which also
//     collapses zero-length boundary edges
//   - the closing duplicate, if the caller repeated the first vertex, is
//     dropped
//   - winding is normalized to counter-clockwise
//
// It reports ok=false when the result is too degenerate to skeletonize:
// fewer than 3 distinct vertices, or all vertices collinear (zero area).
// Degenerate input is a policy decision, not an error: callers translate
// it to an empty skeleton.
func normalizeBoundary(p geom.Polygon, tol float64) ([]geom.Point, bool) {
	pts := make([]geom.Point, 0, len(p.Vertices))
	for _, v := range p.Vertices {
		if len(pts) > 0 && pts[len(pts)-1].Eq(v, tol) {
			continue
		}
		pts = append(pts, v)
	}
	// Implicit closure: drop a repeated first vertex at the end.
	for len(pts) > 1 && pts[0].Eq(pts[len(pts)-1], tol) {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 3 {
		return nil, false
	}

	area := signedArea(pts)
	if math.Abs(area) < tol {
		return nil, false
	}
	if area < 0 {
		reverse(pts)
	}
	return pts, true
}

func signedArea(pts []geom.Point) float64 {
	sum := 0.0
	for i, a := range pts {
		b := pts[(i+1)%len(pts)]
		sum += a.Cross(b)
	}
	return sum / 2
}

func reverse(pts []geom.Point) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}
