// Package skeleton computes topological skeletons of simple 2D polygons:
// thin, connected graphs of nodes and edges approximating the polygon's
// medial/centerline structure, used downstream for path extraction, shape
// description, and traversal-path generation.
//
// Three independent strategies share one output representation, so callers
// are strategy-agnostic:
//
//   - [StraightSkeleton] simulates the boundary shrinking inward at unit
//     speed, driven by a priority queue of edge and split events
//   - [ChordalAxis] classifies the triangles of a constrained boundary
//     triangulation and threads the axis through their midpoints
//   - [Voronoi] clips the Delaunay dual of the densified boundary to the
//     polygon interior
//
// # Usage
//
//	poly := geom.NewPolygon(
//	    geom.Point{X: 0, Y: 0},
//	    geom.Point{X: 10, Y: 0},
//	    geom.Point{X: 10, Y: 10},
//	    geom.Point{X: 0, Y: 10},
//	)
//	sk := skeleton.Compute(poly, skeleton.StraightSkeleton)
//	spine := sk.LongestPath()
//	branches := sk.Branches()
//
// # Degeneracy policy
//
// Polygons with fewer than three distinct vertices (or near-zero area)
// yield the empty skeleton: no shape, no skeleton, no error. Numerical
// degeneracies inside the algorithms are resolved locally with epsilon
// thresholds and deterministic tie-breaks; no code path panics or returns
// an error.
//
// Each computation is a self-contained, side-effect-free function over
// immutable values, so concurrent calls need no synchronization.
package skeleton
