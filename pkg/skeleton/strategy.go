package skeleton

import (
	"fmt"
	"strings"

	"github.com/matzehuels/polyskel/pkg/geom"
)

// Strategy selects the skeletonization algorithm. The three strategies are
// independent pure functions sharing only the [Skeleton] output type; no
// state is shared between calls, so concurrent callers are safe as long as
// they do not mutate the input polygon.
type Strategy int

const (
	// StraightSkeleton simulates an inward-shrinking wavefront of the
	// boundary edges. It is the default strategy and the only one whose
	// output contains every original vertex as a spoke endpoint.
	StraightSkeleton Strategy = iota

	// ChordalAxis derives the skeleton from a constrained triangulation,
	// connecting triangle midpoints and centroids by boundary-edge count.
	// It suppresses the spurious short branches a medial-axis approach
	// produces at sharp convex corners.
	ChordalAxis

	// Voronoi approximates the medial axis by the Delaunay dual of the
	// densified boundary, clipped to the polygon interior.
	Voronoi
)

// String returns the strategy's canonical lowercase name.
func (s Strategy) String() string {
	switch s {
	case StraightSkeleton:
		return "straight"
	case ChordalAxis:
		return "chordal"
	case Voronoi:
		return "voronoi"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy converts a name to a Strategy. Accepted values are
// "straight", "chordal" and "voronoi" (case-insensitive).
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "straight", "straight-skeleton", "":
		return StraightSkeleton, nil
	case "chordal", "chordal-axis":
		return ChordalAxis, nil
	case "voronoi":
		return Voronoi, nil
	default:
		return StraightSkeleton, fmt.Errorf("unknown strategy: %s (must be 'straight', 'chordal', or 'voronoi')", name)
	}
}

// Strategies lists all supported strategies in display order.
func Strategies() []Strategy {
	return []Strategy{StraightSkeleton, ChordalAxis, Voronoi}
}

// Options tunes the numerical behaviour of the skeleton computation.
// The zero value is not usable; start from [DefaultOptions].
type Options struct {
	// Tolerance is the absolute coordinate tolerance used for vertex
	// deduplication and degeneracy checks during preprocessing.
	Tolerance float64

	// ClipEndpoints discards Voronoi edges whose endpoints (not only the
	// midpoint) fall outside the polygon. This is the conservative default;
	// disabling it keeps circumcenter edges that dip outside near obtuse
	// boundary triangles.
	ClipEndpoints bool
}

// DefaultOptions returns the options used by [Compute].
func DefaultOptions() Options {
	return Options{
		Tolerance:     geom.Epsilon,
		ClipEndpoints: true,
	}
}

// Compute returns the topological skeleton of p using the given strategy.
// Degenerate input (fewer than 3 distinct vertices, or near-zero area)
// yields an empty skeleton, never an error: no skeleton for no shape.
func Compute(p geom.Polygon, strategy Strategy) Skeleton {
	return ComputeOpts(p, strategy, DefaultOptions())
}

// ComputeOpts is [Compute] with explicit options.
func ComputeOpts(p geom.Polygon, strategy Strategy, opts Options) Skeleton {
	if opts.Tolerance <= 0 {
		opts.Tolerance = geom.Epsilon
	}
	boundary, ok := normalizeBoundary(p, opts.Tolerance)
	if !ok {
		return Skeleton{}
	}
	switch strategy {
	case ChordalAxis:
		return chordalAxis(boundary, opts)
	case Voronoi:
		return voronoiAxis(boundary, opts)
	default:
		return straightSkeleton(boundary, opts)
	}
}
