package skeleton

import (
	"math"

	"github.com/matzehuels/polyskel/pkg/geom"
)

// =============================================================================
// Shared Polygon Fixtures
// =============================================================================

func squarePoly() geom.Polygon {
	return geom.NewPolygon(
		geom.Point{X: 0, Y: 0},
		geom.Point{X: 10, Y: 0},
		geom.Point{X: 10, Y: 10},
		geom.Point{X: 0, Y: 10},
	)
}

func rectanglePoly() geom.Polygon {
	return geom.NewPolygon(
		geom.Point{X: 0, Y: 0},
		geom.Point{X: 20, Y: 0},
		geom.Point{X: 20, Y: 10},
		geom.Point{X: 0, Y: 10},
	)
}

func trianglePoly() geom.Polygon {
	return geom.NewPolygon(
		geom.Point{X: 0, Y: 0},
		geom.Point{X: 10, Y: 0},
		geom.Point{X: 5, Y: 8.66},
	)
}

func lShapePoly() geom.Polygon {
	return geom.NewPolygon(
		geom.Point{X: 0, Y: 0},
		geom.Point{X: 10, Y: 0},
		geom.Point{X: 10, Y: 5},
		geom.Point{X: 5, Y: 5},
		geom.Point{X: 5, Y: 10},
		geom.Point{X: 0, Y: 10},
	)
}

func tShapePoly() geom.Polygon {
	return geom.NewPolygon(
		geom.Point{X: 4, Y: 0},
		geom.Point{X: 8, Y: 0},
		geom.Point{X: 8, Y: 6},
		geom.Point{X: 12, Y: 6},
		geom.Point{X: 12, Y: 9},
		geom.Point{X: 0, Y: 9},
		geom.Point{X: 0, Y: 6},
		geom.Point{X: 4, Y: 6},
	)
}

func arrowPoly() geom.Polygon {
	return geom.NewPolygon(
		geom.Point{X: 0, Y: 2},
		geom.Point{X: 6, Y: 2},
		geom.Point{X: 6, Y: 0},
		geom.Point{X: 10, Y: 4},
		geom.Point{X: 6, Y: 8},
		geom.Point{X: 6, Y: 6},
		geom.Point{X: 0, Y: 6},
	)
}

// starPoly returns a five-pointed star: outer radius 10, inner radius 4,
// centered at the origin.
func starPoly() geom.Polygon {
	pts := make([]geom.Point, 0, 10)
	for i := 0; i < 5; i++ {
		outer := math.Pi/2 + float64(i)*2*math.Pi/5
		inner := outer + math.Pi/5
		pts = append(pts,
			geom.Point{X: 10 * math.Cos(outer), Y: 10 * math.Sin(outer)},
			geom.Point{X: 4 * math.Cos(inner), Y: 4 * math.Sin(inner)},
		)
	}
	return geom.NewPolygon(pts...)
}

// personPoly is a coarse standing-figure silhouette: head, arms, torso,
// and two legs, traced counter-clockwise.
func personPoly() geom.Polygon {
	return geom.NewPolygon(
		geom.Point{X: 4, Y: 0},   // left foot, outer
		geom.Point{X: 6, Y: 0},   // left foot, inner
		geom.Point{X: 7, Y: 6},   // crotch
		geom.Point{X: 8, Y: 0},   // right foot, inner
		geom.Point{X: 10, Y: 0},  // right foot, outer
		geom.Point{X: 10, Y: 10}, // right hip
		geom.Point{X: 13, Y: 9},  // right hand, lower
		geom.Point{X: 14, Y: 11}, // right hand, upper
		geom.Point{X: 10, Y: 13}, // right shoulder
		geom.Point{X: 9, Y: 16},  // head, right
		geom.Point{X: 5, Y: 16},  // head, left
		geom.Point{X: 4, Y: 13},  // left shoulder
		geom.Point{X: 0, Y: 11},  // left hand, upper
		geom.Point{X: 1, Y: 9},   // left hand, lower
		geom.Point{X: 4, Y: 10},  // left hip
	)
}

func degenerateTwoPoint() geom.Polygon {
	return geom.NewPolygon(
		geom.Point{X: 0, Y: 0},
		geom.Point{X: 5, Y: 5},
	)
}

// allStrategies lists every supported strategy once, in dispatch order.
var allStrategies = []Strategy{StraightSkeleton, ChordalAxis, Voronoi}
