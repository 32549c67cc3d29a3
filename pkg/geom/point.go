package geom

import (
	"fmt"
	"math"
)

// Epsilon is the default tolerance for coordinate comparisons.
// Two points closer than Epsilon are treated as coincident. The value is
// small enough for millimeter-scale seam geometry while absorbing the
// rounding noise of bisector and circumcenter math.
const Epsilon = 1e-6

// Point is a 2D coordinate value. X increases to the right, Y increases
// up the page (mathematical convention, not image convention).
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Add returns the component-wise sum a+b.
func (a Point) Add(b Point) Point { return Point{a.X + b.X, a.Y + b.Y} }

// Sub returns the component-wise difference a-b.
func (a Point) Sub(b Point) Point { return Point{a.X - b.X, a.Y - b.Y} }

// Scale returns the point scaled by s.
func (a Point) Scale(s float64) Point { return Point{a.X * s, a.Y * s} }

// Dot returns the dot product a·b.
func (a Point) Dot(b Point) float64 { return a.X*b.X + a.Y*b.Y }

// Cross returns the 2D cross product (z-component of a×b).
// Positive when b is counter-clockwise from a.
func (a Point) Cross(b Point) float64 { return a.X*b.Y - a.Y*b.X }

// Norm returns the Euclidean length of the vector from the origin to a.
func (a Point) Norm() float64 { return math.Hypot(a.X, a.Y) }

// Dist returns the Euclidean distance between a and b.
func (a Point) Dist(b Point) float64 { return a.Sub(b).Norm() }

// Unit returns the unit vector in the direction of a.
// The zero vector is returned unchanged.
func (a Point) Unit() Point {
	n := a.Norm()
	if n < Epsilon {
		return Point{}
	}
	return a.Scale(1 / n)
}

// Perp returns a rotated 90° counter-clockwise.
func (a Point) Perp() Point { return Point{-a.Y, a.X} }

// Eq reports whether a and b coincide within tol.
func (a Point) Eq(b Point, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

// String formats the point as "(x, y)" with three decimals.
func (a Point) String() string { return fmt.Sprintf("(%.3f, %.3f)", a.X, a.Y) }

// Lerp returns the point a + t*(b-a).
func Lerp(a, b Point, t float64) Point {
	return Point{a.X + t*(b.X-a.X), a.Y + t*(b.Y-a.Y)}
}

// Mid returns the midpoint of a and b.
func Mid(a, b Point) Point { return Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2} }

// Segment is an ordered pair of points. It serves both as a polygon edge
// view and as a skeleton edge; it carries its own endpoint coordinates
// rather than indices into any node set.
type Segment struct {
	Start Point `json:"start" bson:"start"`
	End   Point `json:"end" bson:"end"`
}

// Middle returns the segment midpoint.
func (s Segment) Middle() Point { return Mid(s.Start, s.End) }

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 { return s.Start.Dist(s.End) }

// Dir returns the unit direction vector from Start to End.
func (s Segment) Dir() Point { return s.End.Sub(s.Start).Unit() }

// Reverse returns the segment with swapped endpoints.
func (s Segment) Reverse() Segment { return Segment{Start: s.End, End: s.Start} }

// Eq reports whether two segments share the same endpoints within tol,
// in either orientation.
func (s Segment) Eq(o Segment, tol float64) bool {
	if s.Start.Eq(o.Start, tol) && s.End.Eq(o.End, tol) {
		return true
	}
	return s.Start.Eq(o.End, tol) && s.End.Eq(o.Start, tol)
}

// Orient returns the orientation of c relative to the directed line a→b:
// positive for counter-clockwise (left), negative for clockwise (right),
// and a magnitude below any caller tolerance for collinear points.
// The value is twice the signed area of the triangle abc.
func Orient(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// SegmentIntersect returns the intersection point of the infinite lines
// through s and o, and reports whether the lines are non-parallel.
// Callers that need segment-bounded intersection must check the returned
// parameters themselves via [Segment.ParamOf].
func SegmentIntersect(s, o Segment) (Point, bool) {
	d1 := s.End.Sub(s.Start)
	d2 := o.End.Sub(o.Start)
	denom := d1.Cross(d2)
	if math.Abs(denom) < Epsilon {
		return Point{}, false
	}
	t := o.Start.Sub(s.Start).Cross(d2) / denom
	return s.Start.Add(d1.Scale(t)), true
}

// ParamOf returns the parameter t such that Lerp(Start, End, t) is the
// projection of p onto the segment's line. t in [0,1] means the projection
// falls within the segment.
func (s Segment) ParamOf(p Point) float64 {
	d := s.End.Sub(s.Start)
	den := d.Dot(d)
	if den < Epsilon*Epsilon {
		return 0
	}
	return p.Sub(s.Start).Dot(d) / den
}

// DistTo returns the distance from p to the closest point on the segment.
func (s Segment) DistTo(p Point) float64 {
	t := s.ParamOf(p)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Dist(Lerp(s.Start, s.End, t))
}
