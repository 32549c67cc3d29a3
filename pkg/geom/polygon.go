package geom

import "math"

// Polygon is an ordered sequence of vertices; edge i connects vertex i to
// vertex (i+1) mod n, so the boundary is implicitly closed. A Polygon is an
// immutable value: none of its methods mutate the receiver.
type Polygon struct {
	Vertices []Point `json:"vertices" bson:"vertices"`
}

// NewPolygon creates a polygon from the given vertices.
// The slice is copied so later mutation of pts does not alias the polygon.
func NewPolygon(pts ...Point) Polygon {
	v := make([]Point, len(pts))
	copy(v, pts)
	return Polygon{Vertices: v}
}

// Len returns the number of vertices.
func (p Polygon) Len() int { return len(p.Vertices) }

// Edge returns the i-th boundary edge, connecting vertex i to vertex
// (i+1) mod n. Edge panics if the polygon is empty.
func (p Polygon) Edge(i int) Segment {
	n := len(p.Vertices)
	return Segment{Start: p.Vertices[i%n], End: p.Vertices[(i+1)%n]}
}

// Edges returns all boundary edges in order.
func (p Polygon) Edges() []Segment {
	out := make([]Segment, 0, len(p.Vertices))
	for i := range p.Vertices {
		out = append(out, p.Edge(i))
	}
	return out
}

// SignedArea returns the signed area of the polygon: positive for
// counter-clockwise winding, negative for clockwise.
func (p Polygon) SignedArea() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		a, b := p.Vertices[i], p.Vertices[(i+1)%n]
		sum += a.Cross(b)
	}
	return sum / 2
}

// Area returns the absolute area of the polygon.
func (p Polygon) Area() float64 { return math.Abs(p.SignedArea()) }

// Perimeter returns the total boundary length.
func (p Polygon) Perimeter() float64 {
	total := 0.0
	for i := range p.Vertices {
		total += p.Edge(i).Length()
	}
	return total
}

// Centroid returns the area centroid of the polygon. For degenerate
// polygons (area below tolerance) the vertex average is returned instead.
func (p Polygon) Centroid() Point {
	n := len(p.Vertices)
	if n == 0 {
		return Point{}
	}
	a := p.SignedArea()
	if math.Abs(a) < Epsilon {
		var sum Point
		for _, v := range p.Vertices {
			sum = sum.Add(v)
		}
		return sum.Scale(1 / float64(n))
	}
	var c Point
	for i := 0; i < n; i++ {
		u, v := p.Vertices[i], p.Vertices[(i+1)%n]
		w := u.Cross(v)
		c.X += (u.X + v.X) * w
		c.Y += (u.Y + v.Y) * w
	}
	return c.Scale(1 / (6 * a))
}

// IsConvex reports whether all boundary turns have the same sign.
// Collinear vertices are tolerated.
func (p Polygon) IsConvex() bool {
	n := len(p.Vertices)
	if n < 4 {
		return n == 3
	}
	sign := 0
	for i := 0; i < n; i++ {
		o := Orient(p.Vertices[i], p.Vertices[(i+1)%n], p.Vertices[(i+2)%n])
		if math.Abs(o) < Epsilon {
			continue
		}
		s := 1
		if o < 0 {
			s = -1
		}
		if sign == 0 {
			sign = s
		} else if s != sign {
			return false
		}
	}
	return true
}

// Contains reports whether pt lies inside the polygon or within tol of its
// boundary. The test is a standard even-odd ray crossing with an explicit
// boundary check first, so points on edges are always reported inside
// regardless of crossing parity.
func (p Polygon) Contains(pt Point, tol float64) bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		if p.Edge(i).DistTo(pt) <= tol {
			return true
		}
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := p.Vertices[i], p.Vertices[j]
		if (vi.Y > pt.Y) != (vj.Y > pt.Y) {
			x := vj.X + (pt.Y-vj.Y)/(vi.Y-vj.Y)*(vi.X-vj.X)
			if pt.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// Reverse returns the polygon with reversed vertex order (opposite winding).
func (p Polygon) Reverse() Polygon {
	v := make([]Point, len(p.Vertices))
	for i, pt := range p.Vertices {
		v[len(v)-1-i] = pt
	}
	return Polygon{Vertices: v}
}

// Bounds returns the lower-left and upper-right corners of the polygon's
// axis-aligned bounding box. An empty polygon yields two zero points.
func (p Polygon) Bounds() (ll, tr Point) {
	if len(p.Vertices) == 0 {
		return Point{}, Point{}
	}
	ll, tr = p.Vertices[0], p.Vertices[0]
	for _, v := range p.Vertices[1:] {
		ll.X = math.Min(ll.X, v.X)
		ll.Y = math.Min(ll.Y, v.Y)
		tr.X = math.Max(tr.X, v.X)
		tr.Y = math.Max(tr.Y, v.Y)
	}
	return ll, tr
}
