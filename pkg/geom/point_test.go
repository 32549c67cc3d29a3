package geom

import (
	"math"
	"testing"
)

func TestPoint_Arithmetic(t *testing.T) {
	a := Point{X: 1, Y: 2}
	b := Point{X: 3, Y: -1}

	if got := a.Add(b); got != (Point{X: 4, Y: 1}) {
		t.Errorf("Add() = %v, want (4, 1)", got)
	}
	if got := a.Sub(b); got != (Point{X: -2, Y: 3}) {
		t.Errorf("Sub() = %v, want (-2, 3)", got)
	}
	if got := a.Scale(2); got != (Point{X: 2, Y: 4}) {
		t.Errorf("Scale() = %v, want (2, 4)", got)
	}
	if got := a.Dot(b); got != 1 {
		t.Errorf("Dot() = %v, want 1", got)
	}
	if got := a.Cross(b); got != -7 {
		t.Errorf("Cross() = %v, want -7", got)
	}
}

func TestPoint_Dist(t *testing.T) {
	a := Point{X: 0, Y: 0}
	b := Point{X: 3, Y: 4}
	if got := a.Dist(b); math.Abs(got-5) > Epsilon {
		t.Errorf("Dist() = %v, want 5", got)
	}
}

func TestPoint_Unit(t *testing.T) {
	v := Point{X: 0, Y: 10}.Unit()
	if !v.Eq(Point{X: 0, Y: 1}, Epsilon) {
		t.Errorf("Unit() = %v, want (0, 1)", v)
	}
	if got := (Point{}).Unit(); got != (Point{}) {
		t.Errorf("Unit() of zero vector = %v, want zero", got)
	}
}

func TestPoint_Perp(t *testing.T) {
	// Perp rotates 90° counter-clockwise: +x becomes +y.
	if got := (Point{X: 1, Y: 0}).Perp(); got != (Point{X: 0, Y: 1}) {
		t.Errorf("Perp() = %v, want (0, 1)", got)
	}
}

func TestSegment_MiddleLength(t *testing.T) {
	s := Segment{Start: Point{X: 0, Y: 0}, End: Point{X: 10, Y: 0}}
	if got := s.Middle(); !got.Eq(Point{X: 5, Y: 0}, Epsilon) {
		t.Errorf("Middle() = %v, want (5, 0)", got)
	}
	if got := s.Length(); math.Abs(got-10) > Epsilon {
		t.Errorf("Length() = %v, want 10", got)
	}
}

func TestSegment_Eq(t *testing.T) {
	s := Segment{Start: Point{X: 0, Y: 0}, End: Point{X: 1, Y: 1}}
	if !s.Eq(s.Reverse(), Epsilon) {
		t.Error("Eq() should match reversed orientation")
	}
	other := Segment{Start: Point{X: 0, Y: 0}, End: Point{X: 2, Y: 1}}
	if s.Eq(other, Epsilon) {
		t.Error("Eq() matched distinct segments")
	}
}

func TestOrient(t *testing.T) {
	a := Point{X: 0, Y: 0}
	b := Point{X: 10, Y: 0}

	if got := Orient(a, b, Point{X: 5, Y: 5}); got <= 0 {
		t.Errorf("Orient() = %v, want > 0 for left turn", got)
	}
	if got := Orient(a, b, Point{X: 5, Y: -5}); got >= 0 {
		t.Errorf("Orient() = %v, want < 0 for right turn", got)
	}
	if got := Orient(a, b, Point{X: 20, Y: 0}); got != 0 {
		t.Errorf("Orient() = %v, want 0 for collinear", got)
	}
}

func TestSegment_DistTo(t *testing.T) {
	s := Segment{Start: Point{X: 0, Y: 0}, End: Point{X: 10, Y: 0}}

	cases := []struct {
		name string
		p    Point
		want float64
	}{
		{"above middle", Point{X: 5, Y: 3}, 3},
		{"beyond end", Point{X: 13, Y: 4}, 5},
		{"on segment", Point{X: 2, Y: 0}, 0},
	}
	for _, tc := range cases {
		if got := s.DistTo(tc.p); math.Abs(got-tc.want) > Epsilon {
			t.Errorf("%s: DistTo(%v) = %v, want %v", tc.name, tc.p, got, tc.want)
		}
	}
}

func TestSegmentIntersect(t *testing.T) {
	s := Segment{Start: Point{X: 0, Y: 0}, End: Point{X: 10, Y: 10}}
	o := Segment{Start: Point{X: 0, Y: 10}, End: Point{X: 10, Y: 0}}

	p, ok := SegmentIntersect(s, o)
	if !ok {
		t.Fatal("SegmentIntersect() reported parallel for crossing diagonals")
	}
	if !p.Eq(Point{X: 5, Y: 5}, Epsilon) {
		t.Errorf("SegmentIntersect() = %v, want (5, 5)", p)
	}

	par := Segment{Start: Point{X: 0, Y: 1}, End: Point{X: 10, Y: 11}}
	if _, ok := SegmentIntersect(s, par); ok {
		t.Error("SegmentIntersect() found intersection of parallel lines")
	}
}
