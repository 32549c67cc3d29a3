package skeleton

import (
	"reflect"
	"testing"

	"github.com/matzehuels/polyskel/pkg/geom"
)

func TestParseStrategy(t *testing.T) {
	cases := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{"straight", StraightSkeleton, false},
		{"Straight", StraightSkeleton, false},
		{"straight-skeleton", StraightSkeleton, false},
		{"", StraightSkeleton, false},
		{"chordal", ChordalAxis, false},
		{"CHORDAL-AXIS", ChordalAxis, false},
		{"voronoi", Voronoi, false},
		{"  voronoi  ", Voronoi, false},
		{"medial", StraightSkeleton, true},
	}
	for _, tc := range cases {
		got, err := ParseStrategy(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseStrategy(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseStrategy(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestStrategy_String(t *testing.T) {
	cases := map[Strategy]string{
		StraightSkeleton: "straight",
		ChordalAxis:      "chordal",
		Voronoi:          "voronoi",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}

func TestStrategy_RoundTrip(t *testing.T) {
	for _, s := range Strategies() {
		back, err := ParseStrategy(s.String())
		if err != nil {
			t.Fatalf("ParseStrategy(%q) error: %v", s.String(), err)
		}
		if back != s {
			t.Errorf("ParseStrategy(String()) = %v, want %v", back, s)
		}
	}
}

func TestCompute_DegenerateInput(t *testing.T) {
	degenerate := []struct {
		name string
		poly geom.Polygon
	}{
		{"empty", geom.NewPolygon()},
		{"single point", geom.NewPolygon(geom.Point{X: 1, Y: 1})},
		{"two points", degenerateTwoPoint()},
		{"repeated point", geom.NewPolygon(
			geom.Point{X: 1, Y: 1},
			geom.Point{X: 1, Y: 1},
			geom.Point{X: 1, Y: 1},
		)},
		{"collinear", geom.NewPolygon(
			geom.Point{X: 0, Y: 0},
			geom.Point{X: 5, Y: 0},
			geom.Point{X: 10, Y: 0},
		)},
	}
	for _, tc := range degenerate {
		for _, strat := range allStrategies {
			sk := Compute(tc.poly, strat)
			if !sk.IsEmpty() {
				t.Errorf("%s/%v: Compute() = %d nodes, %d edges; want empty skeleton",
					tc.name, strat, sk.NodeCount(), sk.EdgeCount())
			}
			if got := sk.LongestPath(); got != nil {
				t.Errorf("%s/%v: LongestPath() = %v, want nil", tc.name, strat, got)
			}
			if got := sk.Branches(); len(got) != 0 {
				t.Errorf("%s/%v: Branches() = %v, want empty", tc.name, strat, got)
			}
		}
	}
}

func TestCompute_TriangleAllStrategies(t *testing.T) {
	tri := trianglePoly()
	for _, strat := range allStrategies {
		sk := Compute(tri, strat)
		if sk.EdgeCount() < 1 {
			t.Errorf("%v: EdgeCount() = %d, want >= 1", strat, sk.EdgeCount())
		}
	}
}

// TestCompute_Containment checks the cross-strategy invariant: every edge
// lies inside the polygon, verified at the edge midpoints.
func TestCompute_Containment(t *testing.T) {
	fixtures := []struct {
		name string
		poly geom.Polygon
	}{
		{"square", squarePoly()},
		{"rectangle", rectanglePoly()},
		{"triangle", trianglePoly()},
		{"l-shape", lShapePoly()},
		{"t-shape", tShapePoly()},
		{"arrow", arrowPoly()},
		{"star", starPoly()},
		{"person", personPoly()},
	}
	for _, tc := range fixtures {
		for _, strat := range allStrategies {
			sk := Compute(tc.poly, strat)
			for i, e := range sk.Edges {
				if !tc.poly.Contains(e.Middle(), 1e-3) {
					t.Errorf("%s/%v: edge %d midpoint %v outside polygon",
						tc.name, strat, i, e.Middle())
				}
			}
		}
	}
}

func TestCompute_WindingIndependent(t *testing.T) {
	ccw := squarePoly()
	cw := ccw.Reverse()
	for _, strat := range allStrategies {
		a := Compute(ccw, strat)
		b := Compute(cw, strat)
		if a.NodeCount() != b.NodeCount() || a.EdgeCount() != b.EdgeCount() {
			t.Errorf("%v: CW square gave %d/%d, CCW gave %d/%d",
				strat, b.NodeCount(), b.EdgeCount(), a.NodeCount(), a.EdgeCount())
		}
	}
}

func TestCompute_ClosedRingInput(t *testing.T) {
	// A ring that repeats the first vertex at the end must behave like the
	// open form.
	open := squarePoly()
	closed := geom.NewPolygon(append(append([]geom.Point{}, open.Vertices...), open.Vertices[0])...)
	for _, strat := range allStrategies {
		a := Compute(open, strat)
		b := Compute(closed, strat)
		if a.NodeCount() != b.NodeCount() || a.EdgeCount() != b.EdgeCount() {
			t.Errorf("%v: closed ring gave %d/%d, open gave %d/%d",
				strat, b.NodeCount(), b.EdgeCount(), a.NodeCount(), a.EdgeCount())
		}
	}
}

func TestCompute_Deterministic(t *testing.T) {
	// Node and edge ordering must be reproducible, not just the set of
	// coordinates; repeat enough times to shake out any map-order leakage.
	polys := []geom.Polygon{squarePoly(), lShapePoly(), tShapePoly(), personPoly()}
	for _, strat := range allStrategies {
		for pi, poly := range polys {
			first := Compute(poly, strat)
			for run := 0; run < 10; run++ {
				if again := Compute(poly, strat); !reflect.DeepEqual(first, again) {
					t.Fatalf("%v: polygon %d run %d: repeated Compute() differs", strat, pi, run)
				}
			}
		}
	}
}

func TestComputeOpts_ZeroToleranceFallsBack(t *testing.T) {
	sk := ComputeOpts(squarePoly(), StraightSkeleton, Options{})
	if sk.IsEmpty() {
		t.Error("ComputeOpts() with zero options returned empty skeleton for square")
	}
}
