package skeleton

import (
	"testing"

	"github.com/matzehuels/polyskel/pkg/geom"
)

func TestNormalizeBoundary_ForcesCCW(t *testing.T) {
	pts, ok := normalizeBoundary(squarePoly().Reverse(), geom.Epsilon)
	if !ok {
		t.Fatal("normalizeBoundary() rejected CW square")
	}
	if area := signedArea(pts); area <= 0 {
		t.Errorf("signedArea() = %v after normalization, want > 0", area)
	}
}

func TestNormalizeBoundary_MergesDuplicates(t *testing.T) {
	p := geom.NewPolygon(
		geom.Point{X: 0, Y: 0},
		geom.Point{X: 0, Y: 0}, // consecutive duplicate
		geom.Point{X: 10, Y: 0},
		geom.Point{X: 10, Y: 10},
		geom.Point{X: 0, Y: 10},
		geom.Point{X: 0, Y: 0}, // closing duplicate
	)
	pts, ok := normalizeBoundary(p, geom.Epsilon)
	if !ok {
		t.Fatal("normalizeBoundary() rejected valid ring")
	}
	if len(pts) != 4 {
		t.Errorf("got %d points, want 4", len(pts))
	}
}

func TestNormalizeBoundary_Degenerate(t *testing.T) {
	cases := []struct {
		name string
		poly geom.Polygon
	}{
		{"empty", geom.NewPolygon()},
		{"two points", degenerateTwoPoint()},
		{"all same", geom.NewPolygon(
			geom.Point{X: 2, Y: 2}, geom.Point{X: 2, Y: 2}, geom.Point{X: 2, Y: 2},
		)},
		{"collinear", geom.NewPolygon(
			geom.Point{X: 0, Y: 0}, geom.Point{X: 1, Y: 1}, geom.Point{X: 2, Y: 2},
		)},
	}
	for _, tc := range cases {
		if _, ok := normalizeBoundary(tc.poly, geom.Epsilon); ok {
			t.Errorf("%s: normalizeBoundary() ok = true, want false", tc.name)
		}
	}
}

func TestNormalizeBoundary_PreservesValidInput(t *testing.T) {
	orig := lShapePoly()
	pts, ok := normalizeBoundary(orig, geom.Epsilon)
	if !ok {
		t.Fatal("normalizeBoundary() rejected L-shape")
	}
	if len(pts) != orig.Len() {
		t.Fatalf("got %d points, want %d", len(pts), orig.Len())
	}
	for i, p := range pts {
		if !p.Eq(orig.Vertices[i], geom.Epsilon) {
			t.Errorf("point %d = %v, want %v", i, p, orig.Vertices[i])
		}
	}
}
