package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/polyskel/pkg/geom"
)

func TestReadPolygon_Canonical(t *testing.T) {
	input := `{"vertices": [{"x": 0, "y": 0}, {"x": 10, "y": 0}, {"x": 5, "y": 8}]}`
	p, err := ReadPolygon(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadPolygon: %v", err)
	}
	if len(p.Vertices) != 3 {
		t.Fatalf("got %d vertices, want 3", len(p.Vertices))
	}
	if p.Vertices[2] != (geom.Point{X: 5, Y: 8}) {
		t.Errorf("vertex 2 = %v", p.Vertices[2])
	}
}

func TestReadPolygon_BarePointArray(t *testing.T) {
	input := `[{"x": 0, "y": 0}, {"x": 4, "y": 0}, {"x": 2, "y": 3}]`
	p, err := ReadPolygon(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadPolygon: %v", err)
	}
	if len(p.Vertices) != 3 {
		t.Fatalf("got %d vertices, want 3", len(p.Vertices))
	}
	if p.Vertices[1] != (geom.Point{X: 4, Y: 0}) {
		t.Errorf("vertex 1 = %v", p.Vertices[1])
	}
}

func TestReadPolygon_PairArray(t *testing.T) {
	input := `[[0, 0], [4, 0], [2, 3]]`
	p, err := ReadPolygon(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadPolygon: %v", err)
	}
	if len(p.Vertices) != 3 {
		t.Fatalf("got %d vertices, want 3", len(p.Vertices))
	}
	if p.Vertices[2] != (geom.Point{X: 2, Y: 3}) {
		t.Errorf("vertex 2 = %v", p.Vertices[2])
	}
}

func TestReadPolygon_Invalid(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"malformed", `{"vertices": [`},
		{"wrong type", `"not a polygon"`},
		{"bad pair array", `[["a", "b"]]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ReadPolygon(strings.NewReader(tc.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestPolygonRoundTrip(t *testing.T) {
	orig := geom.NewPolygon(
		geom.Point{X: 0, Y: 0},
		geom.Point{X: 10, Y: 0},
		geom.Point{X: 10, Y: 10},
		geom.Point{X: 0, Y: 10},
	)

	var buf bytes.Buffer
	if err := WritePolygon(orig, &buf); err != nil {
		t.Fatalf("WritePolygon: %v", err)
	}
	got, err := ReadPolygon(&buf)
	if err != nil {
		t.Fatalf("ReadPolygon: %v", err)
	}
	if len(got.Vertices) != len(orig.Vertices) {
		t.Fatalf("got %d vertices, want %d", len(got.Vertices), len(orig.Vertices))
	}
	for i := range orig.Vertices {
		if got.Vertices[i] != orig.Vertices[i] {
			t.Errorf("vertex %d = %v, want %v", i, got.Vertices[i], orig.Vertices[i])
		}
	}
}

func TestImportExportPolygon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shape.json")
	orig := geom.NewPolygon(
		geom.Point{X: 0, Y: 0},
		geom.Point{X: 6, Y: 0},
		geom.Point{X: 3, Y: 4},
	)

	if err := ExportPolygon(orig, path); err != nil {
		t.Fatalf("ExportPolygon: %v", err)
	}
	got, err := ImportPolygon(path)
	if err != nil {
		t.Fatalf("ImportPolygon: %v", err)
	}
	if len(got.Vertices) != 3 {
		t.Errorf("got %d vertices, want 3", len(got.Vertices))
	}
}

func TestImportPolygon_Missing(t *testing.T) {
	if _, err := ImportPolygon(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("missing file should error")
	}
}
