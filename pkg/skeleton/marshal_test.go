package skeleton

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestMarshal_RoundTrip(t *testing.T) {
	for _, strat := range allStrategies {
		orig := Compute(lShapePoly(), strat)

		data, err := Marshal(orig)
		if err != nil {
			t.Fatalf("%v: Marshal() error: %v", strat, err)
		}
		back, err := Unmarshal(data)
		if err != nil {
			t.Fatalf("%v: Unmarshal() error: %v", strat, err)
		}

		if back.NodeCount() != orig.NodeCount() || back.EdgeCount() != orig.EdgeCount() {
			t.Fatalf("%v: round-trip counts %d/%d, want %d/%d",
				strat, back.NodeCount(), back.EdgeCount(), orig.NodeCount(), orig.EdgeCount())
		}
		for i, n := range orig.Nodes {
			if !back.Nodes[i].Eq(n, nodeTol) {
				t.Errorf("%v: node %d = %v, want %v", strat, i, back.Nodes[i], n)
			}
		}
		for i, e := range orig.Edges {
			if !back.Edges[i].Eq(e, nodeTol) {
				t.Errorf("%v: edge %d = %v, want %v", strat, i, back.Edges[i], e)
			}
		}
	}
}

// Queries on a deserialized skeleton behave exactly like on the original:
// the flat collections carry everything adjacency needs.
func TestMarshal_QueriesSurviveRoundTrip(t *testing.T) {
	orig := Compute(rectanglePoly(), StraightSkeleton)
	data, err := Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	back, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if a, b := orig.LongestPath(), back.LongestPath(); len(a) != len(b) {
		t.Errorf("LongestPath() after round-trip = %d points, want %d", len(b), len(a))
	}
	if a, b := orig.Branches(), back.Branches(); len(a) != len(b) {
		t.Errorf("Branches() after round-trip = %d, want %d", len(b), len(a))
	}
}

func TestMarshal_EmptySkeleton(t *testing.T) {
	data, err := Marshal(Skeleton{})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	back, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if !back.IsEmpty() {
		t.Error("round-tripped empty skeleton is not empty")
	}
}

func TestUnmarshal_Invalid(t *testing.T) {
	if _, err := Unmarshal([]byte("{not json")); err == nil {
		t.Error("Unmarshal() error = nil for invalid input")
	}
}

func TestWriteFile_ReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skeleton.json")
	orig := Compute(squarePoly(), StraightSkeleton)

	if err := WriteFile(orig, path); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	back, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if back.NodeCount() != orig.NodeCount() || back.EdgeCount() != orig.EdgeCount() {
		t.Errorf("file round-trip counts %d/%d, want %d/%d",
			back.NodeCount(), back.EdgeCount(), orig.NodeCount(), orig.EdgeCount())
	}
}

func TestReadFile_Missing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("ReadFile() error = nil for missing file")
	}
}

func TestWrite_Read_Stream(t *testing.T) {
	var buf bytes.Buffer
	orig := Compute(trianglePoly(), ChordalAxis)
	if err := Write(orig, &buf); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	back, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if back.EdgeCount() != orig.EdgeCount() {
		t.Errorf("stream round-trip EdgeCount() = %d, want %d", back.EdgeCount(), orig.EdgeCount())
	}
}
