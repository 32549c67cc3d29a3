package skeleton

import (
	"math"
	"testing"

	"github.com/matzehuels/polyskel/pkg/geom"
)

func seg(ax, ay, bx, by float64) geom.Segment {
	return geom.Segment{Start: geom.Point{X: ax, Y: ay}, End: geom.Point{X: bx, Y: by}}
}

func TestLongestPath_Chain(t *testing.T) {
	sk := New(
		[]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}},
		[]geom.Segment{seg(0, 0, 10, 0), seg(10, 0, 20, 0)},
	)
	path := sk.LongestPath()
	if len(path) != 3 {
		t.Fatalf("LongestPath() = %d points, want 3", len(path))
	}
	// Either orientation is fine; the ends must be the chain ends.
	if got := path[0].Dist(path[2]); math.Abs(got-20) > geom.Epsilon {
		t.Errorf("path end distance = %v, want 20", got)
	}
}

func TestLongestPath_Cross(t *testing.T) {
	center := geom.Point{X: 0, Y: 0}
	sk := New(
		[]geom.Point{center, {X: 10, Y: 0}, {X: -10, Y: 0}, {X: 0, Y: 10}, {X: 0, Y: -10}},
		[]geom.Segment{
			seg(0, 0, 10, 0),
			seg(0, 0, -10, 0),
			seg(0, 0, 0, 10),
			seg(0, 0, 0, -10),
		},
	)
	path := sk.LongestPath()
	if len(path) != 3 {
		t.Fatalf("LongestPath() = %d points, want 3 (tip, center, tip)", len(path))
	}
	if !path[1].Eq(center, geom.Epsilon) {
		t.Errorf("path middle = %v, want center", path[1])
	}
}

func TestLongestPath_DisconnectedComponents(t *testing.T) {
	sk := New(
		[]geom.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 100, Y: 0}, {X: 130, Y: 0}},
		[]geom.Segment{seg(0, 0, 5, 0), seg(100, 0, 130, 0)},
	)
	path := sk.LongestPath()
	if len(path) != 2 {
		t.Fatalf("LongestPath() = %d points, want 2", len(path))
	}
	if got := path[0].Dist(path[1]); math.Abs(got-30) > geom.Epsilon {
		t.Errorf("picked component with length %v, want the 30-long one", got)
	}
}

func TestLongestPath_Cycle(t *testing.T) {
	sk := New(
		[]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		[]geom.Segment{
			seg(0, 0, 10, 0),
			seg(10, 0, 10, 10),
			seg(10, 10, 0, 10),
			seg(0, 10, 0, 0),
		},
	)
	path := sk.LongestPath()
	// The longest simple path in a 4-ring walks three of the four edges.
	if len(path) != 4 {
		t.Errorf("LongestPath() = %d points, want 4", len(path))
	}
}

// A dense mesh of cycles has combinatorially many simple paths; the search
// must still finish and return a usable path rather than enumerating them.
func TestLongestPath_DenseCyclicMesh(t *testing.T) {
	const n = 8
	var nodes []geom.Point
	var edges []geom.Segment
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			nodes = append(nodes, geom.Point{X: float64(x), Y: float64(y)})
			if x > 0 {
				edges = append(edges, seg(float64(x-1), float64(y), float64(x), float64(y)))
			}
			if y > 0 {
				edges = append(edges, seg(float64(x), float64(y-1), float64(x), float64(y)))
			}
		}
	}
	sk := New(nodes, edges)

	path := sk.LongestPath()
	if len(path) < n {
		t.Fatalf("LongestPath() = %d points, want at least %d", len(path), n)
	}
	// The result must be a simple path over real edges.
	seen := make(map[geom.Point]bool)
	for i, p := range path {
		if seen[p] {
			t.Fatalf("path revisits %v", p)
		}
		seen[p] = true
		if i > 0 && path[i-1].Dist(p) > 1+geom.Epsilon {
			t.Fatalf("path jumps from %v to %v", path[i-1], p)
		}
	}
}

func TestLongestPath_Empty(t *testing.T) {
	if got := New(nil, nil).LongestPath(); got != nil {
		t.Errorf("LongestPath() = %v, want nil", got)
	}
	// Nodes without edges are isolated: still no path.
	sk := New([]geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, nil)
	if got := sk.LongestPath(); got != nil {
		t.Errorf("LongestPath() = %v, want nil", got)
	}
}

// Hand-built skeletons may reference coordinates that match no node; such
// edges are ignored rather than faulting.
func TestLongestPath_UnresolvableEdges(t *testing.T) {
	sk := New(
		[]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}},
		[]geom.Segment{seg(50, 50, 60, 60)},
	)
	if got := sk.LongestPath(); got != nil {
		t.Errorf("LongestPath() = %v, want nil", got)
	}
	if got := sk.Branches(); len(got) != 0 {
		t.Errorf("Branches() = %v, want empty", got)
	}
}

// Endpoints within the node tolerance still resolve to their node.
func TestLongestPath_ToleranceMatching(t *testing.T) {
	sk := New(
		[]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}},
		[]geom.Segment{seg(0.00005, 0, 10, 0.00003)},
	)
	path := sk.LongestPath()
	if len(path) != 2 {
		t.Fatalf("LongestPath() = %d points, want 2", len(path))
	}
}

func TestBranches_Chain(t *testing.T) {
	sk := New(
		[]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}},
		[]geom.Segment{seg(0, 0, 10, 0), seg(10, 0, 20, 0)},
	)
	branches := sk.Branches()
	if len(branches) != 1 {
		t.Fatalf("Branches() = %d, want 1 for a single chain", len(branches))
	}
	if len(branches[0]) != 3 {
		t.Errorf("branch has %d points, want 3", len(branches[0]))
	}
}

func TestBranches_Cross(t *testing.T) {
	sk := New(
		[]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: -10, Y: 0}, {X: 0, Y: 10}, {X: 0, Y: -10}},
		[]geom.Segment{
			seg(0, 0, 10, 0),
			seg(0, 0, -10, 0),
			seg(0, 0, 0, 10),
			seg(0, 0, 0, -10),
		},
	)
	branches := sk.Branches()
	if len(branches) != 4 {
		t.Fatalf("Branches() = %d, want 4 spokes", len(branches))
	}
	for _, br := range branches {
		if len(br) != 2 {
			t.Errorf("spoke branch has %d points, want 2", len(br))
		}
	}
}

func TestBranches_Cycle(t *testing.T) {
	sk := New(
		[]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		[]geom.Segment{
			seg(0, 0, 10, 0),
			seg(10, 0, 10, 10),
			seg(10, 10, 0, 10),
			seg(0, 10, 0, 0),
		},
	)
	branches := sk.Branches()
	if len(branches) != 1 {
		t.Fatalf("Branches() = %d, want 1 closed branch for a pure cycle", len(branches))
	}
	br := branches[0]
	if len(br) != 5 || !br[0].Eq(br[len(br)-1], geom.Epsilon) {
		t.Errorf("cycle branch = %v, want closed walk of 5 points", br)
	}
}

func TestBranches_Empty(t *testing.T) {
	if got := New(nil, nil).Branches(); len(got) != 0 {
		t.Errorf("Branches() = %v, want empty", got)
	}
}

// Every edge of a computed skeleton lands in exactly one branch: summed
// branch lengths equal the skeleton's total length.
func TestBranches_CoverAllEdges(t *testing.T) {
	for _, strat := range allStrategies {
		sk := Compute(lShapePoly(), strat)
		if sk.IsEmpty() {
			t.Fatalf("%v: empty skeleton for L-shape", strat)
		}
		sum := 0.0
		for _, br := range sk.Branches() {
			for i := 1; i < len(br); i++ {
				sum += br[i-1].Dist(br[i])
			}
		}
		if want := sk.TotalLength(); math.Abs(sum-want) > 1e-6 {
			t.Errorf("%v: branch lengths sum to %v, want %v", strat, sum, want)
		}
	}
}
