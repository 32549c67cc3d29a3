package skeleton

import (
	"math"

	"github.com/matzehuels/polyskel/pkg/geom"
)

// Skeleton is the shared output type of all three strategies: a deduplicated
// set of node positions plus a set of geometric edges. Edges carry their own
// endpoint coordinates rather than node indices; adjacency is re-derived on
// demand by the graph queries, so the persisted form is just the two flat
// collections.
//
// Invariants maintained by [Compute]:
//   - every edge endpoint coincides (within tolerance) with a node
//   - NodeCount() == 0 iff EdgeCount() == 0
//
// Skeletons built directly with [New] may violate these; queries degrade
// gracefully (empty results) instead of failing.
type Skeleton struct {
	Nodes []geom.Point   `json:"nodes" bson:"nodes"`
	Edges []geom.Segment `json:"edges" bson:"edges"`
}

// New creates a skeleton directly from node and edge collections.
// The slices are used as-is; no deduplication or validation is performed.
func New(nodes []geom.Point, edges []geom.Segment) Skeleton {
	return Skeleton{Nodes: nodes, Edges: edges}
}

// NodeCount returns the number of skeleton nodes.
func (s Skeleton) NodeCount() int { return len(s.Nodes) }

// EdgeCount returns the number of skeleton edges.
func (s Skeleton) EdgeCount() int { return len(s.Edges) }

// IsEmpty reports whether the skeleton has neither nodes nor edges.
func (s Skeleton) IsEmpty() bool { return len(s.Nodes) == 0 && len(s.Edges) == 0 }

// TotalLength returns the summed length of all edges.
func (s Skeleton) TotalLength() float64 {
	total := 0.0
	for _, e := range s.Edges {
		total += e.Length()
	}
	return total
}

// LeafEdges returns the edges with at least one endpoint on an original
// vertex of p ("spokes" in straight-skeleton output). The complement is
// returned by [Skeleton.CoreEdges]. The split is purely geometric, so it
// works for any producing strategy, though it is chiefly meaningful for
// straight skeletons where every original vertex emits a spoke.
func (s Skeleton) LeafEdges(p geom.Polygon) []geom.Segment {
	leaf, _ := s.SplitLeafCore(p)
	return leaf
}

// CoreEdges returns the interior ridge edges: those touching no original
// vertex of p.
func (s Skeleton) CoreEdges(p geom.Polygon) []geom.Segment {
	_, core := s.SplitLeafCore(p)
	return core
}

// SplitLeafCore partitions the edge set into leaf edges (touching an
// original polygon vertex, within tolerance) and core edges (all others).
// Every edge lands in exactly one of the two slices.
func (s Skeleton) SplitLeafCore(p geom.Polygon) (leaf, core []geom.Segment) {
	for _, e := range s.Edges {
		if touchesVertex(e.Start, p) || touchesVertex(e.End, p) {
			leaf = append(leaf, e)
		} else {
			core = append(core, e)
		}
	}
	return leaf, core
}

func touchesVertex(pt geom.Point, p geom.Polygon) bool {
	for _, v := range p.Vertices {
		if pt.Eq(v, nodeTol) {
			return true
		}
	}
	return false
}

// nodeTol is the tolerance used when matching edge endpoints to nodes.
// It is deliberately coarser than geom.Epsilon: event points are produced
// by bisector intersections whose error grows with coordinate magnitude.
const nodeTol = 1e-4

// builder accumulates skeleton edges and dedupes their endpoints into a
// node set using a rounded-coordinate lookup, avoiding O(n²) pairwise
// matching. All strategies construct their output through a builder so the
// node/edge invariants hold uniformly.
type builder struct {
	nodes []geom.Point
	edges []geom.Segment
	index map[gridKey]int
}

type gridKey struct{ x, y int64 }

func newBuilder() *builder {
	return &builder{index: make(map[gridKey]int)}
}

func keyOf(p geom.Point, tol float64) gridKey {
	return gridKey{
		x: int64(math.Round(p.X / tol)),
		y: int64(math.Round(p.Y / tol)),
	}
}

// addNode returns the canonical position for p, inserting a new node when
// no existing node lies in the same tolerance cell.
func (b *builder) addNode(p geom.Point) geom.Point {
	k := keyOf(p, nodeTol)
	if i, ok := b.index[k]; ok {
		return b.nodes[i]
	}
	// Check the 8 neighbouring cells so near-boundary points still merge.
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			if i, ok := b.index[gridKey{k.x + dx, k.y + dy}]; ok && b.nodes[i].Eq(p, nodeTol) {
				return b.nodes[i]
			}
		}
	}
	b.index[k] = len(b.nodes)
	b.nodes = append(b.nodes, p)
	return p
}

// addEdge records an edge between a and b, canonicalizing both endpoints.
// Degenerate (near zero-length) and duplicate edges are dropped.
func (b *builder) addEdge(a, p geom.Point) {
	if a.Dist(p) < nodeTol {
		return
	}
	ca := b.addNode(a)
	cb := b.addNode(p)
	seg := geom.Segment{Start: ca, End: cb}
	for _, e := range b.edges {
		if e.Eq(seg, nodeTol) {
			return
		}
	}
	b.edges = append(b.edges, seg)
}

// skeleton returns the accumulated result. A builder that never received a
// valid edge yields the empty skeleton.
func (b *builder) skeleton() Skeleton {
	if len(b.edges) == 0 {
		return Skeleton{}
	}
	return Skeleton{Nodes: b.nodes, Edges: b.edges}
}
