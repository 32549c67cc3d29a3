package skeleton

import "github.com/matzehuels/polyskel/pkg/geom"

// Graph queries treat the edge set as an undirected weighted graph (weight
// = Euclidean edge length). Because edges carry raw coordinates instead of
// node indices, adjacency is re-derived per call by matching endpoints
// against the node set through a rounded-coordinate lookup. This keeps the
// queries uniform across all three producing strategies and tolerant of
// hand-built skeletons: edges whose endpoints match no node are silently
// ignored rather than faulting.

// adjacency is the per-query scratch representation of the skeleton graph.
type adjacency struct {
	nodes []geom.Point
	index map[gridKey]int
	// neighbors[i] lists (node index, edge length) pairs.
	neighbors [][]halfEdge
}

type halfEdge struct {
	to     int
	length float64
}

// buildAdjacency resolves every edge endpoint to a node index. Unresolvable
// edges are dropped (best-effort degradation for inconsistent skeletons).
func (s Skeleton) buildAdjacency() *adjacency {
	a := &adjacency{
		nodes:     s.Nodes,
		index:     make(map[gridKey]int, len(s.Nodes)),
		neighbors: make([][]halfEdge, len(s.Nodes)),
	}
	for i, n := range s.Nodes {
		k := keyOf(n, nodeTol)
		if _, exists := a.index[k]; !exists {
			a.index[k] = i
		}
	}
	for _, e := range s.Edges {
		u, okU := a.resolve(e.Start)
		v, okV := a.resolve(e.End)
		if !okU || !okV || u == v {
			continue
		}
		l := e.Length()
		a.neighbors[u] = append(a.neighbors[u], halfEdge{to: v, length: l})
		a.neighbors[v] = append(a.neighbors[v], halfEdge{to: u, length: l})
	}
	return a
}

// resolve maps a coordinate to its node index, searching the surrounding
// tolerance cells like the builder does.
func (a *adjacency) resolve(p geom.Point) (int, bool) {
	k := keyOf(p, nodeTol)
	if i, ok := a.index[k]; ok && a.nodes[i].Eq(p, nodeTol) {
		return i, true
	}
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			if i, ok := a.index[gridKey{k.x + dx, k.y + dy}]; ok && a.nodes[i].Eq(p, nodeTol) {
				return i, true
			}
		}
	}
	return 0, false
}

// degree returns the number of incident edges of node i.
func (a *adjacency) degree(i int) int { return len(a.neighbors[i]) }

// farthestFrom runs a depth-first longest-path search from start and
// returns the most distant reachable node together with the path to it.
// Skeleton graphs are tree-like, so the search is linear in practice; the
// visited set guards against the occasional cycle.
func (a *adjacency) farthestFrom(start int) (best int, bestDist float64, path []int) {
	visited := make([]bool, len(a.nodes))
	cur := make([]int, 0, len(a.nodes))
	best, bestDist = start, 0
	path = []int{start}

	// On a tree the search expands each node once, well under this budget.
	// Clipping can leave cycles behind, where exhaustive simple-path
	// enumeration blows up combinatorially; once the budget runs out the
	// search keeps the best path found so far, trading exactness for a
	// bounded runtime.
	budget := 64 * (len(a.nodes) + 1)

	var dfs func(n int, dist float64)
	dfs = func(n int, dist float64) {
		if budget <= 0 {
			return
		}
		budget--
		visited[n] = true
		cur = append(cur, n)
		if dist > bestDist {
			bestDist = dist
			path = append(path[:0:0], cur...)
			best = n
		}
		for _, h := range a.neighbors[n] {
			if !visited[h.to] {
				dfs(h.to, dist+h.length)
			}
		}
		cur = cur[:len(cur)-1]
		visited[n] = false
	}
	// Re-allowing visits on backtrack makes the search exact on trees and
	// still terminating on graphs with cycles.
	dfs(start, 0)
	return best, bestDist, path
}

// LongestPath returns the geometrically longest simple path through the
// skeleton as an ordered point sequence: the graph "diameter" found by a
// two-pass farthest-point search. An empty or unresolvable skeleton yields
// an empty path, not an error.
func (s Skeleton) LongestPath() []geom.Point {
	if len(s.Nodes) == 0 || len(s.Edges) == 0 {
		return nil
	}
	a := s.buildAdjacency()

	// The graph may be disconnected (Voronoi clipping can fragment it);
	// take the best diameter over all components, seeding each component
	// from its lowest-index node.
	var bestPath []int
	bestDist := -1.0
	seen := make([]bool, len(a.nodes))
	for i := range a.nodes {
		if seen[i] || a.degree(i) == 0 {
			continue
		}
		tip, _, firstPath := a.farthestFrom(i)
		for _, n := range firstPath {
			seen[n] = true
		}
		_, dist, path := a.farthestFrom(tip)
		for _, n := range path {
			seen[n] = true
		}
		if dist > bestDist {
			bestDist = dist
			bestPath = path
		}
	}
	if len(bestPath) < 2 {
		return nil
	}
	out := make([]geom.Point, len(bestPath))
	for i, n := range bestPath {
		out[i] = a.nodes[n]
	}
	return out
}

// Branches decomposes the edge set into maximal simple paths between
// nodes of degree ≠ 2 (leaves and branch points). A skeleton that is a
// single chain yields exactly one branch; a pure cycle yields one closed
// branch. The result is empty for empty or unresolvable skeletons.
func (s Skeleton) Branches() [][]geom.Point {
	if len(s.Nodes) == 0 || len(s.Edges) == 0 {
		return nil
	}
	a := s.buildAdjacency()

	used := make(map[[2]int]bool)
	use := func(u, v int) {
		used[[2]int{minInt(u, v), maxInt(u, v)}] = true
	}
	isUsed := func(u, v int) bool {
		return used[[2]int{minInt(u, v), maxInt(u, v)}]
	}

	var branches [][]geom.Point
	walk := func(start, next int) {
		path := []geom.Point{a.nodes[start], a.nodes[next]}
		use(start, next)
		prev, cur := start, next
		for a.degree(cur) == 2 {
			var nxt = -1
			for _, h := range a.neighbors[cur] {
				if h.to != prev && !isUsed(cur, h.to) {
					nxt = h.to
					break
				}
			}
			if nxt < 0 {
				break
			}
			use(cur, nxt)
			path = append(path, a.nodes[nxt])
			prev, cur = cur, nxt
		}
		branches = append(branches, path)
	}

	// Pass 1: grow branches outward from every leaf and branch point.
	for i := range a.nodes {
		if a.degree(i) == 2 {
			continue
		}
		for _, h := range a.neighbors[i] {
			if !isUsed(i, h.to) {
				walk(i, h.to)
			}
		}
	}
	// Pass 2: leftover edges belong to pure cycles (every node degree 2);
	// emit each cycle as one closed branch.
	for i := range a.nodes {
		for _, h := range a.neighbors[i] {
			if !isUsed(i, h.to) {
				walk(i, h.to)
			}
		}
	}
	return branches
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
