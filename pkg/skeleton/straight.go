package skeleton

import (
	"container/heap"
	"math"

	"github.com/matzehuels/polyskel/pkg/geom"
)

// The straight skeleton is computed by simulating the polygon boundary
// shrinking inward at unit normal speed. Each wavefront vertex travels
// along the bisector of its two incident edges; the simulation advances
// from event to event:
//
//   - edge event: a wavefront edge collapses to zero length and its two
//     endpoint vertices merge into one
//   - split event: a reflex vertex's bisector hits an opposite wavefront
//     edge, splitting the active contour in two
//
// Every vertex trajectory between events becomes a skeleton edge and every
// event point becomes a node, so an n-gon yields n spokes plus at least one
// interior collapse node.
//
// Event times are absolute wavefront offsets (the perpendicular distance of
// the event point from the original edge lines), so the priority queue
// needs no per-vertex clock. Active contours are circular doubly-linked
// vertex lists; a split can divide one contour into two. Simultaneous
// events (within tolerance) are ordered edge-before-split, then by original
// vertex index, which makes the output deterministic.

// wfVertex is a vertex of the advancing wavefront.
type wfVertex struct {
	point geom.Point
	// edgeLeft ends at this vertex's creation point, edgeRight starts
	// there. Both refer to original (time-zero) boundary edges; fronts are
	// those edges offset inward by the current time.
	edgeLeft  geom.Segment
	edgeRight geom.Segment
	bisector  geom.Point // unit direction of travel
	time      float64    // wavefront offset at which the vertex was created
	reflex    bool
	valid     bool
	index     int // original vertex index, used for event tie-breaks

	prev, next *wfVertex
}

func (v *wfVertex) invalidate() { v.valid = false }

// newWFVertex derives the bisector from the two incident edges: the sum of
// the unit vectors toward both neighbors, negated for reflex corners so the
// vertex always advances into the unswept interior. ok is false when the
// two directions cancel (a collinear continuation, not a real corner).
func newWFVertex(p geom.Point, left, right geom.Segment, index int, time float64) (*wfVertex, bool) {
	dl := left.Dir()
	dr := right.Dir()
	s := dr.Sub(dl)
	if s.Norm() < geom.Epsilon {
		return nil, false
	}
	reflex := dl.Cross(dr) < -geom.Epsilon
	bis := s.Unit()
	if reflex {
		bis = bis.Scale(-1)
	}
	return &wfVertex{
		point:     p,
		edgeLeft:  left,
		edgeRight: right,
		bisector:  bis,
		time:      time,
		reflex:    reflex,
		valid:     true,
		index:     index,
	}, true
}

// eventKind orders simultaneous events: edge events apply before splits.
type eventKind int

const (
	edgeEvent eventKind = iota
	splitEvent
)

type wfEvent struct {
	time  float64
	point geom.Point
	kind  eventKind

	// edge event: the collapsing edge's endpoints.
	va, vb *wfVertex
	// split event: the reflex vertex and the opposite original edge.
	v   *wfVertex
	opp geom.Segment

	tieIdx int
}

// eventQueue is a min-heap keyed by (time, kind, original vertex index).
type eventQueue []*wfEvent

func (q eventQueue) Len() int { return len(q) }
func (q eventQueue) Less(i, j int) bool {
	a, b := q[i], q[j]
	if math.Abs(a.time-b.time) > nodeTol {
		return a.time < b.time
	}
	if a.kind != b.kind {
		return a.kind < b.kind
	}
	return a.tieIdx < b.tieIdx
}
func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *eventQueue) Push(x any)   { *q = append(*q, x.(*wfEvent)) }
func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	*q = old[:n-1]
	return e
}

// contour is one circular list of active wavefront vertices.
type contour struct {
	head *wfVertex
	size int
}

func (c *contour) vertices() []*wfVertex {
	out := make([]*wfVertex, 0, c.size)
	v := c.head
	for i := 0; i < c.size; i++ {
		out = append(out, v)
		v = v.next
	}
	return out
}

// origEdge is a time-zero boundary edge annotated with the bisector
// directions at its endpoints, bounding the region its front sweeps.
type origEdge struct {
	seg      geom.Segment
	bisStart geom.Point
	bisEnd   geom.Point
}

// wavefront owns the whole simulation state for one straight-skeleton call.
type wavefront struct {
	contours []*contour
	queue    eventQueue
	original []origEdge
	poly     geom.Polygon
	out      *builder
	tol      float64
}

// straightSkeleton runs the wavefront simulation over the normalized CCW
// boundary. The simulation never errors: stale events are skipped,
// degenerate geometry terminates the affected contour early, and an
// iteration guard bounds the worst case.
func straightSkeleton(boundary []geom.Point, opts Options) Skeleton {
	w := &wavefront{out: newBuilder(), tol: opts.Tolerance, poly: geom.Polygon{Vertices: boundary}}
	if !w.init(boundary) {
		return Skeleton{}
	}

	// Each applied event removes at least one vertex, so the bound is
	// generous; it exists only to rule out livelock on inputs that defeat
	// every epsilon.
	maxEvents := 8 * len(boundary) * len(boundary)
	for len(w.queue) > 0 && maxEvents > 0 {
		maxEvents--
		ev := heap.Pop(&w.queue).(*wfEvent)
		switch ev.kind {
		case edgeEvent:
			w.applyEdgeEvent(ev)
		case splitEvent:
			w.applySplitEvent(ev)
		}
	}
	return w.out.skeleton()
}

func (w *wavefront) init(boundary []geom.Point) bool {
	n := len(boundary)
	verts := make([]*wfVertex, 0, n)
	for i, p := range boundary {
		left := geom.Segment{Start: boundary[(i+n-1)%n], End: p}
		right := geom.Segment{Start: p, End: boundary[(i+1)%n]}
		v, ok := newWFVertex(p, left, right, i, 0)
		if !ok {
			// A collinear vertex survived preprocessing only if it is an
			// exact 180° continuation; it cannot carry a spoke.
			return false
		}
		verts = append(verts, v)
	}
	for i, v := range verts {
		v.prev = verts[(i+n-1)%n]
		v.next = verts[(i+1)%n]
	}
	w.contours = []*contour{{head: verts[0], size: n}}

	w.original = make([]origEdge, n)
	for i := range boundary {
		w.original[i] = origEdge{
			seg:      verts[i].edgeRight,
			bisStart: verts[i].bisector,
			bisEnd:   verts[(i+1)%n].bisector,
		}
	}

	for _, v := range verts {
		w.pushNextEvent(v)
	}
	return true
}

// emit records a finished trajectory arc. Arcs whose midpoint escapes the
// polygon are dropped: they can only come from a numerically borderline
// event, and the containment invariant outranks completeness there.
func (w *wavefront) emit(a, b geom.Point) {
	if a.Dist(b) < nodeTol {
		return
	}
	if !w.poly.Contains(geom.Mid(a, b), nodeTol) {
		return
	}
	w.out.addEdge(a, b)
}

// pushNextEvent computes the earliest future event involving v and queues
// it. Only the nearest candidate per vertex is queued; anything invalidated
// by later topology changes is filtered at pop time.
func (w *wavefront) pushNextEvent(v *wfVertex) {
	var best *wfEvent
	closer := func(e *wfEvent) {
		if e == nil {
			return
		}
		if best == nil || e.time < best.time-nodeTol ||
			(math.Abs(e.time-best.time) <= nodeTol && e.kind < best.kind) {
			best = e
		}
	}

	closer(w.edgeEventFor(v.prev, v))
	closer(w.edgeEventFor(v, v.next))
	if v.reflex {
		for i := range w.original {
			closer(w.splitEventFor(v, &w.original[i]))
		}
	}
	if best != nil {
		heap.Push(&w.queue, best)
	}
}

// edgeEventFor returns the collapse event of the wavefront edge between the
// adjacent vertices a and b, or nil if their bisector rays never meet
// forward in time.
func (w *wavefront) edgeEventFor(a, b *wfVertex) *wfEvent {
	if a == nil || b == nil || a == b {
		return nil
	}
	p, ta, tb, ok := rayRayIntersect(a.point, a.bisector, b.point, b.bisector)
	if !ok || ta < -nodeTol || tb < -nodeTol {
		return nil
	}
	shared := a.edgeRight
	t := distToLine(shared, p)
	if t < a.time-nodeTol || t < b.time-nodeTol {
		return nil
	}
	return &wfEvent{time: t, point: p, kind: edgeEvent, va: a, vb: b, tieIdx: minInt(a.index, b.index)}
}

// splitEventFor returns the event of reflex vertex v splitting the front of
// original edge e, or nil when v's trajectory never reaches that front
// inside the region the front actually sweeps.
func (w *wavefront) splitEventFor(v *wfVertex, e *origEdge) *wfEvent {
	if e.seg.Eq(v.edgeLeft, w.tol) || e.seg.Eq(v.edgeRight, w.tol) {
		return nil
	}
	// Moving along the bisector keeps equal distance to both own edge
	// lines; the split happens where that distance equals the distance to
	// the opposite edge line.
	nOwn := v.edgeLeft.Dir().Perp()
	nOpp := e.seg.Dir().Perp()
	num := nOwn.Dot(v.point.Sub(v.edgeLeft.Start)) - nOpp.Dot(v.point.Sub(e.seg.Start))
	den := nOpp.Sub(nOwn).Dot(v.bisector)
	if math.Abs(den) < geom.Epsilon {
		return nil // trajectory parallel to the opposite front
	}
	u := num / den
	if u < nodeTol {
		return nil
	}
	b := v.point.Add(v.bisector.Scale(u))
	t := nOwn.Dot(b.Sub(v.edgeLeft.Start))
	if t < v.time+nodeTol {
		return nil
	}

	// b must lie inside the region swept by e's front: on the interior
	// side of the edge and between the bisectors at its endpoints.
	if geom.Orient(e.seg.Start, e.seg.End, b) < -nodeTol {
		return nil
	}
	if e.bisStart.Cross(b.Sub(e.seg.Start)) > nodeTol {
		return nil
	}
	if e.bisEnd.Cross(b.Sub(e.seg.End)) < -nodeTol {
		return nil
	}
	return &wfEvent{time: t, point: b, kind: splitEvent, v: v, opp: e.seg, tieIdx: v.index}
}

// applyEdgeEvent merges the two endpoints of a collapsed wavefront edge.
func (w *wavefront) applyEdgeEvent(ev *wfEvent) {
	a, b := ev.va, ev.vb
	if !a.valid || !b.valid || a.next != b {
		return // stale: an endpoint was consumed by an earlier event
	}
	c := w.contourOf(a)
	if c == nil {
		return
	}

	if c.size <= 3 {
		// Peak event: the whole contour collapses into a single node.
		for _, v := range c.vertices() {
			w.emit(v.point, ev.point)
			v.invalidate()
		}
		w.removeContour(c)
		return
	}

	w.emit(a.point, ev.point)
	w.emit(b.point, ev.point)
	a.invalidate()
	b.invalidate()

	merged, ok := newWFVertex(ev.point, a.edgeLeft, b.edgeRight, minInt(a.index, b.index), ev.time)
	if !ok {
		// The surviving edges continue collinearly: no corner remains
		// here. Close the gap and let the neighbors carry on.
		a.prev.next = b.next
		b.next.prev = a.prev
		c.head = a.prev
		c.size -= 2
		if c.size < 3 {
			w.dissolveContour(c, ev.point)
		}
		return
	}
	merged.prev = a.prev
	merged.next = b.next
	a.prev.next = merged
	b.next.prev = merged
	c.head = merged
	c.size--
	w.pushNextEvent(merged)
}

// applySplitEvent splits the contour containing the reflex vertex against
// the opposite edge's wavefront.
func (w *wavefront) applySplitEvent(ev *wfEvent) {
	v := ev.v
	if !v.valid {
		return
	}
	c := w.contourOf(v)
	if c == nil {
		return
	}

	// Locate the wavefront vertex pair (x, x.next) currently fronting the
	// opposite original edge with the split point between their bisectors.
	// The pair may live in any contour.
	x := w.findOpposite(ev)
	if x == nil {
		return // that stretch of front no longer exists; stale event
	}
	y := x.next
	cx := w.contourOf(x)

	w.emit(v.point, ev.point)
	v.invalidate()

	v1, ok1 := newWFVertex(ev.point, v.edgeLeft, ev.opp, v.index, ev.time)
	v2, ok2 := newWFVertex(ev.point, ev.opp, v.edgeRight, v.index, ev.time)
	if !ok1 || !ok2 {
		// The reflex spike hit a parallel front: drop the spike and let
		// the contour advance without it.
		v.prev.next = v.next
		v.next.prev = v.prev
		c.head = v.prev
		c.size--
		if c.size < 3 {
			w.dissolveContour(c, ev.point)
		}
		return
	}

	// Relink: v1 continues v's left side toward y, v2 hands x's side over
	// to v's right. One contour becomes two (or two previously split
	// contours exchange arcs). Both affected contours are unregistered
	// before pointers move so no stale head survives the relink.
	w.removeContour(c)
	if cx != nil {
		w.removeContour(cx)
	}
	vPrev, vNext := v.prev, v.next
	v1.prev = vPrev
	v1.next = y
	vPrev.next = v1
	y.prev = v1

	v2.prev = x
	v2.next = vNext
	x.next = v2
	vNext.prev = v2

	w.adoptChain(v1)
	w.adoptChain(v2)
}

// adoptChain registers the circular chain containing start as a contour.
// Chains of fewer than three vertices have dissolved into a single edge;
// they are emitted and retired immediately.
func (w *wavefront) adoptChain(start *wfVertex) {
	if !start.valid {
		return
	}
	for _, c := range w.contours {
		if w.chainContains(c.head, start) {
			return // v1 and v2 ended up on the same cycle
		}
	}
	size := 1
	for v := start.next; v != start; v = v.next {
		size++
	}
	c := &contour{head: start, size: size}
	if size < 3 {
		w.dissolveContour(c, start.point)
		return
	}
	w.contours = append(w.contours, c)
	w.pushNextEvent(start)
	w.pushNextEvent(start.next)
	w.pushNextEvent(start.prev)
}

// dissolveContour retires a contour too small to advance, connecting its
// remaining vertices to the terminal point so no trajectory is lost.
func (w *wavefront) dissolveContour(c *contour, at geom.Point) {
	for _, v := range c.vertices() {
		if v.valid {
			w.emit(v.point, at)
			v.invalidate()
		}
	}
	w.removeContour(c)
}

// findOpposite returns the wavefront vertex x such that the front of
// ev.opp currently runs from x to x.next and the split point lies between
// their bisector rays.
func (w *wavefront) findOpposite(ev *wfEvent) *wfVertex {
	for _, c := range w.contours {
		for _, x := range c.vertices() {
			if !x.valid || x == ev.v || x.next == ev.v {
				continue
			}
			if !x.edgeRight.Eq(ev.opp, w.tol) {
				continue
			}
			if x.bisector.Cross(ev.point.Sub(x.point)) > nodeTol {
				continue
			}
			if x.next.bisector.Cross(ev.point.Sub(x.next.point)) < -nodeTol {
				continue
			}
			return x
		}
	}
	return nil
}

func (w *wavefront) contourOf(v *wfVertex) *contour {
	for _, c := range w.contours {
		if w.chainContains(c.head, v) {
			return c
		}
	}
	return nil
}

func (w *wavefront) chainContains(head, v *wfVertex) bool {
	if head == nil {
		return false
	}
	cur := head
	for {
		if cur == v {
			return true
		}
		cur = cur.next
		if cur == head || cur == nil {
			return false
		}
	}
}

func (w *wavefront) removeContour(c *contour) {
	for i, o := range w.contours {
		if o == c {
			w.contours = append(w.contours[:i], w.contours[i+1:]...)
			return
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// rayRayIntersect intersects the rays a+ta*da and b+tb*db, reporting the
// parameters along each ray. ok is false for (near-)parallel rays.
func rayRayIntersect(a, da, b, db geom.Point) (p geom.Point, ta, tb float64, ok bool) {
	denom := da.Cross(db)
	if math.Abs(denom) < geom.Epsilon {
		return geom.Point{}, 0, 0, false
	}
	diff := b.Sub(a)
	ta = diff.Cross(db) / denom
	tb = diff.Cross(da) / denom
	return a.Add(da.Scale(ta)), ta, tb, true
}

// distToLine returns the perpendicular distance from p to the supporting
// line of seg.
func distToLine(seg geom.Segment, p geom.Point) float64 {
	d := seg.End.Sub(seg.Start)
	n := d.Norm()
	if n < geom.Epsilon {
		return p.Dist(seg.Start)
	}
	return math.Abs(d.Cross(p.Sub(seg.Start))) / n
}
