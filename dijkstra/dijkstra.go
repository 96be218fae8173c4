package dijkstra

import (
	"container/heap"
	"errors"
	"fmt"

	"github.com/tripatlas/routegraph/transport"
)

// Sentinel errors returned by the single-pair solver.
var (
	// ErrNoPath indicates the goal was never settled by the search.
	ErrNoPath = errors.New("dijkstra: no path found")

	// ErrNegativeWeight indicates a negative effective edge weight was
	// encountered during relaxation. Edge construction forbids this,
	// but the solver still checks and fails hard rather than return a
	// bogus path.
	ErrNegativeWeight = errors.New("dijkstra: negative edge weight encountered")
)

// ShortestPath computes the optimal path from start to goal over the
// given edge list under the configured strategy and mode filter.
//
// start == goal short-circuits to the trivial single-node result
// before any solver work. An unreachable goal yields ErrNoPath wrapped
// with the pair identity.
func ShortestPath(edges []transport.Edge, start, goal string, opts ...Option) (transport.PathResult, error) {
	if start == goal {
		return transport.TrivialPath(start), nil
	}

	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// Adjacency by source node; edge order within a bucket follows
	// input order, which the tie-breaker below depends on.
	adjacency := make(map[string][]transport.Edge, len(edges))
	for _, e := range edges {
		adjacency[e.Source] = append(adjacency[e.Source], e)
	}

	r := &runner{
		adjacency: adjacency,
		options:   cfg,
		distance:  map[string]float64{start: 0},
		time:      map[string]float64{start: 0},
		cost:      map[string]float64{start: 0},
		previous:  make(map[string]hop),
		visited:   make(map[string]bool),
	}

	heap.Init(&r.pq)
	r.push(start, 0)

	if err := r.process(goal); err != nil {
		return transport.PathResult{}, err
	}
	if !r.visited[goal] {
		return transport.PathResult{}, fmt.Errorf("%w: %s→%s", ErrNoPath, start, goal)
	}

	return r.reconstruct(start, goal), nil
}

// hop records how a node was reached: the predecessor, the edge taken,
// and the transport mode actually used on it.
type hop struct {
	from string
	edge transport.Edge
	mode string
}

// runner holds the mutable state of one search.
type runner struct {
	adjacency map[string][]transport.Edge
	options   Options
	distance  map[string]float64 // best accumulated distance per node
	time      map[string]float64 // best accumulated time per node
	cost      map[string]float64 // best strategy scalar per node
	previous  map[string]hop
	visited   map[string]bool
	pq        frontier
	seq       uint64 // insertion counter for deterministic tie-breaks
}

func (r *runner) push(node string, cost float64) {
	heap.Push(&r.pq, frontierItem{node: node, cost: cost, seq: r.seq})
	r.seq++
}

// process runs the main loop until the goal is popped (its cost is
// final for non-negative weights) or the frontier drains.
func (r *runner) process(goal string) error {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(frontierItem)
		node := item.node

		// Stale entry from lazy decrease-key.
		if r.visited[node] {
			continue
		}
		r.visited[node] = true

		// Early exit: the popped cost is the final cost.
		if node == goal {
			return nil
		}

		if err := r.relax(node); err != nil {
			return err
		}
	}

	return nil
}

// relax attempts to improve every neighbor of node through its
// outgoing edges, honoring the mode filter.
func (r *runner) relax(node string) error {
	for _, e := range r.adjacency[node] {
		mode, ok := e.SelectMode(r.options.AllowedModes)
		if !ok {
			continue // no usable mode: edge invisible under this filter
		}

		segDistance := e.Distance
		segTime := e.TravelTime()
		if segDistance < 0 || segTime < 0 {
			return fmt.Errorf("%w: edge %s→%s", ErrNegativeWeight, e.Source, e.Target)
		}

		newDistance := r.distance[node] + segDistance
		newTime := r.time[node] + segTime
		newCost := r.options.Strategy.Cost(newDistance, newTime)

		if best, seen := r.cost[e.Target]; seen && newCost >= best {
			continue
		}
		r.cost[e.Target] = newCost
		r.distance[e.Target] = newDistance
		r.time[e.Target] = newTime
		r.previous[e.Target] = hop{from: node, edge: e, mode: mode}
		r.push(e.Target, newCost)
	}

	return nil
}

// reconstruct walks predecessor hops from goal back to start, emitting
// the mode actually used per hop, then reverses into start→goal order.
func (r *runner) reconstruct(start, goal string) transport.PathResult {
	var (
		nodes    []string
		segments []transport.PathSegment
	)
	cursor := goal
	for cursor != start {
		h := r.previous[cursor]
		nodes = append(nodes, cursor)
		segments = append(segments, transport.PathSegment{
			Source:   h.from,
			Target:   cursor,
			Mode:     h.mode,
			Distance: h.edge.Distance,
			Time:     h.edge.TravelTime(),
		})
		cursor = h.from
	}
	nodes = append(nodes, start)

	reverseStrings(nodes)
	reverseSegments(segments)

	return transport.PathResult{
		Nodes:         nodes,
		Segments:      segments,
		TotalDistance: r.distance[goal],
		TotalTime:     r.time[goal],
	}
}

func reverseStrings(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func reverseSegments(s []transport.PathSegment) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// frontierItem is one priority-queue entry. seq preserves insertion
// order as a strict tie-breaker when costs are equal.
type frontierItem struct {
	node string
	cost float64
	seq  uint64
}

// frontier is a min-heap over (cost, seq).
type frontier []frontierItem

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}

	return f[i].seq < f[j].seq
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x interface{}) { *f = append(*f, x.(frontierItem)) }

func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]

	return item
}
