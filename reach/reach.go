package reach

import (
	"container/heap"
	"errors"
	"fmt"
	"math"

	"github.com/tripatlas/routegraph/transport"
)

// ErrOriginNotFound indicates the origin node is not an endpoint of
// any edge in the input. Checked before the search starts.
var ErrOriginNotFound = errors.New("reach: origin node not found in graph")

// Node is the per-destination result of a reachability run.
type Node struct {
	Distance float64  // accumulated distance from the origin
	Time     float64  // accumulated travel time from the origin
	Path     []string // full node sequence origin→node, inclusive
}

// Options configures a reachability run.
//
//	MaxDistance  – expansion budget; +Inf (default) means unbounded.
//	AllowedModes – optional mode filter gating edge participation.
//	Strategy     – scalar driving the priority ordering; defaults to
//	               distance (a radius query is a distance question).
type Options struct {
	MaxDistance  float64
	AllowedModes transport.ModeSet
	Strategy     transport.WeightStrategy
}

// Option is a functional option for configuring the solver.
type Option func(*Options)

// WithMaxDistance caps the accumulated distance beyond which nodes are
// no longer expanded. Must be non-negative.
func WithMaxDistance(max float64) Option {
	return func(o *Options) {
		if max < 0 {
			panic("reach: MaxDistance must be non-negative")
		}
		o.MaxDistance = max
	}
}

// WithAllowedModes restricts traversal to edges whose mode list
// intersects the given set.
func WithAllowedModes(modes ...string) Option {
	return func(o *Options) {
		o.AllowedModes = transport.NewModeSet(modes...)
	}
}

// WithModeSet is WithAllowedModes for an already-built ModeSet.
func WithModeSet(set transport.ModeSet) Option {
	return func(o *Options) {
		o.AllowedModes = set
	}
}

// WithStrategy selects the scalar cost driving the priority ordering.
func WithStrategy(s transport.WeightStrategy) Option {
	return func(o *Options) {
		o.Strategy = s
	}
}

// DefaultOptions returns the solver defaults: unbounded budget, no
// mode filter, distance strategy.
func DefaultOptions() Options {
	return Options{MaxDistance: math.Inf(1), Strategy: transport.StrategyDistance}
}

// arc is one traversable direction of an edge in the adjacency list.
type arc struct {
	to       string
	distance float64
	time     float64
}

// Reachable runs a one-to-many Dijkstra from origin and returns every
// reachable node mapped to its distance, time, and origin→node path.
// The origin itself maps to the trivial single-node zero-cost entry.
func Reachable(edges []transport.Edge, origin string, opts ...Option) (map[string]Node, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// Origin presence is validated against the raw edge set, before
	// mode filtering: an absent node is a caller mistake, an isolated
	// one is a legitimate (empty) answer.
	present := false
	for _, e := range edges {
		if e.Source == origin || e.Target == origin {
			present = true

			break
		}
	}
	if !present {
		return nil, fmt.Errorf("%w: %q", ErrOriginNotFound, origin)
	}

	// Build the bidirectional adjacency, keeping only edges whose mode
	// list intersects the allowed set.
	adjacency := make(map[string][]arc, len(edges))
	for _, e := range edges {
		if _, ok := e.SelectMode(cfg.AllowedModes); !ok {
			continue
		}
		distance, time := e.Distance, e.TravelTime()
		adjacency[e.Source] = append(adjacency[e.Source], arc{to: e.Target, distance: distance, time: time})
		adjacency[e.Target] = append(adjacency[e.Target], arc{to: e.Source, distance: distance, time: time})
	}

	distances := map[string]float64{origin: 0}
	times := map[string]float64{origin: 0}
	parents := map[string]string{}
	processed := make(map[string]bool)

	pq := frontier{{node: origin}}
	heap.Init(&pq)

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(frontierItem)
		node := item.node
		if processed[node] {
			continue
		}
		processed[node] = true

		// Over-budget nodes contribute no new frontier entries; the
		// output loop below drops them from the result as well.
		if distances[node] > cfg.MaxDistance {
			continue
		}

		for _, a := range adjacency[node] {
			if processed[a.to] {
				continue
			}
			newDistance := distances[node] + a.distance
			newTime := times[node] + a.time
			newCost := cfg.Strategy.Cost(newDistance, newTime)

			if best, seen := distances[a.to]; seen && cfg.Strategy.Cost(best, times[a.to]) <= newCost {
				continue
			}
			distances[a.to] = newDistance
			times[a.to] = newTime
			parents[a.to] = node
			heap.Push(&pq, frontierItem{node: a.to, cost: newCost})
		}
	}

	// Reconstruct a path for every discovered node within the budget by
	// walking parents back to the origin. Nodes discovered beyond the
	// budget were never usable destinations and are omitted.
	result := make(map[string]Node, len(distances))
	for node := range distances {
		if distances[node] > cfg.MaxDistance {
			continue
		}
		if node == origin {
			result[node] = Node{Path: []string{origin}}

			continue
		}
		var path []string
		for cursor := node; cursor != ""; cursor = parents[cursor] {
			path = append(path, cursor)
			if cursor == origin {
				break
			}
		}
		for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
			path[i], path[j] = path[j], path[i]
		}
		result[node] = Node{
			Distance: distances[node],
			Time:     times[node],
			Path:     path,
		}
	}

	return result, nil
}

// frontierItem is one priority-queue entry; ties on cost break by node
// identifier for determinism.
type frontierItem struct {
	node string
	cost float64
}

// frontier is a min-heap over (cost, node id).
type frontier []frontierItem

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}

	return f[i].node < f[j].node
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
