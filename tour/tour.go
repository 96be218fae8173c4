package tour

import (
	"errors"
	"fmt"

	"github.com/tripatlas/routegraph/dijkstra"
	"github.com/tripatlas/routegraph/transport"
)

// ErrInfeasiblePair indicates a required pairwise path between two
// tour stops does not exist under the given mode/strategy constraints.
var ErrInfeasiblePair = errors.New("tour: no feasible path between stops")

// pairKey identifies an ordered stop pair in the pairwise path cache.
type pairKey struct {
	from string
	to   string
}

// pairMap caches one PathResult per ordered stop pair.
type pairMap map[pairKey]transport.PathResult

// Plan computes a closed walk start→all targets→start using
// nearest-neighbour construction refined by 2-opt local search.
//
// Duplicate targets are collapsed to their first occurrence; targets
// equal to start are dropped. Zero remaining targets yield the trivial
// closed tour [start, start] with no legs and zero totals.
func Plan(edges []transport.Edge, start string, targets []string, opts ...Option) (transport.TourResult, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}

	stops := dedupeTargets(start, targets)
	if len(stops) == 0 {
		return transport.TourResult{Route: []string{start, start}}, nil
	}

	pairs, err := pairPaths(edges, append([]string{start}, stops...), cfg)
	if err != nil {
		return transport.TourResult{}, err
	}

	route := nearestNeighbourRoute(start, stops, pairs, cfg.Strategy)
	route = twoOpt(route, pairs, cfg.Strategy, cfg.MaxIterations)

	legs := make([]transport.TourLeg, 0, len(route)-1)
	var totalDistance, totalTime float64
	for i := 0; i+1 < len(route); i++ {
		path := pairs[pairKey{route[i], route[i+1]}]
		legs = append(legs, transport.TourLeg{Start: route[i], End: route[i+1], Path: path})
		totalDistance += path.TotalDistance
		totalTime += path.TotalTime
	}

	return transport.TourResult{
		Route:         route,
		Legs:          legs,
		TotalDistance: totalDistance,
		TotalTime:     totalTime,
	}, nil
}

// dedupeTargets collapses duplicates order-preserving and drops the
// start node itself.
func dedupeTargets(start string, targets []string) []string {
	seen := map[string]bool{start: true}
	out := make([]string, 0, len(targets))
	for _, tgt := range targets {
		if seen[tgt] {
			continue
		}
		seen[tgt] = true
		out = append(out, tgt)
	}

	return out
}

// pairPaths solves the single-pair problem for every ordered pair of
// stops. Any infeasible pair aborts the tour with its identity.
func pairPaths(edges []transport.Edge, stops []string, cfg Options) (pairMap, error) {
	pairs := make(pairMap, len(stops)*(len(stops)-1))
	for _, from := range stops {
		for _, to := range stops {
			if from == to {
				continue
			}
			path, err := dijkstra.ShortestPath(edges, from, to,
				dijkstra.WithModeSet(cfg.AllowedModes),
				dijkstra.WithStrategy(cfg.Strategy),
			)
			if err != nil {
				return nil, fmt.Errorf("%w: %s and %s: %w", ErrInfeasiblePair, from, to, err)
			}
			pairs[pairKey{from, to}] = path
		}
	}

	return pairs, nil
}

// nearestNeighbourRoute greedily appends the cheapest unvisited target
// by the strategy scalar, then closes the loop back to start. Equal
// costs resolve to the earliest remaining target in input order.
func nearestNeighbourRoute(start string, targets []string, pairs pairMap, strategy transport.WeightStrategy) []string {
	remaining := append([]string(nil), targets...)
	route := make([]string, 0, len(targets)+2)
	route = append(route, start)

	current := start
	for len(remaining) > 0 {
		bestIdx := 0
		bestCost := pathCost(pairs[pairKey{current, remaining[0]}], strategy)
		for i := 1; i < len(remaining); i++ {
			if c := pathCost(pairs[pairKey{current, remaining[i]}], strategy); c < bestCost {
				bestCost = c
				bestIdx = i
			}
		}
		current = remaining[bestIdx]
		route = append(route, current)
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return append(route, start)
}

func pathCost(path transport.PathResult, strategy transport.WeightStrategy) float64 {
	return strategy.Cost(path.TotalDistance, path.TotalTime)
}
