package transport

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for edge construction and strategy parsing.
var (
	// ErrNegativeDistance indicates an edge was constructed with distance < 0.
	ErrNegativeDistance = errors.New("transport: distance must be non-negative")

	// ErrBadSpeed indicates an edge was constructed with ideal speed ≤ 0.
	ErrBadSpeed = errors.New("transport: ideal speed must be positive")

	// ErrBadCongestion indicates an edge was constructed with congestion ≤ 0.
	ErrBadCongestion = errors.New("transport: congestion must be positive")

	// ErrNoModes indicates an edge has no transport mode left after
	// normalization (empty strings are dropped, values lower-cased).
	ErrNoModes = errors.New("transport: edge requires at least one transport mode")

	// ErrUnknownStrategy indicates a strategy literal other than
	// "distance" or "time".
	ErrUnknownStrategy = errors.New("transport: unknown weight strategy")
)

// WeightStrategy selects which scalar cost drives comparisons in the
// solvers: accumulated distance or accumulated travel time.
type WeightStrategy string

const (
	// StrategyDistance minimizes total path distance.
	StrategyDistance WeightStrategy = "distance"

	// StrategyTime minimizes total travel time.
	StrategyTime WeightStrategy = "time"
)

// ParseStrategy converts a case-insensitive literal into a
// WeightStrategy. Anything other than "distance" or "time" yields
// ErrUnknownStrategy.
func ParseStrategy(s string) (WeightStrategy, error) {
	switch WeightStrategy(strings.ToLower(s)) {
	case StrategyDistance:
		return StrategyDistance, nil
	case StrategyTime:
		return StrategyTime, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// Cost extracts the scalar the strategy minimizes. The solvers call
// this at every comparison point; it is the only place the two
// strategies diverge.
func (s WeightStrategy) Cost(distance, time float64) float64 {
	if s == StrategyDistance {
		return distance
	}

	return time
}

// Edge is a directed, weighted connection between two node identifiers.
//
// Modes preserves declaration order with values lower-cased; the first
// declared mode is the default when no allowed-mode filter applies.
// Construct edges through NewEdge only - the validation there is what
// keeps negative weights out of every solver.
type Edge struct {
	Source     string   // source node identifier
	Target     string   // target node identifier
	Distance   float64  // length of the edge, ≥ 0
	IdealSpeed float64  // free-flow speed, > 0
	Congestion float64  // congestion factor, > 0 (typically ≤ 1)
	Modes      []string // ordered, lower-cased, non-empty
}

// NewEdge validates and constructs an Edge. It fails with a sentinel
// error on distance < 0, ideal speed ≤ 0, congestion ≤ 0, or an empty
// mode set after normalization.
func NewEdge(source, target string, distance, idealSpeed, congestion float64, modes ...string) (Edge, error) {
	if distance < 0 {
		return Edge{}, fmt.Errorf("%w: edge %s→%s distance=%v", ErrNegativeDistance, source, target, distance)
	}
	if idealSpeed <= 0 {
		return Edge{}, fmt.Errorf("%w: edge %s→%s speed=%v", ErrBadSpeed, source, target, idealSpeed)
	}
	if congestion <= 0 {
		return Edge{}, fmt.Errorf("%w: edge %s→%s congestion=%v", ErrBadCongestion, source, target, congestion)
	}

	normalized := normalizeModes(modes)
	if len(normalized) == 0 {
		return Edge{}, fmt.Errorf("%w: edge %s→%s", ErrNoModes, source, target)
	}

	return Edge{
		Source:     source,
		Target:     target,
		Distance:   distance,
		IdealSpeed: idealSpeed,
		Congestion: congestion,
		Modes:      normalized,
	}, nil
}

// TravelTime is the derived travel time along the edge considering
// congestion: Distance / (IdealSpeed · Congestion).
func (e Edge) TravelTime() float64 {
	return e.Distance / (e.IdealSpeed * e.Congestion)
}

// SelectMode resolves the transport mode a traversal of this edge
// would use. With a nil filter the first declared mode wins; otherwise
// the first declared mode present in allowed wins. ok=false means the
// edge is invisible to the search under this filter.
func (e Edge) SelectMode(allowed ModeSet) (mode string, ok bool) {
	if allowed == nil {
		return e.Modes[0], true
	}
	for _, m := range e.Modes {
		if allowed.Has(m) {
			return m, true
		}
	}

	return "", false
}

// PathSegment is one traversed edge within a computed path, carrying
// the transport mode actually used for the hop.
type PathSegment struct {
	Source   string  // node the hop starts at
	Target   string  // node the hop ends at
	Mode     string  // transport mode used on this hop
	Distance float64 // hop distance
	Time     float64 // hop travel time
}

// PathResult is the aggregate outcome of a shortest-path computation.
//
// Invariants: len(Nodes) ≥ 1, len(Segments) == len(Nodes)−1, and the
// totals equal the sums over Segments. A start==goal query yields the
// single-node, zero-cost, zero-segment trivial path.
type PathResult struct {
	Nodes         []string      // ordered node sequence, start to goal inclusive
	Segments      []PathSegment // one per traversed edge
	TotalDistance float64
	TotalTime     float64
}

// TrivialPath is the single-node zero-cost result for start==goal.
func TrivialPath(node string) PathResult {
	return PathResult{Nodes: []string{node}}
}

// TourLeg wraps one start/end pair of a tour and the (potentially
// multi-hop) PathResult connecting them.
type TourLeg struct {
	Start string
	End   string
	Path  PathResult
}

// TourResult is a closed walk visiting every requested target exactly
// once. Route starts and ends at the tour origin; totals are the sums
// over Legs.
type TourResult struct {
	Route         []string  // closed node sequence, Route[0] == Route[len-1]
	Legs          []TourLeg // one per consecutive Route pair
	TotalDistance float64
	TotalTime     float64
}
