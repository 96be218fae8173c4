// Package transport defines the vocabulary of the multi-modal routing
// engine: directed weighted edges, transport-mode sets, weighting
// strategies, and the path/tour result types every solver produces.
//
// The central type is Edge - a directed connection between two node
// identifiers carrying a distance, an ideal speed, a congestion factor
// and a non-empty ordered list of transport modes. Edges are validated
// at construction time via NewEdge; a malformed edge can never reach a
// solver. Derived travel time is Distance / (IdealSpeed · Congestion).
//
// WeightStrategy is a closed two-value variant (StrategyDistance,
// StrategyTime) selecting which scalar drives every cost comparison.
// Solvers accumulate both scalars regardless of the strategy, so every
// PathResult reports both totals.
//
// ModeSet is a sorted, deduplicated, lower-cased string set used for
// allowed-mode filters. A nil ModeSet means "no filter". Edge mode
// lists, in contrast, preserve declaration order: the first declared
// mode is the one used when no filter applies.
//
// Errors (sentinel):
//
//	– ErrNegativeDistance if an edge distance is negative.
//	– ErrBadSpeed         if an edge ideal speed is zero or negative.
//	– ErrBadCongestion    if an edge congestion factor is zero or negative.
//	– ErrNoModes          if an edge has no transport mode after normalization.
//	– ErrUnknownStrategy  if a strategy literal is not "distance" or "time".
package transport
