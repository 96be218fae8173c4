package dijkstra

import "github.com/tripatlas/routegraph/transport"

// Options configures a single-pair shortest-path run.
//
//	AllowedModes – optional transport-mode filter; nil means every edge
//	               is traversable via its first declared mode.
//	Strategy     – scalar the search minimizes; defaults to travel time,
//	               matching the routing service default.
type Options struct {
	AllowedModes transport.ModeSet
	Strategy     transport.WeightStrategy
}

// Option is a functional option for configuring the solver.
type Option func(*Options)

// WithAllowedModes restricts traversal to edges whose mode list
// intersects the given set. Edges without a matching mode are
// invisible to the search, not merely de-prioritized.
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

// DefaultOptions returns the solver defaults: no mode filter,
// time-minimizing strategy.
func DefaultOptions() Options {
	return Options{Strategy: transport.StrategyTime}
}
