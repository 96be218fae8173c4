package tour

import "github.com/tripatlas/routegraph/transport"

// Eps is the 2-opt acceptance tolerance: a reversal is applied only
// when it reduces route cost by more than Eps, preventing infinite
// oscillation from floating-point noise.
const Eps = 1e-9

// DefaultMaxIterations bounds the number of 2-opt improvement passes.
const DefaultMaxIterations = 50

// Options configures a tour computation.
//
//	AllowedModes  – optional mode filter forwarded to the pairwise
//	                shortest-path solves.
//	Strategy      – scalar minimized by both the pairwise solves and
//	                the route optimization; defaults to travel time.
//	MaxIterations – 2-opt pass budget; ≤ 0 falls back to the default.
type Options struct {
	AllowedModes  transport.ModeSet
	Strategy      transport.WeightStrategy
	MaxIterations int
}

// Option is a functional option for configuring the planner.
type Option func(*Options)

// WithAllowedModes restricts the pairwise solves to edges whose mode
// list intersects the given set.
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

// WithStrategy selects the scalar cost the tour minimizes.
func WithStrategy(s transport.WeightStrategy) Option {
	return func(o *Options) {
		o.Strategy = s
	}
}

// WithMaxIterations sets the 2-opt pass budget.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		o.MaxIterations = n
	}
}

// DefaultOptions returns the planner defaults.
func DefaultOptions() Options {
	return Options{
		Strategy:      transport.StrategyTime,
		MaxIterations: DefaultMaxIterations,
	}
}
