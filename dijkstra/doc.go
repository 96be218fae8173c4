// Package dijkstra implements the single-pair shortest-path solver of
// the routing engine: classic Dijkstra over a directed multi-modal
// edge list, parameterized by a weight strategy (distance vs. time)
// and an optional allowed-transport-mode filter.
//
// The search uses a min-heap priority queue keyed by (accumulated
// cost, insertion sequence). The insertion sequence is a monotone
// counter acting as a strict tie-breaker, so two runs over the same
// edge list in the same order produce byte-identical results. Stale
// heap entries from the lazy decrease-key strategy are skipped via a
// visited set.
//
// Both accumulated distance and accumulated time are tracked for every
// settled node regardless of the strategy, so the returned PathResult
// always reports both totals even though only one drove the ordering.
//
// Complexity:
//
//	– Time:  O((V + E) log V)
//	– Space: O(V + E) (lazy decrease-key keeps duplicates in the heap)
//
// Errors (sentinel):
//
//	– ErrNoPath         if the goal is never settled.
//	– ErrNegativeWeight if a negative effective weight slips past
//	  construction-time validation (defensive; never downgraded to
//	  "no path").
package dijkstra
