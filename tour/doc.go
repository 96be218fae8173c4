// Package tour implements the heuristic multi-stop tour planner:
// "visit all of these stops and return to start" over the multi-modal
// edge list.
//
// The pipeline has three phases:
//
//  1. Pairwise paths - one single-pair shortest-path solve for every
//     ordered pair among {start} ∪ targets, cached in a pair map. Any
//     infeasible pair fails the whole computation with the offending
//     pair's identity; a stop is never silently dropped.
//  2. Construction - nearest-neighbour: repeatedly append the cheapest
//     (by the strategy scalar) unvisited target, then close the loop
//     back to start. Ties resolve to the earliest remaining target in
//     input order, keeping the route deterministic.
//  3. Improvement - 2-opt local search: first-improvement segment
//     reversal, skipping adjacent-edge reversals, accepting only moves
//     that beat the current cost by more than Eps, restarting the scan
//     after each accepted move, stopping at a local optimum or when
//     the pass budget is exhausted.
//
// Complexity:
//
//	– Pairwise phase: O(k² · E log V) for k stops.
//	– 2-opt: O(passes · k²) route-cost evaluations over the pair map.
//
// Errors (sentinel):
//
//	– ErrInfeasiblePair if any required pairwise path does not exist.
package tour
