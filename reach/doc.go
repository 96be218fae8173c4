// Package reach implements the one-to-many reachability solver: a
// single Dijkstra run from an origin that returns every reachable node
// with its accumulated distance, travel time, and reconstructed path.
//
// Answering "which of N candidates are within budget of this origin"
// with N single-pair calls costs O(N · E log V); one reachability run
// amortizes the whole question to O(E log V) regardless of candidate
// count. The facility-discovery layer of the platform depends on this.
//
// Traversal semantics differ from the single-pair solver on purpose:
// every edge is treated as bidirectional, and an edge participates in
// the adjacency only if its mode list intersects the allowed-mode set.
// The priority queue breaks cost ties by node identifier, which keeps
// the output deterministic for a fixed edge list.
//
// The optional maximum-distance budget bounds expansion: a node popped
// beyond the budget is not relaxed further. Nodes discovered within
// the budget stay in the result; nodes only ever reached beyond it are
// omitted from the returned mapping.
//
// Errors (sentinel):
//
//	– ErrOriginNotFound if the origin is not an endpoint of any edge.
//	  Raised before the search starts; an origin isolated by the mode
//	  filter is NOT an error - it yields just the trivial origin entry.
package reach
