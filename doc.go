// Package routegraph is a multi-modal route planning toolkit for
// region-scoped travel graphs: campuses, scenic areas, any bounded map
// of named waypoints connected by weighted, mode-tagged paths.
//
// The module is organized bottom-up:
//
//	transport/   — shared vocabulary: validated edges, the travel-time
//	               model, transport-mode sets, weight strategies, and
//	               the path/tour result types every solver returns
//	dijkstra/    — single-pair shortest path over a directed edge list
//	reach/       — one-to-many reachability with an optional
//	               cumulative-distance budget
//	tour/        — closed-tour planning: nearest-neighbour construction
//	               refined by 2-opt
//	routing/     — the orchestration layer: region and node validation,
//	               per-region transport-mode policies, graph caching,
//	               and enrichment of solver output with stored metadata
//	sqlitestore/ — embedded SQLite persistence (pure Go, no cgo)
//	neo4jstore/  — Neo4j-backed persistence for graph-native deployments
//	cmd/         — the routegraph CLI: route, nearby, tour, seed
//
// The solver packages depend only on transport and the standard
// library; storage backends plug into routing through two small
// repository interfaces.
package routegraph
