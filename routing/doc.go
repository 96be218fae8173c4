// Package routing is the orchestration layer between graph storage
// and the solvers: it validates regions and nodes, resolves the
// effective allowed-transport-mode set per region type, caches raw
// graph data per region, translates stored edge records into the
// engine's edge type, and enriches solver output with node metadata.
//
// The Service is handed a GraphRepository and a RegionRepository -
// interfaces the storage adapters (sqlitestore, neo4jstore) implement.
// Per-region edge lists and node lookups are cached for the lifetime
// of the Service instance: populated on first miss, read-only
// afterwards, never invalidated. Concurrent requests share the cache
// safely because entries are built once under a lock and immutable
// after publication.
//
// Region-type defaults: a campus region allows {walk, bike}, a scenic
// region {walk, electric_cart}, anything unrecognized {walk}. Caller
// modes are intersected with the default set; an empty intersection is
// a validation failure, not a silent fallback.
//
// Errors (sentinel, wrapped with context):
//
//	– ErrRegionNotFound   unknown region.
//	– ErrNodeValidation   missing node, cross-region node, or empty
//	                      mode intersection.
//	– ErrRouteNotFound    region has no edges, or the solver found no
//	                      path (dijkstra.ErrNoPath stays reachable via
//	                      errors.Is through the wrap).
//	– ErrTourComputation  a required pairwise tour path is infeasible.
package routing
