// Package neo4jstore implements the routing repository interfaces on
// top of a Neo4j graph database.
//
// The mapping is the natural one: regions and waypoints are nodes,
// directed PATH relationships carry the edge weights and the
// transport-mode list. One session is opened per call; transactions
// are managed by the driver's ExecuteRead/ExecuteWrite retries.
//
// Identifiers are stored as explicit integer properties rather than
// Neo4j element ids, so records stay interchangeable with the SQLite
// store.
package neo4jstore
