// Package sqlitestore persists regions and region graphs in an
// embedded SQLite database and implements the routing repository
// interfaces on top of it.
//
// The store is file-backed (or ":memory:") via the pure-Go
// modernc.org/sqlite driver, so no cgo toolchain is required. Edge
// transport modes are stored as a JSON string array in a single TEXT
// column.
package sqlitestore
