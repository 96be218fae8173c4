package sqlitestore

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/tripatlas/routegraph/routing"
)

//go:embed schema.sql
var schemaSQL string

// Store wraps a SQLite connection and implements the routing
// repository interfaces.
type Store struct {
	conn *sql.DB
}

var (
	_ routing.GraphRepository  = (*Store)(nil)
	_ routing.RegionRepository = (*Store)(nil)
)

// New opens (creating if necessary) the database at path and applies
// the schema. Use ":memory:" for an ephemeral store.
func New(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: open %s: %w", path, err)
	}

	store, err := Open(conn)
	if err != nil {
		conn.Close()

		return nil, err
	}

	return store, nil
}

// Open wraps an existing connection, setting the pragmas and applying
// the schema. The caller keeps ownership of conn until Close.
func Open(conn *sql.DB) (*Store, error) {
	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("sqlitestore: ping: %w", err)
	}

	for _, pragma := range []string{
		`PRAGMA journal_mode = WAL`,
		`PRAGMA foreign_keys = ON`,
	} {
		if _, err := conn.Exec(pragma); err != nil {
			return nil, fmt.Errorf("sqlitestore: %s: %w", pragma, err)
		}
	}

	if _, err := conn.Exec(schemaSQL); err != nil {
		return nil, fmt.Errorf("sqlitestore: apply schema: %w", err)
	}

	return &Store{conn: conn}, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// HealthCheck verifies the connection is alive.
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// Region returns the region record, or (nil, nil) when absent.
func (s *Store) Region(ctx context.Context, regionID int64) (*routing.Region, error) {
	const query = `SELECT id, name, type FROM regions WHERE id = ?`

	var r routing.Region
	err := s.conn.QueryRowContext(ctx, query, regionID).Scan(&r.ID, &r.Name, &r.Type)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: get region %d: %w", regionID, err)
	}

	return &r, nil
}

// Node returns the node record, or (nil, nil) when absent.
func (s *Store) Node(ctx context.Context, nodeID int64) (*routing.GraphNode, error) {
	const query = `SELECT id, region_id, name, latitude, longitude FROM graph_nodes WHERE id = ?`

	var n routing.GraphNode
	err := s.conn.QueryRowContext(ctx, query, nodeID).
		Scan(&n.ID, &n.RegionID, &n.Name, &n.Latitude, &n.Longitude)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: get node %d: %w", nodeID, err)
	}

	return &n, nil
}

// NodesByRegion lists every node of the region, ordered by id.
func (s *Store) NodesByRegion(ctx context.Context, regionID int64) ([]routing.GraphNode, error) {
	const query = `SELECT id, region_id, name, latitude, longitude
		FROM graph_nodes WHERE region_id = ? ORDER BY id ASC`

	rows, err := s.conn.QueryContext(ctx, query, regionID)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: query nodes of region %d: %w", regionID, err)
	}
	defer rows.Close()

	var nodes []routing.GraphNode
	for rows.Next() {
		var n routing.GraphNode
		if err := rows.Scan(&n.ID, &n.RegionID, &n.Name, &n.Latitude, &n.Longitude); err != nil {
			return nil, fmt.Errorf("sqlitestore: scan node: %w", err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlitestore: node rows: %w", err)
	}

	return nodes, nil
}

// EdgesByRegion lists every directed edge of the region, ordered by id.
func (s *Store) EdgesByRegion(ctx context.Context, regionID int64) ([]routing.GraphEdge, error) {
	const query = `SELECT id, region_id, start_node_id, end_node_id,
		distance, ideal_speed, congestion, transport_modes
		FROM graph_edges WHERE region_id = ? ORDER BY id ASC`

	rows, err := s.conn.QueryContext(ctx, query, regionID)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: query edges of region %d: %w", regionID, err)
	}
	defer rows.Close()

	var edges []routing.GraphEdge
	for rows.Next() {
		var (
			e     routing.GraphEdge
			modes string
		)
		if err := rows.Scan(&e.ID, &e.RegionID, &e.StartNodeID, &e.EndNodeID,
			&e.Distance, &e.IdealSpeed, &e.Congestion, &modes); err != nil {
			return nil, fmt.Errorf("sqlitestore: scan edge: %w", err)
		}
		if err := json.Unmarshal([]byte(modes), &e.TransportModes); err != nil {
			return nil, fmt.Errorf("sqlitestore: decode modes of edge %d: %w", e.ID, err)
		}
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlitestore: edge rows: %w", err)
	}

	return edges, nil
}

// CreateRegion inserts a region and returns it with the assigned id.
func (s *Store) CreateRegion(ctx context.Context, r routing.Region) (routing.Region, error) {
	const query = `INSERT INTO regions (name, type) VALUES (?, ?)`

	res, err := s.conn.ExecContext(ctx, query, r.Name, string(r.Type))
	if err != nil {
		return routing.Region{}, fmt.Errorf("sqlitestore: insert region: %w", err)
	}
	if r.ID, err = res.LastInsertId(); err != nil {
		return routing.Region{}, fmt.Errorf("sqlitestore: region id: %w", err)
	}

	return r, nil
}

// CreateNode inserts a node and returns it with the assigned id.
func (s *Store) CreateNode(ctx context.Context, n routing.GraphNode) (routing.GraphNode, error) {
	const query = `INSERT INTO graph_nodes (region_id, name, latitude, longitude)
		VALUES (?, ?, ?, ?)`

	res, err := s.conn.ExecContext(ctx, query, n.RegionID, n.Name, n.Latitude, n.Longitude)
	if err != nil {
		return routing.GraphNode{}, fmt.Errorf("sqlitestore: insert node: %w", err)
	}
	if n.ID, err = res.LastInsertId(); err != nil {
		return routing.GraphNode{}, fmt.Errorf("sqlitestore: node id: %w", err)
	}

	return n, nil
}

// CreateEdge inserts a directed edge and returns it with the assigned
// id. The mode list is serialized to JSON; nil becomes the empty array.
func (s *Store) CreateEdge(ctx context.Context, e routing.GraphEdge) (routing.GraphEdge, error) {
	const query = `INSERT INTO graph_edges
		(region_id, start_node_id, end_node_id, distance, ideal_speed, congestion, transport_modes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	modes := e.TransportModes
	if modes == nil {
		modes = []string{}
	}
	encoded, err := json.Marshal(modes)
	if err != nil {
		return routing.GraphEdge{}, fmt.Errorf("sqlitestore: encode modes: %w", err)
	}

	res, err := s.conn.ExecContext(ctx, query,
		e.RegionID, e.StartNodeID, e.EndNodeID,
		e.Distance, e.IdealSpeed, e.Congestion, string(encoded))
	if err != nil {
		return routing.GraphEdge{}, fmt.Errorf("sqlitestore: insert edge: %w", err)
	}
	if e.ID, err = res.LastInsertId(); err != nil {
		return routing.GraphEdge{}, fmt.Errorf("sqlitestore: edge id: %w", err)
	}

	return e, nil
}
