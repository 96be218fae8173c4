package neo4jstore

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/tripatlas/routegraph/routing"
)

// Store wraps a Neo4j driver and implements the routing repositories.
type Store struct {
	driver neo4j.DriverWithContext
}

var (
	_ routing.GraphRepository  = (*Store)(nil)
	_ routing.RegionRepository = (*Store)(nil)
)

// New connects to the Neo4j instance at uri and verifies connectivity.
func New(ctx context.Context, uri, username, password string) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("neo4jstore: create driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)

		return nil, fmt.Errorf("neo4jstore: verify connectivity: %w", err)
	}

	return &Store{driver: driver}, nil
}

// Close shuts the underlying driver down.
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// Region returns the region record, or (nil, nil) when absent.
func (s *Store) Region(ctx context.Context, regionID int64) (*routing.Region, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		records, err := tx.Run(ctx, `
			MATCH (r:Region {id: $id})
			RETURN r.id AS id, r.name AS name, r.type AS type
		`, map[string]interface{}{"id": regionID})
		if err != nil {
			return nil, err
		}

		if !records.Next(ctx) {
			return nil, records.Err()
		}
		values := records.Record().Values

		return &routing.Region{
			ID:   values[0].(int64),
			Name: values[1].(string),
			Type: routing.RegionType(values[2].(string)),
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("neo4jstore: get region %d: %w", regionID, err)
	}
	if result == nil {
		return nil, nil
	}

	return result.(*routing.Region), nil
}

// Node returns the waypoint record, or (nil, nil) when absent.
func (s *Store) Node(ctx context.Context, nodeID int64) (*routing.GraphNode, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		records, err := tx.Run(ctx, `
			MATCH (w:Waypoint {id: $id})
			RETURN w.id, w.region_id, w.name, w.latitude, w.longitude
		`, map[string]interface{}{"id": nodeID})
		if err != nil {
			return nil, err
		}

		if !records.Next(ctx) {
			return nil, records.Err()
		}
		values := records.Record().Values

		n, err := scanNode(values)
		if err != nil {
			return nil, err
		}

		return &n, nil
	})
	if err != nil {
		return nil, fmt.Errorf("neo4jstore: get node %d: %w", nodeID, err)
	}
	if result == nil {
		return nil, nil
	}

	return result.(*routing.GraphNode), nil
}

// NodesByRegion lists every waypoint of the region, ordered by id.
func (s *Store) NodesByRegion(ctx context.Context, regionID int64) ([]routing.GraphNode, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		records, err := tx.Run(ctx, `
			MATCH (w:Waypoint {region_id: $regionID})
			RETURN w.id, w.region_id, w.name, w.latitude, w.longitude
			ORDER BY w.id
		`, map[string]interface{}{"regionID": regionID})
		if err != nil {
			return nil, err
		}

		var nodes []routing.GraphNode
		for records.Next(ctx) {
			n, err := scanNode(records.Record().Values)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		}

		return nodes, records.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("neo4jstore: query nodes of region %d: %w", regionID, err)
	}

	return result.([]routing.GraphNode), nil
}

// EdgesByRegion lists every PATH relationship of the region.
func (s *Store) EdgesByRegion(ctx context.Context, regionID int64) ([]routing.GraphEdge, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		records, err := tx.Run(ctx, `
			MATCH (a:Waypoint)-[p:PATH {region_id: $regionID}]->(b:Waypoint)
			RETURN p.id, p.region_id, a.id, b.id,
			       p.distance, p.ideal_speed, p.congestion, p.transport_modes
			ORDER BY p.id
		`, map[string]interface{}{"regionID": regionID})
		if err != nil {
			return nil, err
		}

		var edges []routing.GraphEdge
		for records.Next(ctx) {
			values := records.Record().Values

			distance, err := asFloat(values[4])
			if err != nil {
				return nil, fmt.Errorf("distance: %w", err)
			}
			speed, err := asFloat(values[5])
			if err != nil {
				return nil, fmt.Errorf("ideal_speed: %w", err)
			}
			congestion, err := asFloat(values[6])
			if err != nil {
				return nil, fmt.Errorf("congestion: %w", err)
			}
			modes, err := asStrings(values[7])
			if err != nil {
				return nil, fmt.Errorf("transport_modes: %w", err)
			}

			edges = append(edges, routing.GraphEdge{
				ID:             values[0].(int64),
				RegionID:       values[1].(int64),
				StartNodeID:    values[2].(int64),
				EndNodeID:      values[3].(int64),
				Distance:       distance,
				IdealSpeed:     speed,
				Congestion:     congestion,
				TransportModes: modes,
			})
		}

		return edges, records.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("neo4jstore: query edges of region %d: %w", regionID, err)
	}

	return result.([]routing.GraphEdge), nil
}

// ImportRegion upserts one region with its waypoints and paths in a
// single write transaction. Records must carry explicit ids; MERGE
// keys on them, so re-importing the same dataset is idempotent.
func (s *Store) ImportRegion(ctx context.Context, region routing.Region, nodes []routing.GraphNode, edges []routing.GraphEdge) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		if _, err := tx.Run(ctx, `
			MERGE (r:Region {id: $id})
			SET r.name = $name, r.type = $type
		`, map[string]interface{}{
			"id":   region.ID,
			"name": region.Name,
			"type": string(region.Type),
		}); err != nil {
			return nil, fmt.Errorf("region %d: %w", region.ID, err)
		}

		for _, n := range nodes {
			if _, err := tx.Run(ctx, `
				MATCH (r:Region {id: $regionID})
				MERGE (w:Waypoint {id: $id})
				SET w.region_id = $regionID, w.name = $name,
				    w.latitude = $latitude, w.longitude = $longitude
				MERGE (r)-[:CONTAINS]->(w)
			`, map[string]interface{}{
				"id":        n.ID,
				"regionID":  n.RegionID,
				"name":      n.Name,
				"latitude":  n.Latitude,
				"longitude": n.Longitude,
			}); err != nil {
				return nil, fmt.Errorf("node %d: %w", n.ID, err)
			}
		}

		for _, e := range edges {
			modes := e.TransportModes
			if modes == nil {
				modes = []string{}
			}
			if _, err := tx.Run(ctx, `
				MATCH (a:Waypoint {id: $startID}), (b:Waypoint {id: $endID})
				MERGE (a)-[p:PATH {id: $id}]->(b)
				SET p.region_id = $regionID, p.distance = $distance,
				    p.ideal_speed = $idealSpeed, p.congestion = $congestion,
				    p.transport_modes = $modes
			`, map[string]interface{}{
				"id":         e.ID,
				"regionID":   e.RegionID,
				"startID":    e.StartNodeID,
				"endID":      e.EndNodeID,
				"distance":   e.Distance,
				"idealSpeed": e.IdealSpeed,
				"congestion": e.Congestion,
				"modes":      modes,
			}); err != nil {
				return nil, fmt.Errorf("edge %d: %w", e.ID, err)
			}
		}

		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("neo4jstore: import region %d: %w", region.ID, err)
	}

	return nil
}

// scanNode maps a waypoint projection (id, region_id, name, latitude,
// longitude) into a record.
func scanNode(values []interface{}) (routing.GraphNode, error) {
	latitude, err := asFloat(values[3])
	if err != nil {
		return routing.GraphNode{}, fmt.Errorf("latitude: %w", err)
	}
	longitude, err := asFloat(values[4])
	if err != nil {
		return routing.GraphNode{}, fmt.Errorf("longitude: %w", err)
	}

	return routing.GraphNode{
		ID:        values[0].(int64),
		RegionID:  values[1].(int64),
		Name:      values[2].(string),
		Latitude:  latitude,
		Longitude: longitude,
	}, nil
}

// asFloat tolerates integer-typed numeric properties, which Neo4j uses
// for whole numbers regardless of how they were written.
func asFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("unexpected numeric type %T", v)
	}
}

// asStrings converts a list property into a string slice.
func asStrings(v interface{}) ([]string, error) {
	items, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected list type %T", v)
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected list element type %T", item)
		}
		out = append(out, s)
	}

	return out, nil
}
