package routing

import (
	"context"
	"errors"

	"github.com/tripatlas/routegraph/transport"
)

// Sentinel errors for orchestration failures, matching the engine's
// error taxonomy: lookup errors surface before any algorithm runs,
// infeasibility propagates from the solvers wrapped with context.
var (
	// ErrRegionNotFound indicates the requested region does not exist.
	ErrRegionNotFound = errors.New("routing: region not found")

	// ErrNodeValidation indicates nodes are missing, belong to another
	// region, or the requested transport modes are not allowed in the
	// region.
	ErrNodeValidation = errors.New("routing: node validation failed")

	// ErrRouteNotFound indicates no route could be computed: the region
	// has no edges or the solver found no path.
	ErrRouteNotFound = errors.New("routing: route not found")

	// ErrTourComputation indicates a feasible tour could not be
	// constructed because a required pairwise path is missing.
	ErrTourComputation = errors.New("routing: tour computation failed")
)

// RegionType drives the default allowed-transport-mode set.
type RegionType string

const (
	RegionCampus RegionType = "campus"
	RegionScenic RegionType = "scenic"
)

// Transport-mode tags used by the region defaults.
const (
	ModeWalk         = "walk"
	ModeBike         = "bike"
	ModeElectricCart = "electric_cart"
)

// Region is the stored region record, reduced to what routing needs.
type Region struct {
	ID   int64
	Name string
	Type RegionType
}

// GraphNode is the stored navigable-node record.
type GraphNode struct {
	ID        int64
	RegionID  int64
	Name      string
	Latitude  float64
	Longitude float64
}

// GraphEdge is the stored directed-edge record. TransportModes are
// free-form tags; the translation into transport.Edge lower-cases them.
type GraphEdge struct {
	ID             int64
	RegionID       int64
	StartNodeID    int64
	EndNodeID      int64
	Distance       float64
	IdealSpeed     float64
	Congestion     float64
	TransportModes []string
}

// GraphRepository is the storage boundary for nodes and edges.
// Implementations return (nil, nil) for an absent node.
type GraphRepository interface {
	Node(ctx context.Context, nodeID int64) (*GraphNode, error)
	NodesByRegion(ctx context.Context, regionID int64) ([]GraphNode, error)
	EdgesByRegion(ctx context.Context, regionID int64) ([]GraphEdge, error)
}

// RegionRepository is the storage boundary for regions.
// Implementations return (nil, nil) for an absent region.
type RegionRepository interface {
	Region(ctx context.Context, regionID int64) (*Region, error)
}

// RouteRequest asks for the optimal path between two nodes of a region.
type RouteRequest struct {
	RegionID       int64
	StartNodeID    int64
	EndNodeID      int64
	Strategy       transport.WeightStrategy // defaults to time
	TransportModes []string                 // optional; intersected with the region default
}

// RouteNode is a path node enriched with stored metadata.
type RouteNode struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RouteSegment is one traversed edge of a computed route.
type RouteSegment struct {
	SourceID      int64   `json:"source_id"`
	TargetID      int64   `json:"target_id"`
	TransportMode string  `json:"transport_mode"`
	Distance      float64 `json:"distance"`
	Time          float64 `json:"time"`
}

// RoutePlan is the orchestration-level route response.
type RoutePlan struct {
	RegionID      int64                    `json:"region_id"`
	Strategy      transport.WeightStrategy `json:"strategy"`
	TotalDistance float64                  `json:"total_distance"`
	TotalTime     float64                  `json:"total_time"`
	AllowedModes  []string                 `json:"allowed_modes"`
	Nodes         []RouteNode              `json:"nodes"`
	Segments      []RouteSegment           `json:"segments"`
}

// ReachRequest asks for every node reachable from an origin, optionally
// within a maximum-distance budget.
type ReachRequest struct {
	RegionID       int64
	OriginNodeID   int64
	MaxDistance    *float64                 // nil means unbounded
	Strategy       transport.WeightStrategy // defaults to distance
	TransportModes []string
}

// ReachableNode is the per-destination reachability answer.
type ReachableNode struct {
	Distance float64 `json:"distance"`
	Time     float64 `json:"time"`
	// Path is the node-id sequence origin to node, inclusive.
	Path []int64 `json:"path"`
}

// TourRequest asks for a closed walk visiting every target node.
type TourRequest struct {
	RegionID       int64
	StartNodeID    int64
	TargetNodeIDs  []int64
	Strategy       transport.WeightStrategy // defaults to time
	TransportModes []string
	MaxIterations  int // 2-opt pass budget; ≤ 0 uses the planner default
}

// TourLegPlan is one leg of a planned tour, enriched like a RoutePlan.
type TourLegPlan struct {
	StartNodeID int64          `json:"start_node_id"`
	EndNodeID   int64          `json:"end_node_id"`
	Nodes       []RouteNode    `json:"nodes"`
	Segments    []RouteSegment `json:"segments"`
	Distance    float64        `json:"distance"`
	Time        float64        `json:"time"`
}

// TourPlan is the orchestration-level tour response.
type TourPlan struct {
	RegionID int64                    `json:"region_id"`
	Strategy transport.WeightStrategy `json:"strategy"`
	// Route is the closed node-id sequence, start first and last.
	Route         []int64       `json:"route"`
	Legs          []TourLegPlan `json:"legs"`
	TotalDistance float64       `json:"total_distance"`
	TotalTime     float64       `json:"total_time"`
	AllowedModes  []string      `json:"allowed_modes"`
}
