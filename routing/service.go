package routing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"

	"github.com/tripatlas/routegraph/dijkstra"
	"github.com/tripatlas/routegraph/reach"
	"github.com/tripatlas/routegraph/tour"
	"github.com/tripatlas/routegraph/transport"
)

// Service orchestrates graph storage and the routing solvers.
// Construct with NewService; the zero value is not usable.
type Service struct {
	graphs  GraphRepository
	regions RegionRepository
	cache   *regionCache
	log     *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the structured logger; the default discards nothing
// and writes through slog.Default().
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) { s.log = l }
}

// NewService builds a routing Service over the given repositories.
func NewService(graphs GraphRepository, regions RegionRepository, opts ...ServiceOption) *Service {
	s := &Service{
		graphs:  graphs,
		regions: regions,
		cache:   newRegionCache(graphs),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ComputeRoute resolves and validates the request, then answers it
// with the single-pair shortest-path solver.
func (s *Service) ComputeRoute(ctx context.Context, req RouteRequest) (*RoutePlan, error) {
	region, err := s.requireRegion(ctx, req.RegionID)
	if err != nil {
		return nil, err
	}

	g, err := s.cache.graph(ctx, req.RegionID)
	if err != nil {
		return nil, err
	}

	if err := s.validateNodes(ctx, g, req.RegionID, req.StartNodeID, req.EndNodeID); err != nil {
		return nil, err
	}
	if len(g.edges) == 0 {
		return nil, fmt.Errorf("%w: region %d has no routing edges", ErrRouteNotFound, req.RegionID)
	}

	allowed, err := resolveModes(region.Type, req.TransportModes)
	if err != nil {
		return nil, err
	}

	edges, err := algorithmEdges(g.edges)
	if err != nil {
		return nil, err
	}

	strategy := defaultStrategy(req.Strategy, transport.StrategyTime)
	result, err := dijkstra.ShortestPath(edges,
		nodeKey(req.StartNodeID), nodeKey(req.EndNodeID),
		dijkstra.WithModeSet(allowed),
		dijkstra.WithStrategy(strategy),
	)
	if err != nil {
		// A negative-weight report is a data invariant violation, not
		// a missing route; keep it distinguishable from ErrRouteNotFound.
		if errors.Is(err, dijkstra.ErrNegativeWeight) {
			return nil, err
		}

		return nil, fmt.Errorf("%w: %w", ErrRouteNotFound, err)
	}

	nodes, err := enrichNodes(g, result.Nodes)
	if err != nil {
		return nil, err
	}
	segments, err := enrichSegments(g, result.Segments)
	if err != nil {
		return nil, err
	}

	s.log.DebugContext(ctx, "route computed",
		slog.Int64("region_id", req.RegionID),
		slog.Int64("start", req.StartNodeID),
		slog.Int64("end", req.EndNodeID),
		slog.Int("hops", len(segments)),
		slog.Float64("distance", result.TotalDistance),
	)

	return &RoutePlan{
		RegionID:      req.RegionID,
		Strategy:      strategy,
		TotalDistance: result.TotalDistance,
		TotalTime:     result.TotalTime,
		AllowedModes:  sortedModes(allowed),
		Nodes:         nodes,
		Segments:      segments,
	}, nil
}

// ReachableNodes answers "what can I reach from here" with a single
// one-to-many solver run.
func (s *Service) ReachableNodes(ctx context.Context, req ReachRequest) (map[int64]ReachableNode, error) {
	// A negative budget is a caller mistake; the solver option treats
	// it as a programming error and panics, so reject it here.
	if req.MaxDistance != nil && *req.MaxDistance < 0 {
		return nil, fmt.Errorf("%w: max distance must be non-negative, got %v", ErrNodeValidation, *req.MaxDistance)
	}

	region, err := s.requireRegion(ctx, req.RegionID)
	if err != nil {
		return nil, err
	}

	g, err := s.cache.graph(ctx, req.RegionID)
	if err != nil {
		return nil, err
	}

	if err := s.validateNodes(ctx, g, req.RegionID, req.OriginNodeID); err != nil {
		return nil, err
	}
	if len(g.edges) == 0 {
		return map[int64]ReachableNode{}, nil
	}

	allowed, err := resolveModes(region.Type, req.TransportModes)
	if err != nil {
		return nil, err
	}

	edges, err := algorithmEdges(g.edges)
	if err != nil {
		return nil, err
	}

	maxDistance := math.Inf(1)
	if req.MaxDistance != nil {
		maxDistance = *req.MaxDistance
	}
	strategy := defaultStrategy(req.Strategy, transport.StrategyDistance)

	result, err := reach.Reachable(edges, nodeKey(req.OriginNodeID),
		reach.WithModeSet(allowed),
		reach.WithStrategy(strategy),
		reach.WithMaxDistance(maxDistance),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNodeValidation, err)
	}

	out := make(map[int64]ReachableNode, len(result))
	for key, info := range result {
		id, err := parseNodeKey(key)
		if err != nil {
			return nil, err
		}
		path := make([]int64, len(info.Path))
		for i, p := range info.Path {
			if path[i], err = parseNodeKey(p); err != nil {
				return nil, err
			}
		}
		out[id] = ReachableNode{Distance: info.Distance, Time: info.Time, Path: path}
	}

	s.log.DebugContext(ctx, "reachability computed",
		slog.Int64("region_id", req.RegionID),
		slog.Int64("origin", req.OriginNodeID),
		slog.Int("reachable", len(out)),
	)

	return out, nil
}

// PlanTour answers "visit all of these and come back" with the
// nearest-neighbour + 2-opt planner.
func (s *Service) PlanTour(ctx context.Context, req TourRequest) (*TourPlan, error) {
	region, err := s.requireRegion(ctx, req.RegionID)
	if err != nil {
		return nil, err
	}

	g, err := s.cache.graph(ctx, req.RegionID)
	if err != nil {
		return nil, err
	}

	ids := append([]int64{req.StartNodeID}, req.TargetNodeIDs...)
	if err := s.validateNodes(ctx, g, req.RegionID, ids...); err != nil {
		return nil, err
	}
	if len(g.edges) == 0 {
		return nil, fmt.Errorf("%w: region %d has no routing edges", ErrRouteNotFound, req.RegionID)
	}

	allowed, err := resolveModes(region.Type, req.TransportModes)
	if err != nil {
		return nil, err
	}

	edges, err := algorithmEdges(g.edges)
	if err != nil {
		return nil, err
	}

	targets := make([]string, len(req.TargetNodeIDs))
	for i, id := range req.TargetNodeIDs {
		targets[i] = nodeKey(id)
	}

	strategy := defaultStrategy(req.Strategy, transport.StrategyTime)
	result, err := tour.Plan(edges, nodeKey(req.StartNodeID), targets,
		tour.WithModeSet(allowed),
		tour.WithStrategy(strategy),
		tour.WithMaxIterations(req.MaxIterations),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTourComputation, err)
	}

	route := make([]int64, len(result.Route))
	for i, key := range result.Route {
		if route[i], err = parseNodeKey(key); err != nil {
			return nil, err
		}
	}

	legs := make([]TourLegPlan, 0, len(result.Legs))
	for _, leg := range result.Legs {
		nodes, err := enrichNodes(g, leg.Path.Nodes)
		if err != nil {
			return nil, err
		}
		segments, err := enrichSegments(g, leg.Path.Segments)
		if err != nil {
			return nil, err
		}
		startID, err := parseNodeKey(leg.Start)
		if err != nil {
			return nil, err
		}
		endID, err := parseNodeKey(leg.End)
		if err != nil {
			return nil, err
		}
		legs = append(legs, TourLegPlan{
			StartNodeID: startID,
			EndNodeID:   endID,
			Nodes:       nodes,
			Segments:    segments,
			Distance:    leg.Path.TotalDistance,
			Time:        leg.Path.TotalTime,
		})
	}

	s.log.DebugContext(ctx, "tour planned",
		slog.Int64("region_id", req.RegionID),
		slog.Int64("start", req.StartNodeID),
		slog.Int("stops", len(req.TargetNodeIDs)),
		slog.Float64("distance", result.TotalDistance),
	)

	return &TourPlan{
		RegionID:      req.RegionID,
		Strategy:      strategy,
		Route:         route,
		Legs:          legs,
		TotalDistance: result.TotalDistance,
		TotalTime:     result.TotalTime,
		AllowedModes:  sortedModes(allowed),
	}, nil
}

// requireRegion loads the region or fails with ErrRegionNotFound.
func (s *Service) requireRegion(ctx context.Context, regionID int64) (*Region, error) {
	region, err := s.regions.Region(ctx, regionID)
	if err != nil {
		return nil, err
	}
	if region == nil {
		return nil, fmt.Errorf("%w: region %d", ErrRegionNotFound, regionID)
	}

	return region, nil
}

// validateNodes checks that every id resolves to a node of the given
// region. Ids missing from the region snapshot are re-read from
// storage to distinguish a cross-region node from an absent one - both
// are validation failures, but the message should say which.
func (s *Service) validateNodes(ctx context.Context, g *regionGraph, regionID int64, ids ...int64) error {
	for _, id := range ids {
		if _, ok := g.node(id); ok {
			continue
		}
		n, err := s.graphs.Node(ctx, id)
		if err != nil {
			return err
		}
		if n == nil {
			return fmt.Errorf("%w: node %d not found", ErrNodeValidation, id)
		}

		return fmt.Errorf("%w: node %d belongs to region %d, not %d", ErrNodeValidation, id, n.RegionID, regionID)
	}

	return nil
}

// resolveModes computes the effective allowed-mode set for the region
// type and optional caller modes, per the region-type defaults.
func resolveModes(regionType RegionType, requested []string) (transport.ModeSet, error) {
	defaults := defaultModes(regionType)

	caller := transport.NewModeSet(requested...)
	if caller == nil {
		return defaults, nil
	}

	filtered := caller.Intersect(defaults)
	if filtered.Empty() {
		return nil, fmt.Errorf("%w: transport modes %v are not allowed in a %s region",
			ErrNodeValidation, requested, regionType)
	}

	return filtered, nil
}

// defaultModes maps a region type to its default allowed-mode set.
// Unrecognized types fall back to walking only.
func defaultModes(regionType RegionType) transport.ModeSet {
	switch regionType {
	case RegionCampus:
		return transport.NewModeSet(ModeWalk, ModeBike)
	case RegionScenic:
		return transport.NewModeSet(ModeWalk, ModeElectricCart)
	default:
		return transport.NewModeSet(ModeWalk)
	}
}

// algorithmEdges translates stored edge records into the engine's
// validated edge type. A malformed stored edge is a data error, not a
// solver condition, so the construction error propagates as-is.
func algorithmEdges(records []GraphEdge) ([]transport.Edge, error) {
	edges := make([]transport.Edge, 0, len(records))
	for _, rec := range records {
		e, err := transport.NewEdge(
			nodeKey(rec.StartNodeID), nodeKey(rec.EndNodeID),
			rec.Distance, rec.IdealSpeed, rec.Congestion,
			rec.TransportModes...,
		)
		if err != nil {
			return nil, fmt.Errorf("routing: bad stored edge %d: %w", rec.ID, err)
		}
		edges = append(edges, e)
	}

	return edges, nil
}

// enrichNodes maps engine node keys back to stored node metadata,
// failing validation if any identifier is unexpectedly absent.
func enrichNodes(g *regionGraph, keys []string) ([]RouteNode, error) {
	out := make([]RouteNode, 0, len(keys))
	for _, key := range keys {
		id, err := parseNodeKey(key)
		if err != nil {
			return nil, err
		}
		n, ok := g.node(id)
		if !ok {
			return nil, fmt.Errorf("%w: node %d missing from region lookup", ErrNodeValidation, id)
		}
		out = append(out, RouteNode{ID: n.ID, Name: n.Name, Latitude: n.Latitude, Longitude: n.Longitude})
	}

	return out, nil
}

// enrichSegments translates solver segments into response segments.
func enrichSegments(g *regionGraph, segments []transport.PathSegment) ([]RouteSegment, error) {
	out := make([]RouteSegment, 0, len(segments))
	for _, seg := range segments {
		sourceID, err := parseNodeKey(seg.Source)
		if err != nil {
			return nil, err
		}
		targetID, err := parseNodeKey(seg.Target)
		if err != nil {
			return nil, err
		}
		if _, ok := g.node(sourceID); !ok {
			return nil, fmt.Errorf("%w: segment references unknown node %d", ErrNodeValidation, sourceID)
		}
		if _, ok := g.node(targetID); !ok {
			return nil, fmt.Errorf("%w: segment references unknown node %d", ErrNodeValidation, targetID)
		}
		out = append(out, RouteSegment{
			SourceID:      sourceID,
			TargetID:      targetID,
			TransportMode: seg.Mode,
			Distance:      seg.Distance,
			Time:          seg.Time,
		})
	}

	return out, nil
}

// defaultStrategy applies the operation default when the request
// leaves the strategy empty.
func defaultStrategy(s, fallback transport.WeightStrategy) transport.WeightStrategy {
	if s == "" {
		return fallback
	}

	return s
}

// nodeKey converts a storage id into the engine's string identifier.
func nodeKey(id int64) string { return strconv.FormatInt(id, 10) }

// parseNodeKey converts an engine identifier back into a storage id.
func parseNodeKey(key string) (int64, error) {
	id, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("routing: malformed node key %q: %w", key, err)
	}

	return id, nil
}

// sortedModes is a display helper used by callers that need the
// resolved set in a stable order; ModeSet is already sorted, this just
// copies it out as a plain slice.
func sortedModes(set transport.ModeSet) []string {
	out := append([]string(nil), set...)
	sort.Strings(out)

	return out
}
