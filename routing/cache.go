package routing

import (
	"context"
	"sync"
)

// regionGraph is one cached, immutable-after-publication snapshot of a
// region's raw graph data.
type regionGraph struct {
	edges []GraphEdge
	nodes map[int64]*GraphNode
}

// regionCache memoizes regionGraph snapshots keyed by region id.
// Entries are populated on first miss under the lock and never mutated
// or invalidated afterwards, so concurrent readers need no further
// coordination once a snapshot is published.
type regionCache struct {
	mu     sync.Mutex
	repo   GraphRepository
	graphs map[int64]*regionGraph
}

func newRegionCache(repo GraphRepository) *regionCache {
	return &regionCache{
		repo:   repo,
		graphs: make(map[int64]*regionGraph),
	}
}

// graph returns the cached snapshot for the region, loading edges and
// the node lookup from storage on first access.
func (c *regionCache) graph(ctx context.Context, regionID int64) (*regionGraph, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if g, ok := c.graphs[regionID]; ok {
		return g, nil
	}

	edges, err := c.repo.EdgesByRegion(ctx, regionID)
	if err != nil {
		return nil, err
	}
	nodes, err := c.repo.NodesByRegion(ctx, regionID)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*GraphNode, len(nodes))
	for i := range nodes {
		byID[nodes[i].ID] = &nodes[i]
	}

	g := &regionGraph{edges: edges, nodes: byID}
	c.graphs[regionID] = g

	return g, nil
}

// node resolves a node id through the snapshot's lookup. Ids outside
// the region miss here; the Service decides whether that is a missing
// node or a cross-region one.
func (g *regionGraph) node(id int64) (*GraphNode, bool) {
	n, ok := g.nodes[id]

	return n, ok
}
