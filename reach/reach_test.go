// Package reach_test exercises the one-to-many solver: budget
// semantics, agreement with the single-pair solver, mode filtering,
// and origin validation.
package reach_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripatlas/routegraph/dijkstra"
	"github.com/tripatlas/routegraph/reach"
	"github.com/tripatlas/routegraph/transport"
)

func mustEdge(t *testing.T, source, target string, distance, speed, congestion float64, modes ...string) transport.Edge {
	t.Helper()
	e, err := transport.NewEdge(source, target, distance, speed, congestion, modes...)
	require.NoError(t, err)

	return e
}

func TestReachable_ChainWithBudget(t *testing.T) {
	// O —100— A —120— B: with a 150 budget only A is usable; B sits at
	// cumulative 220 and must be excluded.
	edges := []transport.Edge{
		mustEdge(t, "O", "A", 100, 1.4, 1.0, "walk"),
		mustEdge(t, "A", "B", 120, 1.4, 1.0, "walk"),
	}

	result, err := reach.Reachable(edges, "O", reach.WithMaxDistance(150))
	require.NoError(t, err)

	require.Contains(t, result, "A")
	assert.NotContains(t, result, "B")
	assert.InDelta(t, 100.0, result["A"].Distance, 1e-9)
	assert.Equal(t, []string{"O", "A"}, result["A"].Path)

	// The origin maps to the trivial zero-cost entry.
	require.Contains(t, result, "O")
	assert.Zero(t, result["O"].Distance)
	assert.Equal(t, []string{"O"}, result["O"].Path)
}

func TestReachable_EdgesAreBidirectional(t *testing.T) {
	// Only a directed A→O edge exists, but reachability traverses it
	// both ways by design.
	edges := []transport.Edge{
		mustEdge(t, "A", "O", 50, 1.0, 1.0, "walk"),
	}
	result, err := reach.Reachable(edges, "O")
	require.NoError(t, err)
	require.Contains(t, result, "A")
	assert.InDelta(t, 50.0, result["A"].Distance, 1e-9)
}

func TestReachable_ModeFilterGatesEdges(t *testing.T) {
	edges := []transport.Edge{
		mustEdge(t, "O", "A", 10, 1.0, 1.0, "walk"),
		mustEdge(t, "O", "B", 10, 1.0, 1.0, "bike"),
	}
	result, err := reach.Reachable(edges, "O", reach.WithAllowedModes("walk"))
	require.NoError(t, err)
	assert.Contains(t, result, "A")
	assert.NotContains(t, result, "B")
}

func TestReachable_IsolatedOriginYieldsTrivialEntry(t *testing.T) {
	// The origin exists in the raw edge set but the mode filter leaves
	// it without usable edges: that is an empty answer, not an error.
	edges := []transport.Edge{
		mustEdge(t, "O", "A", 10, 1.0, 1.0, "bike"),
	}
	result, err := reach.Reachable(edges, "O", reach.WithAllowedModes("walk"))
	require.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Contains(t, result, "O")
}

func TestReachable_UnknownOrigin(t *testing.T) {
	edges := []transport.Edge{
		mustEdge(t, "A", "B", 10, 1.0, 1.0, "walk"),
	}
	_, err := reach.Reachable(edges, "Z")
	require.Error(t, err)
	assert.True(t, errors.Is(err, reach.ErrOriginNotFound))
}

func TestReachable_AgreesWithSinglePairSolver(t *testing.T) {
	// Symmetric grid-ish graph: every pair of forward/backward edges so
	// the single-pair solver sees the same traversability as the
	// bidirectional reachability adjacency.
	pairs := [][2]string{{"O", "A"}, {"A", "B"}, {"B", "C"}, {"O", "C"}, {"A", "C"}}
	lengths := []float64{100, 120, 80, 400, 150}
	var edges []transport.Edge
	for i, p := range pairs {
		edges = append(edges,
			mustEdge(t, p[0], p[1], lengths[i], 1.4, 1.0, "walk"),
			mustEdge(t, p[1], p[0], lengths[i], 1.4, 1.0, "walk"),
		)
	}

	result, err := reach.Reachable(edges, "O",
		reach.WithAllowedModes("walk"),
		reach.WithStrategy(transport.StrategyDistance),
	)
	require.NoError(t, err)
	require.Greater(t, len(result), 1)

	for node, info := range result {
		if node == "O" {
			continue
		}
		single, err := dijkstra.ShortestPath(edges, "O", node,
			dijkstra.WithAllowedModes("walk"),
			dijkstra.WithStrategy(transport.StrategyDistance),
		)
		require.NoError(t, err, "single-pair solve O→%s", node)
		assert.InDelta(t, single.TotalDistance, info.Distance, 1e-9, "distance to %s", node)
		assert.InDelta(t, single.TotalTime, info.Time, 1e-9, "time to %s", node)
	}
}

func TestReachable_Deterministic(t *testing.T) {
	edges := []transport.Edge{
		mustEdge(t, "O", "A", 10, 1.0, 1.0, "walk"),
		mustEdge(t, "O", "B", 10, 1.0, 1.0, "walk"),
		mustEdge(t, "A", "C", 10, 1.0, 1.0, "walk"),
		mustEdge(t, "B", "C", 10, 1.0, 1.0, "walk"),
	}
	first, err := reach.Reachable(edges, "O")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := reach.Reachable(edges, "O")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	// C ties through A and B; the node-id tie-break picks A.
	assert.Equal(t, []string{"O", "A", "C"}, first["C"].Path)
}
