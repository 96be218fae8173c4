// Package dijkstra_test exercises the single-pair solver: strategy and
// mode-filter behavior, determinism of tie-breaking, trivial paths,
// and infeasibility reporting.
package dijkstra_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripatlas/routegraph/dijkstra"
	"github.com/tripatlas/routegraph/transport"
)

// mustEdge builds an edge or fails the test; keeps fixtures compact.
func mustEdge(t *testing.T, source, target string, distance, speed, congestion float64, modes ...string) transport.Edge {
	t.Helper()
	e, err := transport.NewEdge(source, target, distance, speed, congestion, modes...)
	require.NoError(t, err)

	return e
}

// campusEdges mirrors the walking graph used throughout the engine
// tests: A→B 100m, B→C 120m, C→D 80m, plus a long A→D shortcut and a
// fast bike/cart B→D link.
func campusEdges(t *testing.T) []transport.Edge {
	t.Helper()

	return []transport.Edge{
		mustEdge(t, "A", "B", 100, 1.4, 1.0, "walk", "bike"),
		mustEdge(t, "B", "C", 120, 1.4, 1.0, "walk"),
		mustEdge(t, "C", "D", 80, 1.4, 1.0, "walk", "electric_cart"),
		mustEdge(t, "B", "D", 200, 4.0, 0.5, "bike", "electric_cart"),
		mustEdge(t, "A", "D", 500, 1.4, 1.0, "walk"),
	}
}

func TestShortestPath_DistanceStrategyPrefersShorterRoute(t *testing.T) {
	result, err := dijkstra.ShortestPath(
		campusEdges(t), "A", "D",
		dijkstra.WithAllowedModes("walk"),
		dijkstra.WithStrategy(transport.StrategyDistance),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C", "D"}, result.Nodes)
	assert.InDelta(t, 300.0, result.TotalDistance, 1e-9)

	var segTime float64
	for _, seg := range result.Segments {
		segTime += seg.Time
	}
	assert.InDelta(t, segTime, result.TotalTime, 1e-9)
}

func TestShortestPath_TimeStrategyPrefersFasterModes(t *testing.T) {
	result, err := dijkstra.ShortestPath(
		campusEdges(t), "A", "D",
		dijkstra.WithAllowedModes("bike", "electric_cart"),
		dijkstra.WithStrategy(transport.StrategyTime),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "D"}, result.Nodes)
	assert.InDelta(t, 300.0, result.TotalDistance, 1e-9)
	expectedTime := 100.0/1.4 + 200.0/(4.0*0.5)
	assert.InDelta(t, expectedTime, result.TotalTime, 1e-9)

	// The segment modes are the modes actually used, not the edges'
	// first declared modes.
	require.Len(t, result.Segments, 2)
	assert.Equal(t, "bike", result.Segments[0].Mode)
	assert.Equal(t, "bike", result.Segments[1].Mode)
}

func TestShortestPath_StartEqualsGoal(t *testing.T) {
	result, err := dijkstra.ShortestPath(campusEdges(t), "A", "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, result.Nodes)
	assert.Empty(t, result.Segments)
	assert.Zero(t, result.TotalDistance)
	assert.Zero(t, result.TotalTime)
}

func TestShortestPath_NoUsableModeIsInfeasible(t *testing.T) {
	// electric_cart alone cannot leave A: every outgoing edge of A is
	// walk/bike only. The solver must fail, never return an empty
	// "successful" result.
	_, err := dijkstra.ShortestPath(
		campusEdges(t), "A", "D",
		dijkstra.WithAllowedModes("electric_cart"),
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, dijkstra.ErrNoPath))
}

func TestShortestPath_UnknownGoal(t *testing.T) {
	_, err := dijkstra.ShortestPath(campusEdges(t), "A", "Z")
	assert.True(t, errors.Is(err, dijkstra.ErrNoPath))
}

func TestShortestPath_NegativeWeightIsNotNoPath(t *testing.T) {
	// NewEdge forbids negative distances, so build the edge by hand to
	// exercise the solver's own guard.
	edges := []transport.Edge{
		{Source: "A", Target: "B", Distance: -5, IdealSpeed: 1.0, Congestion: 1.0, Modes: []string{"walk"}},
	}

	_, err := dijkstra.ShortestPath(edges, "A", "B")
	require.Error(t, err)
	assert.True(t, errors.Is(err, dijkstra.ErrNegativeWeight))
	assert.False(t, errors.Is(err, dijkstra.ErrNoPath))
}

func TestShortestPath_TotalsEqualSegmentSums(t *testing.T) {
	result, err := dijkstra.ShortestPath(
		campusEdges(t), "A", "D",
		dijkstra.WithAllowedModes("walk"),
		dijkstra.WithStrategy(transport.StrategyDistance),
	)
	require.NoError(t, err)

	var dist, tm float64
	for _, seg := range result.Segments {
		dist += seg.Distance
		tm += seg.Time
	}
	assert.InDelta(t, dist, result.TotalDistance, 1e-9)
	assert.InDelta(t, tm, result.TotalTime, 1e-9)
}

func TestShortestPath_DeterministicTieBreaking(t *testing.T) {
	// Two equal-cost routes X→M1→Y and X→M2→Y. Insertion order is the
	// strict tie-breaker, so repeated runs must agree byte for byte.
	edges := []transport.Edge{
		mustEdge(t, "X", "M1", 10, 1.0, 1.0, "walk"),
		mustEdge(t, "X", "M2", 10, 1.0, 1.0, "walk"),
		mustEdge(t, "M1", "Y", 10, 1.0, 1.0, "walk"),
		mustEdge(t, "M2", "Y", 10, 1.0, 1.0, "walk"),
	}

	first, err := dijkstra.ShortestPath(edges, "X", "Y", dijkstra.WithStrategy(transport.StrategyDistance))
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := dijkstra.ShortestPath(edges, "X", "Y", dijkstra.WithStrategy(transport.StrategyDistance))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("%v", first), fmt.Sprintf("%v", again))
	}
	// M1 was inserted first, so the tie resolves through M1.
	assert.Equal(t, []string{"X", "M1", "Y"}, first.Nodes)
}

func TestShortestPath_DirectedEdgesAreOneWay(t *testing.T) {
	edges := []transport.Edge{
		mustEdge(t, "A", "B", 5, 1.0, 1.0, "walk"),
	}
	_, err := dijkstra.ShortestPath(edges, "B", "A")
	assert.True(t, errors.Is(err, dijkstra.ErrNoPath))
}
