package transport_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripatlas/routegraph/transport"
)

func TestNewEdge_Valid(t *testing.T) {
	e, err := transport.NewEdge("A", "B", 100, 1.4, 1.0, "Walk", "BIKE")
	require.NoError(t, err)
	assert.Equal(t, "A", e.Source)
	assert.Equal(t, "B", e.Target)
	// Modes are lower-cased but keep declaration order.
	assert.Equal(t, []string{"walk", "bike"}, e.Modes)
}

func TestNewEdge_ConstructionValidation(t *testing.T) {
	cases := []struct {
		name       string
		distance   float64
		speed      float64
		congestion float64
		modes      []string
		want       error
	}{
		{"negative distance", -10, 1.0, 1.0, []string{"walk"}, transport.ErrNegativeDistance},
		{"zero speed", 10, 0, 1.0, []string{"walk"}, transport.ErrBadSpeed},
		{"negative speed", 10, -1.0, 1.0, []string{"walk"}, transport.ErrBadSpeed},
		{"zero congestion", 10, 1.0, 0, []string{"walk"}, transport.ErrBadCongestion},
		{"no modes", 10, 1.0, 1.0, nil, transport.ErrNoModes},
		{"blank modes only", 10, 1.0, 1.0, []string{"", "  "}, transport.ErrNoModes},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := transport.NewEdge("X", "Y", tc.distance, tc.speed, tc.congestion, tc.modes...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v, want %v", err, tc.want)
		})
	}
}

func TestEdge_TravelTime(t *testing.T) {
	e, err := transport.NewEdge("A", "B", 200, 4.0, 0.5, "bike")
	require.NoError(t, err)
	// 200 / (4.0 * 0.5) = 100.
	assert.InDelta(t, 100.0, e.TravelTime(), 1e-12)
}

func TestEdge_SelectMode(t *testing.T) {
	e, err := transport.NewEdge("A", "B", 10, 1.0, 1.0, "walk", "bike")
	require.NoError(t, err)

	// No filter: first declared mode.
	mode, ok := e.SelectMode(nil)
	require.True(t, ok)
	assert.Equal(t, "walk", mode)

	// Filter: first declared mode present in the allowed set.
	mode, ok = e.SelectMode(transport.NewModeSet("bike", "electric_cart"))
	require.True(t, ok)
	assert.Equal(t, "bike", mode)

	// No intersection: edge is invisible.
	_, ok = e.SelectMode(transport.NewModeSet("electric_cart"))
	assert.False(t, ok)
}

func TestParseStrategy(t *testing.T) {
	s, err := transport.ParseStrategy("DISTANCE")
	require.NoError(t, err)
	assert.Equal(t, transport.StrategyDistance, s)

	s, err = transport.ParseStrategy("time")
	require.NoError(t, err)
	assert.Equal(t, transport.StrategyTime, s)

	_, err = transport.ParseStrategy("teleport")
	assert.True(t, errors.Is(err, transport.ErrUnknownStrategy))
}

func TestStrategy_Cost(t *testing.T) {
	assert.Equal(t, 3.0, transport.StrategyDistance.Cost(3.0, 9.0))
	assert.Equal(t, 9.0, transport.StrategyTime.Cost(3.0, 9.0))
}

func TestTrivialPath(t *testing.T) {
	p := transport.TrivialPath("A")
	assert.Equal(t, []string{"A"}, p.Nodes)
	assert.Empty(t, p.Segments)
	assert.Zero(t, p.TotalDistance)
	assert.Zero(t, p.TotalTime)
}

func TestModeSet(t *testing.T) {
	s := transport.NewModeSet("Bike", "walk", "bike", "")
	assert.Equal(t, transport.ModeSet{"bike", "walk"}, s)
	assert.True(t, s.Has("walk"))
	assert.False(t, s.Has("electric_cart"))

	inter := s.Intersect(transport.NewModeSet("walk", "electric_cart"))
	assert.Equal(t, transport.ModeSet{"walk"}, inter)

	// nil acts as the universe on either side.
	assert.Equal(t, s, transport.ModeSet(nil).Intersect(s))
	assert.Equal(t, s, s.Intersect(nil))

	empty := transport.NewModeSet("bike").Intersect(transport.NewModeSet("walk"))
	assert.True(t, empty.Empty())
}
