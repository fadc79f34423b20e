package segment_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/evoimg/segga/segment"
)

func TestPixelGraphAddConnectionInvalidIndex(t *testing.T) {
	g := segment.NewPixelGraph(4)
	cases := []struct {
		name string
		i, j int
	}{
		{"NegativeFirst", -1, 0},
		{"NegativeSecond", 0, -1},
		{"TooLargeFirst", 4, 0},
		{"TooLargeSecond", 0, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := g.AddConnection(tc.i, tc.j, 1.0)
			require.ErrorIs(t, err, segment.ErrInvalidIndex)
		})
	}
}

func TestPixelGraphWeightSymmetric(t *testing.T) {
	g := segment.NewPixelGraph(4)
	require.NoError(t, g.AddConnection(0, 1, 0.5))

	w, err := g.Weight(0, 1)
	require.NoError(t, err)
	require.Equal(t, 0.5, w)

	w, err = g.Weight(1, 0)
	require.NoError(t, err)
	require.Equal(t, 0.5, w)
}

func TestPixelGraphWeightNoSuchEdge(t *testing.T) {
	g := segment.NewPixelGraph(4)
	require.NoError(t, g.AddConnection(0, 1, 0.5))

	_, err := g.Weight(0, 2)
	require.ErrorIs(t, err, segment.ErrNoSuchEdge)

	_, err = g.Weight(0, 9)
	require.ErrorIs(t, err, segment.ErrInvalidIndex)
}

// TestPixelGraphLastWriteWins verifies that re-registering an existing pair
// during construction overwrites the weight instead of duplicating the edge.
func TestPixelGraphLastWriteWins(t *testing.T) {
	g := segment.NewPixelGraph(4)
	require.NoError(t, g.AddConnection(0, 1, 0.5))
	require.NoError(t, g.AddConnection(1, 0, 0.75))

	w, err := g.Weight(0, 1)
	require.NoError(t, err)
	require.Equal(t, 0.75, w)

	neighbors, err := g.Neighbors(0)
	require.NoError(t, err)
	require.Len(t, neighbors, 1)
}

func TestPixelGraphNeighbors(t *testing.T) {
	g := segment.NewPixelGraph(5)
	require.NoError(t, g.AddConnection(2, 0, 0.1))
	require.NoError(t, g.AddConnection(2, 3, 0.2))

	neighbors, err := g.Neighbors(2)
	require.NoError(t, err)
	require.Equal(t, []segment.Edge{{To: 0, Weight: 0.1}, {To: 3, Weight: 0.2}}, neighbors)

	_, err = g.Neighbors(5)
	require.ErrorIs(t, err, segment.ErrInvalidIndex)

	isolated, err := g.Neighbors(4)
	require.NoError(t, err)
	require.Empty(t, isolated)
}
