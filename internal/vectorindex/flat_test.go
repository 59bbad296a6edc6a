package vectorindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/docsage/internal/core/domain"
)

func TestFlat_Search_Empty(t *testing.T) {
	f := NewFlat(3)

	_, err := f.Search([]float32{1, 0, 0}, 5)

	assert.ErrorIs(t, err, domain.ErrIndexEmpty)
}

func TestFlat_Add_DimensionMismatch(t *testing.T) {
	f := NewFlat(3)

	err := f.Add([][]float32{{1, 0}})

	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	assert.Equal(t, 0, f.Len(), "a rejected batch adds nothing")
}

func TestFlat_Search_QueryDimensionMismatch(t *testing.T) {
	f := NewFlat(3)
	require.NoError(t, f.Add([][]float32{{1, 0, 0}}))

	_, err := f.Search([]float32{1, 0}, 1)

	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestFlat_Search_OrdersByDistance(t *testing.T) {
	f := NewFlat(2)
	require.NoError(t, f.Add([][]float32{
		{10, 10}, // far
		{1, 1},   // close
		{5, 5},   // middle
	}))

	neighbors, err := f.Search([]float32{0, 0}, 3)

	require.NoError(t, err)
	require.Len(t, neighbors, 3)
	assert.Equal(t, 1, neighbors[0].Index)
	assert.Equal(t, 2, neighbors[1].Index)
	assert.Equal(t, 0, neighbors[2].Index)
}

func TestFlat_Search_SquaredDistances(t *testing.T) {
	f := NewFlat(2)
	require.NoError(t, f.Add([][]float32{{3, 4}}))

	neighbors, err := f.Search([]float32{0, 0}, 1)

	require.NoError(t, err)
	// 3*3 + 4*4, no square root.
	assert.InDelta(t, 25.0, float64(neighbors[0].Distance), 1e-6)
}

func TestFlat_Search_TieBreakOnInsertionOrder(t *testing.T) {
	f := NewFlat(2)
	require.NoError(t, f.Add([][]float32{
		{1, 0},
		{0, 1}, // equidistant from origin query
	}))

	neighbors, err := f.Search([]float32{0, 0}, 2)

	require.NoError(t, err)
	assert.Equal(t, 0, neighbors[0].Index)
	assert.Equal(t, 1, neighbors[1].Index)
}

func TestFlat_Search_KLargerThanIndex(t *testing.T) {
	f := NewFlat(2)
	require.NoError(t, f.Add([][]float32{{1, 1}, {2, 2}}))

	neighbors, err := f.Search([]float32{0, 0}, 10)

	require.NoError(t, err)
	assert.Len(t, neighbors, 2)
}

func TestFlat_BinaryRoundTrip(t *testing.T) {
	f := NewFlat(3)
	vectors := [][]float32{
		{0.1, -0.2, 0.3},
		{1.5, 2.5, -3.5},
	}
	require.NoError(t, f.Add(vectors))

	data, err := f.MarshalBinary()
	require.NoError(t, err)

	restored := NewFlat(0)
	require.NoError(t, restored.UnmarshalBinary(data))

	assert.Equal(t, 3, restored.Dimension())
	assert.Equal(t, vectors, restored.Vectors())

	// Search results match the original index exactly.
	query := []float32{0.1, -0.2, 0.3}
	want, err := f.Search(query, 2)
	require.NoError(t, err)
	got, err := restored.Search(query, 2)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFlat_UnmarshalBinary_Truncated(t *testing.T) {
	f := NewFlat(0)

	assert.Error(t, f.UnmarshalBinary([]byte{1, 2, 3}))
}

func TestFlat_UnmarshalBinary_WrongPayloadSize(t *testing.T) {
	f := NewFlat(2)
	require.NoError(t, f.Add([][]float32{{1, 2}}))
	data, err := f.MarshalBinary()
	require.NoError(t, err)

	restored := NewFlat(0)
	assert.Error(t, restored.UnmarshalBinary(data[:len(data)-1]))
}

func TestFlat_MarshalBinary_EmptyIndex(t *testing.T) {
	f := NewFlat(4)

	data, err := f.MarshalBinary()
	require.NoError(t, err)

	restored := NewFlat(0)
	require.NoError(t, restored.UnmarshalBinary(data))
	assert.Equal(t, 4, restored.Dimension())
	assert.Equal(t, 0, restored.Len())
}
