// Package vectorindex provides a flat L2-distance similarity index
// over child-chunk embeddings.
//
// The index is exhaustive: every query scans all stored vectors. At
// the per-document scale this system operates on (hundreds to low
// thousands of child chunks), exact search is both fast enough and
// free of recall loss.
package vectorindex

import (
	"fmt"
	"sort"

	"github.com/meridian-labs/docsage/internal/core/domain"
)

// Neighbor is a single nearest-neighbour hit. Index refers to the
// insertion position, which is the caller's index-to-chunk mapping.
type Neighbor struct {
	Index    int
	Distance float32
}

// Flat is a flat (exhaustive) L2 index. A document's index is built
// once, then only read; concurrent Search calls are safe after Build,
// but Add must not race with Search.
type Flat struct {
	dim  int
	vecs [][]float32
}

// NewFlat creates an empty index for vectors of the given dimension.
func NewFlat(dimension int) *Flat {
	return &Flat{dim: dimension}
}

// Dimension returns the configured vector dimension.
func (f *Flat) Dimension() int {
	return f.dim
}

// Len returns the number of stored vectors.
func (f *Flat) Len() int {
	return len(f.vecs)
}

// Vectors exposes the stored vectors in insertion order, for
// persistence. Callers must not mutate the returned slices.
func (f *Flat) Vectors() [][]float32 {
	return f.vecs
}

// Add appends vectors in order. Insertion order is the index-to-chunk
// mapping and must mirror the child-chunk list exactly.
func (f *Flat) Add(vectors [][]float32) error {
	for _, v := range vectors {
		if len(v) != f.dim {
			return fmt.Errorf("%w: got %d, index dimension %d",
				domain.ErrDimensionMismatch, len(v), f.dim)
		}
	}
	f.vecs = append(f.vecs, vectors...)
	return nil
}

// Search returns the k nearest stored vectors to the query by squared
// L2 distance, ascending. Fewer than k results are returned when the
// index holds fewer vectors.
func (f *Flat) Search(query []float32, k int) ([]Neighbor, error) {
	if len(f.vecs) == 0 {
		return nil, domain.ErrIndexEmpty
	}
	if len(query) != f.dim {
		return nil, fmt.Errorf("%w: query dim %d, index dimension %d",
			domain.ErrDimensionMismatch, len(query), f.dim)
	}

	neighbors := make([]Neighbor, len(f.vecs))
	for i, vec := range f.vecs {
		neighbors[i] = Neighbor{Index: i, Distance: squaredL2(query, vec)}
	}

	sort.Slice(neighbors, func(a, b int) bool {
		if neighbors[a].Distance != neighbors[b].Distance {
			return neighbors[a].Distance < neighbors[b].Distance
		}
		// Stable tie-break on insertion order.
		return neighbors[a].Index < neighbors[b].Index
	})

	if k > 0 && k < len(neighbors) {
		neighbors = neighbors[:k]
	}
	return neighbors, nil
}

// squaredL2 computes the squared Euclidean distance between two
// vectors of equal length. The square root is never taken: ordering is
// identical and this matches the flat-L2 index convention the
// artifacts were produced under.
func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
