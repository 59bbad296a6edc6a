package vectorindex

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Binary layout: dim(uint32), n(uint32), then n*dim little-endian
// IEEE 754 float32 values in insertion order.

// MarshalBinary serialises the index vectors.
func (f *Flat) MarshalBinary() ([]byte, error) {
	out := make([]byte, 8, 8+4*f.dim*len(f.vecs))
	binary.LittleEndian.PutUint32(out[0:4], uint32(f.dim))
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(f.vecs)))

	buf := make([]byte, 4)
	for _, vec := range f.vecs {
		if len(vec) != f.dim {
			return nil, fmt.Errorf("vectorindex: vector dim %d != index dim %d", len(vec), f.dim)
		}
		for _, v := range vec {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
			out = append(out, buf...)
		}
	}
	return out, nil
}

// UnmarshalBinary restores the index from bytes produced by
// MarshalBinary, replacing any existing contents.
func (f *Flat) UnmarshalBinary(data []byte) error {
	if len(data) < 8 {
		return fmt.Errorf("vectorindex: truncated header (%d bytes)", len(data))
	}
	dim := int(binary.LittleEndian.Uint32(data[0:4]))
	n := int(binary.LittleEndian.Uint32(data[4:8]))

	want := 8 + 4*dim*n
	if len(data) != want {
		return fmt.Errorf("vectorindex: payload is %d bytes, want %d for %d x %d", len(data), want, n, dim)
	}

	vecs := make([][]float32, n)
	off := 8
	for i := 0; i < n; i++ {
		vec := make([]float32, dim)
		for j := 0; j < dim; j++ {
			vec[j] = math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
			off += 4
		}
		vecs[i] = vec
	}

	f.dim = dim
	f.vecs = vecs
	return nil
}
