package core

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Shared little-endian int32/float32 helpers used by VectorStore and every
// index variant's Save/Load. The on-disk format is fixed-width host-native
// little-endian, matching the in-process C++ writer this format is grounded
// on; there is no portability prefix because spec.md scopes that out.

// WriteInt32 writes a single little-endian int32.
func WriteInt32(w io.Writer, v int32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	return nil
}

// ReadInt32 reads a single little-endian int32. EOF propagates to the
// caller unwrapped so callers that treat EOF specially (e.g. "no index
// installed") can test with errors.Is(err, io.EOF).
func ReadInt32(r io.Reader) (int32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(buf[:])), nil
}

// WriteBool writes a single byte: 1 for true, 0 for false.
func WriteBool(w io.Writer, v bool) error {
	var b byte
	if v {
		b = 1
	}
	if _, err := w.Write([]byte{b}); err != nil {
		return fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	return nil
}

// ReadBool reads a single byte written by WriteBool.
func ReadBool(r io.Reader) (bool, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return false, err
	}
	return buf[0] != 0, nil
}

// WriteFloat32Slice writes len(v) float32s with no length prefix; callers
// that need the count write it themselves first (dimension is usually
// already known from context).
func WriteFloat32Slice(w io.Writer, v []float32) error {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	return nil
}

// ReadFloat32Slice reads exactly n float32s with no length prefix.
func ReadFloat32Slice(r io.Reader, n int) ([]float32, error) {
	buf := make([]byte, 4*n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return out, nil
}

// WriteInt32Slice writes len(v) int32s with no length prefix.
func WriteInt32Slice(w io.Writer, v []int32) error {
	buf := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(x))
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	return nil
}

// ReadInt32Slice reads exactly n int32s with no length prefix.
func ReadInt32Slice(r io.Reader, n int) ([]int32, error) {
	buf := make([]byte, 4*n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return out, nil
}
