package core

import (
	crand "crypto/rand"
	"encoding/binary"
	"math"
	"math/rand"
)

// SquaredDistance returns the squared Euclidean distance between a and b.
// Used on every ranking hot path because it avoids the sqrt EuclideanDistance
// needs. a and b are assumed to have equal length; behavior is undefined
// (panic-on-index, in practice) if they don't — callers own that check.
func SquaredDistance(a, b []float32) float32 {
	var sum float32
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}

// EuclideanDistance returns the true Euclidean (L2) distance between a and
// b. Only needed when a caller outside the ranking hot path wants an actual
// metric rather than a value that is merely order-preserving.
func EuclideanDistance(a, b []float32) float32 {
	return float32(math.Sqrt(float64(SquaredDistance(a, b))))
}

// Dot returns the dot product of a and b. Used by Annoy's hyperplane margin
// calculation.
func Dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// NewRNG returns a fresh random source. Passing seed == 0 seeds from
// crypto/rand so repeated calls with no explicit seed never collide; a
// non-zero seed makes the returned generator's output sequence
// deterministic, which is what callers need when they want reproducible
// index builds. There is no global/shared generator — every build gets its
// own, matching the "no global singleton" rule: sharing one across
// concurrent builds would be a data race, and reusing one sequentially
// would make later builds depend on how many random numbers earlier ones
// happened to consume.
func NewRNG(seed int64) *rand.Rand {
	if seed == 0 {
		var buf [8]byte
		if _, err := crand.Read(buf[:]); err == nil {
			seed = int64(binary.LittleEndian.Uint64(buf[:]))
		} else {
			seed = 1
		}
	}
	return rand.New(rand.NewSource(seed))
}
