package index

import (
	"math/rand"

	"github.com/vegamdb/vegamdb/core"
)

// KMeansResult is the outcome of TrainKMeans: Centroids[j] is the
// component-wise mean of the vectors in Buckets[j], or, when Buckets[j] is
// empty, the centroid it had before that last update. Buckets partition
// {0..N-1} — every ID appears in exactly one bucket, the bucket of its
// nearest centroid at the final assignment step.
type KMeansResult struct {
	Centroids [][]float32
	Buckets   [][]int32
}

// Trained reports whether TrainKMeans produced a real result. An empty
// KMeansResult (zero centroids) means N < K and training declined rather
// than erroring.
func (r KMeansResult) Trained() bool {
	return len(r.Centroids) > 0
}

// TrainKMeans runs Lloyd's algorithm for exactly maxIters iterations (no
// early-convergence check). If len(data) < k, it returns an empty result —
// this is the documented degrade-rather-than-fail path; callers check
// Trained() rather than an error. Centroid initialization is a
// Fisher-Yates shuffle of {0..N-1} taking the first k IDs as seed points,
// using rng so callers can make a build reproducible.
func TrainKMeans(data [][]float32, k, maxIters int, rng *rand.Rand) KMeansResult {
	n := len(data)
	if n < k {
		return KMeansResult{}
	}

	perm := rng.Perm(n)
	centroids := make([][]float32, k)
	dim := 0
	if n > 0 {
		dim = len(data[0])
	}
	for j := 0; j < k; j++ {
		c := make([]float32, dim)
		copy(c, data[perm[j]])
		centroids[j] = c
	}

	buckets := make([][]int32, k)
	for iter := 0; iter < maxIters; iter++ {
		for j := range buckets {
			buckets[j] = nil
		}

		for i, row := range data {
			best := 0
			bestDist := core.SquaredDistance(row, centroids[0])
			for j := 1; j < k; j++ {
				d := core.SquaredDistance(row, centroids[j])
				if d < bestDist {
					bestDist = d
					best = j
				}
			}
			buckets[best] = append(buckets[best], int32(i))
		}

		for j, bucket := range buckets {
			if len(bucket) == 0 {
				continue
			}
			sum := make([]float32, dim)
			for _, id := range bucket {
				row := data[id]
				for d := 0; d < dim; d++ {
					sum[d] += row[d]
				}
			}
			inv := 1.0 / float32(len(bucket))
			for d := 0; d < dim; d++ {
				sum[d] *= inv
			}
			centroids[j] = sum
		}
	}

	return KMeansResult{Centroids: centroids, Buckets: buckets}
}
