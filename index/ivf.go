package index

import (
	"fmt"
	"io"
	"sort"

	"github.com/vegamdb/vegamdb/core"
)

// IVFIndex is a coarse-then-fine index: Build partitions the dataset into
// NClusters buckets via K-Means, Search scores the query against every
// centroid, then rescans only the top NProbe buckets' members exactly.
type IVFIndex struct {
	NClusters int
	MaxIters  int
	NProbe    int32
	seed      int64

	dimension int
	centroids [][]float32
	buckets   [][]int32
}

// NewIVFIndex returns an untrained IVFIndex configured with nClusters,
// maxIters, and a default nProbe used when Search receives no override.
// seed == 0 means "seed K-Means init from fresh entropy on every Build".
func NewIVFIndex(nClusters, maxIters int, nProbe int32, seed int64) *IVFIndex {
	return &IVFIndex{NClusters: nClusters, MaxIters: maxIters, NProbe: nProbe, seed: seed}
}

func (ix *IVFIndex) Name() string { return "IVFIndex" }

// Build trains K-Means over data and stores its centroids/buckets as the
// inverted index. If len(data) < NClusters, TrainKMeans returns an empty
// result and IsTrained stays false — this is the documented
// degrade-rather-than-fail path, not an error.
func (ix *IVFIndex) Build(data [][]float32) error {
	if len(data) > 0 {
		ix.dimension = len(data[0])
	}
	rng := core.NewRNG(ix.seed)
	result := TrainKMeans(data, ix.NClusters, ix.MaxIters, rng)
	ix.centroids = result.Centroids
	ix.buckets = result.Buckets
	return nil
}

func (ix *IVFIndex) IsTrained() bool {
	return len(ix.centroids) > 0 && len(ix.buckets) > 0
}

// Search scores every centroid against query, probes the nProbe closest
// buckets (nProbe from params.NProbe when params.Kind == ParamKindIVF,
// otherwise ix.NProbe), then exactly scores and ranks the union of those
// buckets' members. Returns core.ErrParamKindMismatch if params names a
// different variant.
func (ix *IVFIndex) Search(data [][]float32, query []float32, k int, params SearchParams) (SearchResult, error) {
	if !ix.IsTrained() {
		return SearchResult{}, nil
	}
	nProbe := int(ix.NProbe)
	switch params.Kind {
	case ParamKindNone:
	case ParamKindIVF:
		nProbe = int(params.NProbe)
	default:
		return SearchResult{}, core.ErrParamKindMismatch
	}

	centroidOrder := make([]int, len(ix.centroids))
	centroidDist := make([]float32, len(ix.centroids))
	for j, c := range ix.centroids {
		centroidOrder[j] = j
		centroidDist[j] = core.SquaredDistance(query, c)
	}
	sort.SliceStable(centroidOrder, func(i, j int) bool {
		return centroidDist[centroidOrder[i]] < centroidDist[centroidOrder[j]]
	})

	p := nProbe
	if p > len(ix.centroids) {
		p = len(ix.centroids)
	}
	if p < 0 {
		p = 0
	}

	var candidates []int32
	for i := 0; i < p; i++ {
		candidates = append(candidates, ix.buckets[centroidOrder[i]]...)
	}

	ids := make([]int32, len(candidates))
	distances := make([]float32, len(candidates))
	for i, id := range candidates {
		ids[i] = id
		distances[i] = core.SquaredDistance(query, data[id])
	}

	order := make([]int, len(ids))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return distances[order[i]] < distances[order[j]]
	})

	if k > len(order) {
		k = len(order)
	}
	topIds := make([]int32, k)
	topDistances := make([]float32, k)
	for i := 0; i < k; i++ {
		topIds[i] = ids[order[i]]
		topDistances[i] = distances[order[i]]
	}
	return SearchResult{Ids: topIds, Distances: topDistances}, nil
}

// Save writes n_clusters, dimension, then each centroid's D floats, then
// for each bucket a size-prefixed run of i32 IDs. Written from actual
// trained state (not configured NClusters) so an untrained IVFIndex still
// writes a well-formed, empty header that Load can round-trip.
func (ix *IVFIndex) Save(w io.Writer) error {
	if err := core.WriteInt32(w, int32(len(ix.centroids))); err != nil {
		return err
	}
	if err := core.WriteInt32(w, int32(ix.dimension)); err != nil {
		return err
	}
	for _, c := range ix.centroids {
		if err := core.WriteFloat32Slice(w, c); err != nil {
			return err
		}
	}
	for _, bucket := range ix.buckets {
		if err := core.WriteInt32(w, int32(len(bucket))); err != nil {
			return err
		}
		if err := core.WriteInt32Slice(w, bucket); err != nil {
			return err
		}
	}
	return nil
}

// Load mirrors Save exactly. n_probe is not part of the saved state: the
// index keeps the NProbe it was constructed with, and one constructed with
// NProbe 0 (as NewByName does) probes all n_clusters buckets.
func (ix *IVFIndex) Load(r io.Reader) error {
	nClusters, err := core.ReadInt32(r)
	if err != nil {
		return fmt.Errorf("%w: reading n_clusters: %v", core.ErrIOFailure, err)
	}
	dim, err := core.ReadInt32(r)
	if err != nil {
		return fmt.Errorf("%w: reading dimension: %v", core.ErrIOFailure, err)
	}

	centroids := make([][]float32, nClusters)
	for j := int32(0); j < nClusters; j++ {
		c, err := core.ReadFloat32Slice(r, int(dim))
		if err != nil {
			return fmt.Errorf("%w: reading centroid %d: %v", core.ErrIOFailure, j, err)
		}
		centroids[j] = c
	}

	buckets := make([][]int32, nClusters)
	for j := int32(0); j < nClusters; j++ {
		size, err := core.ReadInt32(r)
		if err != nil {
			return fmt.Errorf("%w: reading bucket %d size: %v", core.ErrIOFailure, j, err)
		}
		bucket, err := core.ReadInt32Slice(r, int(size))
		if err != nil {
			return fmt.Errorf("%w: reading bucket %d: %v", core.ErrIOFailure, j, err)
		}
		buckets[j] = bucket
	}

	ix.dimension = int(dim)
	ix.centroids = centroids
	ix.buckets = buckets
	if ix.NClusters == 0 {
		ix.NClusters = int(nClusters)
	}
	if ix.NProbe == 0 {
		ix.NProbe = nClusters
	}
	return nil
}
