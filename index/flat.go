package index

import (
	"io"
	"sort"

	"github.com/vegamdb/vegamdb/core"
)

// FlatIndex is brute-force exact k-NN. It has no trained state at all:
// Build is a no-op, IsTrained is always true, Save/Load touch no bytes.
// Search re-scans the full data slice it's given every call.
type FlatIndex struct{}

// NewFlatIndex returns a FlatIndex. There's nothing to configure.
func NewFlatIndex() *FlatIndex {
	return &FlatIndex{}
}

func (f *FlatIndex) Name() string { return "FlatIndex" }

func (f *FlatIndex) Build(data [][]float32) error { return nil }

func (f *FlatIndex) IsTrained() bool { return true }

// Search scores every row of data against query and returns the k closest
// by squared distance, ties broken by row index (stable sort). FlatIndex
// has no variant-specific knobs, so params.Kind must be ParamKindNone;
// anything else returns core.ErrParamKindMismatch.
func (f *FlatIndex) Search(data [][]float32, query []float32, k int, params SearchParams) (SearchResult, error) {
	if params.Kind != ParamKindNone {
		return SearchResult{}, core.ErrParamKindMismatch
	}

	ids := make([]int32, len(data))
	distances := make([]float32, len(data))
	for i, row := range data {
		ids[i] = int32(i)
		distances[i] = core.SquaredDistance(query, row)
	}

	sort.SliceStable(ids, func(i, j int) bool {
		return distances[ids[i]] < distances[ids[j]]
	})

	if k > len(ids) {
		k = len(ids)
	}
	topIds := make([]int32, k)
	topDistances := make([]float32, k)
	for i := 0; i < k; i++ {
		topIds[i] = ids[i]
		topDistances[i] = distances[ids[i]]
	}
	return SearchResult{Ids: topIds, Distances: topDistances}, nil
}

// Save writes nothing: FlatIndex has no state beyond the store's own data.
func (f *FlatIndex) Save(w io.Writer) error { return nil }

// Load reads nothing, mirroring Save.
func (f *FlatIndex) Load(r io.Reader) error { return nil }
