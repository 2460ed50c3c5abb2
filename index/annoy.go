package index

import (
	"container/heap"
	"fmt"
	"io"
	"math"
	"math/rand"
	"sort"

	"github.com/vegamdb/vegamdb/core"
)

// hyperplane is (w, bias) defining the signed margin m(x) = <w,x> + bias,
// used both to partition a node's points at build time and to route a
// query at search time.
type hyperplane struct {
	w    []float32
	bias float32
}

func (h *hyperplane) margin(x []float32) float32 {
	return core.Dot(h.w, x) + h.bias
}

// annoyNode is a Leaf (bucket non-nil, plane nil) or an Inner node (plane
// set, left/right non-nil). There is no separate tag field: the presence
// of plane discriminates the variant, mirroring the tree's own recursive
// shape.
type annoyNode struct {
	bucket []int32
	plane  *hyperplane
	left   *annoyNode
	right  *annoyNode
}

func (n *annoyNode) isLeaf() bool { return n.plane == nil }

// AnnoyIndex is a forest of random-projection binary trees. Build grows
// NumTrees independent trees over the full dataset; Search either
// descends one leaf per tree (greedy) or explores nodes in priority order
// across all trees at once (priority queue), then exactly re-ranks the
// pooled candidates.
type AnnoyIndex struct {
	NumTrees        int
	KLeaf           int
	SearchK         int32
	UsePriorityQueue bool
	seed            int64

	dimension int
	roots     []*annoyNode
}

// NewAnnoyIndex returns an untrained AnnoyIndex. searchK == -1 means
// "default to numTrees*kLeaf", resolved immediately rather than lazily.
// seed == 0 means every tree in Build draws from fresh entropy.
func NewAnnoyIndex(numTrees, kLeaf int, searchK int32, usePQ bool, seed int64) *AnnoyIndex {
	if searchK == -1 {
		searchK = int32(numTrees * kLeaf)
	}
	return &AnnoyIndex{
		NumTrees:         numTrees,
		KLeaf:            kLeaf,
		SearchK:          searchK,
		UsePriorityQueue: usePQ,
		seed:             seed,
	}
}

func (ix *AnnoyIndex) Name() string { return "AnnoyIndex" }

func (ix *AnnoyIndex) IsTrained() bool { return len(ix.roots) > 0 }

// Build grows NumTrees independent trees, each from its own RNG (seeded
// from ix.seed when non-zero, otherwise fresh entropy per tree — matching
// the "no global singleton" rule: reusing one RNG across trees would make
// later trees depend on how many draws earlier ones consumed).
func (ix *AnnoyIndex) Build(data [][]float32) error {
	if len(data) > 0 {
		ix.dimension = len(data[0])
	}
	roots := make([]*annoyNode, ix.NumTrees)
	for i := 0; i < ix.NumTrees; i++ {
		treeSeed := ix.seed
		if treeSeed != 0 {
			treeSeed += int64(i)
		}
		rng := core.NewRNG(treeSeed)
		indices := make([]int32, len(data))
		for j := range indices {
			indices[j] = int32(j)
		}
		roots[i] = buildAnnoyTree(data, indices, ix.KLeaf, rng)
	}
	ix.roots = roots
	return nil
}

// buildAnnoyTree recursively partitions indices by a random hyperplane.
// Degenerate splits (every point landing on one side) terminate recursion
// with a leaf even though its bucket may exceed kLeaf — without this, a
// set of colinear or duplicate points would recurse forever.
func buildAnnoyTree(data [][]float32, indices []int32, kLeaf int, rng *rand.Rand) *annoyNode {
	if len(indices) <= kLeaf {
		return &annoyNode{bucket: indices}
	}

	rng.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})
	a, b := data[indices[0]], data[indices[1]]

	dim := len(a)
	w := make([]float32, dim)
	var bias float32
	for d := 0; d < dim; d++ {
		w[d] = a[d] - b[d]
		bias += w[d] * (a[d] + b[d]) / 2
	}
	bias = -bias
	plane := &hyperplane{w: w, bias: bias}

	var left, right []int32
	for _, idx := range indices {
		if plane.margin(data[idx]) > 0 {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}

	if len(left) == 0 {
		return &annoyNode{bucket: right}
	}
	if len(right) == 0 {
		return &annoyNode{bucket: left}
	}

	return &annoyNode{
		plane: plane,
		left:  buildAnnoyTree(data, left, kLeaf, rng),
		right: buildAnnoyTree(data, right, kLeaf, rng),
	}
}

// Search returns the k closest candidates pooled across all trees,
// exactly re-ranked by squared distance. params overrides SearchK and
// UsePriorityQueue when params.Kind == ParamKindAnnoy; UsePQSet
// distinguishes "override to false" from "no override given" since both
// are the Go zero value for UsePQ.
func (ix *AnnoyIndex) Search(data [][]float32, query []float32, k int, params SearchParams) (SearchResult, error) {
	if !ix.IsTrained() {
		return SearchResult{}, nil
	}
	searchK := ix.SearchK
	usePQ := ix.UsePriorityQueue
	switch params.Kind {
	case ParamKindNone:
	case ParamKindAnnoy:
		searchK = params.SearchK
		if params.UsePQSet {
			usePQ = params.UsePQ
		}
	default:
		return SearchResult{}, core.ErrParamKindMismatch
	}

	var candidates []int32
	if usePQ {
		candidates = ix.searchPriorityQueue(query, int(searchK))
	} else {
		candidates = ix.searchGreedy(query)
	}

	candidates = sortUniqueInt32(candidates)

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

// searchGreedy descends one leaf per tree, following the sign of the
// margin: margin > 0 goes left, else right. This matches build-time
// routing exactly (both use strict > 0), so a point that landed left
// during Build is still routed left by a query with the same coordinates.
func (ix *AnnoyIndex) searchGreedy(query []float32) []int32 {
	var candidates []int32
	for _, root := range ix.roots {
		node := root
		for !node.isLeaf() {
			if node.plane.margin(query) > 0 {
				node = node.left
			} else {
				node = node.right
			}
		}
		candidates = append(candidates, node.bucket...)
	}
	return candidates
}

type pqItem struct {
	score float32
	node  *annoyNode
}

type annoyPQ []pqItem

func (pq annoyPQ) Len() int            { return len(pq) }
func (pq annoyPQ) Less(i, j int) bool  { return pq[i].score > pq[j].score } // max-heap
func (pq annoyPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *annoyPQ) Push(x any) { *pq = append(*pq, x.(pqItem)) }
func (pq *annoyPQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// searchPriorityQueue explores nodes across all trees in best-first
// order: each root starts at score +inf, and descending into a child
// tightens the score to the smallest positive-side margin seen so far
// along that path. Pops leaves' buckets into candidates until searchK
// candidates have been collected or the heap is exhausted.
func (ix *AnnoyIndex) searchPriorityQueue(query []float32, searchK int) []int32 {
	pq := make(annoyPQ, 0, len(ix.roots))
	for _, root := range ix.roots {
		pq = append(pq, pqItem{score: math.MaxFloat32, node: root})
	}
	heap.Init(&pq)

	var candidates []int32
	for len(candidates) < searchK && pq.Len() > 0 {
		item := heap.Pop(&pq).(pqItem)
		node := item.node
		if node.isLeaf() {
			candidates = append(candidates, node.bucket...)
			continue
		}
		m := node.plane.margin(query)
		heap.Push(&pq, pqItem{score: minFloat32(item.score, m), node: node.left})
		heap.Push(&pq, pqItem{score: minFloat32(item.score, -m), node: node.right})
	}
	return candidates
}

func minFloat32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func sortUniqueInt32(ids []int32) []int32 {
	sorted := append([]int32(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	out := sorted[:0]
	var last int32 = -1
	first := true
	for _, id := range sorted {
		if first || id != last {
			out = append(out, id)
			last = id
			first = false
		}
	}
	return out
}

// Save writes use_priority_queue, num_trees, dimension, k_leaf, search_k,
// then each tree pre-order.
func (ix *AnnoyIndex) Save(w io.Writer) error {
	if err := core.WriteBool(w, ix.UsePriorityQueue); err != nil {
		return err
	}
	if err := core.WriteInt32(w, int32(len(ix.roots))); err != nil {
		return err
	}
	if err := core.WriteInt32(w, int32(ix.dimension)); err != nil {
		return err
	}
	if err := core.WriteInt32(w, int32(ix.KLeaf)); err != nil {
		return err
	}
	if err := core.WriteInt32(w, ix.SearchK); err != nil {
		return err
	}
	for _, root := range ix.roots {
		if err := saveAnnoyNode(w, root); err != nil {
			return err
		}
	}
	return nil
}

func saveAnnoyNode(w io.Writer, n *annoyNode) error {
	if err := core.WriteBool(w, n.isLeaf()); err != nil {
		return err
	}
	if n.isLeaf() {
		if err := core.WriteInt32(w, int32(len(n.bucket))); err != nil {
			return err
		}
		return core.WriteInt32Slice(w, n.bucket)
	}
	if err := core.WriteFloat32Slice(w, n.plane.w); err != nil {
		return err
	}
	if err := core.WriteFloat32Slice(w, []float32{n.plane.bias}); err != nil {
		return err
	}
	if err := saveAnnoyNode(w, n.left); err != nil {
		return err
	}
	return saveAnnoyNode(w, n.right)
}

// Load mirrors Save exactly, including the pre-order node traversal.
func (ix *AnnoyIndex) Load(r io.Reader) error {
	usePQ, err := core.ReadBool(r)
	if err != nil {
		return fmt.Errorf("%w: reading use_priority_queue: %v", core.ErrIOFailure, err)
	}
	numTrees, err := core.ReadInt32(r)
	if err != nil {
		return fmt.Errorf("%w: reading num_trees: %v", core.ErrIOFailure, err)
	}
	dim, err := core.ReadInt32(r)
	if err != nil {
		return fmt.Errorf("%w: reading dimension: %v", core.ErrIOFailure, err)
	}
	kLeaf, err := core.ReadInt32(r)
	if err != nil {
		return fmt.Errorf("%w: reading k_leaf: %v", core.ErrIOFailure, err)
	}
	searchK, err := core.ReadInt32(r)
	if err != nil {
		return fmt.Errorf("%w: reading search_k: %v", core.ErrIOFailure, err)
	}

	roots := make([]*annoyNode, numTrees)
	for i := int32(0); i < numTrees; i++ {
		node, err := loadAnnoyNode(r, int(dim))
		if err != nil {
			return fmt.Errorf("%w: reading tree %d: %v", core.ErrIOFailure, i, err)
		}
		roots[i] = node
	}

	ix.UsePriorityQueue = usePQ
	ix.dimension = int(dim)
	ix.KLeaf = int(kLeaf)
	ix.SearchK = searchK
	ix.NumTrees = int(numTrees)
	ix.roots = roots
	return nil
}

func loadAnnoyNode(r io.Reader, dim int) (*annoyNode, error) {
	leaf, err := core.ReadBool(r)
	if err != nil {
		return nil, fmt.Errorf("reading leaf flag: %w", err)
	}
	if leaf {
		size, err := core.ReadInt32(r)
		if err != nil {
			return nil, fmt.Errorf("reading bucket size: %w", err)
		}
		bucket, err := core.ReadInt32Slice(r, int(size))
		if err != nil {
			return nil, fmt.Errorf("reading bucket: %w", err)
		}
		return &annoyNode{bucket: bucket}, nil
	}

	w, err := core.ReadFloat32Slice(r, dim)
	if err != nil {
		return nil, fmt.Errorf("reading hyperplane w: %w", err)
	}
	biasSlice, err := core.ReadFloat32Slice(r, 1)
	if err != nil {
		return nil, fmt.Errorf("reading hyperplane bias: %w", err)
	}
	left, err := loadAnnoyNode(r, dim)
	if err != nil {
		return nil, err
	}
	right, err := loadAnnoyNode(r, dim)
	if err != nil {
		return nil, err
	}
	return &annoyNode{plane: &hyperplane{w: w, bias: biasSlice[0]}, left: left, right: right}, nil
}
