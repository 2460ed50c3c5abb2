package index

import (
	"io"
)

// ParamKind discriminates which index variant a SearchParams value was
// built for. A closed set rather than an any-typed options map, since only
// three variants ever exist and the mismatch between params and installed
// index is itself a condition callers need to detect.
type ParamKind int32

const (
	ParamKindNone ParamKind = iota
	ParamKindIVF
	ParamKindAnnoy
)

// SearchParams carries the optional per-query overrides accepted by IVF
// (NProbe) and Annoy (SearchK, UsePQ). A zero-value SearchParams (Kind ==
// ParamKindNone) means "use whatever the index stored at build time".
// UsePQSet distinguishes "caller passed UsePQ: false" from "caller didn't
// set UsePQ at all", since both zero out to false in Go.
type SearchParams struct {
	Kind     ParamKind
	NProbe   int32
	SearchK  int32
	UsePQ    bool
	UsePQSet bool
}

// SearchResult holds the ranked output of a Search call: parallel slices
// of candidate row index and squared distance, ascending by distance.
type SearchResult struct {
	Ids       []int32
	Distances []float32
}

// Index is the contract shared by FlatIndex, IVFIndex, and AnnoyIndex.
// Build trains the index over the full borrowed dataset; data is never
// retained past the call — implementations that need it again at search
// time receive it again as Search's own data argument. There is no
// incremental Add/Delete: spec scope is build-once, query-many.
type Index interface {
	Build(data [][]float32) error
	Search(data [][]float32, query []float32, k int, params SearchParams) (SearchResult, error)
	IsTrained() bool
	Save(w io.Writer) error
	Load(r io.Reader) error
	Name() string
}
