package core

import "errors"

// Sentinel errors returned by the vector store and by every index variant.
// Call sites wrap these with fmt.Errorf("...: %w", ...) to add context
// without losing the ability to compare with errors.Is.
var (
	// ErrDimensionMismatch is returned when a vector or query has a length
	// different from the dimension already established by the store.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrNotTrained is unused by this implementation: a direct Search on an
	// untrained IVFIndex/AnnoyIndex returns an empty SearchResult with a nil
	// error rather than this sentinel. It's kept for callers that want to
	// treat an untrained index as an error themselves, by comparing
	// IsTrained() before calling Search and synthesizing this value.
	ErrNotTrained = errors.New("index is not trained")

	// ErrParamKindMismatch is returned when the SearchParams variant
	// supplied to Search does not match the installed index's kind.
	ErrParamKindMismatch = errors.New("search parameter kind does not match index kind")

	// ErrIOFailure wraps an underlying read/write error encountered while
	// saving or loading the combined database file.
	ErrIOFailure = errors.New("persistence I/O failure")

	// ErrInsufficientData documents the N < K training condition. Training
	// itself does not return this error (it returns an empty KMeansResult,
	// see TrainKMeans) but callers that want to surface the condition as
	// an error can compare against it.
	ErrInsufficientData = errors.New("insufficient data for requested number of clusters")

	// ErrNoIndexInstalled is returned by BuildIndex when no index has been
	// installed via SetIndex.
	ErrNoIndexInstalled = errors.New("no index installed")
)
