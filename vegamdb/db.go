// Package vegamdb is the orchestrator: it owns a core.VectorStore and an
// optional index.Index, and routes Search calls between them.
package vegamdb

import (
	"fmt"

	"github.com/vegamdb/vegamdb/core"
	"github.com/vegamdb/vegamdb/index"
)

// DB owns a vector store and, optionally, one installed index. There is
// no enforcement that the index stays in sync with the store: appending
// after Build leaves the index stale, exactly as the caller's
// responsibility spec.md assigns it.
type DB struct {
	store *core.VectorStore
	idx   index.Index
}

// New returns an empty DB with no index installed.
func New() *DB {
	return &DB{store: core.NewVectorStore()}
}

// Add forwards to the store.
func (db *DB) Add(vec []float32) error {
	return db.store.Add(vec)
}

// AddBulk forwards to the store.
func (db *DB) AddBulk(flat []float32, n, dim int) error {
	return db.store.AddBulk(flat, n, dim)
}

// Size forwards to the store.
func (db *DB) Size() int { return db.store.Size() }

// Dimension forwards to the store.
func (db *DB) Dimension() int { return db.store.Dimension() }

// VectorAt returns the row at i without copying. Callers must not mutate it.
func (db *DB) VectorAt(i int) []float32 { return db.store.At(i) }

// SetIndex installs idx, dropping whatever was previously installed.
func (db *DB) SetIndex(idx index.Index) {
	db.idx = idx
}

// Index returns the currently installed index, or nil if none.
func (db *DB) Index() index.Index { return db.idx }

// BuildIndex builds the installed index over the store's current data.
// Returns core.ErrNoIndexInstalled if SetIndex was never called.
func (db *DB) BuildIndex() error {
	if db.idx == nil {
		return core.ErrNoIndexInstalled
	}
	return db.idx.Build(db.store.Data())
}

// Search routes per spec: an installed, trained index is searched
// directly; an installed but untrained index is built first; with no
// index installed, a fresh FlatIndex is installed, built (a no-op), and
// searched. A query whose length differs from the store's dimension
// returns core.ErrDimensionMismatch. Errors from Build/Search bubble up
// unchanged — there is no retry.
func (db *DB) Search(query []float32, k int, params index.SearchParams) (index.SearchResult, error) {
	if dim := db.store.Dimension(); dim != 0 && len(query) != dim {
		return index.SearchResult{}, fmt.Errorf("%w: query has %d, want %d", core.ErrDimensionMismatch, len(query), dim)
	}
	if db.idx == nil {
		db.idx = index.NewFlatIndex()
		if err := db.idx.Build(db.store.Data()); err != nil {
			return index.SearchResult{}, fmt.Errorf("building default FlatIndex: %w", err)
		}
	} else if !db.idx.IsTrained() {
		if err := db.idx.Build(db.store.Data()); err != nil {
			return index.SearchResult{}, fmt.Errorf("building index: %w", err)
		}
	}
	return db.idx.Search(db.store.Data(), query, k, params)
}
