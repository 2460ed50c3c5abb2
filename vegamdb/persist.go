package vegamdb

import (
	"errors"
	"fmt"
	"io"

	"github.com/vegamdb/vegamdb/core"
	"github.com/vegamdb/vegamdb/index"
)

// Save writes the store, then — if an index is installed — a length
// prefixed name tag followed by the index's own Save. With no index
// installed the writer simply stops after the store, matching Load's
// "EOF after the store means no index" contract.
func (db *DB) Save(w io.Writer) error {
	if err := db.store.Save(w); err != nil {
		return err
	}
	if db.idx == nil {
		return nil
	}

	name := db.idx.Name()
	if err := core.WriteInt32(w, int32(len(name))); err != nil {
		return err
	}
	if _, err := io.WriteString(w, name); err != nil {
		return fmt.Errorf("%w: %v", core.ErrIOFailure, err)
	}
	return db.idx.Save(w)
}

// Load replaces db's store and index with the contents read from r. EOF
// immediately after the store is not an error — it means the saved
// database had no index installed — but any other read failure,
// including EOF partway through the name tag or the index body, is.
func (db *DB) Load(r io.Reader) error {
	store := core.NewVectorStore()
	if err := store.Load(r); err != nil {
		return err
	}

	nameLen, err := core.ReadInt32(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			db.store = store
			db.idx = nil
			return nil
		}
		return fmt.Errorf("%w: reading index tag length: %v", core.ErrIOFailure, err)
	}

	nameBuf := make([]byte, nameLen)
	if _, err := io.ReadFull(r, nameBuf); err != nil {
		return fmt.Errorf("%w: reading index tag name: %v", core.ErrIOFailure, err)
	}
	name := string(nameBuf)

	idx, err := index.NewByName(name)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrIOFailure, err)
	}
	if err := idx.Load(r); err != nil {
		return fmt.Errorf("%w: loading %s state: %v", core.ErrIOFailure, name, err)
	}

	db.store = store
	db.idx = idx
	return nil
}
