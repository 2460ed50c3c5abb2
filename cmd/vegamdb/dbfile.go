package main

import (
	"fmt"
	"os"

	"github.com/vegamdb/vegamdb/vegamdb"
)

func openDB(path string) (*vegamdb.DB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	db := vegamdb.New()
	if err := db.Load(f); err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return db, nil
}

func writeDB(path string, db *vegamdb.DB) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := db.Save(f); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
