package vegamdb

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/vegamdb/vegamdb/index"
)

func TestSaveLoadRoundTripNoIndex(t *testing.T) {
	db := New()
	_ = db.Add([]float32{1, 2, 3})
	_ = db.Add([]float32{4, 5, 6})

	var buf bytes.Buffer
	if err := db.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := New()
	if err := loaded.Load(&buf); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Size() != 2 || loaded.Dimension() != 3 {
		t.Fatalf("loaded size/dim = %d/%d, want 2/3", loaded.Size(), loaded.Dimension())
	}
	if loaded.Index() != nil {
		t.Errorf("Index() = %v, want nil after loading a file with no index tag", loaded.Index())
	}
}

func TestSaveLoadRoundTripWithIVF(t *testing.T) {
	db := New()
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 100; i++ {
		vec := make([]float32, 8)
		for d := range vec {
			vec[d] = rng.Float32() * 100
		}
		_ = db.Add(vec)
	}
	db.SetIndex(index.NewIVFIndex(4, 10, 4, 3))
	if err := db.BuildIndex(); err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}

	var buf bytes.Buffer
	if err := db.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := New()
	if err := loaded.Load(&buf); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := loaded.Index().(*index.IVFIndex); !ok {
		t.Fatalf("loaded.Index() = %T, want *index.IVFIndex", loaded.Index())
	}

	for q := 0; q < 20; q++ {
		query := make([]float32, 8)
		for d := range query {
			query[d] = rng.Float32() * 100
		}
		want, err := db.Search(query, 5, index.SearchParams{})
		if err != nil {
			t.Fatalf("original Search: %v", err)
		}
		got, err := loaded.Search(query, 5, index.SearchParams{})
		if err != nil {
			t.Fatalf("loaded Search: %v", err)
		}
		if len(want.Ids) != len(got.Ids) {
			t.Fatalf("query %d: len(ids) = %d, want %d", q, len(got.Ids), len(want.Ids))
		}
		for i := range want.Ids {
			if want.Ids[i] != got.Ids[i] {
				t.Errorf("query %d: ids[%d] = %d, want %d", q, i, got.Ids[i], want.Ids[i])
			}
		}
	}
}

func TestKMeansInsufficientDataLeavesUntrained(t *testing.T) {
	db := New()
	_ = db.Add([]float32{1, 1})
	_ = db.Add([]float32{2, 2})
	_ = db.Add([]float32{3, 3})

	db.SetIndex(index.NewIVFIndex(5, 10, 1, 1))
	if err := db.BuildIndex(); err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	if db.Index().IsTrained() {
		t.Error("IVFIndex.IsTrained() = true, want false when N < n_clusters")
	}
}
