package vegamdb

import (
	"testing"

	"github.com/vegamdb/vegamdb/core"
	"github.com/vegamdb/vegamdb/index"
)

func TestSearchWithNoIndexInstallsFlat(t *testing.T) {
	db := New()
	_ = db.Add([]float32{0, 0})
	_ = db.Add([]float32{1, 0})
	_ = db.Add([]float32{0, 1})
	_ = db.Add([]float32{10, 10})

	result, err := db.Search([]float32{0.1, 0.1}, 2, index.SearchParams{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(result.Ids) != 2 || result.Ids[0] != 0 {
		t.Errorf("result.Ids = %v, want [0 ...]", result.Ids)
	}
	if _, ok := db.Index().(*index.FlatIndex); !ok {
		t.Errorf("Index() = %T, want *index.FlatIndex installed by lazy default", db.Index())
	}
}

func TestSearchBuildsUntrainedInstalledIndex(t *testing.T) {
	db := New()
	for i := 0; i < 20; i++ {
		_ = db.Add([]float32{float32(i), float32(i % 3)})
	}
	db.SetIndex(index.NewIVFIndex(4, 10, 4, 7))

	result, err := db.Search([]float32{0, 0}, 3, index.SearchParams{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(result.Ids) != 3 {
		t.Fatalf("len(Ids) = %d, want 3", len(result.Ids))
	}
	if !db.Index().IsTrained() {
		t.Error("installed IVFIndex should have been auto-built by Search")
	}
}

func TestBuildIndexNoIndexInstalled(t *testing.T) {
	db := New()
	if err := db.BuildIndex(); err != core.ErrNoIndexInstalled {
		t.Errorf("BuildIndex() = %v, want core.ErrNoIndexInstalled", err)
	}
}

func TestAddDimensionMismatch(t *testing.T) {
	db := New()
	_ = db.Add([]float32{1, 2, 3})
	if err := db.Add([]float32{1, 2}); err == nil {
		t.Error("expected dimension mismatch error, got nil")
	}
}
