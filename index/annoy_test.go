package index

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestAnnoyDegenerateSplit(t *testing.T) {
	data := make([][]float32, 10)
	for i := range data {
		data[i] = []float32{1, 1, 1}
	}

	an := NewAnnoyIndex(1, 2, -1, false, 7)
	if err := an.Build(data); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !an.IsTrained() {
		t.Fatal("AnnoyIndex.IsTrained() = false, want true")
	}

	result, err := an.Search(data, []float32{1, 1, 1}, 10, SearchParams{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(result.Ids) != 10 {
		t.Fatalf("len(Ids) = %d, want 10", len(result.Ids))
	}
	for _, d := range result.Distances {
		if d != 0 {
			t.Errorf("distance = %v, want 0", d)
		}
	}
}

func TestAnnoyPriorityQueueCoversFlat(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	data := make([][]float32, 50)
	for i := range data {
		data[i] = []float32{rng.Float32() * 10, rng.Float32() * 10, rng.Float32() * 10, rng.Float32() * 10}
	}
	query := []float32{5, 5, 5, 5}

	an := NewAnnoyIndex(3, 5, 1000, true, 3)
	if err := an.Build(data); err != nil {
		t.Fatalf("Build: %v", err)
	}
	gotResult, err := an.Search(data, query, 10, SearchParams{})
	if err != nil {
		t.Fatalf("Annoy Search: %v", err)
	}

	flat := NewFlatIndex()
	_ = flat.Build(data)
	wantResult, err := flat.Search(data, query, 10, SearchParams{})
	if err != nil {
		t.Fatalf("Flat Search: %v", err)
	}

	if !equalInt32(gotResult.Ids, wantResult.Ids) {
		t.Errorf("Annoy PQ ids = %v, want %v", gotResult.Ids, wantResult.Ids)
	}
}

func TestAnnoyDefaultSearchK(t *testing.T) {
	an := NewAnnoyIndex(3, 5, -1, false, 1)
	if an.SearchK != 15 {
		t.Errorf("SearchK = %d, want 15 (num_trees*k_leaf)", an.SearchK)
	}
	an2 := NewAnnoyIndex(3, 5, 42, false, 1)
	if an2.SearchK != 42 {
		t.Errorf("SearchK = %d, want 42 (explicit value retained)", an2.SearchK)
	}
}

func TestAnnoyRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	data := make([][]float32, 30)
	for i := range data {
		data[i] = []float32{rng.Float32(), rng.Float32(), rng.Float32()}
	}

	an := NewAnnoyIndex(2, 4, 20, true, 5)
	if err := an.Build(data); err != nil {
		t.Fatalf("Build: %v", err)
	}

	var buf bytes.Buffer
	if err := an.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := NewByName("AnnoyIndex")
	if err != nil {
		t.Fatalf("NewByName: %v", err)
	}
	if err := loaded.Load(&buf); err != nil {
		t.Fatalf("Load: %v", err)
	}

	query := []float32{0.5, 0.5, 0.5}
	want, err := an.Search(data, query, 5, SearchParams{})
	if err != nil {
		t.Fatalf("original Search: %v", err)
	}
	got, err := loaded.Search(data, query, 5, SearchParams{})
	if err != nil {
		t.Fatalf("loaded Search: %v", err)
	}
	if !equalInt32(want.Ids, got.Ids) {
		t.Errorf("ids after round trip = %v, want %v", got.Ids, want.Ids)
	}
}
