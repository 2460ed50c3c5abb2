package index

import (
	"bytes"
	"testing"
)

func TestIVFEqualsFlatAtFullProbe(t *testing.T) {
	data := [][]float32{{0, 0}, {1, 0}, {0, 1}, {10, 10}}

	ivf := NewIVFIndex(2, 10, 2, 1)
	if err := ivf.Build(data); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !ivf.IsTrained() {
		t.Fatal("IVFIndex.IsTrained() = false, want true")
	}

	query := []float32{0.1, 0.1}
	ivfResult, err := ivf.Search(data, query, 4, SearchParams{Kind: ParamKindIVF, NProbe: 2})
	if err != nil {
		t.Fatalf("IVF Search: %v", err)
	}

	flat := NewFlatIndex()
	_ = flat.Build(data)
	flatResult, err := flat.Search(data, query, 4, SearchParams{})
	if err != nil {
		t.Fatalf("Flat Search: %v", err)
	}

	gotIds := append([]int32(nil), ivfResult.Ids...)
	wantIds := append([]int32(nil), flatResult.Ids...)
	sortInt32(gotIds)
	sortInt32(wantIds)
	if !equalInt32(gotIds, wantIds) {
		t.Errorf("IVF full-probe ids = %v, want %v (order-independent)", gotIds, wantIds)
	}
}

func TestIVFRoundTrip(t *testing.T) {
	data := make([][]float32, 0, 100)
	for i := 0; i < 100; i++ {
		data = append(data, []float32{float32(i % 7), float32(i % 5), float32(i % 3)})
	}

	ivf := NewIVFIndex(4, 10, 4, 42)
	if err := ivf.Build(data); err != nil {
		t.Fatalf("Build: %v", err)
	}

	var buf bytes.Buffer
	if err := ivf.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := NewIVFIndex(0, 0, 4, 0)
	if err := loaded.Load(&buf); err != nil {
		t.Fatalf("Load: %v", err)
	}

	query := []float32{3, 2, 1}
	want, err := ivf.Search(data, query, 5, SearchParams{})
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

func TestIVFParamKindMismatch(t *testing.T) {
	ivf := NewIVFIndex(2, 5, 1, 1)
	_ = ivf.Build([][]float32{{0, 0}, {1, 1}})
	_, err := ivf.Search([][]float32{{0, 0}, {1, 1}}, []float32{0, 0}, 1, SearchParams{Kind: ParamKindAnnoy})
	if err == nil {
		t.Fatal("expected ErrParamKindMismatch, got nil")
	}
}

func sortInt32(s []int32) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

func equalInt32(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
