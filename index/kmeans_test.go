package index

import (
	"math/rand"
	"testing"
)

func TestTrainKMeansPartitionsAllIDs(t *testing.T) {
	data := [][]float32{
		{0, 0}, {0.1, 0}, {0, 0.1},
		{10, 10}, {10.1, 10}, {10, 10.1},
	}
	result := TrainKMeans(data, 2, 10, rand.New(rand.NewSource(1)))
	if !result.Trained() {
		t.Fatal("result.Trained() = false, want true")
	}

	seen := make(map[int32]bool)
	for _, bucket := range result.Buckets {
		for _, id := range bucket {
			if seen[id] {
				t.Fatalf("vector %d assigned to more than one bucket", id)
			}
			seen[id] = true
		}
	}
	if len(seen) != len(data) {
		t.Fatalf("union of buckets has %d ids, want %d", len(seen), len(data))
	}
}

func TestTrainKMeansInsufficientData(t *testing.T) {
	data := [][]float32{{1, 1}, {2, 2}, {3, 3}}
	result := TrainKMeans(data, 5, 10, rand.New(rand.NewSource(1)))
	if result.Trained() {
		t.Fatal("result.Trained() = true, want false for N < K")
	}
}
