package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// readVectorsCSV reads a headerless CSV file, one vector per row, every
// row the same length. Used by `load` to ingest a file; `save` writes the
// same format back out with writeVectorsCSV.
func readVectorsCSV(path string) ([][]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	vectors := make([][]float32, len(rows))
	for i, row := range rows {
		vec := make([]float32, len(row))
		for j, field := range row {
			v, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, fmt.Errorf("%s line %d field %d: %w", path, i+1, j+1, err)
			}
			vec[j] = float32(v)
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// writeVectorsCSV writes one vector per row in the same format
// readVectorsCSV expects.
func writeVectorsCSV(path string, vectors [][]float32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, vec := range vectors {
		row := make([]string, len(vec))
		for i, x := range vec {
			row[i] = strconv.FormatFloat(float64(x), 'g', -1, 32)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}

// parseQueryVector parses a single comma-separated vector, e.g. "0.1,0.2".
func parseQueryVector(s string) ([]float32, error) {
	fields := strings.Split(s, ",")
	vec := make([]float32, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
		if err != nil {
			return nil, fmt.Errorf("query field %d (%q): %w", i+1, field, err)
		}
		vec[i] = float32(v)
	}
	return vec, nil
}
