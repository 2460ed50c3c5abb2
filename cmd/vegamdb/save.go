package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	saveDB     string
	saveOutput string
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Export a database file's raw vectors back out to CSV",
	Long: `save round-trips a database file's VectorStore section back to the
CSV format load accepts, independent of whatever index is installed — it's
the inverse of load, useful for verifying that a save/load cycle preserved
the store exactly.`,
	RunE: runSave,
}

func init() {
	saveCmd.Flags().StringVar(&saveDB, "db", "", "path to a database file (required)")
	saveCmd.Flags().StringVar(&saveOutput, "output", "", "CSV file to write the store's vectors to (required)")
	_ = saveCmd.MarkFlagRequired("db")
	_ = saveCmd.MarkFlagRequired("output")
}

func runSave(cmd *cobra.Command, args []string) error {
	db, err := openDB(saveDB)
	if err != nil {
		return err
	}

	vectors := make([][]float32, db.Size())
	for i := range vectors {
		row := db.VectorAt(i)
		vec := make([]float32, len(row))
		copy(vec, row)
		vectors[i] = vec
	}

	if err := writeVectorsCSV(saveOutput, vectors); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d vectors to %s\n", len(vectors), saveOutput)
	return nil
}
