package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vegamdb/vegamdb/vegamdb"
)

var (
	loadInput string
	loadDB    string
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Ingest vectors from a CSV file into a new combined database file",
	RunE:  runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&loadInput, "input", "", "headerless CSV file, one vector per row (required)")
	loadCmd.Flags().StringVar(&loadDB, "db", "", "path to write the combined database file to (required)")
	_ = loadCmd.MarkFlagRequired("input")
	_ = loadCmd.MarkFlagRequired("db")
}

func runLoad(cmd *cobra.Command, args []string) error {
	vectors, err := readVectorsCSV(loadInput)
	if err != nil {
		return err
	}

	db := vegamdb.New()
	for i, vec := range vectors {
		if err := db.Add(vec); err != nil {
			return fmt.Errorf("adding row %d: %w", i, err)
		}
	}

	f, err := os.Create(loadDB)
	if err != nil {
		return fmt.Errorf("creating %s: %w", loadDB, err)
	}
	defer f.Close()

	if err := db.Save(f); err != nil {
		return fmt.Errorf("saving %s: %w", loadDB, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "loaded %d vectors (dimension %d) into %s\n", db.Size(), db.Dimension(), loadDB)
	return nil
}
