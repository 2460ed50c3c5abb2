package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loadDBPath string

var loadDBCmd = &cobra.Command{
	Use:   "load-db",
	Short: "Print a database file's vector count, dimension, and installed index",
	RunE:  runLoadDB,
}

func init() {
	loadDBCmd.Flags().StringVar(&loadDBPath, "db", "", "path to a database file (required)")
	_ = loadDBCmd.MarkFlagRequired("db")
}

func runLoadDB(cmd *cobra.Command, args []string) error {
	db, err := openDB(loadDBPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "vectors: %d\n", db.Size())
	fmt.Fprintf(out, "dimension: %d\n", db.Dimension())
	if db.Index() == nil {
		fmt.Fprintln(out, "index: none")
		return nil
	}
	fmt.Fprintf(out, "index: %s (trained=%v)\n", db.Index().Name(), db.Index().IsTrained())
	return nil
}
