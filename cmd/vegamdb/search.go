package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vegamdb/vegamdb/index"
)

var (
	searchDB      string
	searchQuery   string
	searchK       int
	searchNProbe  int32
	searchSearchK int32
	searchUsePQ   bool
	searchUsePQSet bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Query an existing database file's installed (or lazily-installed) index",
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchDB, "db", "", "path to a database file (required)")
	searchCmd.Flags().StringVar(&searchQuery, "query", "", "comma-separated query vector, e.g. 0.1,0.2 (required)")
	searchCmd.Flags().IntVar(&searchK, "k", 10, "number of results to return")
	searchCmd.Flags().Int32Var(&searchNProbe, "n-probe", 0, "override IVF n_probe for this query")
	searchCmd.Flags().Int32Var(&searchSearchK, "search-k", 0, "override Annoy search_k for this query")
	searchCmd.Flags().BoolVar(&searchUsePQ, "use-priority-queue", false, "override Annoy search mode for this query")
	searchCmd.Flags().BoolVar(&searchUsePQSet, "use-priority-queue-set", false, "set to apply --use-priority-queue's value instead of the index's stored default")
	_ = searchCmd.MarkFlagRequired("db")
	_ = searchCmd.MarkFlagRequired("query")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query, err := parseQueryVector(searchQuery)
	if err != nil {
		return err
	}

	db, err := openDB(searchDB)
	if err != nil {
		return err
	}

	params := index.SearchParams{}
	if db.Index() != nil {
		switch db.Index().Name() {
		case "IVFIndex":
			if searchNProbe != 0 {
				params = index.SearchParams{Kind: index.ParamKindIVF, NProbe: searchNProbe}
			}
		case "AnnoyIndex":
			if searchSearchK != 0 || searchUsePQSet {
				sk := searchSearchK
				if an, ok := db.Index().(*index.AnnoyIndex); ok && sk == 0 {
					sk = an.SearchK
				}
				params = index.SearchParams{Kind: index.ParamKindAnnoy, SearchK: sk, UsePQ: searchUsePQ, UsePQSet: searchUsePQSet}
			}
		}
	}

	result, err := db.Search(query, searchK, params)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	for i, id := range result.Ids {
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%d\t%f\n", i, id, result.Distances[i])
	}
	return nil
}
