package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vegamdb/vegamdb/config"
	"github.com/vegamdb/vegamdb/index"
)

var (
	buildDB      string
	buildVariant string

	buildNClusters int
	buildMaxIters  int
	buildNProbe    int32

	buildNumTrees int
	buildKLeaf    int
	buildSearchK  int32
	buildUsePQ    bool

	buildSeed int64
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Install and build an index variant over an existing database file's vectors",
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildDB, "db", "", "path to a database file written by load or build (required)")
	buildCmd.Flags().StringVar(&buildVariant, "variant", "flat", "index variant: flat, ivf, or annoy")
	buildCmd.Flags().IntVar(&buildNClusters, "n-clusters", 0, "IVF: number of K-Means clusters (0 = config default)")
	buildCmd.Flags().IntVar(&buildMaxIters, "max-iters", 0, "IVF: K-Means iteration count (0 = config default)")
	buildCmd.Flags().Int32Var(&buildNProbe, "n-probe", 0, "IVF: default number of buckets probed per search (0 = config default)")
	buildCmd.Flags().IntVar(&buildNumTrees, "num-trees", 0, "Annoy: number of trees in the forest (0 = config default)")
	buildCmd.Flags().IntVar(&buildKLeaf, "k-leaf", 0, "Annoy: max leaf bucket size (0 = config default)")
	buildCmd.Flags().Int32Var(&buildSearchK, "search-k", 0, "Annoy: default candidate target (0 = config default, -1 = num-trees*k-leaf)")
	buildCmd.Flags().BoolVar(&buildUsePQ, "use-priority-queue", false, "Annoy: default search mode (unset = config default)")
	buildCmd.Flags().Int64Var(&buildSeed, "seed", 0, "RNG seed for this build (0 = fresh entropy)")
	_ = buildCmd.MarkFlagRequired("db")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := openDB(buildDB)
	if err != nil {
		return err
	}

	seed := buildSeed
	if seed == 0 {
		seed = cfg.Seed
	}

	switch buildVariant {
	case "flat":
		db.SetIndex(index.NewFlatIndex())
	case "ivf":
		nClusters := firstNonZeroInt(buildNClusters, cfg.IVF.NClusters)
		maxIters := firstNonZeroInt(buildMaxIters, cfg.IVF.MaxIters)
		nProbe := firstNonZeroInt32(buildNProbe, cfg.IVF.NProbe)
		db.SetIndex(index.NewIVFIndex(nClusters, maxIters, nProbe, seed))
	case "annoy":
		numTrees := firstNonZeroInt(buildNumTrees, cfg.Annoy.NumTrees)
		kLeaf := firstNonZeroInt(buildKLeaf, cfg.Annoy.KLeaf)
		searchK := buildSearchK
		if searchK == 0 {
			searchK = cfg.Annoy.SearchK
		}
		usePQ := buildUsePQ
		if !cmd.Flags().Changed("use-priority-queue") {
			usePQ = cfg.Annoy.UsePriorityQueue
		}
		db.SetIndex(index.NewAnnoyIndex(numTrees, kLeaf, searchK, usePQ, seed))
	default:
		return fmt.Errorf("unknown variant %q: want flat, ivf, or annoy", buildVariant)
	}

	if err := db.BuildIndex(); err != nil {
		return fmt.Errorf("building index: %w", err)
	}
	if err := writeDB(buildDB, db); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "built %s over %d vectors; trained=%v\n", db.Index().Name(), db.Size(), db.Index().IsTrained())
	return nil
}

func firstNonZeroInt(a, b int) int {
	if a != 0 {
		return a
	}
	return b
}

func firstNonZeroInt32(a, b int32) int32 {
	if a != 0 {
		return a
	}
	return b
}
