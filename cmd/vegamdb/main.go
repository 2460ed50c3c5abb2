package main

import (
	"log"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("vegamdb: %v", err)
	}
}

var configPath string

var rootCmd = &cobra.Command{
	Use:   "vegamdb",
	Short: "Build and query squared-Euclidean vector indexes from the command line",
	Long: `vegamdb is a thin smoke-testing front end over the VegamDB library:
it ingests vectors into a combined database file, installs and builds one
of the three index variants, runs queries against it, and inspects or
exports a saved file.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file of KMeans/IVF/Annoy defaults")
	rootCmd.AddCommand(loadCmd, buildCmd, searchCmd, saveCmd, loadDBCmd)
}
