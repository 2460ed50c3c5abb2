package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds the defaults the CLI applies when a build or search command
// doesn't override a knob on the command line. There is nothing here that
// the core packages themselves read — core/index/vegamdb take every
// parameter explicitly through constructors and SearchParams, matching the
// spec's "no ambient config" design; this struct exists purely to give
// cmd/vegamdb a single place to source defaults from flags, a config file,
// or the environment.
type Config struct {
	KMeans KMeansConfig `mapstructure:"kmeans" yaml:"kmeans,omitempty"`
	IVF    IVFConfig    `mapstructure:"ivf" yaml:"ivf,omitempty"`
	Annoy  AnnoyConfig  `mapstructure:"annoy" yaml:"annoy,omitempty"`

	// Seed seeds every RNG the CLI creates (K-Means init, Annoy tree
	// construction). 0 means fresh entropy on every build.
	Seed int64 `mapstructure:"seed" yaml:"seed,omitempty"`
}

// KMeansConfig is loaded and overridable like the other sections, but the
// build command takes its K-Means iteration count from IVFConfig.MaxIters;
// nothing in the CLI reads KMeansConfig.MaxIters.
type KMeansConfig struct {
	MaxIters int `mapstructure:"max_iters" yaml:"max_iters,omitempty"`
}

// IVFConfig holds IVFIndex build/search defaults.
type IVFConfig struct {
	NClusters int   `mapstructure:"n_clusters" yaml:"n_clusters,omitempty"`
	MaxIters  int   `mapstructure:"max_iters" yaml:"max_iters,omitempty"`
	NProbe    int32 `mapstructure:"n_probe" yaml:"n_probe,omitempty"`
}

// AnnoyConfig holds AnnoyIndex build/search defaults. SearchK of -1 means
// "default to NumTrees*KLeaf", resolved by NewAnnoyIndex.
type AnnoyConfig struct {
	NumTrees         int   `mapstructure:"num_trees" yaml:"num_trees,omitempty"`
	KLeaf            int   `mapstructure:"k_leaf" yaml:"k_leaf,omitempty"`
	SearchK          int32 `mapstructure:"search_k" yaml:"search_k,omitempty"`
	UsePriorityQueue bool  `mapstructure:"use_priority_queue" yaml:"use_priority_queue,omitempty"`
}

// DefaultConfig returns the values the CLI falls back to when neither a
// flag, a config file, nor an environment variable sets something.
func DefaultConfig() *Config {
	return &Config{
		KMeans: KMeansConfig{MaxIters: 20},
		IVF: IVFConfig{
			NClusters: 16,
			MaxIters:  20,
			NProbe:    4,
		},
		Annoy: AnnoyConfig{
			NumTrees:         8,
			KLeaf:            10,
			SearchK:          -1,
			UsePriorityQueue: true,
		},
		Seed: 0,
	}
}

// Load reads configPath (if non-empty) with yaml.Unmarshal, then applies
// the VEGAMDB_-prefixed environment on top, returning the merged result. A
// missing configPath is not an error — os.IsNotExist is swallowed so a
// fresh install runs on defaults alone.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config %s: %w", configPath, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", configPath, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix("VEGAMDB")
	v.AutomaticEnv()
	_ = v.BindEnv("kmeans.max_iters", "VEGAMDB_KMEANS_MAX_ITERS")
	_ = v.BindEnv("ivf.n_clusters", "VEGAMDB_IVF_N_CLUSTERS")
	_ = v.BindEnv("ivf.max_iters", "VEGAMDB_IVF_MAX_ITERS")
	_ = v.BindEnv("ivf.n_probe", "VEGAMDB_IVF_N_PROBE")
	_ = v.BindEnv("annoy.num_trees", "VEGAMDB_ANNOY_NUM_TREES")
	_ = v.BindEnv("annoy.k_leaf", "VEGAMDB_ANNOY_K_LEAF")
	_ = v.BindEnv("annoy.search_k", "VEGAMDB_ANNOY_SEARCH_K")
	_ = v.BindEnv("annoy.use_priority_queue", "VEGAMDB_ANNOY_USE_PRIORITY_QUEUE")
	_ = v.BindEnv("seed", "VEGAMDB_SEED")

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}
	return cfg, nil
}
