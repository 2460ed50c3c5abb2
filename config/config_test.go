package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 16, cfg.IVF.NClusters)
	assert.Equal(t, int32(4), cfg.IVF.NProbe)
	assert.Equal(t, int32(-1), cfg.Annoy.SearchK)
	assert.True(t, cfg.Annoy.UsePriorityQueue)
	assert.Equal(t, int64(0), cfg.Seed)
}

func TestLoadWithoutConfigFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultConfig().IVF.NClusters, cfg.IVF.NClusters)
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load("/nonexistent/path/to/vegamdb.yaml")
	require.NoError(t, err)
	require.NotNil(t, cfg)
}

func TestLoadReadsYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vegamdb.yaml")
	const contents = "ivf:\n  n_clusters: 32\n  n_probe: 8\nseed: 7\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.IVF.NClusters)
	assert.Equal(t, int32(8), cfg.IVF.NProbe)
	assert.Equal(t, int64(7), cfg.Seed)
	// values the file didn't set fall back to DefaultConfig.
	assert.Equal(t, 20, cfg.IVF.MaxIters)
}
