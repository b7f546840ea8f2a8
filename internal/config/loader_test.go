package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLoader returns a loader that ignores any .env in the working
// directory.
func newTestLoader() *Loader {
	l := NewLoader()
	l.EnvFile = ""
	return l
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
	assert.NotNil(t, loader.v)
	assert.Equal(t, ".env", loader.EnvFile)
}

func TestLoaderLoad(t *testing.T) {
	t.Run("loads config from file", func(t *testing.T) {
		path := writeConfig(t, `
source:
  kind: dir
  paths:
    - /ws/src
    - /opt/ros/share
  maxProcs: 2
output:
  dir: gen
  rosnodejsDir: ../rosnodejs
cache:
  size: 16
log:
  timestamps: false
`)

		cfg, err := newTestLoader().Load(path)
		require.NoError(t, err)
		assert.Equal(t, "dir", cfg.Source.Kind)
		assert.Equal(t, []string{"/ws/src", "/opt/ros/share"}, cfg.Source.Paths)
		assert.Equal(t, 2, cfg.Source.MaxProcs)
		assert.Equal(t, "gen", cfg.Output.Dir)
		assert.Equal(t, "../rosnodejs", cfg.Output.RosnodejsDir)
		assert.Equal(t, 16, cfg.Cache.Size)
		require.NotNil(t, cfg.Log.Timestamps)
		assert.False(t, *cfg.Log.Timestamps)
	})

	t.Run("defaults for missing file", func(t *testing.T) {
		cfg, err := newTestLoader().Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultSourceKind, cfg.Source.Kind)
		assert.Equal(t, DefaultRosmsg, cfg.Source.Rosmsg)
		assert.Equal(t, DefaultMaxProcs, cfg.Source.MaxProcs)
		assert.Equal(t, DefaultCacheSize, cfg.Cache.Size)
		assert.Empty(t, cfg.Source.Paths)
	})

	t.Run("env vars override file values", func(t *testing.T) {
		t.Setenv(EnvSource, "dir")
		t.Setenv(EnvPaths, "/a, /b")
		t.Setenv(EnvCacheSize, "0")

		path := writeConfig(t, "source:\n  kind: rosmsg\ncache:\n  size: 64\n")

		cfg, err := newTestLoader().Load(path)
		require.NoError(t, err)
		assert.Equal(t, "dir", cfg.Source.Kind)
		assert.Equal(t, []string{"/a", "/b"}, cfg.Source.Paths)
		assert.Equal(t, 0, cfg.Cache.Size)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeConfig(t, "source: [unclosed\n")

		_, err := newTestLoader().Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading config file")
	})
}

func TestLoaderLoad_DotEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("MSGGEN_ROSNODEJS_DIR=from-dotenv\nMSGGEN_OUTPUT_DIR=from-dotenv\n"), 0o644))

	t.Setenv(EnvOutputDir, "from-shell")
	t.Setenv(EnvRosnodejsDir, "")
	os.Unsetenv(EnvRosnodejsDir)

	loader := NewLoader()
	loader.EnvFile = envFile

	cfg, err := loader.Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Output.RosnodejsDir)
	assert.Equal(t, "from-shell", cfg.Output.Dir)
}

func TestLoaderProvenance(t *testing.T) {
	t.Setenv(EnvSource, "dir")
	path := writeConfig(t, "source:\n  kind: rosmsg\ncache:\n  size: 64\n")

	loader := newTestLoader()
	_, err := loader.Load(path)
	require.NoError(t, err)

	kind := loader.Provenance("source.kind")
	assert.Equal(t, SourceEnv, kind.Source)
	assert.Equal(t, "dir", kind.Value)
	assert.Equal(t, "rosmsg", kind.Shadowed[SourceConfig])

	size := loader.Provenance("cache.size")
	assert.Equal(t, SourceConfig, size.Source)
	assert.Equal(t, 64, size.Value)

	rosmsg := loader.Provenance("source.rosmsg")
	assert.Equal(t, SourceDefault, rosmsg.Source)
	assert.Equal(t, DefaultRosmsg, rosmsg.Value)

	assert.Len(t, loader.ResolveAll(), len(settings))
}

func TestConfigFileExists(t *testing.T) {
	path := writeConfig(t, "")

	exists, err := ConfigFileExists(path)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = ConfigFileExists(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestEnvFor(t *testing.T) {
	assert.Equal(t, EnvMaxProcs, EnvFor("source.maxProcs"))
	assert.Equal(t, EnvPaths, EnvFor("source.paths"))
	assert.Empty(t, EnvFor("source"))
}
