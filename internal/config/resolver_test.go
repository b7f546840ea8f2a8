package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfigPath(t *testing.T) {
	home := fakeHome(t)
	defaultPath := filepath.Join(home, ".msggen", "config.yaml")

	t.Run("flag wins", func(t *testing.T) {
		t.Setenv(EnvConfig, "/env/config.yaml")

		result, err := ResolveConfigPath("/flag/config.yaml")
		require.NoError(t, err)
		assert.Equal(t, "/flag/config.yaml", result.ConfigPath)
		assert.Equal(t, SourceFlag, result.Source)
		assert.Equal(t, "/env/config.yaml", result.Shadowed[SourceEnv])
		assert.Equal(t, defaultPath, result.Shadowed[SourceDefault])
	})

	t.Run("env over default", func(t *testing.T) {
		t.Setenv(EnvConfig, "/env/config.yaml")

		result, err := ResolveConfigPath("")
		require.NoError(t, err)
		assert.Equal(t, "/env/config.yaml", result.ConfigPath)
		assert.Equal(t, SourceEnv, result.Source)
		assert.NotContains(t, result.Shadowed, SourceFlag)
	})

	t.Run("default", func(t *testing.T) {
		t.Setenv(EnvConfig, "")

		result, err := ResolveConfigPath("")
		require.NoError(t, err)
		assert.Equal(t, defaultPath, result.ConfigPath)
		assert.Equal(t, SourceDefault, result.Source)
		assert.Empty(t, result.Shadowed)
	})
}

func TestApplyFlag(t *testing.T) {
	values := []ResolvedValue{
		{Key: "source.kind", Value: "rosmsg", Source: SourceDefault},
	}

	values = ApplyFlag(values, "source.kind", "dir")
	require.Len(t, values, 1)
	assert.Equal(t, "dir", values[0].Value)
	assert.Equal(t, SourceFlag, values[0].Source)
	assert.Equal(t, "rosmsg", values[0].Shadowed[SourceDefault])

	values = ApplyFlag(values, "log.verbose", true)
	require.Len(t, values, 2)
	assert.Equal(t, SourceFlag, values[1].Source)
}
