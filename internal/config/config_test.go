package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "rosmsg", cfg.Source.Kind)
	assert.Equal(t, "rosmsg", cfg.Source.Rosmsg)
	assert.Empty(t, cfg.Source.Paths)
	assert.Equal(t, 8, cfg.Source.MaxProcs)
	assert.Equal(t, ".", cfg.Output.Dir)
	assert.Equal(t, "rosnodejs", cfg.Output.RosnodejsDir)
	assert.Equal(t, 512, cfg.Cache.Size)
	require.NotNil(t, cfg.Log.Timestamps)
	assert.True(t, *cfg.Log.Timestamps)
}

func TestResolvedValue(t *testing.T) {
	rv := ResolvedValue{
		Key:    "source.kind",
		Value:  "dir",
		Source: SourceEnv,
		Shadowed: map[ConfigSource]any{
			SourceConfig:  "rosmsg",
			SourceDefault: "rosmsg",
		},
	}

	assert.Equal(t, "source.kind", rv.Key)
	assert.Equal(t, SourceEnv, rv.Source)
	assert.Len(t, rv.Shadowed, 2)
}
