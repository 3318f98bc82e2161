package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"rit.dev/rit/internal/config"
)

func TestLoadDefaultsWhenAbsent(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, config.DefaultRotationConfig(), cfg)
}

func TestSaveThenLoadRoundtrips(t *testing.T) {
	dir := t.TempDir()
	cfg := config.RotationConfig{
		Levels:          []config.Level{{Name: "day", LabelFormat: "02", MaxAgeSeconds: 3600}},
		RestoreRingSize: 3,
		QuickRingSize:   2,
	}
	require.NoError(t, config.Save(dir, cfg))

	loaded, err := config.Load(dir)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}
