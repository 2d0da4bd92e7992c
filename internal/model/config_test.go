package model_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promanage/promanage/internal/model"
)

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := &model.AppConfig{
		Display: model.DisplayConfig{
			DarkMode:         false,
			ActivityFeedSize: 3,
			RecentProjects:   2,
		},
	}

	require.NoError(t, model.SaveConfig(path, cfg))

	got, err := model.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	got, err := model.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.True(t, got.Display.DarkMode)
	assert.Equal(t, 8, got.Display.ActivityFeedSize)
	assert.Equal(t, 5, got.Display.RecentProjects)
}

func TestSaveConfigCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "config.yaml")
	require.NoError(t, model.SaveConfig(path, &model.AppConfig{
		Display: model.DisplayConfig{DarkMode: true, ActivityFeedSize: 8, RecentProjects: 5},
	}))

	got, err := model.LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, got.Display.DarkMode)
}
