package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "./item-distributions", cfg.Target)
	assert.Equal(t, "TWW Randomizer Item Distributions", cfg.Title)
	assert.Equal(t, "index.html", cfg.Output)
	assert.Equal(t, ".html", cfg.Extension)
	assert.Equal(t, []string{"archipelago", "wwrando", "root"}, cfg.Sections)
	assert.Equal(t, []string{"single-player", "p1", "p2", "p3", "combined", "files"}, cfg.Subsections)
	assert.Equal(t, "Archipelago (MultiworldGG)", cfg.Labels["archipelago"])
	assert.Equal(t, "3-Player: Player 2", cfg.Labels["p2"])
	assert.True(t, cfg.IntroEnabled())
	assert.True(t, cfg.GitStampEnabled())
}

func TestLoadMissingDefaultPathFallsBackToDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, Default().Title, cfg.Title)
}

func TestLoadMissingExplicitPathFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadOverridesAndFolding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reportindex.yaml")
	content := `
title: Seed Reports
target: ./reports
sections:
  - Archipelago
  - ROOT
subsections:
  - P1
  - files
labels:
  P1: "Player One"
intro: false
watch:
  debounce: 2s
  interval: 10m
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Seed Reports", cfg.Title)
	assert.Equal(t, "./reports", cfg.Target)
	assert.Equal(t, []string{"archipelago", "root"}, cfg.Sections)
	assert.Equal(t, []string{"p1", "files"}, cfg.Subsections)

	// Label keys fold; defaults not mentioned in the file survive the merge.
	assert.Equal(t, "Player One", cfg.Labels["p1"])
	assert.Equal(t, "WWRando (Standalone)", cfg.Labels["wwrando"])

	assert.False(t, cfg.IntroEnabled())
	assert.True(t, cfg.GitStampEnabled())
	assert.Equal(t, 2*time.Second, cfg.Watch.DebounceDuration())
	assert.Equal(t, 10*time.Minute, cfg.Watch.IntervalDuration())
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: [unclosed"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestNormalizeExtension(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ".html"},
		{"html", ".html"},
		{".HTML", ".html"},
		{".htm", ".htm"},
	}
	for _, tc := range cases {
		cfg := Default()
		cfg.Extension = tc.in
		cfg.normalize()
		assert.Equal(t, tc.want, cfg.Extension, "extension %q", tc.in)
	}
}

func TestWatchDurationDefaults(t *testing.T) {
	var w WatchConfig
	assert.Equal(t, DefaultDebounce, w.DebounceDuration())
	assert.Equal(t, time.Duration(0), w.IntervalDuration())

	w = WatchConfig{Debounce: "garbage", Interval: "-5s"}
	assert.Equal(t, DefaultDebounce, w.DebounceDuration())
	assert.Equal(t, time.Duration(0), w.IntervalDuration())
}

func TestOutputPath(t *testing.T) {
	cfg := Default()
	assert.Equal(t, filepath.Join("./reports", "index.html"), cfg.OutputPath("./reports", ""))
	assert.Equal(t, "/tmp/custom.html", cfg.OutputPath("./reports", "/tmp/custom.html"))
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reportindex.yaml")

	require.NoError(t, Init(path, false))

	// Refuses to overwrite without force.
	err := Init(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Title, cfg.Title)
	assert.Equal(t, Default().Sections, cfg.Sections)
	assert.Equal(t, "300ms", cfg.Watch.Debounce)
}
