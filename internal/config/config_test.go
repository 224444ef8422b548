package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/workman-lang/workman/internal/config"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "workman.yaml"))
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestLoadOverridesStdRoots(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "workman.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stdRoots:\n  - vendor/std\n  - std\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"vendor/std", "std"}, cfg.StdRoots)
	require.Equal(t, config.DefaultPreludeModule, cfg.Prelude)
}

func TestLoadEmptyPreludeDisablesIt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "workman.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prelude: \"\"\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Empty(t, cfg.Prelude)
}
