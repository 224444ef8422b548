package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI invokes rootCmd with args exactly as cobra would from main, and
// returns the exit code Execute would have produced.
func runCLI(t *testing.T, args ...string) int {
	t.Helper()
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	return Execute()
}

func TestExecuteBareFileRunsFullPipeline(t *testing.T) {
	path := writeSource(t, `let x = 1 + 2;`)
	assert.Equal(t, 0, runCLI(t, path))
}

func TestExecuteExitsOneOnTypeError(t *testing.T) {
	path := writeSource(t, `let x = y;`)
	assert.Equal(t, 1, runCLI(t, "type", path))
}

func TestExecuteExitsTwoOnMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.wm")
	assert.Equal(t, 2, runCLI(t, "run", path))
}

func TestExecuteExitsTwoOnUnknownBackend(t *testing.T) {
	path := writeSource(t, `let x = 1;`)
	assert.Equal(t, 2, runCLI(t, "compile", path, "--out-dir", t.TempDir(), "--backend", "rust"))
}

func TestExecuteErrSubcommandExitsZeroOnCleanFile(t *testing.T) {
	path := writeSource(t, `let x = 1 + 2;`)
	assert.Equal(t, 0, runCLI(t, "err", path))
}

func TestExecuteCompileWritesArtifact(t *testing.T) {
	path := writeSource(t, `let x = 1 + 2;`)
	outDir := t.TempDir()
	require.Equal(t, 0, runCLI(t, "compile", path, "--out-dir", outDir, "--backend", "zig"))

	_, err := os.Stat(filepath.Join(outDir, "prog.mir"))
	require.NoError(t, err)
}
