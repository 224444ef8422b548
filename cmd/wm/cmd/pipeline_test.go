package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.wm")
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func TestParseFileRejectsMissingFile(t *testing.T) {
	_, err := parseFile(filepath.Join(t.TempDir(), "missing.wm"))
	require.Error(t, err)
	assert.True(t, isUsageError(err))
}

func TestParseFileRejectsDirectory(t *testing.T) {
	_, err := parseFile(t.TempDir())
	require.Error(t, err)
	assert.True(t, isUsageError(err))
}

func TestParseFileSucceedsOnValidSource(t *testing.T) {
	path := writeSource(t, `let x = 1 + 2 * 3;`)
	p, err := parseFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, p.file)
	assert.NotNil(t, p.prog)
}

func TestTypecheckFileReportsUnboundVariable(t *testing.T) {
	path := writeSource(t, `let x = y;`)
	_, err := typecheckFile(path)
	require.Error(t, err)
	assert.True(t, isPipelineError(err))
}

func TestTypecheckFileSucceedsOnValidSource(t *testing.T) {
	path := writeSource(t, `let x = 1 + 2;`)
	tc, err := typecheckFile(path)
	require.NoError(t, err)
	assert.NotNil(t, tc.env)
}

func TestLowerFileProducesFunctionsAndTagTables(t *testing.T) {
	path := writeSource(t, `
type Option<a> = Some(a) | None;
let unwrapOr = (opt, default) => {
  match(opt) {
    Some(x) => { x },
    None => { default },
  }
};`)
	lw, err := lowerFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, lw.mirProg.Funcs)
	_, ok := lw.mirProg.TagTables["Option"]
	assert.True(t, ok)
}

func TestLowerFileReportsStringPatternAsMIR001(t *testing.T) {
	path := writeSource(t, `
let greet = (name) => {
  match(name) {
    "world" => { 1 },
    other => { 0 },
  }
};`)
	_, err := lowerFile(path)
	require.Error(t, err)
	assert.True(t, isPipelineError(err))
}

func TestRunFileSucceedsOnValidSource(t *testing.T) {
	path := writeSource(t, `let x = 1 + 2;`)
	assert.NoError(t, runFile(path))
}

func TestTypeCheckOnlySucceedsWithoutLowering(t *testing.T) {
	path := writeSource(t, `let x = 1 + 2;`)
	assert.NoError(t, typeCheckOnly(path))
}

func TestCompileFileRejectsUnknownBackend(t *testing.T) {
	path := writeSource(t, `let x = 1;`)
	compileOutDir = t.TempDir()
	compileBackend = "rust"
	err := compileFile(path)
	require.Error(t, err)
	assert.True(t, isUsageError(err))
}

func TestCompileFileWritesMIRDump(t *testing.T) {
	path := writeSource(t, `let x = 1 + 2;`)
	outDir := t.TempDir()
	compileOutDir = outDir
	compileBackend = "js"

	require.NoError(t, compileFile(path))

	data, err := os.ReadFile(filepath.Join(outDir, "prog.mir"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend: js")
	assert.Contains(t, string(data), "func x(")
}
