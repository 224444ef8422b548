package module_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/workman-lang/workman/internal/config"
	"github.com/workman-lang/workman/internal/module"
)

func noPrelude() *config.Config {
	return &config.Config{StdRoots: []string{"std"}}
}

func TestBuildSingleModule(t *testing.T) {
	fs := fakeFS{
		"/proj/main.wm": `let x = 1;`,
	}
	mods, err := module.Build("/proj/main.wm", noPrelude(), fs)
	require.NoError(t, err)
	require.Len(t, mods, 1)
	require.Equal(t, "/proj/main.wm", mods[0].Path)
}

func TestBuildRelativeImportTopologicalOrder(t *testing.T) {
	fs := fakeFS{
		"/proj/main.wm": `from "./util" import { helper };
let x = helper;`,
		"/proj/util.wm": `export let helper = 1;`,
	}
	mods, err := module.Build("/proj/main.wm", noPrelude(), fs)
	require.NoError(t, err)
	require.Len(t, mods, 2)
	require.Equal(t, "/proj/util.wm", mods[0].Path, "dependency must precede dependent in post-order")
	require.Equal(t, "/proj/main.wm", mods[1].Path)
	require.True(t, mods[0].Exports.Values["helper"])
}

func TestBuildDetectsCycle(t *testing.T) {
	fs := fakeFS{
		"/proj/a.wm": `from "./b" import { y };
export let x = y;`,
		"/proj/b.wm": `from "./a" import { x };
export let y = x;`,
	}
	_, err := module.Build("/proj/a.wm", noPrelude(), fs)
	require.Error(t, err)
	var cycleErr *module.CycleError
	require.True(t, errors.As(err, &cycleErr))
}

func TestBuildStdRootSearch(t *testing.T) {
	fs := fakeFS{
		"/proj/main.wm": `from "std/list" import { map };
let y = map;`,
		"vendor/std/list.wm": `export let map = 1;`,
	}
	cfg := &config.Config{StdRoots: []string{"std", "vendor/std"}}
	mods, err := module.Build("/proj/main.wm", cfg, fs)
	require.NoError(t, err)
	require.Len(t, mods, 2)
	require.Equal(t, "vendor/std/list.wm", mods[0].Path)
}

func TestBuildUnsupportedSpecifier(t *testing.T) {
	fs := fakeFS{
		"/proj/main.wm": `from "github.com/x/y" import { z };
let w = z;`,
	}
	_, err := module.Build("/proj/main.wm", noPrelude(), fs)
	require.Error(t, err)
	var resolveErr *module.ResolveError
	require.True(t, errors.As(err, &resolveErr))
	require.Equal(t, "unsupported_module_specifier", resolveErr.Reason)
}

func TestBuildReexportWithConstructors(t *testing.T) {
	fs := fakeFS{
		"/proj/main.wm": `export from "./types" type Option(..);`,
		"/proj/types.wm": `export type Option<a> = Some(a) | None;`,
	}
	mods, err := module.Build("/proj/main.wm", noPrelude(), fs)
	require.NoError(t, err)
	main := mods[len(mods)-1]
	require.True(t, main.Exports.Types["Option"])
	require.True(t, main.Exports.TypeConstructors["Some"])
	require.True(t, main.Exports.TypeConstructors["None"])
}

func TestBuildVisitsPreludeFirst(t *testing.T) {
	fs := fakeFS{
		"/proj/main.wm":     `let x = 1;`,
		"std/prelude.wm": `export let pi = 1;`,
	}
	cfg := &config.Config{StdRoots: []string{"std"}, Prelude: "std/prelude"}
	mods, err := module.Build("/proj/main.wm", cfg, fs)
	require.NoError(t, err)
	require.Len(t, mods, 2)
	require.Equal(t, "std/prelude.wm", mods[0].Path)
	require.Equal(t, "/proj/main.wm", mods[1].Path)
}
