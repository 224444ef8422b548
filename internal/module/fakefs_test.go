package module_test

import "github.com/workman-lang/workman/internal/module"

// fakeFS is an in-memory FileSystem for tests, keyed by absolute-looking
// path strings (no real path normalization is needed since every test
// specifier is written out in full).
type fakeFS map[string]string

func (f fakeFS) ReadFile(path string) ([]byte, error) {
	src, ok := f[path]
	if !ok {
		return nil, &missingFileError{path}
	}
	return []byte(src), nil
}

func (f fakeFS) Exists(path string) bool {
	_, ok := f[path]
	return ok
}

type missingFileError struct{ path string }

func (e *missingFileError) Error() string { return "no such file: " + e.path }

var _ module.FileSystem = fakeFS{}
