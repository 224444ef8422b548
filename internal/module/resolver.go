package module

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ResolveError is a failure to turn a specifier into a file path.
type ResolveError struct {
	Specifier string
	Reason    string // "unsupported_module_specifier" | "module_not_found"
	FromFile  string
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("%s: %q (imported from %s)", e.Reason, e.Specifier, e.FromFile)
}

// Resolver turns an import specifier into a file path, per the rules:
// `./x`/`../x` relative to the importing file, an absolute path used
// verbatim, `std/X` searched across configured std-roots in order (joined
// onto the root as configured, so a relative root gives a relative path),
// and any other shape rejected outright.
type Resolver struct {
	fs       FileSystem
	stdRoots []string
}

// NewResolver builds a Resolver over fs, searching stdRoots in order for
// `std/X` specifiers.
func NewResolver(fs FileSystem, stdRoots []string) *Resolver {
	return &Resolver{fs: fs, stdRoots: stdRoots}
}

func withExt(path string) string {
	if strings.HasSuffix(path, ".wm") {
		return path
	}
	return path + ".wm"
}

// Resolve resolves specifier as imported from fromFile (used as the base
// for relative specifiers; ignored for absolute and std specifiers).
func (r *Resolver) Resolve(specifier, fromFile string) (string, error) {
	switch {
	case strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../"):
		dir := filepath.Dir(fromFile)
		path := withExt(filepath.Join(dir, specifier))
		if !r.fs.Exists(path) {
			return "", &ResolveError{Specifier: specifier, Reason: "module_not_found", FromFile: fromFile}
		}
		return path, nil

	case filepath.IsAbs(specifier):
		path := withExt(specifier)
		if !r.fs.Exists(path) {
			return "", &ResolveError{Specifier: specifier, Reason: "module_not_found", FromFile: fromFile}
		}
		return path, nil

	case strings.HasPrefix(specifier, "std/"):
		rel := strings.TrimPrefix(specifier, "std/")
		for _, root := range r.stdRoots {
			path := withExt(filepath.Join(root, rel))
			if r.fs.Exists(path) {
				return path, nil
			}
		}
		return "", &ResolveError{Specifier: specifier, Reason: "module_not_found", FromFile: fromFile}

	default:
		return "", &ResolveError{Specifier: specifier, Reason: "unsupported_module_specifier", FromFile: fromFile}
	}
}
