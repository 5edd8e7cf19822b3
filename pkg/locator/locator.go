// Package locator resolves logical asset paths such as
// "theme://dist/icons/check.svg" to files on disk.
//
// A logical path is either scheme-qualified ("theme://...", "user://...")
// or plain. Each scheme maps to an ordered list of search directories and the
// first directory containing the file wins, so a child theme can override
// icons shipped by its parent.
package locator

import (
	"os"
	"path/filepath"
	"strings"
)

// Locator turns a logical path into an absolute filesystem path.
type Locator interface {
	// Resolve returns the absolute path and true when the file exists.
	Resolve(logical string) (string, bool)
}

// Func adapts a function to the Locator interface.
type Func func(logical string) (string, bool)

// Resolve calls f.
func (f Func) Resolve(logical string) (string, bool) { return f(logical) }

// Streams is a scheme-based Locator.
type Streams struct {
	root    string
	schemes map[string][]string
}

// New creates a Streams locator rooted at root. Plain paths resolve against
// root; register schemes with Mount.
func New(root string) *Streams {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	return &Streams{root: abs, schemes: make(map[string][]string)}
}

// ForTheme creates the default layout used by the CLI:
//
//	theme:// → <root>/themes/<theme>
//	user://  → <root>/user
func ForTheme(root, theme string) *Streams {
	s := New(root)
	if theme != "" {
		s.Mount("theme", filepath.Join("themes", theme))
	}
	s.Mount("user", "user")
	return s
}

// Mount appends dirs to the search list of scheme. Relative dirs are taken
// relative to the locator root. Earlier mounts take precedence.
func (s *Streams) Mount(scheme string, dirs ...string) {
	for _, d := range dirs {
		if !filepath.IsAbs(d) {
			d = filepath.Join(s.root, d)
		}
		s.schemes[scheme] = append(s.schemes[scheme], d)
	}
}

// Dirs returns the search directories of scheme.
func (s *Streams) Dirs(scheme string) []string {
	return append([]string(nil), s.schemes[scheme]...)
}

// Resolve implements Locator.
func (s *Streams) Resolve(logical string) (string, bool) {
	if logical == "" {
		return "", false
	}

	scheme, rest, ok := strings.Cut(logical, "://")
	if !ok {
		p := logical
		if !filepath.IsAbs(p) {
			p = filepath.Join(s.root, p)
		}
		return existingFile(p)
	}

	rest = filepath.FromSlash(strings.TrimPrefix(rest, "/"))
	if !filepath.IsLocal(rest) {
		return "", false
	}
	for _, dir := range s.schemes[scheme] {
		if p, ok := existingFile(filepath.Join(dir, rest)); ok {
			return p, true
		}
	}
	return "", false
}

// Expand maps a logical directory to every candidate directory on disk,
// in search order. The watch command uses it to find icon directories.
func (s *Streams) Expand(logical string) []string {
	scheme, rest, ok := strings.Cut(logical, "://")
	if !ok {
		if filepath.IsAbs(logical) {
			return []string{logical}
		}
		return []string{filepath.Join(s.root, logical)}
	}
	rest = filepath.FromSlash(strings.TrimPrefix(rest, "/"))
	var out []string
	for _, dir := range s.schemes[scheme] {
		out = append(out, filepath.Join(dir, rest))
	}
	return out
}

func existingFile(p string) (string, bool) {
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return "", false
	}
	return p, true
}

// Ensure Streams implements Locator.
var _ Locator = (*Streams)(nil)
