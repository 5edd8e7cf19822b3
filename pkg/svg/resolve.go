package svg

import (
	"os"
	"strings"

	"github.com/matzehuels/svgext/pkg/locator"
)

// DefaultBasePath is the logical directory bare icon names resolve in.
const DefaultBasePath = "theme://dist/icons/"

// Source is a resolved identifier: a file path, literal markup, or neither
// when resolution failed.
type Source struct {
	Path   string
	Markup string
}

// Resolved reports whether the source points at something loadable.
func (s Source) Resolved() bool { return s.Path != "" || s.Markup != "" }

// Resolver maps identifiers to sources.
type Resolver struct {
	base    string
	locator locator.Locator
}

// NewResolver creates a resolver. An empty base uses DefaultBasePath; a nil
// locator leaves bare names and logical paths unresolved.
func NewResolver(base string, loc locator.Locator) *Resolver {
	if base == "" {
		base = DefaultBasePath
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &Resolver{base: base, locator: loc}
}

// Base returns the normalized base path.
func (r *Resolver) Base() string { return r.base }

// Resolve returns the source for id.
func (r *Resolver) Resolve(id Identifier) Source {
	switch {
	case id.Value == "":
		return Source{}
	case id.Kind == Bare:
		if p, ok := r.locate(r.base + id.Value + ".svg"); ok {
			return Source{Path: p}
		}
		return Source{}
	case id.IsLiteral():
		return Source{Markup: id.Value}
	case strings.Contains(id.Value, "://"):
		if p, ok := r.locate(id.Value); ok {
			return Source{Path: p}
		}
		return Source{}
	case strings.Contains(id.Value, ".svg"):
		if isFile(id.Value) {
			return Source{Path: id.Value}
		}
		if p, ok := r.locate(id.Value); ok {
			return Source{Path: p}
		}
	}
	// Anything else passes through as literal text and fails validation
	// downstream unless it happens to contain markup.
	return Source{Markup: id.Value}
}

// Load returns the markup of src. It never fails loudly: an unreadable file
// yields ("", false).
func Load(src Source) (string, bool) {
	if src.Path != "" {
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return "", false
		}
		return string(data), true
	}
	if src.Markup != "" {
		return src.Markup, true
	}
	return "", false
}

func (r *Resolver) locate(logical string) (string, bool) {
	if r.locator == nil {
		return "", false
	}
	return r.locator.Resolve(logical)
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
