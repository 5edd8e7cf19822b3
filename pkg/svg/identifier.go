package svg

import (
	"path"
	"strings"
)

// Kind tells how an identifier is resolved.
type Kind int

const (
	// Bare is a short icon name joined to the configured base path.
	Bare Kind = iota
	// Explicit is a file path, logical path or literal markup, used as given.
	Explicit
)

// String returns the kind name.
func (k Kind) String() string {
	if k == Bare {
		return "bare"
	}
	return "explicit"
}

// Identifier is a classified raw icon identifier.
type Identifier struct {
	Kind  Kind
	Value string
}

// ParseIdentifier classifies raw. Names without '/' and '.' are Bare;
// everything else, including the empty string, is Explicit.
func ParseIdentifier(raw string) Identifier {
	if raw != "" && !strings.ContainsAny(raw, "./") {
		return Identifier{Kind: Bare, Value: raw}
	}
	return Identifier{Kind: Explicit, Value: raw}
}

// IsLiteral reports whether an explicit identifier is inline markup.
func (id Identifier) IsLiteral() bool {
	return id.Kind == Explicit && strings.Contains(id.Value, "<")
}

// SymbolID derives the sprite symbol id. Bare names are used as is, paths
// use the file name without its extension, and literal markup has no
// derivable id (empty string).
func (id Identifier) SymbolID() string {
	if id.Kind == Bare {
		return id.Value
	}
	if id.Value == "" || id.IsLiteral() {
		return ""
	}
	v := id.Value
	if _, rest, ok := strings.Cut(v, "://"); ok {
		v = rest
	}
	base := path.Base(strings.ReplaceAll(v, "\\", "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	if base == "" || base == "." || base == "/" {
		return ""
	}
	return base
}

// String returns the raw identifier.
func (id Identifier) String() string { return id.Value }
