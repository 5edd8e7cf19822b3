// Package config reads the host configuration the icon helpers depend on.
//
// Configuration lives in a TOML file and is looked up by dotted keys such as
// "plugins.svg-extension.path". A typed [Settings] view applies defaults and
// environment overrides on top of the file.
package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/svgext/pkg/errors"
)

// Store is a read-only configuration lookup.
type Store interface {
	// Get returns the value at a dotted key, or nil when it is not set.
	Get(key string) any
}

// Values is a nested configuration map as decoded from TOML.
type Values map[string]any

// Get walks the dotted key through nested maps.
func (v Values) Get(key string) any {
	if key == "" {
		return nil
	}
	var cur any = map[string]any(v)
	for _, part := range strings.Split(key, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil
		}
		if cur, ok = m[part]; !ok {
			return nil
		}
	}
	return cur
}

// Set stores value at a dotted key, creating intermediate tables.
func (v Values) Set(key string, value any) {
	parts := strings.Split(key, ".")
	m := map[string]any(v)
	for _, part := range parts[:len(parts)-1] {
		next, ok := asMap(m[part])
		if !ok {
			next = map[string]any{}
			m[part] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Values:
		return m, true
	}
	return nil, false
}

// Load decodes the TOML file at path.
func Load(path string) (Values, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML data.
func Parse(data []byte) (Values, error) {
	m := map[string]any{}
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	return Values(m), nil
}
