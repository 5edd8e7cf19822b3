package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/matzehuels/svgext/pkg/errors"
)

// KeyPrefix is the table holding the icon helper settings.
const KeyPrefix = "plugins.svg-extension."

// Setting keys.
const (
	KeyEnabled          = KeyPrefix + "enabled"
	KeyPath             = KeyPrefix + "path"
	KeyDefaultClass     = KeyPrefix + "defaultClass"
	KeyRemoveScriptTags = KeyPrefix + "removeScriptTags"
	KeyCacheSize        = KeyPrefix + "cacheSize"
)

// DefaultPath is the logical directory bare icon names are looked up in.
const DefaultPath = "theme://dist/icons/"

// Settings is the typed view of the icon helper configuration.
type Settings struct {
	// Enabled turns the template functions on. Disabled helpers render
	// nothing.
	Enabled bool

	// Path is the base path for bare icon names. Always ends with "/".
	Path string `env:"SVGEXT_PATH"`

	// DefaultClass is applied when a call passes no class.
	DefaultClass string `env:"SVGEXT_DEFAULT_CLASS"`

	// RemoveScriptTags strips <script> elements from inlined icons.
	RemoveScriptTags bool `env:"SVGEXT_REMOVE_SCRIPT_TAGS"`

	// CacheSize bounds the memo table. Zero means unbounded.
	CacheSize int `env:"SVGEXT_CACHE_SIZE"`
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Settings {
	return Settings{Enabled: true, Path: DefaultPath}
}

// FromStore reads settings from s on top of Defaults. A nil store yields the
// defaults.
func FromStore(s Store) (Settings, error) {
	out := Defaults()
	if s == nil {
		return out, nil
	}

	var err error
	if out.Enabled, err = boolValue(s, KeyEnabled, out.Enabled); err != nil {
		return Settings{}, err
	}
	if out.Path, err = stringValue(s, KeyPath, out.Path); err != nil {
		return Settings{}, err
	}
	if out.DefaultClass, err = stringValue(s, KeyDefaultClass, ""); err != nil {
		return Settings{}, err
	}
	if out.RemoveScriptTags, err = boolValue(s, KeyRemoveScriptTags, false); err != nil {
		return Settings{}, err
	}
	if out.CacheSize, err = intValue(s, KeyCacheSize, 0); err != nil {
		return Settings{}, err
	}
	return out, out.normalize()
}

// ParseEnv overrides fields from SVGEXT_* environment variables. Unset
// variables leave the current values alone.
func (s *Settings) ParseEnv() error {
	if err := env.Parse(s); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse env")
	}
	return s.normalize()
}

// LoadSettings loads the file at path (skipped when empty), applies
// defaults and environment overrides.
func LoadSettings(path string) (Settings, error) {
	var store Store
	if path != "" {
		v, err := Load(path)
		if err != nil {
			return Settings{}, err
		}
		store = v
	}
	s, err := FromStore(store)
	if err != nil {
		return Settings{}, err
	}
	if err := s.ParseEnv(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s *Settings) normalize() error {
	s.Path = strings.TrimSpace(s.Path)
	if s.Path == "" {
		s.Path = DefaultPath
	}
	if !strings.HasSuffix(s.Path, "/") {
		s.Path += "/"
	}
	s.DefaultClass = strings.Join(strings.Fields(s.DefaultClass), " ")
	if s.CacheSize < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s must not be negative, got %d", KeyCacheSize, s.CacheSize)
	}
	return nil
}

// Map returns the settings keyed by their configuration keys.
func (s Settings) Map() map[string]string {
	return map[string]string{
		KeyEnabled:          strconv.FormatBool(s.Enabled),
		KeyPath:             s.Path,
		KeyDefaultClass:     s.DefaultClass,
		KeyRemoveScriptTags: strconv.FormatBool(s.RemoveScriptTags),
		KeyCacheSize:        strconv.Itoa(s.CacheSize),
	}
}

func stringValue(s Store, key, def string) (string, error) {
	switch v := s.Get(key).(type) {
	case nil:
		return def, nil
	case string:
		return v, nil
	default:
		return "", invalidType(key, "string", v)
	}
}

func boolValue(s Store, key string, def bool) (bool, error) {
	switch v := s.Get(key).(type) {
	case nil:
		return def, nil
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, invalidType(key, "boolean", v)
		}
		return b, nil
	default:
		return false, invalidType(key, "boolean", v)
	}
}

func intValue(s Store, key string, def int) (int, error) {
	switch v := s.Get(key).(type) {
	case nil:
		return def, nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, invalidType(key, "integer", v)
		}
		return n, nil
	default:
		return 0, invalidType(key, "integer", v)
	}
}

func invalidType(key, want string, got any) error {
	return errors.New(errors.ErrCodeInvalidConfig, "%s must be a %s, got %s", key, want, fmt.Sprintf("%T", got))
}
