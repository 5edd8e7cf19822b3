package cache

// Keyer derives memo keys from render requests.
type Keyer interface {
	// IconKey generates a key for a single inlined icon.
	IconKey(opts IconKeyOpts) string

	// SpriteKey generates a key for an assembled sprite.
	SpriteKey(opts SpriteKeyOpts) string
}

// IconKeyOpts holds every input that affects the output of svg().
// Options must already be defaulted so that an omitted value and its
// explicit default map to the same key.
type IconKeyOpts struct {
	Identifier          string `json:"identifier"`
	Class               string `json:"class"`
	ID                  string `json:"id"`
	Title               string `json:"title"`
	PreserveAspectRatio string `json:"preserve_aspect_ratio"`
	BasePath            string `json:"base_path"`
	RemoveScripts       bool   `json:"remove_scripts"`
}

// SpriteKeyOpts holds every input that affects the output of svgSprite().
type SpriteKeyOpts struct {
	Identifiers         []string `json:"identifiers"`
	PreserveAspectRatio string   `json:"preserve_aspect_ratio"`
	BasePath            string   `json:"base_path"`
}

// DefaultKeyer produces hashed keys prefixed by kind.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// IconKey generates a key for an inlined icon.
func (k *DefaultKeyer) IconKey(opts IconKeyOpts) string {
	return hashKey("icon", opts)
}

// SpriteKey generates a key for a sprite.
func (k *DefaultKeyer) SpriteKey(opts SpriteKeyOpts) string {
	return hashKey("sprite", opts)
}
