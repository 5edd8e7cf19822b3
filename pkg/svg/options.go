package svg

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DefaultPreserveAspectRatio is applied when no preserveAspectRatio option
// is given.
const DefaultPreserveAspectRatio = "xMinYMin"

// titleIDPrefix prefixes generated <title> ids.
const titleIDPrefix = "icon__title--"

// Options are the per-call icon options. They are passed by value through
// every call, so nothing set for one icon can reach the next.
type Options struct {
	ID                  string
	Title               string
	PreserveAspectRatio string
}

// WithDefaults returns a copy with empty fields set to their defaults.
func (o Options) WithDefaults() Options {
	if o.PreserveAspectRatio == "" {
		o.PreserveAspectRatio = DefaultPreserveAspectRatio
	}
	return o
}

// OptionsFromMap reads the known option keys from a template map.
// Unknown keys and nil values are ignored.
func OptionsFromMap(m map[string]any) Options {
	var o Options
	for k, v := range m {
		if v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			s = fmt.Sprint(v)
		}
		switch k {
		case "id":
			o.ID = s
		case "title":
			o.Title = s
		case "preserveAspectRatio":
			o.PreserveAspectRatio = s
		}
	}
	return o
}

// NewTitleID returns a unique id for a generated <title> element.
func NewTitleID() string {
	return titleIDPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:13]
}

// MergeClasses appends the tokens of added to the tokens of existing,
// keeping the first occurrence of each token.
func MergeClasses(existing, added string) string {
	tokens := append(strings.Fields(existing), strings.Fields(added)...)
	seen := make(map[string]struct{}, len(tokens))
	out := tokens[:0]
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return strings.Join(out, " ")
}
