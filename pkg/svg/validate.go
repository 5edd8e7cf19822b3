package svg

import "strings"

// Valid reports whether s is non-empty and contains a closing </svg> tag.
// This is not an XML check.
func Valid(s string) bool {
	return s != "" && strings.Contains(s, "</svg>")
}
