package errors

import (
	"strings"
	"unicode"
)

// ValidateIdentifier validates an icon identifier passed on the command line.
// Template calls never go through this check; an identifier that does not
// resolve simply renders as nothing there.
//
// Rules:
//   - No empty identifiers
//   - No control characters or null bytes
//   - Maximum length of 4096 characters (literal markup is allowed)
func ValidateIdentifier(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidIdentifier, "icon identifier cannot be empty")
	}

	if len(id) > 4096 {
		return New(ErrCodeInvalidIdentifier, "icon identifier too long (max 4096 characters)")
	}

	for _, r := range id {
		if r == '\x00' || (unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r') {
			return New(ErrCodeInvalidIdentifier, "icon identifier contains invalid control characters")
		}
	}

	return nil
}

// ValidateSymbolID validates a sprite symbol id. Symbol ids end up inside
// href="#icon-<id>" so whitespace and quotes are rejected.
func ValidateSymbolID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidIdentifier, "symbol id cannot be empty")
	}
	if strings.ContainsAny(id, " \t\r\n\"'<>&#") {
		return New(ErrCodeInvalidIdentifier, "symbol id contains invalid characters: %q", id)
	}
	return nil
}

// ValidatePath validates a template or config file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
