// Package svg implements the markup side of the icon helpers: deciding what
// an icon identifier refers to, the crude validity check, attribute
// rewriting, symbol and sprite assembly, and the <use> reference snippet.
//
// # Identifiers
//
// A raw identifier is classified once by ParseIdentifier:
//
//	"check"                       → Bare, joined to the icon base path
//	"icons/check.svg"             → Explicit, a file path
//	"theme://dist/icons/x.svg"    → Explicit, a logical path for the locator
//	"<svg>...</svg>"              → Explicit, literal markup
//
// # Failure model
//
// Resolution, validation and parse failures all produce an empty string and
// no error, so a broken icon renders as nothing. Markup that parses but
// contains no <svg> element returns an error with code MISSING_ROOT; that
// condition is a content bug the caller must surface.
//
// Valid is only a substring check for "</svg>" and will accept any text that
// happens to contain it.
package svg
