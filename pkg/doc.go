// Package pkg provides the libraries behind svgext, template helpers that
// inline, restyle and sprite SVG icons.
//
// # Overview
//
// The pkg directory is organized by concern:
//
//  1. [svg] - Identifier resolution, validation and DOM rewriting of icons
//  2. [extension] - The svg, svgSprite and sprite template functions
//  3. [cache] - The memo table and its key derivation
//  4. [locator] - Scheme-based asset lookup (theme://, user://)
//  5. [config] - TOML configuration and SVGEXT_* overrides
//  6. [pipeline] - Template render cycles
//  7. [observability] - Hooks for icon, memo and render events
//
// # Architecture
//
// The typical data flow of one icon:
//
//	{{ svg "check" "icon" }}
//	         ↓
//	    [extension] memo lookup (cache.Keyer → cache.Cache)
//	         ↓ miss
//	    [svg] ParseIdentifier → Resolver (locator) → Load → Valid
//	         ↓
//	    [svg] Rewrite (id, class, scripts, title/ARIA, preserveAspectRatio)
//	         ↓
//	    template.HTML
//
// # Quick Start
//
//	settings, _ := config.LoadSettings("config.toml")
//	ext := extension.New(settings, locator.ForTheme(".", "default"), nil, nil)
//	tmpl := template.Must(template.New("page").Funcs(ext.FuncMap(ctx)).Parse(src))
//
// # Error Handling
//
// Icons that cannot be found, read or parsed render as the empty string.
// Markup that parses but holds no <svg> element returns an [errors.Error]
// with code MISSING_ROOT, which aborts template execution.
package pkg
