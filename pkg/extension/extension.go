// Package extension provides the icon template functions.
//
// An [Extension] ties the svg package to a host: it reads settings, resolves
// identifiers through a locator and memoizes rendered markup. [Extension.FuncMap]
// exposes it to html/template:
//
//	ext := extension.New(settings, locator.ForTheme(root, "default"), nil, logger)
//	tmpl := template.New("page").Funcs(ext.FuncMap(ctx))
//
//	{{ svg "check" "icon--small" (svgOptions "title" "Done") }}
//	{{ svgSprite "check" "close" }}
//	{{ sprite "check" "icon" "Done" }}
//
// Identifiers that cannot be resolved, loaded or parsed render as nothing.
// Only markup that parses but contains no <svg> element is an error.
package extension

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/svgext/pkg/cache"
	"github.com/matzehuels/svgext/pkg/config"
	"github.com/matzehuels/svgext/pkg/errors"
	"github.com/matzehuels/svgext/pkg/locator"
	"github.com/matzehuels/svgext/pkg/observability"
	"github.com/matzehuels/svgext/pkg/svg"
)

// Kinds reported to hooks and used as memo key types.
const (
	KindIcon   = "svg"
	KindSprite = "sprite"
)

// Skip reasons.
const (
	ReasonDisabled   = "disabled"
	ReasonUnresolved = "unresolved"
	ReasonUnreadable = "unreadable"
	ReasonInvalid    = "invalid"
	ReasonUnparsable = "unparsable"
	ReasonEmpty      = "empty"
)

// Extension renders icons for templates.
//
// Options are passed by value on every call and the memo table carries its
// own lock, so one Extension may serve concurrent renders.
type Extension struct {
	Settings config.Settings
	Resolver *svg.Resolver
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger

	// NewID generates <title> ids. Defaults to svg.NewTitleID.
	NewID func() string
}

// New creates an extension.
// If c is nil, an in-memory memo table bounded by settings.CacheSize is used.
// If logger is nil, log.Default() is used.
func New(settings config.Settings, loc locator.Locator, c cache.Cache, logger *log.Logger) *Extension {
	if c == nil {
		c = cache.NewMemoryCache(settings.CacheSize)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Extension{
		Settings: settings,
		Resolver: svg.NewResolver(settings.Path, loc),
		Cache:    c,
		Keyer:    cache.NewDefaultKeyer(),
		Logger:   logger,
		NewID:    svg.NewTitleID,
	}
}

// SVG returns the rewritten markup of one icon. An empty class falls back to
// the configured default class.
func (e *Extension) SVG(ctx context.Context, identifier, class string, opts svg.Options) (string, error) {
	if !e.Settings.Enabled {
		e.skip(ctx, KindIcon, identifier, ReasonDisabled)
		return "", nil
	}
	start := time.Now()
	if class == "" {
		class = e.Settings.DefaultClass
	}
	opts = opts.WithDefaults()

	key := e.Keyer.IconKey(cache.IconKeyOpts{
		Identifier:          identifier,
		Class:               class,
		ID:                  opts.ID,
		Title:               opts.Title,
		PreserveAspectRatio: opts.PreserveAspectRatio,
		BasePath:            e.Resolver.Base(),
		RemoveScripts:       e.Settings.RemoveScriptTags,
	})
	if out, ok := e.lookup(ctx, KindIcon, key); ok {
		return out, nil
	}

	markup, reason := e.load(svg.ParseIdentifier(identifier))
	if reason != "" {
		e.skip(ctx, KindIcon, identifier, reason)
		return "", nil
	}

	out, err := svg.Rewrite(markup, svg.RewriteOptions{
		Options:       opts,
		Class:         class,
		RemoveScripts: e.Settings.RemoveScriptTags,
		NewID:         e.newID(),
	})
	if err != nil {
		err = errors.WithSubject(err, display(identifier))
		observability.Icon().OnIconRendered(ctx, KindIcon, display(identifier), time.Since(start), err)
		return "", err
	}
	if out == "" {
		e.skip(ctx, KindIcon, identifier, ReasonUnparsable)
		return "", nil
	}

	e.store(ctx, KindIcon, key, out)
	observability.Icon().OnIconRendered(ctx, KindIcon, display(identifier), time.Since(start), nil)
	return out, nil
}

// Sprite combines identifiers into one hidden <svg> of <symbol>s. Only the
// preserveAspectRatio option applies to sprites.
func (e *Extension) Sprite(ctx context.Context, identifiers []string, opts svg.Options) (string, error) {
	label := strings.Join(identifiers, ",")
	if !e.Settings.Enabled {
		e.skip(ctx, KindSprite, label, ReasonDisabled)
		return "", nil
	}
	start := time.Now()
	opts = opts.WithDefaults()

	key := e.Keyer.SpriteKey(cache.SpriteKeyOpts{
		Identifiers:         identifiers,
		PreserveAspectRatio: opts.PreserveAspectRatio,
		BasePath:            e.Resolver.Base(),
	})
	if out, ok := e.lookup(ctx, KindSprite, key); ok {
		return out, nil
	}

	entries := make([]svg.Entry, 0, len(identifiers))
	for _, raw := range identifiers {
		id := svg.ParseIdentifier(raw)
		markup, reason := e.load(id)
		if reason != "" {
			e.skip(ctx, KindSprite, raw, reason)
			continue
		}
		entries = append(entries, svg.Entry{ID: id.SymbolID(), Markup: markup})
	}

	out, err := svg.Sprite(entries, opts.PreserveAspectRatio)
	if err != nil {
		err = errors.WithSubject(err, display(label))
		observability.Icon().OnIconRendered(ctx, KindSprite, display(label), time.Since(start), err)
		return "", err
	}
	if out == "" {
		e.skip(ctx, KindSprite, label, ReasonEmpty)
		return "", nil
	}

	e.store(ctx, KindSprite, key, out)
	observability.Icon().OnIconRendered(ctx, KindSprite, display(label), time.Since(start), nil)
	e.Logger.Debug("sprite assembled", "requested", len(identifiers), "symbols", strings.Count(out, "<symbol"))
	return out, nil
}

// Use returns a reference to a sprite symbol. The identifier goes through
// the same symbol id rule as Sprite, so paths work as well as names.
func (e *Extension) Use(identifier, class, title string) string {
	if !e.Settings.Enabled {
		return ""
	}
	if class == "" {
		class = e.Settings.DefaultClass
	}
	return svg.Use(svg.ParseIdentifier(identifier).SymbolID(), class, title, e.newID())
}

// Reset clears the memo table. Hosts call it at the start of a render cycle.
func (e *Extension) Reset(ctx context.Context) error {
	return e.Cache.Clear(ctx)
}

// Stats returns memo table counters when the table keeps them.
func (e *Extension) Stats() cache.Stats {
	if r, ok := e.Cache.(cache.StatsReporter); ok {
		return r.Stats()
	}
	return cache.Stats{}
}

// load resolves and reads an identifier. A non-empty reason means nothing
// usable was found.
func (e *Extension) load(id svg.Identifier) (string, string) {
	src := e.Resolver.Resolve(id)
	if !src.Resolved() {
		return "", ReasonUnresolved
	}
	markup, ok := svg.Load(src)
	if !ok {
		return "", ReasonUnreadable
	}
	if !svg.Valid(markup) {
		return "", ReasonInvalid
	}
	return markup, ""
}

func (e *Extension) lookup(ctx context.Context, kind, key string) (string, bool) {
	data, hit, err := e.Cache.Get(ctx, key)
	if err != nil {
		e.Logger.Warn("memo lookup failed", "kind", kind, "error", err)
		return "", false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, kind)
		return "", false
	}
	observability.Cache().OnCacheHit(ctx, kind)
	return string(data), true
}

func (e *Extension) store(ctx context.Context, kind, key, out string) {
	if err := e.Cache.Set(ctx, key, []byte(out), 0); err != nil {
		e.Logger.Warn("memo store failed", "kind", kind, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(out))
}

func (e *Extension) skip(ctx context.Context, kind, identifier, reason string) {
	identifier = display(identifier)
	e.Logger.Debug("icon skipped", "kind", kind, "identifier", identifier, "reason", reason)
	observability.Icon().OnIconSkipped(ctx, kind, identifier, reason)
}

func (e *Extension) newID() func() string {
	if e.NewID == nil {
		return svg.NewTitleID
	}
	return e.NewID
}

// display shortens literal markup identifiers for logs.
func display(identifier string) string {
	const limit = 64
	identifier = strings.Join(strings.Fields(identifier), " ")
	if len(identifier) <= limit {
		return identifier
	}
	return identifier[:limit] + "…"
}
