// Package observability provides hooks for metrics, tracing, and logging.
//
// Icon rendering, memo table traffic and template render cycles emit events
// through hook interfaces with no-op defaults. Hosts register their own
// implementations at startup; libraries never depend on a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetIconHooks(&myIconHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	// ... render the icon ...
//	observability.Icon().OnIconRendered(ctx, "svg", identifier, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// IconHooks receives events from the template functions.
type IconHooks interface {
	// OnIconRendered records a rendered icon or sprite. err is non-nil only
	// for terminal failures.
	OnIconRendered(ctx context.Context, kind, identifier string, duration time.Duration, err error)

	// OnIconSkipped records an identifier that produced no markup.
	OnIconSkipped(ctx context.Context, kind, identifier, reason string)
}

// CacheHooks receives events from memo table operations.
type CacheHooks interface {
	// keyType is the memo key kind, "svg" or "sprite".
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// RenderHooks receives events from template render cycles.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, template string)
	OnRenderComplete(ctx context.Context, template string, size int, duration time.Duration, err error)
}

// NoopIconHooks, NoopCacheHooks and NoopRenderHooks discard every event.
type NoopIconHooks struct{}

func (NoopIconHooks) OnIconRendered(context.Context, string, string, time.Duration, error) {}
func (NoopIconHooks) OnIconSkipped(context.Context, string, string, string)                {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string)                                 {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// registry is replaced as a whole on every Set, so readers never lock.
type registry struct {
	icon   IconHooks
	cache  CacheHooks
	render RenderHooks
}

var defaults = registry{NoopIconHooks{}, NoopCacheHooks{}, NoopRenderHooks{}}

var (
	current atomic.Pointer[registry]
	setMu   sync.Mutex
)

func init() {
	Reset()
}

func update(fn func(r *registry)) {
	setMu.Lock()
	defer setMu.Unlock()
	next := *current.Load()
	fn(&next)
	current.Store(&next)
}

// SetIconHooks registers icon hooks. A nil h is ignored.
func SetIconHooks(h IconHooks) {
	if h != nil {
		update(func(r *registry) { r.icon = h })
	}
}

// SetCacheHooks registers memo table hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = h })
	}
}

// SetRenderHooks registers render cycle hooks. A nil h is ignored.
func SetRenderHooks(h RenderHooks) {
	if h != nil {
		update(func(r *registry) { r.render = h })
	}
}

func Icon() IconHooks     { return current.Load().icon }
func Cache() CacheHooks   { return current.Load().cache }
func Render() RenderHooks { return current.Load().render }

// Reset restores the no-op hooks.
func Reset() {
	r := defaults
	current.Store(&r)
}
