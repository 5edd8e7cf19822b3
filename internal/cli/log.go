package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a timestamped logger ("15:04:05.00") at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs a completion line with the elapsed time, for example
// "Rendered page.html (812 bytes, 3 memo hits, 2 misses) (12ms)". Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the command logger, or log.Default() outside a
// command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports icon, memo and render events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnIconRendered(_ context.Context, kind, identifier string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("icon failed", "kind", kind, "identifier", identifier, "error", err)
		return
	}
	h.logger.Debug("icon rendered", "kind", kind, "identifier", identifier, "duration", d.Round(time.Microsecond))
}

func (h *logHooks) OnIconSkipped(_ context.Context, kind, identifier, reason string) {
	h.logger.Debug("icon produced no markup", "kind", kind, "identifier", identifier, "reason", reason)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("memo hit", "kind", keyType)
}

func (h *logHooks) OnCacheMiss(context.Context, string) {}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("memo stored", "kind", keyType, "bytes", size)
}

func (h *logHooks) OnRenderStart(_ context.Context, template string) {
	h.logger.Debug("render started", "template", template)
}

func (h *logHooks) OnRenderComplete(_ context.Context, template string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "template", template, "error", err)
		return
	}
	h.logger.Debug("render finished", "template", template, "bytes", size, "duration", d.Round(time.Millisecond))
}
