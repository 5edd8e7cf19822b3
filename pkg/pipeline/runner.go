package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/svgext/pkg/config"
	"github.com/matzehuels/svgext/pkg/errors"
	"github.com/matzehuels/svgext/pkg/extension"
	"github.com/matzehuels/svgext/pkg/observability"
)

// Runner executes render cycles against one extension.
//
// The Runner is stateless apart from the extension's memo table. Concurrent
// Execute calls are safe but share that table, so callers running in
// parallel should set KeepMemo to avoid clearing each other's entries.
type Runner struct {
	Extension *extension.Extension
	Logger    *log.Logger
}

// NewRunner creates a runner.
// If ext is nil, an extension with default settings and no locator is used.
// If logger is nil, log.Default() is used.
func NewRunner(ext *extension.Extension, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	if ext == nil {
		ext = extension.New(config.Defaults(), nil, nil, logger)
	}
	return &Runner{
		Extension: ext,
		Logger:    logger,
	}
}

// Execute runs one render cycle.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	name := opts.TemplateName()
	start := time.Now()
	observability.Render().OnRenderStart(ctx, name)

	result, err := r.execute(ctx, opts)

	size := 0
	if result != nil {
		size = len(result.Output)
	}
	observability.Render().OnRenderComplete(ctx, name, size, time.Since(start), err)
	return result, err
}

func (r *Runner) execute(ctx context.Context, opts Options) (*Result, error) {
	if !opts.KeepMemo {
		if err := r.Extension.Reset(ctx); err != nil {
			return nil, fmt.Errorf("reset memo: %w", err)
		}
	}

	tmpl, err := r.Parse(ctx, opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, opts.TemplateName(), opts.Data); err != nil {
		// A missing <svg> root keeps its code so hosts can tell it apart.
		if errors.Terminal(err) {
			return nil, fmt.Errorf("execute %s: %w", opts.TemplateName(), err)
		}
		return nil, errors.Wrap(errors.ErrCodeTemplate, err, "execute %s", opts.TemplateName())
	}

	result := &Result{Output: buf.Bytes()}
	result.Stats.RenderTime = time.Since(start)
	result.Stats.Bytes = buf.Len()
	result.Stats.Memo = r.Extension.Stats()

	r.Logger.Info("rendered template",
		"template", opts.TemplateName(),
		"bytes", result.Stats.Bytes,
		"memo_hits", result.Stats.Memo.Hits,
		"memo_entries", result.Stats.Memo.Entries,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Parse builds the template set for opts without executing it.
func (r *Runner) Parse(ctx context.Context, opts Options) (*template.Template, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	tmpl := template.New(opts.TemplateName()).Funcs(r.Extension.FuncMap(ctx))

	if opts.Template != "" {
		if _, err := os.Stat(opts.Template); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.New(errors.ErrCodeFileNotFound, "template not found: %s", opts.Template)
			}
			return nil, errors.Wrap(errors.ErrCodeTemplate, err, "stat template %s", opts.Template)
		}
		if _, err := tmpl.ParseFiles(opts.Template); err != nil {
			return nil, errors.Wrap(errors.ErrCodeTemplate, err, "parse %s", opts.Template)
		}
	} else {
		if _, err := tmpl.Parse(opts.Text); err != nil {
			return nil, errors.Wrap(errors.ErrCodeTemplate, err, "parse %s", opts.Name)
		}
	}

	if opts.Partials != "" {
		matches, err := filepath.Glob(opts.Partials)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "glob %s", opts.Partials)
		}
		if len(matches) > 0 {
			if _, err := tmpl.ParseFiles(matches...); err != nil {
				return nil, errors.Wrap(errors.ErrCodeTemplate, err, "parse partials %s", opts.Partials)
			}
			r.Logger.Debug("parsed partials", "pattern", opts.Partials, "files", len(matches))
		}
	}
	return tmpl, nil
}
