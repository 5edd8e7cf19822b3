package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/svgext/pkg/config"
	"github.com/matzehuels/svgext/pkg/errors"
	"github.com/matzehuels/svgext/pkg/extension"
	"github.com/matzehuels/svgext/pkg/locator"
	"github.com/matzehuels/svgext/pkg/observability"
)

const checkSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path d="M5 12l5 5L20 7"/></svg>`

func writeFile(t *testing.T, p, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// newTestRunner returns a runner over a site root holding one icon.
func newTestRunner(t *testing.T) (*Runner, string) {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "themes", "default", "dist", "icons", "check.svg"), checkSVG)

	logger := log.New(os.Stderr)
	logger.SetLevel(log.ErrorLevel)
	ext := extension.New(config.Defaults(), locator.ForTheme(root, "default"), nil, logger)
	return NewRunner(ext, logger), root
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil)
	if r.Extension == nil || r.Logger == nil {
		t.Fatal("NewRunner should default extension and logger")
	}
}

func TestExecuteText(t *testing.T) {
	r, _ := newTestRunner(t)

	res, err := r.Execute(context.Background(), Options{
		Text: `<h1>{{ .Title }}</h1>{{ svg "check" "icon" }}{{ svg "check" "icon" }}`,
		Data: map[string]any{"Title": "Home"},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	out := string(res.Output)
	if !strings.HasPrefix(out, "<h1>Home</h1><svg") {
		t.Errorf("unexpected output: %s", out)
	}
	if strings.Count(out, "<svg") != 2 {
		t.Errorf("expected the icon twice: %s", out)
	}
	if res.Stats.Memo.Hits != 1 || res.Stats.Memo.Entries != 1 {
		t.Errorf("memo stats = %+v, want 1 hit and 1 entry", res.Stats.Memo)
	}
	if res.Stats.Bytes != len(res.Output) {
		t.Errorf("Bytes = %d, want %d", res.Stats.Bytes, len(res.Output))
	}
}

func TestExecuteResetsMemo(t *testing.T) {
	r, root := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Text: `{{ svg "check" }}`}

	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(root, "themes", "default", "dist", "icons", "check.svg")); err != nil {
		t.Fatal(err)
	}

	kept, err := r.Execute(ctx, Options{Text: opts.Text, KeepMemo: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(kept.Output), "<svg") {
		t.Error("KeepMemo should serve the icon from the memo table")
	}

	fresh, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(fresh.Output) != 0 {
		t.Errorf("a new cycle should reload the icon, got %s", fresh.Output)
	}
}

func TestExecuteTemplateFiles(t *testing.T) {
	r, root := newTestRunner(t)
	tmplDir := filepath.Join(root, "templates")
	writeFile(t, filepath.Join(tmplDir, "page.tmpl.html"), `<body>{{ template "nav" . }}</body>`)
	writeFile(t, filepath.Join(tmplDir, "nav.part.html"), `{{ define "nav" }}<nav>{{ svgSprite (list "check") }}{{ sprite "check" }}</nav>{{ end }}`)

	res, err := r.Execute(context.Background(), Options{
		Template: filepath.Join(tmplDir, "page.tmpl.html"),
		Partials: filepath.Join(tmplDir, "*.part.html"),
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	out := string(res.Output)
	if !strings.Contains(out, `<nav><svg style="display:none"><symbol`) {
		t.Errorf("partial should render the sprite: %s", out)
	}
	if !strings.Contains(out, `href="#icon-check"`) {
		t.Errorf("partial should render the reference: %s", out)
	}
}

func TestExecuteErrors(t *testing.T) {
	r, root := newTestRunner(t)
	ctx := context.Background()

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"missing template", Options{Template: filepath.Join(root, "nope.html")}, errors.ErrCodeFileNotFound},
		{"parse error", Options{Text: `{{ svg "check" `}, errors.ErrCodeTemplate},
		{"unknown function", Options{Text: `{{ nope }}`}, errors.ErrCodeTemplate},
		{"missing root", Options{Text: `{{ svg "<g><!-- </svg> --></g>" }}`}, errors.ErrCodeMissingRoot},
		{"no input", Options{}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(ctx, tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

type recordingRenderHooks struct {
	observability.NoopRenderHooks
	started   []string
	completed []error
}

func (h *recordingRenderHooks) OnRenderStart(_ context.Context, name string) {
	h.started = append(h.started, name)
}

func (h *recordingRenderHooks) OnRenderComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	h.completed = append(h.completed, err)
}

func TestExecuteHooks(t *testing.T) {
	hooks := &recordingRenderHooks{}
	observability.SetRenderHooks(hooks)
	defer observability.Reset()

	r, _ := newTestRunner(t)
	r.Execute(context.Background(), Options{Text: "ok", Name: "inline"})
	r.Execute(context.Background(), Options{Text: "{{ nope }}"})

	if len(hooks.started) != 2 || hooks.started[0] != "inline" || hooks.started[1] != "page" {
		t.Errorf("started = %v", hooks.started)
	}
	if len(hooks.completed) != 2 || hooks.completed[0] != nil || hooks.completed[1] == nil {
		t.Errorf("completed = %v", hooks.completed)
	}
}
