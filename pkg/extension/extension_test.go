package extension

import (
	"bytes"
	"context"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/svgext/pkg/cache"
	"github.com/matzehuels/svgext/pkg/config"
	"github.com/matzehuels/svgext/pkg/errors"
	"github.com/matzehuels/svgext/pkg/locator"
	"github.com/matzehuels/svgext/pkg/observability"
	"github.com/matzehuels/svgext/pkg/svg"
)

const (
	checkSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path d="M5 12l5 5L20 7"/></svg>`
	closeSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><script>alert(1)</script><path d="M6 6l12 12"/></svg>`
)

// newTestExtension lays out a theme with check and close icons and returns
// an extension reading from it.
func newTestExtension(t *testing.T, settings config.Settings) (*Extension, string) {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "themes", "default", "dist", "icons")
	writeFile(t, filepath.Join(dir, "check.svg"), checkSVG)
	writeFile(t, filepath.Join(dir, "close.svg"), closeSVG)

	ext := New(settings, locator.ForTheme(root, "default"), nil, nil)
	ext.NewID = func() string { return "icon__title--test" }
	return ext, dir
}

func writeFile(t *testing.T, p, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestSVGBareName(t *testing.T) {
	ext, _ := newTestExtension(t, config.Defaults())

	out, err := ext.SVG(context.Background(), "check", "icon", svg.Options{})
	if err != nil {
		t.Fatalf("SVG error: %v", err)
	}
	for _, want := range []string{`class="icon"`, `aria-hidden="true"`, `preserveAspectRatio="xMinYMin"`, `M5 12l5 5L20 7`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestSVGMemoHitDoesNotReread(t *testing.T) {
	ext, dir := newTestExtension(t, config.Defaults())
	ctx := context.Background()

	first, err := ext.SVG(ctx, "check", "", svg.Options{})
	if err != nil || first == "" {
		t.Fatalf("first call = %q, %v", first, err)
	}
	if err := os.Remove(filepath.Join(dir, "check.svg")); err != nil {
		t.Fatal(err)
	}

	second, err := ext.SVG(ctx, "check", "", svg.Options{})
	if err != nil {
		t.Fatalf("second call error: %v", err)
	}
	if second != first {
		t.Errorf("memo hit should return identical output\nfirst:  %s\nsecond: %s", first, second)
	}
	if st := ext.Stats(); st.Hits != 1 {
		t.Errorf("Stats().Hits = %d, want 1", st.Hits)
	}

	// Explicit defaults map to the same entry.
	third, _ := ext.SVG(ctx, "check", "", svg.Options{PreserveAspectRatio: svg.DefaultPreserveAspectRatio})
	if third != first {
		t.Error("explicit default options should hit the memo")
	}

	if err := ext.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	if out, _ := ext.SVG(ctx, "check", "", svg.Options{}); out != "" {
		t.Errorf("after Reset the deleted file should not render, got %s", out)
	}
}

func TestSVGNoOptionLeakage(t *testing.T) {
	ext, _ := newTestExtension(t, config.Defaults())
	ctx := context.Background()

	titled, err := ext.SVG(ctx, "check", "", svg.Options{ID: "a", Title: "T", PreserveAspectRatio: "none"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(titled, `id="a"`) || !strings.Contains(titled, "<title") {
		t.Fatalf("first call should carry its options: %s", titled)
	}

	plain, err := ext.SVG(ctx, "close", "", svg.Options{})
	if err != nil {
		t.Fatal(err)
	}
	for _, leaked := range []string{`id="a"`, "<title", "aria-labelledby", `preserveAspectRatio="none"`} {
		if strings.Contains(plain, leaked) {
			t.Errorf("option leaked into second call (%s): %s", leaked, plain)
		}
	}
	if !strings.Contains(plain, `preserveAspectRatio="xMinYMin"`) {
		t.Errorf("second call should use the default aspect ratio: %s", plain)
	}
}

func TestSVGSameIdentifierDifferentOptions(t *testing.T) {
	ext, _ := newTestExtension(t, config.Defaults())
	ctx := context.Background()

	withID, err := ext.SVG(ctx, "check", "", svg.Options{ID: "x"})
	if err != nil {
		t.Fatal(err)
	}
	withTitle, err := ext.SVG(ctx, "check", "", svg.Options{Title: "y"})
	if err != nil {
		t.Fatal(err)
	}

	if withID == withTitle {
		t.Fatalf("different options should not share a memo entry: %s", withID)
	}
	if !strings.Contains(withID, `id="x"`) || strings.Contains(withID, "<title") {
		t.Errorf("first call should have the id and no title: %s", withID)
	}
	if strings.Contains(withTitle, `id="x"`) || !strings.Contains(withTitle, ">y</title>") {
		t.Errorf("second call should have the title and no id: %s", withTitle)
	}
}

func TestSVGDefaultClass(t *testing.T) {
	settings := config.Defaults()
	settings.DefaultClass = "icon icon--default"
	ext, _ := newTestExtension(t, settings)
	ctx := context.Background()

	out, _ := ext.SVG(ctx, "check", "", svg.Options{})
	if !strings.Contains(out, `class="icon icon--default"`) {
		t.Errorf("default class should apply: %s", out)
	}
	out, _ = ext.SVG(ctx, "check", "custom", svg.Options{})
	if !strings.Contains(out, `class="custom"`) {
		t.Errorf("explicit class should replace the default: %s", out)
	}
}

func TestSVGRemoveScripts(t *testing.T) {
	ctx := context.Background()

	ext, _ := newTestExtension(t, config.Defaults())
	if out, _ := ext.SVG(ctx, "close", "", svg.Options{}); !strings.Contains(out, "<script>") {
		t.Errorf("scripts should be kept by default: %s", out)
	}

	settings := config.Defaults()
	settings.RemoveScriptTags = true
	ext, _ = newTestExtension(t, settings)
	if out, _ := ext.SVG(ctx, "close", "", svg.Options{}); strings.Contains(out, "script") {
		t.Errorf("scripts should be removed: %s", out)
	}
}

func TestSVGSoftFailures(t *testing.T) {
	ext, dir := newTestExtension(t, config.Defaults())
	writeFile(t, filepath.Join(dir, "broken.svg"), "<svg><g></svg>")
	writeFile(t, filepath.Join(dir, "text.svg"), "not an icon")

	tests := []struct {
		name       string
		identifier string
	}{
		{"unknown bare name", "nope"},
		{"malformed file", "broken"},
		{"no closing tag", "text"},
		{"missing path", filepath.Join(dir, "gone.svg")},
		{"plain text", "hello world."},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ext.SVG(context.Background(), tt.identifier, "", svg.Options{})
			if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
			if out != "" {
				t.Errorf("expected empty output, got %q", out)
			}
		})
	}
}

func TestSVGMissingRoot(t *testing.T) {
	ext, _ := newTestExtension(t, config.Defaults())
	_, err := ext.SVG(context.Background(), `<g><!-- </svg> --></g>`, "", svg.Options{})
	if !errors.Is(err, errors.ErrCodeMissingRoot) {
		t.Fatalf("expected MISSING_ROOT, got %v", err)
	}
	if !strings.Contains(err.Error(), "<g><!--") {
		t.Errorf("error should name the identifier: %v", err)
	}
}

func TestSVGExplicitPathAndLiteral(t *testing.T) {
	ext, dir := newTestExtension(t, config.Defaults())
	ctx := context.Background()

	out, err := ext.SVG(ctx, filepath.Join(dir, "check.svg"), "", svg.Options{})
	if err != nil || !strings.Contains(out, "M5 12l5 5L20 7") {
		t.Errorf("absolute path = %q, %v", out, err)
	}

	out, err = ext.SVG(ctx, "theme://dist/icons/close.svg", "", svg.Options{})
	if err != nil || !strings.Contains(out, "M6 6l12 12") {
		t.Errorf("logical path = %q, %v", out, err)
	}

	out, err = ext.SVG(ctx, `<svg><circle r="1"/></svg>`, "", svg.Options{ID: "dot"})
	if err != nil || !strings.Contains(out, `<svg id="dot"`) {
		t.Errorf("literal markup = %q, %v", out, err)
	}
}

func TestSVGDisabled(t *testing.T) {
	settings := config.Defaults()
	settings.Enabled = false
	ext, _ := newTestExtension(t, settings)

	if out, err := ext.SVG(context.Background(), "check", "", svg.Options{}); out != "" || err != nil {
		t.Errorf("disabled SVG = %q, %v", out, err)
	}
	if out := ext.Use("check", "", ""); out != "" {
		t.Errorf("disabled Use = %q", out)
	}
}

func TestSprite(t *testing.T) {
	ext, _ := newTestExtension(t, config.Defaults())
	ctx := context.Background()

	out, err := ext.Sprite(ctx, []string{"check", "close", "nope"}, svg.Options{})
	if err != nil {
		t.Fatalf("Sprite error: %v", err)
	}
	if !strings.HasPrefix(out, `<svg style="display:none">`) {
		t.Errorf("unexpected wrapper: %s", out)
	}
	if n := strings.Count(out, "<symbol"); n != 2 {
		t.Errorf("expected 2 symbols, got %d", n)
	}
	if strings.Contains(out, "script") {
		t.Errorf("sprite must not contain scripts: %s", out)
	}

	again, _ := ext.Sprite(ctx, []string{"check", "close", "nope"}, svg.Options{})
	if again != out {
		t.Error("second sprite call should hit the memo")
	}
	if st := ext.Stats(); st.Hits != 1 {
		t.Errorf("Stats().Hits = %d, want 1", st.Hits)
	}
}

func TestSpriteEmpty(t *testing.T) {
	ext, _ := newTestExtension(t, config.Defaults())
	out, err := ext.Sprite(context.Background(), []string{"nope", "missing"}, svg.Options{})
	if out != "" || err != nil {
		t.Errorf("Sprite of unresolved icons = %q, %v", out, err)
	}
}

func TestUse(t *testing.T) {
	settings := config.Defaults()
	settings.DefaultClass = "icon"
	ext, _ := newTestExtension(t, settings)

	out := ext.Use("icons/arrow-left.svg", "", "Back")
	for _, want := range []string{`href="#icon-arrow-left"`, `class="icon"`, `aria-labelledby="icon__title--test"`} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s: %s", want, out)
		}
	}
	if out := ext.Use("<svg/>", "", ""); out != "" {
		t.Errorf("literal markup has no symbol id, got %q", out)
	}
}

type recordingHooks struct {
	observability.NoopIconHooks
	rendered []string
	skipped  []string
}

func (h *recordingHooks) OnIconRendered(_ context.Context, kind, identifier string, _ time.Duration, _ error) {
	h.rendered = append(h.rendered, kind+":"+identifier)
}

func (h *recordingHooks) OnIconSkipped(_ context.Context, kind, identifier, reason string) {
	h.skipped = append(h.skipped, kind+":"+identifier+":"+reason)
}

func TestHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetIconHooks(hooks)
	defer observability.Reset()

	ext, _ := newTestExtension(t, config.Defaults())
	ctx := context.Background()
	ext.SVG(ctx, "check", "", svg.Options{})
	ext.SVG(ctx, "nope", "", svg.Options{})

	if len(hooks.rendered) != 1 || hooks.rendered[0] != "svg:check" {
		t.Errorf("rendered = %v", hooks.rendered)
	}
	if len(hooks.skipped) != 1 || hooks.skipped[0] != "svg:nope:unresolved" {
		t.Errorf("skipped = %v", hooks.skipped)
	}
}

func TestNewDefaults(t *testing.T) {
	ext := New(config.Defaults(), nil, nil, nil)
	if ext.Logger == nil || ext.Keyer == nil {
		t.Fatal("New should default logger and keyer")
	}
	if _, ok := ext.Cache.(*cache.MemoryCache); !ok {
		t.Errorf("default cache = %T, want *cache.MemoryCache", ext.Cache)
	}
	if ext.Resolver.Base() != config.DefaultPath {
		t.Errorf("Base() = %q", ext.Resolver.Base())
	}

	ext = New(config.Defaults(), nil, cache.NewNullCache(), nil)
	if st := ext.Stats(); st != (cache.Stats{}) {
		t.Errorf("null cache stats = %+v", st)
	}
}

func TestDisplay(t *testing.T) {
	if got := display("check"); got != "check" {
		t.Errorf("display(check) = %q", got)
	}
	long := "<svg>\n" + strings.Repeat("x", 100) + "</svg>"
	if got := display(long); len(got) > 70 || strings.Contains(got, "\n") {
		t.Errorf("display should shorten and flatten: %q", got)
	}
}

func render(t *testing.T, ext *Extension, text string) (string, error) {
	t.Helper()
	return renderData(t, ext, text, nil)
}

func renderData(t *testing.T, ext *Extension, text string, data any) (string, error) {
	t.Helper()
	tmpl, err := template.New("page").Funcs(ext.FuncMap(context.Background())).Parse(text)
	if err != nil {
		t.Fatalf("parse template: %v", err)
	}
	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	return buf.String(), err
}
