package svg

import (
	"strings"
	"testing"

	"github.com/matzehuels/svgext/pkg/errors"
)

const closeSVG = `<svg xmlns="http://www.w3.org/2000/svg" class="icon" viewBox="0 0 24 24"><script>alert(1)</script><path d="M6 6l12 12"/><path d="M18 6L6 18"/></svg>`

func TestSymbol(t *testing.T) {
	sym, err := Symbol(Entry{ID: "close", Markup: closeSVG}, "")
	if err != nil {
		t.Fatalf("Symbol error: %v", err)
	}
	if sym == nil {
		t.Fatal("Symbol returned nil")
	}
	if sym.Tag != "symbol" {
		t.Errorf("Tag = %q, want symbol", sym.Tag)
	}
	if got := sym.SelectAttrValue("id", ""); got != "icon-close" {
		t.Errorf("id = %q, want icon-close", got)
	}
	if got := sym.SelectAttrValue("viewBox", ""); got != "0 0 24 24" {
		t.Errorf("viewBox should be copied, got %q", got)
	}
	if got := sym.SelectAttrValue("preserveAspectRatio", ""); got != DefaultPreserveAspectRatio {
		t.Errorf("preserveAspectRatio = %q", got)
	}
	if sym.SelectAttr("class") != nil {
		t.Error("class should be stripped")
	}
	children := sym.ChildElements()
	if len(children) != 2 {
		t.Fatalf("expected 2 moved children, got %d", len(children))
	}
	for _, c := range children {
		if c.Tag != "path" {
			t.Errorf("unexpected child %q", c.Tag)
		}
	}
}

func TestSymbolIDFromRoot(t *testing.T) {
	sym, err := Symbol(Entry{Markup: `<svg id="star"><path/></svg>`}, "none")
	if err != nil || sym == nil {
		t.Fatalf("Symbol = %v, %v", sym, err)
	}
	if got := sym.SelectAttrValue("id", ""); got != "icon-star" {
		t.Errorf("id = %q, want icon-star", got)
	}

	sym, err = Symbol(Entry{Markup: `<svg id="icon-check"><path/></svg>`}, "")
	if err != nil || sym == nil {
		t.Fatalf("Symbol = %v, %v", sym, err)
	}
	if got := sym.SelectAttrValue("id", ""); got != "icon-check" {
		t.Errorf("id = %q, want icon-check without a doubled prefix", got)
	}

	sym, err = Symbol(Entry{Markup: `<svg><path/></svg>`}, "")
	if err != nil || sym != nil {
		t.Errorf("markup without any id should be skipped, got %v, %v", sym, err)
	}
}

func TestSprite(t *testing.T) {
	out, err := Sprite([]Entry{
		{ID: "check", Markup: checkSVG},
		{ID: "close", Markup: closeSVG},
	}, "")
	if err != nil {
		t.Fatalf("Sprite error: %v", err)
	}

	if !strings.HasPrefix(out, `<svg style="display:none">`) {
		t.Errorf("unexpected wrapper: %s", out)
	}
	if strings.Count(out, "<svg") != 1 {
		t.Errorf("expected a single svg wrapper: %s", out)
	}
	if n := strings.Count(out, "<symbol"); n != 2 {
		t.Errorf("expected 2 symbols, got %d: %s", n, out)
	}
	for _, want := range []string{`id="icon-check"`, `id="icon-close"`} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s: %s", want, out)
		}
	}
	if strings.Contains(out, "script") {
		t.Errorf("sprite must not contain scripts: %s", out)
	}
	if strings.Index(out, "icon-check") > strings.Index(out, "icon-close") {
		t.Errorf("symbols should keep input order: %s", out)
	}
}

func TestSpriteSkipsInvalidAndDuplicates(t *testing.T) {
	out, err := Sprite([]Entry{
		{ID: "check", Markup: checkSVG},
		{ID: "broken", Markup: "<notsvg>"},
		{ID: "unparsable", Markup: "<svg><g></svg>"},
		{ID: "check", Markup: closeSVG},
	}, "")
	if err != nil {
		t.Fatalf("Sprite error: %v", err)
	}
	if n := strings.Count(out, "<symbol"); n != 1 {
		t.Errorf("expected 1 symbol, got %d: %s", n, out)
	}
	if strings.Contains(out, "M6 6l12 12") {
		t.Errorf("first entry for a duplicate id should win: %s", out)
	}
}

func TestSpriteEmpty(t *testing.T) {
	for _, entries := range [][]Entry{nil, {{ID: "x", Markup: "<notsvg>"}}} {
		out, err := Sprite(entries, "")
		if err != nil || out != "" {
			t.Errorf("Sprite(%v) = %q, %v; want empty", entries, out, err)
		}
	}
}

func TestSpriteMissingRoot(t *testing.T) {
	_, err := Sprite([]Entry{{ID: "g", Markup: `<g><!-- </svg> --></g>`}}, "")
	if !errors.Is(err, errors.ErrCodeMissingRoot) {
		t.Errorf("expected missing root error, got %v", err)
	}
}
