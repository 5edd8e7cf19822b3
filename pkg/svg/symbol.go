package svg

import (
	"strings"

	"github.com/beevik/etree"
)

// SymbolPrefix prefixes every sprite symbol id.
const SymbolPrefix = "icon-"

// Entry is one icon of a sprite.
type Entry struct {
	// ID is the symbol id without SymbolPrefix. When empty the id attribute
	// of the icon's root element is used.
	ID     string
	Markup string
}

// Symbol converts an icon into a <symbol> element. Scripts and the class
// attribute are dropped, element children move into the symbol and the
// remaining root attributes are copied onto it.
//
// It returns (nil, nil) when the markup does not parse or no id can be
// derived, and a MISSING_ROOT error when it parses without an <svg>.
func Symbol(e Entry, preserveAspectRatio string) (*etree.Element, error) {
	doc, err := parse(e.Markup)
	if err != nil {
		return nil, nil
	}
	root, err := rootSVG(doc)
	if err != nil {
		return nil, err
	}

	id := e.ID
	if id == "" {
		id = strings.TrimPrefix(root.SelectAttrValue("id", ""), SymbolPrefix)
	}
	if id == "" {
		return nil, nil
	}
	if preserveAspectRatio == "" {
		preserveAspectRatio = DefaultPreserveAspectRatio
	}

	removeElements(root, "script")
	root.RemoveAttr("class")

	sym := etree.NewElement("symbol")
	for _, a := range root.Attr {
		sym.CreateAttr(a.FullKey(), a.Value)
	}
	for _, c := range root.ChildElements() {
		sym.AddChild(c)
	}
	sym.CreateAttr("id", SymbolPrefix+id)
	sym.CreateAttr("preserveAspectRatio", preserveAspectRatio)
	return sym, nil
}

// Sprite assembles entries into one hidden <svg>. Entries failing Valid or
// parsing are skipped, as are later entries repeating a symbol id. With no
// symbols left the result is the empty string.
func Sprite(entries []Entry, preserveAspectRatio string) (string, error) {
	wrapper := etree.NewElement("svg")
	wrapper.CreateAttr("style", "display:none")

	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if !Valid(e.Markup) {
			continue
		}
		sym, err := Symbol(e, preserveAspectRatio)
		if err != nil {
			return "", err
		}
		if sym == nil {
			continue
		}
		id := sym.SelectAttrValue("id", "")
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		wrapper.AddChild(sym)
	}

	if len(seen) == 0 {
		return "", nil
	}
	return serialize(wrapper)
}
