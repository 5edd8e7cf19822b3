package svg

import "github.com/beevik/etree"

// Use returns an <svg><use/></svg> snippet referencing the sprite symbol
// "icon-<id>". An empty id returns the empty string. newID may be nil.
func Use(id, class, title string, newID func() string) string {
	if id == "" {
		return ""
	}
	if newID == nil {
		newID = NewTitleID
	}

	el := etree.NewElement("svg")
	el.CreateAttr("xmlns", NamespaceSVG)
	el.CreateAttr("xmlns:xlink", NamespaceXLink)
	if class != "" {
		el.CreateAttr("class", class)
	}

	ref := "#" + SymbolPrefix + id
	use := el.CreateElement("use")
	use.CreateAttr("href", ref)
	use.CreateAttr("xlink:href", ref)

	label(el, title, newID)

	out, err := serialize(el)
	if err != nil {
		return ""
	}
	return out
}
