package svg

import (
	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"

	"github.com/matzehuels/svgext/pkg/errors"
)

// XML namespaces used on generated elements.
const (
	NamespaceSVG   = "http://www.w3.org/2000/svg"
	NamespaceXLink = "http://www.w3.org/1999/xlink"
)

// parse reads markup into a document. Files declaring a non-UTF-8 encoding
// are decoded through the charset package.
func parse(markup string) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if err := doc.ReadFromString(markup); err != nil {
		return nil, err
	}
	if doc.Root() == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "markup has no elements")
	}
	return doc, nil
}

// rootSVG returns the first <svg> element of doc in document order.
func rootSVG(doc *etree.Document) (*etree.Element, error) {
	if el := findElement(doc.Root(), "svg"); el != nil {
		return el, nil
	}
	return nil, errors.New(errors.ErrCodeMissingRoot, "could not find an <svg> element in markup")
}

func findElement(el *etree.Element, tag string) *etree.Element {
	if el.Tag == tag {
		return el
	}
	for _, c := range el.ChildElements() {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// removeElements detaches every descendant of root named tag and returns
// how many were removed.
func removeElements(root *etree.Element, tag string) int {
	var found []*etree.Element
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, c := range e.ChildElements() {
			if c.Tag == tag {
				found = append(found, c)
				continue
			}
			walk(c)
		}
	}
	walk(root)
	for _, e := range found {
		e.Parent().RemoveChild(e)
	}
	return len(found)
}

// label applies the accessibility attributes. With a title a <title> child
// is inserted first and referenced by aria-labelledby; without one the
// graphic is marked decorative.
func label(el *etree.Element, title string, newID func() string) {
	el.CreateAttr("role", "img")
	if title == "" {
		el.RemoveAttr("aria-labelledby")
		el.CreateAttr("aria-hidden", "true")
		return
	}

	id := newID()
	t := etree.NewElement("title")
	t.CreateAttr("id", id)
	t.SetText(title)
	el.InsertChildAt(0, t)

	el.RemoveAttr("aria-hidden")
	el.CreateAttr("aria-labelledby", id)
}

// serialize writes el and its subtree without an XML declaration.
func serialize(el *etree.Element) (string, error) {
	doc := etree.NewDocument()
	doc.SetRoot(el)
	return doc.WriteToString()
}
