package svg

import "strings"

// RewriteOptions controls Rewrite.
type RewriteOptions struct {
	Options

	// Class is merged into the root class attribute.
	Class string

	// RemoveScripts strips every <script> element.
	RemoveScripts bool

	// NewID generates <title> ids. Defaults to NewTitleID.
	NewID func() string
}

// Rewrite applies id, class, script removal, title/ARIA and
// preserveAspectRatio to the first <svg> element of markup and serializes
// the document element.
//
// Unparseable markup returns ("", nil). Markup without an <svg> element
// returns a MISSING_ROOT error.
func Rewrite(markup string, opts RewriteOptions) (string, error) {
	doc, err := parse(markup)
	if err != nil {
		return "", nil
	}
	root, err := rootSVG(doc)
	if err != nil {
		return "", err
	}

	o := opts.Options.WithDefaults()
	newID := opts.NewID
	if newID == nil {
		newID = NewTitleID
	}

	if o.ID != "" {
		root.CreateAttr("id", o.ID)
	}
	if strings.TrimSpace(opts.Class) != "" {
		root.CreateAttr("class", MergeClasses(root.SelectAttrValue("class", ""), opts.Class))
	}
	if opts.RemoveScripts {
		removeElements(root, "script")
	}
	label(root, o.Title, newID)
	root.CreateAttr("preserveAspectRatio", o.PreserveAspectRatio)

	return serialize(doc.Root())
}
