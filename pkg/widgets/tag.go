package widgets

import (
	"slices"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/go-drift/datatable/pkg/core"
)

// Tag renders one HTML element with the given children.
type Tag struct {
	core.MarkupBase
	// Name is the element name, e.g. "td".
	Name string
	// Class is written as the class attribute when non-empty.
	Class string
	// Attrs are extra attributes, written after class in the given order.
	Attrs []html.Attribute
	// OnClick is invoked when the host delivers a click to this element.
	OnClick func()
	// Children are rendered inside the element, in order.
	Children []core.Widget
}

// TagOf creates a tag with the given name and children.
func TagOf(name string, children ...core.Widget) Tag {
	return Tag{Name: name, Children: children}
}

// WithClass returns a copy of the tag with the class attribute set.
func (t Tag) WithClass(class string) Tag {
	t.Class = class
	return t
}

// WithAttr returns a copy of the tag with an extra attribute appended.
func (t Tag) WithAttr(key, value string) Tag {
	t.Attrs = append(slices.Clip(t.Attrs), html.Attribute{Key: key, Val: value})
	return t
}

// Attr returns the value of the named attribute, or "" when absent.
func (t Tag) Attr(key string) string {
	if key == "class" {
		return t.Class
	}
	for _, attr := range t.Attrs {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// Click invokes OnClick. It reports false when the tag has no handler.
func (t Tag) Click() bool {
	if t.OnClick == nil {
		return false
	}
	t.OnClick()
	return true
}

func (t Tag) CreateNode() *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     t.Name,
		DataAtom: atom.Lookup([]byte(t.Name)),
	}
}

func (t Tag) UpdateNode(node *html.Node) {
	node.Data = t.Name
	node.DataAtom = atom.Lookup([]byte(t.Name))
	attrs := make([]html.Attribute, 0, len(t.Attrs)+1)
	if t.Class != "" {
		attrs = append(attrs, html.Attribute{Key: "class", Val: t.Class})
	}
	node.Attr = append(attrs, t.Attrs...)
}

func (t Tag) ChildWidgets() []core.Widget {
	return t.Children
}
