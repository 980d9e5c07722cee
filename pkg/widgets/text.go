package widgets

import (
	"golang.org/x/net/html"

	"github.com/go-drift/datatable/pkg/core"
)

// Text renders a text node. Content is escaped when the markup is written.
type Text struct {
	core.MarkupBase
	// Content is the text string to display.
	Content string
}

// TextOf creates a text widget with the given content.
func TextOf(content string) Text {
	return Text{Content: content}
}

func (t Text) CreateNode() *html.Node {
	return &html.Node{Type: html.TextNode}
}

func (t Text) UpdateNode(node *html.Node) {
	node.Data = t.Content
}

func (t Text) ChildWidgets() []core.Widget {
	return nil
}
