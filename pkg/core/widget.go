package core

import "golang.org/x/net/html"

// Widget is an immutable description of part of the UI.
type Widget interface {
	// CreateElement instantiates the element that hosts this widget.
	CreateElement() Element
	// Key identifies the widget among its siblings during reconciliation.
	// Nil means the widget is matched by position.
	Key() any
}

// StatelessWidget describes UI that depends only on its own configuration.
type StatelessWidget interface {
	Widget
	Build(ctx BuildContext) Widget
}

// StatefulWidget describes UI that owns mutable State.
type StatefulWidget interface {
	Widget
	CreateState() State
}

// State holds the mutable part of a StatefulWidget.
type State interface {
	InitState()
	Build(ctx BuildContext) Widget
	SetState(fn func())
	Dispose()
	DidChangeDependencies()
	DidUpdateWidget(oldWidget StatefulWidget)
}

// ShouldRebuilder lets a widget veto a rebuild when its element receives a
// new configuration. ShouldRebuild is called on the incoming widget with the
// widget it replaces; returning false keeps the previously built subtree.
//
// Widgets without this method always rebuild on update.
type ShouldRebuilder interface {
	ShouldRebuild(oldWidget Widget) bool
}

// MarkupWidget produces an HTML node directly. It is the leaf of the build
// process: stateless and stateful widgets eventually build markup widgets.
type MarkupWidget interface {
	Widget
	// CreateNode returns a fresh node for this widget. Children are attached
	// by the framework and must not be added here.
	CreateNode() *html.Node
	// UpdateNode reconfigures an existing node after the widget changed.
	UpdateNode(node *html.Node)
	// ChildWidgets returns the widgets nested inside the node, in order.
	ChildWidgets() []Widget
}

// BuildContext is the handle a widget receives while building.
type BuildContext interface {
	Widget() Widget
	FindAncestor(predicate func(Element) bool) Element
}

// Element is the instantiation of a Widget at a location in the tree.
type Element interface {
	BuildContext
	Depth() int
	Mount(parent Element, slot any)
	Update(newWidget Widget)
	Unmount()
	RebuildIfNeeded()
	MarkNeedsBuild()
	VisitChildren(visitor func(Element) bool)
	// Node returns the markup produced by this element's subtree, or nil if
	// the subtree produced nothing.
	Node() *html.Node
}
