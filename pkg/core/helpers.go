package core

// StatelessBase supplies CreateElement and a nil Key for stateless widgets.
//
//	type Badge struct {
//	    core.StatelessBase
//	    Label string
//	}
//
//	func (b Badge) Build(ctx core.BuildContext) core.Widget {
//	    return widgets.TagOf("span", widgets.TextOf(b.Label)).WithClass("badge")
//	}
//
// Widgets that need a key, like table rows, define their own Key method.
type StatelessBase struct{}

func (StatelessBase) CreateElement() Element { return NewStatelessElement() }

func (StatelessBase) Key() any { return nil }

// StatefulBase supplies CreateElement and a nil Key for stateful widgets.
// The embedding widget still implements CreateState.
type StatefulBase struct{}

func (StatefulBase) CreateElement() Element { return NewStatefulElement() }

func (StatefulBase) Key() any { return nil }

// MarkupBase supplies CreateElement and a nil Key for markup widgets. The
// embedding widget implements CreateNode, UpdateNode and ChildWidgets.
type MarkupBase struct{}

func (MarkupBase) CreateElement() Element { return NewMarkupElement() }

func (MarkupBase) Key() any { return nil }
