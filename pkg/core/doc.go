// Package core provides the widget and element framework interfaces and lifecycle.
//
// This package defines the foundational types for building declarative
// markup: Widget, Element, State, and BuildContext. Widgets describe what the
// output should look like, and the framework updates the element tree (and
// the HTML nodes it owns) to match.
//
// # Core Types
//
// Widget is an immutable description of part of the UI. Widgets are
// lightweight configuration values that can be created on every build.
//
// Element is the instantiation of a Widget at a particular location in the
// tree. Elements keep identity across builds, own State, and own the
// html.Node produced by markup widgets.
//
// # Stateful Widgets
//
// For widgets that need mutable state, embed StateBase in your state struct:
//
//	type myState struct {
//	    core.StateBase
//	    count int
//	}
//
//	func (s *myState) Build(ctx core.BuildContext) core.Widget {
//	    return widgets.Text{Content: strconv.Itoa(s.count)}
//	}
//
// # Skipping Rebuilds
//
// When a parent rebuilds, every child element receives its new widget. A
// widget implementing ShouldRebuilder can compare itself with the widget it
// replaces and return false to keep the previously built subtree, markup
// included. Nothing below a skipped element is visited.
//
// # Keys
//
// Children of a markup widget are matched to existing elements by Key when
// one is set (and comparable), otherwise by position among unkeyed siblings.
package core
