package core

import (
	"reflect"
	"time"

	"golang.org/x/net/html"

	"github.com/go-drift/datatable/pkg/errors"
)

type elementBase struct {
	widget     Widget
	parent     Element
	depth      int
	slot       any
	buildOwner *BuildOwner
	dirty      bool
	self       Element
	mounted    bool
	builds     int
}

func (e *elementBase) Widget() Widget {
	return e.widget
}

func (e *elementBase) Depth() int {
	return e.depth
}

// BuildCount returns how many times this element has rebuilt since mounting.
func (e *elementBase) BuildCount() int {
	return e.builds
}

// MarkNeedsBuild flags the element dirty and schedules it with the build owner.
func (e *elementBase) MarkNeedsBuild() {
	if e.dirty {
		return
	}
	e.dirty = true
	if e.buildOwner != nil && e.self != nil {
		e.buildOwner.ScheduleBuild(e.self)
	}
}

func (e *elementBase) parentElement() Element {
	return e.parent
}

func (e *elementBase) setSelf(self Element) {
	e.self = self
}

func (e *elementBase) setWidget(widget Widget) {
	e.widget = widget
}

func (e *elementBase) setBuildOwner(owner *BuildOwner) {
	e.buildOwner = owner
}

func (e *elementBase) isMounted() bool {
	return e.mounted
}

func (e *elementBase) mount(parent Element, slot any) {
	e.parent = parent
	e.slot = slot
	if parent != nil {
		e.depth = parent.Depth() + 1
	}
	e.mounted = true
	e.dirty = true
}

// acceptUpdate stores newWidget and reports whether the element should
// rebuild for it.
func (e *elementBase) acceptUpdate(newWidget Widget) bool {
	oldWidget := e.widget
	e.widget = newWidget
	if skipper, ok := newWidget.(ShouldRebuilder); ok {
		return skipper.ShouldRebuild(oldWidget)
	}
	return true
}

func (e *elementBase) FindAncestor(predicate func(Element) bool) Element {
	current := e.parent
	for current != nil {
		if predicate(current) {
			return current
		}
		base, ok := current.(interface{ parentElement() Element })
		if !ok {
			break
		}
		current = base.parentElement()
	}
	return nil
}

// safeBuild executes a build function with panic recovery.
// Usage errors are reported and re-panicked; any other panic is reported and
// replaced by the configured error widget.
func (e *elementBase) safeBuild(buildFn func() Widget) Widget {
	var built Widget
	var buildErr *errors.BoundaryError

	func() {
		defer func() {
			if r := recover(); r != nil {
				buildErr = &errors.BoundaryError{
					Phase:      "build",
					Widget:     reflect.TypeOf(e.widget).String(),
					Recovered:  r,
					StackTrace: errors.CaptureStack(),
					Timestamp:  time.Now(),
				}
			}
		}()
		built = buildFn()
	}()

	if buildErr == nil {
		return built
	}

	errors.ReportBoundaryError(buildErr)
	if usage, ok := errors.AsUsage(buildErr.Recovered); ok {
		panic(usage)
	}
	if builder := GetErrorWidgetBuilder(); builder != nil {
		if errWidget := builder(buildErr); errWidget != nil {
			return errWidget
		}
	}
	return errorPlaceholder{err: buildErr}
}

// errorPlaceholder is the fallback shown when a build fails and no error
// widget builder produced anything. It renders nothing.
type errorPlaceholder struct {
	StatelessBase
	err *errors.BoundaryError
}

func (p errorPlaceholder) Build(ctx BuildContext) Widget {
	return nil
}

// componentElement is the part shared by elements whose widget builds a
// single child widget.
type componentElement struct {
	elementBase
	child Element
}

// rebuild runs build when the element is dirty and reconciles the result
// against the current child.
func (e *componentElement) rebuild(build func() Widget) {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false
	e.builds++
	e.child = updateChild(e.child, e.safeBuild(build), e.self, e.buildOwner, nil)
}

func (e *componentElement) unmountChild() {
	e.mounted = false
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
}

func (e *componentElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

func (e *componentElement) Node() *html.Node {
	if e.child == nil {
		return nil
	}
	return e.child.Node()
}

// StatelessElement hosts a StatelessWidget.
type StatelessElement struct {
	componentElement
}

// NewStatelessElement creates a StatelessElement. Inflate binds its widget
// and build owner.
func NewStatelessElement() *StatelessElement {
	element := &StatelessElement{}
	element.setSelf(element)
	return element
}

func (e *StatelessElement) Mount(parent Element, slot any) {
	e.mount(parent, slot)
	e.RebuildIfNeeded()
}

func (e *StatelessElement) Update(newWidget Widget) {
	if e.acceptUpdate(newWidget) {
		e.dirty = true
		e.RebuildIfNeeded()
	}
}

func (e *StatelessElement) Unmount() {
	e.unmountChild()
}

func (e *StatelessElement) RebuildIfNeeded() {
	e.rebuild(func() Widget {
		return e.widget.(StatelessWidget).Build(e)
	})
}

// StatefulElement hosts a StatefulWidget and the State it created.
type StatefulElement struct {
	componentElement
	state State
}

// NewStatefulElement creates a StatefulElement. Inflate binds its widget
// and build owner.
func NewStatefulElement() *StatefulElement {
	element := &StatefulElement{}
	element.setSelf(element)
	return element
}

// State returns the state object owned by this element.
func (e *StatefulElement) State() State {
	return e.state
}

// Mount creates the state, binds it and runs InitState before the first
// build.
func (e *StatefulElement) Mount(parent Element, slot any) {
	e.mount(parent, slot)
	e.state = e.widget.(StatefulWidget).CreateState()
	if binder, ok := e.state.(interface{ SetElement(*StatefulElement) }); ok {
		binder.SetElement(e)
	}
	e.state.InitState()
	e.RebuildIfNeeded()
}

// Update hands the new configuration to the state through DidUpdateWidget
// even when the widget vetoes the rebuild, so the state can refresh derived
// data.
func (e *StatefulElement) Update(newWidget Widget) {
	previous := e.widget.(StatefulWidget)
	rebuild := e.acceptUpdate(newWidget)
	e.state.DidUpdateWidget(previous)
	if rebuild {
		e.dirty = true
		e.RebuildIfNeeded()
	}
}

func (e *StatefulElement) Unmount() {
	e.unmountChild()
	if e.state != nil {
		e.state.Dispose()
	}
}

func (e *StatefulElement) RebuildIfNeeded() {
	e.rebuild(func() Widget {
		return e.state.Build(e)
	})
}

// MarkupElement hosts a MarkupWidget: it owns one HTML node and the elements
// of the widgets nested inside it.
type MarkupElement struct {
	elementBase
	node     *html.Node
	children []Element
}

// NewMarkupElement creates a MarkupElement. The widget and build owner are
// set by the framework during inflation.
func NewMarkupElement() *MarkupElement {
	element := &MarkupElement{}
	element.setSelf(element)
	return element
}

func (e *MarkupElement) Mount(parent Element, slot any) {
	e.mount(parent, slot)
	e.node = e.widget.(MarkupWidget).CreateNode()
	e.RebuildIfNeeded()
}

func (e *MarkupElement) Update(newWidget Widget) {
	if !e.acceptUpdate(newWidget) {
		return
	}
	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *MarkupElement) Unmount() {
	e.mounted = false
	for _, child := range e.children {
		child.Unmount()
	}
	e.children = nil
	if e.node != nil && e.node.Parent != nil {
		e.node.Parent.RemoveChild(e.node)
	}
}

func (e *MarkupElement) RebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false
	e.builds++
	widget := e.widget.(MarkupWidget)
	widget.UpdateNode(e.node)
	e.children = updateChildren(e.children, widget.ChildWidgets(), e, e.buildOwner)
}

func (e *MarkupElement) VisitChildren(visitor func(Element) bool) {
	for _, child := range e.children {
		if !visitor(child) {
			return
		}
	}
}

// Node returns this element's node with the current child nodes attached in
// order. Child nodes are re-linked on every call so subtrees that skipped a
// rebuild keep their existing nodes.
func (e *MarkupElement) Node() *html.Node {
	if e.node == nil {
		return nil
	}
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
	for _, child := range e.children {
		node := child.Node()
		if node == nil {
			continue
		}
		if node.Parent != nil {
			node.Parent.RemoveChild(node)
		}
		e.node.AppendChild(node)
	}
	return e.node
}

// childKey identifies a keyed child across rebuilds.
type childKey struct {
	typ reflect.Type
	key any
}

func keyOf(widget Widget) (childKey, bool) {
	key := widget.Key()
	if key == nil || !reflect.TypeOf(key).Comparable() {
		return childKey{}, false
	}
	return childKey{typ: reflect.TypeOf(widget), key: key}, true
}

// updateChildren reconciles a list of child elements against new widgets.
// Keyed widgets are matched by type and key wherever they moved; unkeyed
// widgets are matched by their position among the unkeyed children.
func updateChildren(old []Element, widgets []Widget, parent Element, owner *BuildOwner) []Element {
	keyed := make(map[childKey]Element)
	var unkeyed []Element
	for _, child := range old {
		if ck, ok := keyOf(child.Widget()); ok {
			keyed[ck] = child
		} else {
			unkeyed = append(unkeyed, child)
		}
	}

	updated := make([]Element, 0, len(widgets))
	next := 0
	for slot, widget := range widgets {
		if widget == nil {
			continue
		}
		var existing Element
		if ck, ok := keyOf(widget); ok {
			existing = keyed[ck]
			delete(keyed, ck)
		} else if next < len(unkeyed) {
			existing = unkeyed[next]
			next++
		}
		if child := updateChild(existing, widget, parent, owner, slot); child != nil {
			updated = append(updated, child)
		}
	}

	for _, child := range keyed {
		child.Unmount()
	}
	for _, child := range unkeyed[next:] {
		child.Unmount()
	}
	return updated
}

func updateChild(existing Element, widget Widget, parent Element, owner *BuildOwner, slot any) Element {
	if widget == nil {
		if existing != nil {
			existing.Unmount()
		}
		return nil
	}
	if existing != nil && canUpdateWidget(existing.Widget(), widget) {
		existing.Update(widget)
		return existing
	}
	if existing != nil {
		existing.Unmount()
	}
	element := Inflate(widget, owner)
	element.Mount(parent, slot)
	return element
}

func canUpdateWidget(existing Widget, next Widget) bool {
	if existing == nil || next == nil {
		return false
	}
	if reflect.TypeOf(existing) != reflect.TypeOf(next) {
		return false
	}
	return reflect.DeepEqual(existing.Key(), next.Key())
}

// Inflate creates the element for widget and binds it to owner. The element
// is not mounted.
func Inflate(widget Widget, owner *BuildOwner) Element {
	if widget == nil {
		return nil
	}
	element := widget.CreateElement()
	if setter, ok := element.(interface{ setWidget(Widget) }); ok {
		setter.setWidget(widget)
	}
	if setter, ok := element.(interface{ setBuildOwner(*BuildOwner) }); ok {
		setter.setBuildOwner(owner)
	}
	if setter, ok := element.(interface{ setSelf(Element) }); ok {
		setter.setSelf(element)
	}
	return element
}
