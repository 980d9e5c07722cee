package core

import (
	"bytes"
	"testing"

	"golang.org/x/net/html"

	"github.com/go-drift/datatable/pkg/errors"
)

// testTag is a minimal markup widget for testing.
type testTag struct {
	MarkupBase
	tag      string
	key      any
	children []Widget
}

func (w testTag) Key() any { return w.key }

func (w testTag) CreateNode() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: w.tag}
}

func (w testTag) UpdateNode(node *html.Node) { node.Data = w.tag }

func (w testTag) ChildWidgets() []Widget { return w.children }

// testText is a markup widget producing a text node.
type testText struct {
	MarkupBase
	content string
}

func (w testText) CreateNode() *html.Node { return &html.Node{Type: html.TextNode} }

func (w testText) UpdateNode(node *html.Node) { node.Data = w.content }

func (w testText) ChildWidgets() []Widget { return nil }

// testStatelessWidget is a simple stateless widget for testing.
type testStatelessWidget struct {
	StatelessBase
	buildFn func(BuildContext) Widget
}

func (w testStatelessWidget) Build(ctx BuildContext) Widget {
	if w.buildFn != nil {
		return w.buildFn(ctx)
	}
	return nil
}

// countingWidget counts builds and can veto rebuilds.
type countingWidget struct {
	StatelessBase
	value  int
	builds *int
	skip   func(old countingWidget) bool
}

func (w countingWidget) Build(ctx BuildContext) Widget {
	*w.builds++
	return testText{content: "v"}
}

func (w countingWidget) ShouldRebuild(old Widget) bool {
	if w.skip == nil {
		return true
	}
	return !w.skip(old.(countingWidget))
}

// testStatefulWidget is a simple stateful widget for testing.
type testStatefulWidget struct {
	StatefulBase
	createStateFn func() State
}

func (w testStatefulWidget) CreateState() State {
	if w.createStateFn != nil {
		return w.createStateFn()
	}
	return &testState{}
}

type testState struct {
	StateBase
	buildFn    func(BuildContext) Widget
	updates    int
	initCalled bool
}

func (s *testState) InitState() { s.initCalled = true }

func (s *testState) DidUpdateWidget(old StatefulWidget) { s.updates++ }

func (s *testState) Build(ctx BuildContext) Widget {
	if s.buildFn != nil {
		return s.buildFn(ctx)
	}
	return nil
}

// testErrorHandler captures errors for testing.
type testErrorHandler struct {
	errors.LogHandler
	boundaryErrors []*errors.BoundaryError
}

func (h *testErrorHandler) HandleBoundaryError(err *errors.BoundaryError) {
	h.boundaryErrors = append(h.boundaryErrors, err)
}

func mountRoot(widget Widget, owner *BuildOwner) Element {
	root := Inflate(widget, owner)
	root.Mount(nil, nil)
	return root
}

func renderString(t *testing.T, e Element) string {
	t.Helper()
	node := e.Node()
	if node == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, node); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestMarkupElement_RendersNestedNodes(t *testing.T) {
	widget := testTag{tag: "ul", children: []Widget{
		testTag{tag: "li", children: []Widget{testText{content: "a"}}},
		testTag{tag: "li", children: []Widget{testText{content: "b"}}},
	}}

	root := mountRoot(widget, NewBuildOwner())

	got := renderString(t, root)
	want := "<ul><li>a</li><li>b</li></ul>"
	if got != want {
		t.Errorf("render = %q, want %q", got, want)
	}
}

func TestMarkupElement_NodeIsStableAcrossCalls(t *testing.T) {
	root := mountRoot(testTag{tag: "p", children: []Widget{testText{content: "x"}}}, NewBuildOwner())

	first := root.Node()
	second := root.Node()
	if first != second {
		t.Error("expected the same node across Node() calls")
	}
	if first.FirstChild == nil || first.FirstChild != first.LastChild {
		t.Error("expected exactly one child node after repeated syncs")
	}
}

func TestStatelessElement_BuildPanic_ReportsError(t *testing.T) {
	handler := &testErrorHandler{}
	errors.SetHandler(handler)
	defer errors.SetHandler(nil)

	widget := testStatelessWidget{
		buildFn: func(ctx BuildContext) Widget {
			panic("test panic in stateless build")
		},
	}

	element := mountRoot(widget, NewBuildOwner())

	if len(handler.boundaryErrors) != 1 {
		t.Fatalf("expected 1 boundary error, got %d", len(handler.boundaryErrors))
	}
	err := handler.boundaryErrors[0]
	if err.Recovered != "test panic in stateless build" {
		t.Errorf("expected panic value 'test panic in stateless build', got %v", err.Recovered)
	}
	if err.Phase != "build" {
		t.Errorf("expected Phase 'build', got %q", err.Phase)
	}
	if err.StackTrace == "" {
		t.Error("expected StackTrace to be captured")
	}

	stateless := element.(*StatelessElement)
	if _, ok := stateless.child.Widget().(errorPlaceholder); !ok {
		t.Errorf("expected errorPlaceholder widget, got %T", stateless.child.Widget())
	}
	if element.Node() != nil {
		t.Error("expected placeholder to render nothing")
	}
}

func TestSafeBuild_UsesCustomBuilder(t *testing.T) {
	var capturedErr *errors.BoundaryError
	SetErrorWidgetBuilder(func(err *errors.BoundaryError) Widget {
		capturedErr = err
		return testText{content: "failed"}
	})
	defer SetErrorWidgetBuilder(nil)

	handler := &testErrorHandler{}
	errors.SetHandler(handler)
	defer errors.SetHandler(nil)

	widget := testStatelessWidget{
		buildFn: func(ctx BuildContext) Widget {
			panic("custom builder test")
		},
	}

	element := mountRoot(widget, NewBuildOwner())

	if capturedErr == nil {
		t.Fatal("expected custom builder to be called")
	}
	if got := renderString(t, element); got != "failed" {
		t.Errorf("render = %q, want %q", got, "failed")
	}
}

func TestSafeBuild_RepanicsUsageErrors(t *testing.T) {
	handler := &testErrorHandler{}
	errors.SetHandler(handler)
	defer errors.SetHandler(nil)

	usage := errors.Usagef("test.Build", errors.KindInvalidUse, "not renderable")
	widget := testStatelessWidget{
		buildFn: func(ctx BuildContext) Widget {
			panic(usage)
		},
	}

	defer func() {
		r := recover()
		if r != usage {
			t.Errorf("expected usage error to propagate, got %v", r)
		}
		if len(handler.boundaryErrors) != 1 {
			t.Errorf("expected usage error to be reported once, got %d", len(handler.boundaryErrors))
		}
	}()
	mountRoot(widget, NewBuildOwner())
	t.Fatal("expected mount to panic")
}

func TestStatelessElement_ShouldRebuildSkipsBuild(t *testing.T) {
	builds := 0
	same := func(old countingWidget) bool { return true }
	var value int
	parent := testStatefulWidget{createStateFn: func() State {
		return &testState{buildFn: func(ctx BuildContext) Widget {
			return countingWidget{value: value, builds: &builds, skip: same}
		}}
	}}

	owner := NewBuildOwner()
	root := mountRoot(parent, owner)
	if builds != 1 {
		t.Fatalf("builds after mount = %d, want 1", builds)
	}

	value = 2
	root.(*StatefulElement).State().SetState(nil)
	owner.FlushBuild()

	if builds != 1 {
		t.Errorf("builds after skipped update = %d, want 1", builds)
	}
	child := root.(*StatefulElement).child.(*StatelessElement)
	if child.Widget().(countingWidget).value != 2 {
		t.Error("skipped element should still hold the new widget")
	}
}

func TestStatelessElement_ShouldRebuildAllowsBuild(t *testing.T) {
	builds := 0
	differs := func(old countingWidget) bool { return false }
	parent := testStatefulWidget{createStateFn: func() State {
		return &testState{buildFn: func(ctx BuildContext) Widget {
			return countingWidget{builds: &builds, skip: differs}
		}}
	}}

	owner := NewBuildOwner()
	root := mountRoot(parent, owner)
	root.(*StatefulElement).State().SetState(nil)
	owner.FlushBuild()

	if builds != 2 {
		t.Errorf("builds = %d, want 2", builds)
	}
}

func TestStatefulElement_LifecycleAndSetState(t *testing.T) {
	label := "one"
	state := &testState{}
	state.buildFn = func(ctx BuildContext) Widget { return testText{content: label} }
	widget := testStatefulWidget{createStateFn: func() State { return state }}

	owner := NewBuildOwner()
	needsFrame := 0
	owner.OnNeedsFrame = func() { needsFrame++ }
	root := mountRoot(widget, owner)

	if !state.initCalled {
		t.Error("expected InitState to be called on mount")
	}
	if got := renderString(t, root); got != "one" {
		t.Errorf("render = %q, want %q", got, "one")
	}

	state.SetState(func() { label = "two" })
	if !owner.NeedsWork() {
		t.Error("expected owner to have dirty elements")
	}
	if needsFrame != 1 {
		t.Errorf("OnNeedsFrame calls = %d, want 1", needsFrame)
	}
	if rebuilt := owner.FlushBuild(); rebuilt != 1 {
		t.Errorf("FlushBuild rebuilt %d elements, want 1", rebuilt)
	}

	if got := renderString(t, root); got != "two" {
		t.Errorf("render = %q, want %q", got, "two")
	}
	if owner.NeedsWork() {
		t.Error("expected owner to be clean after flush")
	}

	root.Unmount()
	if !state.IsDisposed() {
		t.Error("expected state to be disposed on unmount")
	}
	state.SetState(func() { label = "three" })
	if owner.NeedsWork() {
		t.Error("SetState after dispose should be a no-op")
	}
}

func TestUpdateChildren_KeyedChildrenKeepElements(t *testing.T) {
	order := []string{"a", "b", "c"}
	state := &testState{}
	state.buildFn = func(ctx BuildContext) Widget {
		items := make([]Widget, 0, len(order))
		for _, k := range order {
			items = append(items, testTag{tag: "li", key: k, children: []Widget{testText{content: k}}})
		}
		return testTag{tag: "ul", children: items}
	}

	owner := NewBuildOwner()
	root := mountRoot(testStatefulWidget{createStateFn: func() State { return state }}, owner)

	list := root.(*StatefulElement).child.(*MarkupElement)
	before := map[string]Element{}
	for _, child := range list.children {
		before[child.Widget().Key().(string)] = child
	}

	state.SetState(func() { order = []string{"c", "a"} })
	owner.FlushBuild()

	if len(list.children) != 2 {
		t.Fatalf("children = %d, want 2", len(list.children))
	}
	if list.children[0] != before["c"] || list.children[1] != before["a"] {
		t.Error("expected keyed elements to be reused in their new positions")
	}
	if before["b"].(*MarkupElement).mounted {
		t.Error("expected removed keyed child to be unmounted")
	}
	if got := renderString(t, root); got != "<ul><li>c</li><li>a</li></ul>" {
		t.Errorf("render = %q", got)
	}
}

func TestUpdateChild_TypeChangeReplacesElement(t *testing.T) {
	useText := true
	state := &testState{}
	state.buildFn = func(ctx BuildContext) Widget {
		if useText {
			return testText{content: "t"}
		}
		return testTag{tag: "b"}
	}
	owner := NewBuildOwner()
	root := mountRoot(testStatefulWidget{createStateFn: func() State { return state }}, owner)
	first := root.(*StatefulElement).child

	state.SetState(func() { useText = false })
	owner.FlushBuild()

	if root.(*StatefulElement).child == first {
		t.Error("expected a new element after widget type change")
	}
	if got := renderString(t, root); got != "<b></b>" {
		t.Errorf("render = %q, want %q", got, "<b></b>")
	}
}

func TestStatefulElement_UpdateCallsDidUpdateWidget(t *testing.T) {
	inner := &testState{}
	inner.buildFn = func(ctx BuildContext) Widget { return nil }
	child := testStatefulWidget{createStateFn: func() State { return inner }}

	outer := &testState{}
	outer.buildFn = func(ctx BuildContext) Widget { return child }

	owner := NewBuildOwner()
	mountRoot(testStatefulWidget{createStateFn: func() State { return outer }}, owner)

	outer.SetState(nil)
	owner.FlushBuild()

	if inner.updates != 1 {
		t.Errorf("DidUpdateWidget calls = %d, want 1", inner.updates)
	}
}

func TestFindAncestor(t *testing.T) {
	var found Element
	leaf := testStatelessWidget{buildFn: func(ctx BuildContext) Widget {
		found = ctx.FindAncestor(func(e Element) bool {
			_, ok := e.Widget().(testTag)
			return ok
		})
		return nil
	}}
	root := mountRoot(testTag{tag: "div", children: []Widget{leaf}}, NewBuildOwner())

	if found != root {
		t.Errorf("FindAncestor = %v, want root markup element", found)
	}
}
