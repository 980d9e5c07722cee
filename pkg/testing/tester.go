package testing

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/go-drift/datatable/pkg/core"
	"github.com/go-drift/datatable/pkg/engine"
	"github.com/go-drift/datatable/pkg/widgets"
)

// ErrNotFound is returned when a finder matched nothing.
var ErrNotFound = errors.New("finder matched no elements")

// ErrNotClickable is returned when Tap found no click handler.
var ErrNotClickable = errors.New("no clickable element at finder target")

// WidgetTester drives a widget tree through an engine without a server.
type WidgetTester struct {
	engine     *engine.Engine
	dispatches []func()
}

// NewWidgetTester creates a tester with nothing mounted.
// Call Cleanup() when done, or use NewWidgetTesterWithT() instead.
func NewWidgetTester() *WidgetTester {
	return &WidgetTester{engine: engine.New(engine.WithLogger(slog.New(slog.DiscardHandler)))}
}

// NewWidgetTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewWidgetTesterWithT(t *testing.T) *WidgetTester {
	tester := NewWidgetTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup unmounts the tree.
func (t *WidgetTester) Cleanup() {
	t.engine.Close()
}

// Engine returns the engine hosting the tree.
func (t *WidgetTester) Engine() *engine.Engine {
	return t.engine
}

// PumpWidget mounts widget, or updates the mounted root in place when widget
// has the same type and key, and runs one frame.
func (t *WidgetTester) PumpWidget(widget core.Widget) error {
	if err := t.engine.Update(widget); err != nil {
		return err
	}
	return t.Pump()
}

// Pump runs queued dispatches and flushes pending rebuilds.
func (t *WidgetTester) Pump() error {
	dispatches := t.dispatches
	t.dispatches = nil
	return t.engine.Dispatch(func() {
		for _, fn := range dispatches {
			fn()
		}
	})
}

// Dispatch queues a callback for the next Pump.
func (t *WidgetTester) Dispatch(fn func()) {
	t.dispatches = append(t.dispatches, fn)
}

// RootElement returns the root element of the mounted tree.
func (t *WidgetTester) RootElement() core.Element {
	var root core.Element
	t.engine.Inspect(func(r core.Element) { root = r })
	return root
}

// Find evaluates a finder against the current element tree.
func (t *WidgetTester) Find(finder Finder) FinderResult {
	root := t.RootElement()
	if root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		elements: finder.Evaluate(root),
		finder:   finder,
	}
}

// Tap clicks the first clickable tag at or below the first element matched
// by finder, then flushes the resulting rebuilds.
func (t *WidgetTester) Tap(finder Finder) error {
	target := t.Find(finder).FirstOrNil()
	if target == nil {
		return ErrNotFound
	}
	var tag *widgets.Tag
	walkTree(target, func(e core.Element) bool {
		if candidate, ok := e.Widget().(widgets.Tag); ok && candidate.OnClick != nil {
			tag = &candidate
			return false
		}
		return true
	})
	if tag == nil {
		return ErrNotClickable
	}
	return t.engine.Dispatch(func() { tag.Click() })
}

// HTML returns the current markup.
func (t *WidgetTester) HTML() (string, error) {
	return t.engine.HTML()
}
