// Package engine hosts a widget tree: it mounts the root, serializes event
// dispatch, flushes rebuilds and renders the resulting markup.
package engine

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"

	"github.com/go-drift/datatable/pkg/core"
	"github.com/go-drift/datatable/pkg/errors"
	"github.com/go-drift/datatable/pkg/widgets"
)

// Engine owns one mounted widget tree. All access to the tree goes through
// the engine's lock, so an Engine may be shared between goroutines.
type Engine struct {
	mu     sync.Mutex
	owner  *core.BuildOwner
	root   core.Element
	logger *slog.Logger
	frames int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for frame and dispatch records.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an engine with nothing mounted.
func New(opts ...Option) *Engine {
	e := &Engine{
		owner:  core.NewBuildOwner(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run mounts root, replacing any previously mounted tree. A usage error or
// panic raised while building is returned.
func (e *Engine) Run(root core.Widget) (err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer e.recoverInto(&err, "engine.Run")
	e.runLocked(root)
	return nil
}

// runLocked replaces the mounted tree with root. The caller holds e.mu.
func (e *Engine) runLocked(root core.Widget) {
	if e.root != nil {
		e.root.Unmount()
		e.root = nil
	}
	element := core.Inflate(root, e.owner)
	if element == nil {
		return
	}
	element.Mount(nil, nil)
	e.root = element
	e.flushLocked()
}

// Update reconfigures the mounted root with widget, as a parent rebuild
// would. Widgets of a different type or key replace the tree.
func (e *Engine) Update(widget core.Widget) (err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer e.recoverInto(&err, "engine.Update")

	if e.root == nil || widget == nil || !sameKind(e.root.Widget(), widget) {
		e.runLocked(widget)
		return nil
	}
	e.root.Update(widget)
	e.flushLocked()
	return nil
}

// Dispatch runs fn with exclusive access to the tree and then flushes any
// rebuilds it scheduled. A nil fn only flushes.
func (e *Engine) Dispatch(fn func()) (err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer e.recoverInto(&err, "engine.Dispatch")

	if fn != nil {
		fn()
	}
	e.flushLocked()
	return nil
}

// Click delivers a click to the first tag, in tree order, that has a click
// handler and satisfies match. It reports whether a tag was clicked.
func (e *Engine) Click(match func(widgets.Tag) bool) (bool, error) {
	clicked := false
	err := e.Dispatch(func() {
		target := findElement(e.root, func(element core.Element) bool {
			tag, ok := element.Widget().(widgets.Tag)
			return ok && tag.OnClick != nil && match(tag)
		})
		if target != nil {
			clicked = target.Widget().(widgets.Tag).Click()
		}
	})
	return clicked, err
}

// ClickAttr clicks the first clickable tag whose attribute key equals value.
func (e *Engine) ClickAttr(key, value string) (bool, error) {
	return e.Click(func(tag widgets.Tag) bool {
		return tag.Attr(key) == value
	})
}

// Inspect calls fn with the mounted root while holding the tree lock. The
// root is nil when nothing is mounted.
func (e *Engine) Inspect(fn func(root core.Element)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.root)
}

// Frames returns how many flushes have run.
func (e *Engine) Frames() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frames
}

// Render writes the current markup to w.
func (e *Engine) Render(w io.Writer) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.renderLocked(w)
}

// HTML returns the current markup as a string.
func (e *Engine) HTML() (string, error) {
	var b strings.Builder
	if err := e.Render(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (e *Engine) renderLocked(w io.Writer) error {
	e.flushLocked()
	if e.root == nil {
		return nil
	}
	node := e.root.Node()
	if node == nil {
		return nil
	}
	if err := html.Render(w, node); err != nil {
		return &errors.TableError{
			Op:        "engine.Render",
			Kind:      errors.KindRender,
			Err:       err,
			Timestamp: time.Now(),
		}
	}
	return nil
}

// Close unmounts the tree.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.root != nil {
		e.root.Unmount()
		e.root = nil
	}
}

func (e *Engine) flushLocked() {
	if !e.owner.NeedsWork() && e.frames > 0 {
		return
	}
	start := time.Now()
	rebuilt := e.owner.FlushBuild()
	e.frames++
	e.logger.Debug("frame flushed", "frame", e.frames, "rebuilt", rebuilt, "duration", time.Since(start))
}

// recoverInto converts a panic escaping the tree into err. Usage errors are
// returned as they are; any other value is reported as a PanicError.
func (e *Engine) recoverInto(err *error, op string) {
	r := recover()
	if r == nil {
		return
	}
	if usage, ok := errors.AsUsage(r); ok {
		e.logger.Debug("usage error", "op", op, "err", usage)
		*err = usage
		return
	}
	panicErr := &errors.PanicError{
		Op:         op,
		Value:      r,
		StackTrace: errors.CaptureStack(),
		Timestamp:  time.Now(),
	}
	errors.ReportPanic(panicErr)
	*err = fmt.Errorf("%s: %w", op, panicErr)
}

func sameKind(a, b core.Widget) bool {
	return reflect.TypeOf(a) == reflect.TypeOf(b) && reflect.DeepEqual(a.Key(), b.Key())
}

func findElement(root core.Element, match func(core.Element) bool) core.Element {
	if root == nil {
		return nil
	}
	if match(root) {
		return root
	}
	var found core.Element
	root.VisitChildren(func(child core.Element) bool {
		found = findElement(child, match)
		return found == nil
	})
	return found
}
