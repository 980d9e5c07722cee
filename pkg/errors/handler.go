package errors

import (
	stderrors "errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

var (
	// DefaultHandler receives every reported error. SetHandler replaces it.
	DefaultHandler ErrorHandler = &LogHandler{}

	handlerMu sync.RWMutex
)

// SetHandler installs h as the global handler. Nil restores a LogHandler on
// slog.Default().
func SetHandler(h ErrorHandler) {
	if h == nil {
		h = &LogHandler{}
	}
	handlerMu.Lock()
	DefaultHandler = h
	handlerMu.Unlock()
}

// withHandler calls fn with the current handler, if any.
func withHandler(fn func(ErrorHandler)) {
	handlerMu.RLock()
	h := DefaultHandler
	handlerMu.RUnlock()
	if h != nil {
		fn(h)
	}
}

func stamp(t *time.Time) {
	if t.IsZero() {
		*t = time.Now()
	}
}

// Report sends err to the global handler, stamping it if needed.
func Report(err *TableError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	withHandler(func(h ErrorHandler) { h.HandleError(err) })
}

// ReportPanic sends a recovered panic to the global handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	withHandler(func(h ErrorHandler) { h.HandlePanic(err) })
}

// ReportBoundaryError sends a failed build to the global handler.
func ReportBoundaryError(err *BoundaryError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	withHandler(func(h ErrorHandler) { h.HandleBoundaryError(err) })
}

// Recover reports a panic in progress and swallows it. Call it deferred:
//
//	defer errors.Recover("config.Watch")
func Recover(op string) {
	r := recover()
	if r == nil {
		return
	}
	ReportPanic(&PanicError{Op: op, Value: r, StackTrace: CaptureStack()})
}

// AsUsage reports whether a recovered panic value is, or wraps, a
// UsageError.
func AsUsage(r any) (*UsageError, bool) {
	if usage, ok := r.(*UsageError); ok {
		return usage, usage != nil
	}
	err, ok := r.(error)
	if !ok {
		return nil, false
	}
	var usage *UsageError
	if stderrors.As(err, &usage) {
		return usage, true
	}
	return nil, false
}

// stackDepth caps the frames CaptureStack records.
const stackDepth = 32

// CaptureStack formats the caller's stack, one "function\n\tfile:line" entry
// per frame, starting above the function that called CaptureStack.
func CaptureStack() string {
	pcs := make([]uintptr, stackDepth)
	n := runtime.Callers(3, pcs)
	if n == 0 {
		return ""
	}
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for more := true; more; {
		var frame runtime.Frame
		frame, more = frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
	}
	return sb.String()
}
