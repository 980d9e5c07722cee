// Package errors provides structured error handling for datatable.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates malformed table or column configuration.
	KindConfig
	// KindParsing indicates a failure to decode a configuration or data file.
	KindParsing
	// KindRender indicates a failure while writing markup.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindBuild indicates a build-time widget error.
	KindBuild
	// KindInvalidUse indicates a widget was used somewhere it has no meaning,
	// such as building a column spec as visible content.
	KindInvalidUse
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindParsing:
		return "parsing"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	case KindBuild:
		return "build"
	case KindInvalidUse:
		return "invalid-use"
	default:
		return "unknown"
	}
}

// TableError represents a structured runtime error, typically wrapping an I/O
// or decoding failure.
type TableError struct {
	// Op is the operation that failed (e.g., "config.LoadData").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Path is the file involved, if applicable.
	Path string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *TableError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s [%s] path=%s: %v", e.Op, e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *TableError) Unwrap() error {
	return e.Err
}

// UsageError signals a programming mistake by the caller: a column without a
// reference, a duplicated reference, or a configuration-only widget mounted
// as visible UI. Usage errors are never turned into error widgets; the
// runtime reports them and lets them propagate.
type UsageError struct {
	// Op is the operation that detected the misuse (e.g., "table.ColumnSpec.Build").
	Op string
	// Kind is KindConfig or KindInvalidUse.
	Kind ErrorKind
	// Err describes the misuse.
	Err error
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// Usagef builds a UsageError with a formatted message.
func Usagef(op string, kind ErrorKind, format string, args ...any) *UsageError {
	return &UsageError{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "engine.Dispatch").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// BoundaryError represents a failure caught while building the widget tree.
type BoundaryError struct {
	// Phase is where the failure happened ("build", "dispatch", "render").
	Phase string
	// Widget is the type name of the widget that failed, if known.
	Widget string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error (nil for panics).
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BoundaryError) Error() string {
	name := e.Widget
	if name == "" {
		name = "widget"
	}
	if e.Recovered != nil {
		return fmt.Sprintf("panic during %s of %s: %v", e.Phase, name, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error during %s of %s: %v", e.Phase, name, e.Err)
	}
	return fmt.Sprintf("unknown error during %s of %s", e.Phase, name)
}

func (e *BoundaryError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	if err, ok := e.Recovered.(error); ok {
		return err
	}
	return nil
}

// ErrorHandler receives errors reported by the runtime.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *TableError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleBoundaryError is called when a widget build fails.
	HandleBoundaryError(err *BoundaryError)
}
