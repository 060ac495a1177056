// Package errors provides structured error handling for chart bindings.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates an invalid configuration or scene file.
	KindConfig
	// KindLifecycle indicates an operation issued in the wrong adapter state.
	KindLifecycle
	// KindEngine indicates a failure reported by a chart engine.
	KindEngine
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindLifecycle:
		return "lifecycle"
	case KindEngine:
		return "engine"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ChartError represents a structured error raised around a chart binding.
type ChartError struct {
	// Op is the operation that failed (e.g., "chart.Mount").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Path is the configuration path or file involved, if applicable.
	Path string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ChartError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s [%s] path=%s: %v", e.Op, e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ChartError) Unwrap() error {
	return e.Err
}

// New returns a ChartError for op and kind wrapping err.
func New(op string, kind ErrorKind, err error) *ChartError {
	return &ChartError{Op: op, Kind: kind, Err: err}
}

// Errorf is like New but formats the underlying error.
func Errorf(op string, kind ErrorKind, format string, args ...any) *ChartError {
	return &ChartError{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// IsKind reports whether err is, or wraps, a ChartError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ce *ChartError
	if !stderrors.As(err, &ce) {
		return false
	}
	return ce.Kind == kind
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "chartctl.replay").
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

// ErrorHandler receives reported errors.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *ChartError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
