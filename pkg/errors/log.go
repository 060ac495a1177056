package errors

import (
	"os"

	"github.com/charmbracelet/log"
)

// LogHandler is an ErrorHandler that writes errors through a charm logger.
type LogHandler struct {
	// Logger receives the records. Nil means a stderr logger.
	Logger *log.Logger
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

func (h *LogHandler) logger() *log.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return log.NewWithOptions(os.Stderr, log.Options{Prefix: "chart"})
}

// HandleError logs a ChartError.
func (h *LogHandler) HandleError(err *ChartError) {
	if err == nil {
		return
	}
	l := h.logger()
	if !h.Verbose {
		l.Error(err.Op, "err", err.Err)
		return
	}
	kv := []any{"kind", err.Kind, "err", err.Err}
	if err.Path != "" {
		kv = append(kv, "path", err.Path)
	}
	if err.StackTrace != "" {
		kv = append(kv, "stack", err.StackTrace)
	}
	l.Error(err.Op, kv...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	l := h.logger()
	kv := []any{"value", err.Value}
	if h.Verbose && err.StackTrace != "" {
		kv = append(kv, "stack", err.StackTrace)
	}
	if err.Op != "" {
		l.Error("panic in "+err.Op, kv...)
		return
	}
	l.Error("panic", kv...)
}
