// Package diag renders log records as compiler-style diagnostics:
//
//	scc: error: file not found 'main.c'
//
// Informational records are printed as-is on the output stream; warnings
// and errors go to the error stream with a severity label.
package diag

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// LevelFatal marks a diagnostic that ends the run.
const LevelFatal = slog.LevelError + 4

// ANSI escape sequences for severity labels.
const (
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorReset  = "\033[0m"
)

// Options configures a Handler.
type Options struct {
	// Program prefixes every labelled diagnostic.
	Program string

	// Color wraps severity labels in ANSI colors.
	Color bool

	// Level is the minimum level emitted. Defaults to slog.LevelInfo.
	Level slog.Leveler
}

// Handler is a slog.Handler writing diagnostics to two streams.
type Handler struct {
	mu     *sync.Mutex
	out    io.Writer
	errOut io.Writer
	opts   Options
	attrs  []byte // attributes added by WithAttrs, already rendered
	groups []string
}

var _ slog.Handler = (*Handler)(nil)

// NewHandler creates a Handler. Records below slog.LevelWarn go to out,
// everything else to errOut.
func NewHandler(out, errOut io.Writer, opts *Options) *Handler {
	h := &Handler{mu: &sync.Mutex{}, out: out, errOut: errOut}
	if opts != nil {
		h.opts = *opts
	}
	if h.opts.Level == nil {
		h.opts.Level = slog.LevelInfo
	}
	return h
}

// New returns a logger backed by a Handler.
func New(out, errOut io.Writer, opts *Options) *slog.Logger {
	return slog.New(NewHandler(out, errOut, opts))
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

// Handle implements slog.Handler.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if label, color := severity(r.Level); label != "" {
		if h.opts.Program != "" {
			buf.WriteString(h.opts.Program)
			buf.WriteString(": ")
		}
		if h.opts.Color && color != "" {
			buf.WriteString(color + label + colorReset)
		} else {
			buf.WriteString(label)
		}
		buf.WriteString(": ")
	}
	buf.WriteString(r.Message)

	buf.Write(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&buf, h.groups, a)
		return true
	})
	buf.WriteByte('\n')

	w := h.out
	if r.Level >= slog.LevelWarn {
		w = h.errOut
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := w.Write(buf.Bytes())
	return err
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var buf bytes.Buffer
	buf.Write(h.attrs)
	for _, a := range attrs {
		writeAttr(&buf, h.groups, a)
	}
	h2 := *h
	h2.attrs = buf.Bytes()
	return &h2
}

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.groups = append(append([]string(nil), h.groups...), name)
	return &h2
}

// severity maps a level to its label. Info has no label.
func severity(level slog.Level) (label, color string) {
	switch {
	case level >= LevelFatal:
		return "fatal error", colorRed
	case level >= slog.LevelError:
		return "error", colorRed
	case level >= slog.LevelWarn:
		return "warning", colorYellow
	case level >= slog.LevelInfo:
		return "", ""
	default:
		return "debug", ""
	}
}

func writeAttr(buf *bytes.Buffer, groups []string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		sub := groups
		if a.Key != "" {
			sub = append(append([]string(nil), groups...), a.Key)
		}
		for _, ga := range a.Value.Group() {
			writeAttr(buf, sub, ga)
		}
		return
	}
	buf.WriteByte(' ')
	for _, g := range groups {
		buf.WriteString(g)
		buf.WriteByte('.')
	}
	fmt.Fprintf(buf, "%s=%v", a.Key, a.Value.Any())
}

// Fatal logs msg at LevelFatal.
func Fatal(logger *slog.Logger, msg string, args ...any) {
	logger.Log(context.Background(), LevelFatal, msg, args...)
}
