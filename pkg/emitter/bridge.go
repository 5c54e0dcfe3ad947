package emitter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/outblocks/emit/pkg/printer"
)

// Level classifies a bridged log record. Any logging facility can be
// adapted by mapping its severities onto these five.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarning
	LevelError
)

// LogRecord is the minimal shape the bridge consumes: a severity and an
// already-rendered message.
type LogRecord struct {
	Level   Level
	Message string
}

// EmitLogRecord feeds one record from the host logging facility into
// the emitter. Severity maps onto the mode table the way the semantic
// calls do: errors and warnings behave like permanent progress, info
// like verbose content (or a live suffix on the current progress line
// in streaming-brief mode), debug like debug content; trace records are
// dropped entirely below trace mode.
func (e *Emitter) EmitLogRecord(rec LogRecord) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.check()

	pol := policies[e.mode]

	switch rec.Level {
	case LevelError, LevelWarning:
		e.showPolicy(callPolicy{
			onScreen:  e.mode != ModeQuiet,
			timestamp: pol.timestamps,
		}, rec.Message)
	case LevelInfo:
		if e.streamingBrief && e.mode == ModeBrief {
			// live-append to the current progress line; the prefix set by
			// the last ephemeral progress does the tagging
			e.showPolicy(callPolicy{onScreen: true, ephemeral: true}, rec.Message)
			return
		}

		e.showPolicy(pol.verbose, rec.Message)
	case LevelDebug:
		e.showPolicy(pol.debug, rec.Message)
	case LevelTrace:
		if !pol.traceEnabled {
			return
		}

		e.printer.Show(e.stderr, rec.Message, printer.ShowOptions{UseTimestamp: true})
	}
}

// captures reports whether a record of the given level would produce
// any output at all under the current mode.
func (e *Emitter) captures(level Level) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initiated || e.stopped || e.paused {
		return false
	}

	if level == LevelTrace {
		return policies[e.mode].traceEnabled
	}

	return true
}

// SlogHandler adapts the standard structured-logging facility to the
// bridge, so library code logging through slog funnels into the same
// terminal surface and log file.
type SlogHandler struct {
	e     *Emitter
	attrs []slog.Attr
	group string
}

// NewSlogHandler returns a handler feeding e. Install it with
// slog.SetDefault(slog.New(handler)) at the composition point.
func NewSlogHandler(e *Emitter) *SlogHandler {
	return &SlogHandler{e: e}
}

func (h *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.e.captures(bridgeLevel(level))
}

func (h *SlogHandler) Handle(_ context.Context, rec slog.Record) error {
	var b strings.Builder

	b.WriteString(rec.Message)

	appendAttr := func(a slog.Attr) {
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}

		fmt.Fprintf(&b, " %s=%v", key, a.Value)
	}

	for _, a := range h.attrs {
		appendAttr(a)
	}

	rec.Attrs(func(a slog.Attr) bool {
		appendAttr(a)
		return true
	})

	h.e.EmitLogRecord(LogRecord{
		Level:   bridgeLevel(rec.Level),
		Message: b.String(),
	})

	return nil
}

func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)

	return &h2
}

func (h *SlogHandler) WithGroup(name string) slog.Handler {
	h2 := *h
	if h2.group != "" {
		h2.group += "." + name
	} else {
		h2.group = name
	}

	return &h2
}

func bridgeLevel(level slog.Level) Level {
	switch {
	case level < slog.LevelDebug:
		return LevelTrace
	case level < slog.LevelInfo:
		return LevelDebug
	case level < slog.LevelWarn:
		return LevelInfo
	case level < slog.LevelError:
		return LevelWarning
	default:
		return LevelError
	}
}
