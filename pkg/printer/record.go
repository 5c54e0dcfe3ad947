package printer

import (
	"io"
	"time"
)

// BarInfo carries the numeric pair that switches a message into
// progress-bar rendering.
type BarInfo struct {
	Progress float64
	Total    float64
}

// Message describes one unit of output that may go to screen and log.
// It is immutable once built: the Printer only ever compares a new
// message against the previous one, it never mutates either.
type Message struct {
	// Stream is the output channel; nil means log-only.
	Stream io.Writer

	// Text is the literal content, trailing whitespace already stripped.
	Text string

	// Ephemeral marks the message as overwritable by the next one on the
	// same channel.
	Ephemeral bool

	// UseTimestamp prefixes the rendered text with a timestamp when shown
	// on a channel. Log writes are always timestamped regardless.
	UseTimestamp bool

	// EndLine forces completion of the current line, leaving a clean
	// terminal for some external writer.
	EndLine bool

	// Bar, when set, switches rendering from line mode to bar mode.
	Bar *BarInfo

	// CreatedAt is the capture time, used for timestamp rendering and
	// spinner elapsed-time computation.
	CreatedAt time.Time

	// terminalPrefix is prepended to the text on terminal renders only,
	// joined with the ":: " separator.
	terminalPrefix string
}

// sameAs compares two messages ignoring creation time. Used to skip
// redundant ephemeral redraws and redundant spinner supervision.
func (m *Message) sameAs(o *Message) bool {
	if m == nil || o == nil {
		return m == o
	}

	if m.Stream != o.Stream || m.Text != o.Text || m.Ephemeral != o.Ephemeral ||
		m.UseTimestamp != o.UseTimestamp || m.EndLine != o.EndLine ||
		m.terminalPrefix != o.terminalPrefix {
		return false
	}

	if (m.Bar == nil) != (o.Bar == nil) {
		return false
	}

	if m.Bar != nil && *m.Bar != *o.Bar {
		return false
	}

	return true
}

// prefixedText returns the text with the terminal prefix applied, if any.
func (m *Message) prefixedText() string {
	text := m.Text
	prefix := m.terminalPrefix

	// Don't repeat text: can happen due to the spinner.
	if prefix == "" || text == prefix {
		return text
	}

	separator := ":: "

	// The separator may already come from a forwarded stream line.
	if len(text) >= len(separator) && text[:len(separator)] == separator {
		separator = ""
	}

	return prefix + " " + separator + text
}
