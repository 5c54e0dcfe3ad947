package printer

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// the char used to draw the progress bar ('FULL BLOCK')
const progressBarSymbol = "█"

const ellipsis = "…"

// maskToken replaces every occurrence of a configured secret.
const maskToken = "*****"

// formatTimestamp renders a time the same way for screen and log lines:
// date, space, time with millisecond precision.
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05.000")
}

// maskSecrets replaces every occurrence of each secret with the mask
// token, left to right, non-overlapping after a match.
func maskSecrets(text string, secrets []string) string {
	for _, secret := range secrets {
		if secret == "" {
			continue
		}

		text = strings.ReplaceAll(text, secret, maskToken)
	}

	return text
}

// lineStart decides how a terminal line begins relative to the previous
// message. The returned start is written to the message's own stream;
// closePrev asks the caller to first complete the previous line with a
// newline on its stream, and crPrev asks for a bare carriage return on
// the previous (different) stream that held an ephemeral message.
func lineStart(prev *Message, sameStream, spinning bool) (start string, closePrev, crPrev bool) {
	switch {
	case spinning:
		// forced to overwrite the previous message to present the spinner
		start = "\r"
	case prev == nil || prev.EndLine:
		// first message, or previous message completed the line: start clean
	case prev.Ephemeral:
		// the last one was ephemeral, overwrite it
		start = "\r"
	default:
		// complete the previous line, leaving that message ok
		closePrev = true
	}

	if prev != nil && prev.Ephemeral && !sameStream {
		// the overwrite must happen on the stream that holds the
		// ephemeral line, not on the new message's stream
		crPrev = true
		start = ""
	}

	return start, closePrev, crPrev
}

// formatLine fits text plus an optional spin suffix into a terminal of
// the given width: truncating with an ellipsis where allowed, keeping
// only the last would-be-wrapped line under a spin suffix, and padding
// with spaces so the cursor always lands one cell short of the edge.
func formatLine(text, spintext string, width int, ephemeral bool) string {
	usable := width - runewidth.StringWidth(spintext) - 1 // the 1 is the cursor itself
	tw := runewidth.StringWidth(text)

	if tw > usable {
		switch {
		case ephemeral:
			text = runewidth.Truncate(text, usable, ellipsis)
		case spintext != "":
			// rewriting the message with the spintext: keep only the last
			// line of what the terminal would have wrapped, and ensure
			// (again) that it fits
			text = lastWrappedLine(text, width)
			if runewidth.StringWidth(text) > usable {
				text = runewidth.Truncate(text, usable, ellipsis)
			}
		}

		tw = runewidth.StringWidth(text)
	}

	padding := usable - tw%width
	if padding < 0 {
		padding = 0
	}

	return text + spintext + strings.Repeat(" ", padding)
}

// lastWrappedLine returns the suffix of text that would occupy the last
// line after the terminal wrapped it at the given width.
func lastWrappedLine(text string, width int) string {
	remaining := runewidth.StringWidth(text) % width
	if remaining == 0 {
		// an exact multiple wraps with no leftover; the caller
		// truncates whatever does not fit
		return text
	}

	w := 0
	runes := []rune(text)

	for i := len(runes) - 1; i >= 0; i-- {
		w += runewidth.RuneWidth(runes[i])
		if w >= remaining {
			return string(runes[i:])
		}
	}

	return text
}

// formatBar renders a progress bar line: the text, a bracketed bar of
// filled and empty cells, and the numerical progress. When the terminal
// is too narrow for any bar cell, only the (possibly truncated) text is
// produced.
func formatBar(text string, progress, total float64, width int) string {
	numerical := fmt.Sprintf("%v/%v", progress, total)

	percentage := progress / total
	if percentage > 1 {
		percentage = 1
	}

	// terminal size minus the text and numerical progress, and 5 (the
	// cursor at the end, two spaces before and after the bar, and the two
	// surrounding brackets)
	barWidth := width - runewidth.StringWidth(text) - len(numerical) - 5

	if barWidth <= 0 {
		return runewidth.Truncate(text, width-1, "") // space for cursor
	}

	completed := int(math.Floor(float64(barWidth) * percentage))

	return text + " [" + strings.Repeat(progressBarSymbol, completed) +
		strings.Repeat(" ", barWidth-completed) + "] " + numerical
}

// timestampedText prepends the message timestamp when requested.
func timestampedText(m *Message, text string) string {
	if !m.UseTimestamp {
		return text
	}

	return formatTimestamp(m.CreatedAt) + " " + text
}
