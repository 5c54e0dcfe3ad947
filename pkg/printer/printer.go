// Package printer multiplexes application messages, forwarded stream
// lines and progress indication into a terminal surface and a log file,
// without interleaving corruption across goroutines.
package printer

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ansel1/merry/v2"
	"github.com/outblocks/emit/internal/util"
)

// WidthFunc reports the column count of the terminal behind a writer,
// or 0 when the writer is not an interactive terminal (captured output).
type WidthFunc func(w io.Writer) int

// Options tweaks a Printer, mainly for tests.
type Options struct {
	// DisableSpinner skips starting the spinner worker entirely, so test
	// output stays deterministic.
	DisableSpinner bool

	// SpinnerThreshold and SpinnerDelay override the spin timing
	// constants when positive.
	SpinnerThreshold time.Duration
	SpinnerDelay     time.Duration

	// Width overrides terminal detection.
	Width WidthFunc
}

// ShowOptions carries the presentation flags of a single Show call.
type ShowOptions struct {
	Ephemeral    bool
	UseTimestamp bool
	EndLine      bool
	AvoidLogging bool
}

// Printer coordinates writing messages to the output streams and the
// log file. It owns the previous-message state, the spinner worker and
// the secret masking; all mutation funnels through Show/ProgressBar.
type Printer struct {
	mu sync.Mutex

	log        *os.File
	prev       *Message
	unfinished io.Writer
	stopped    bool

	secrets        []string
	terminalPrefix string

	width   WidthFunc
	spinner *spinner
}

// New opens the log file in append mode and starts the spinner worker.
// A log file that cannot be opened is a fatal initialization error.
func New(logPath string, opts *Options) (*Printer, error) {
	if opts == nil {
		opts = &Options{}
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, merry.Errorf("cannot open log file '%s': %w", logPath, err)
	}

	p := &Printer{
		log:   f,
		width: opts.Width,
	}

	if p.width == nil {
		p.width = util.TerminalWidth
	}

	p.spinner = newSpinner(p, opts.SpinnerThreshold, opts.SpinnerDelay)
	if !opts.DisableSpinner {
		p.spinner.start()
	}

	return p, nil
}

// SetSecrets replaces the list of strings masked out of every output.
// The list is copied, later mutation by the caller has no effect.
func (p *Printer) SetSecrets(secrets []string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.secrets = append([]string(nil), secrets...)
}

// SetTerminalPrefix sets the string prepended to every message shown to
// the terminal.
func (p *Printer) SetTerminalPrefix(prefix string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.terminalPrefix = prefix
}

// Show presents a text on the given stream (nil for log-only) and,
// unless asked otherwise, appends it to the log file. No-op once the
// printer is stopped.
func (p *Printer) Show(stream io.Writer, text string, opts ShowOptions) {
	msg := p.newMessage(stream, text, opts, nil)
	if msg == nil {
		return
	}

	if stream != nil {
		// a regular message goes to the spinner for supervision
		p.spinner.supervise(msg)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}

	if stream != nil {
		p.writeMessage(msg)
	}

	if !opts.AvoidLogging {
		p.writeLog(msg)
	}
}

// ProgressBar presents a progress bar on the given stream. Bars are
// ephemeral (overwritten by whatever comes next), never spun and never
// logged; callers log textual markers around them through Show.
func (p *Printer) ProgressBar(stream io.Writer, text string, progress, total float64, useTimestamp bool) {
	msg := p.newMessage(stream, text, ShowOptions{Ephemeral: true, UseTimestamp: useTimestamp},
		&BarInfo{Progress: progress, Total: total})
	if msg == nil {
		return
	}

	if stream != nil {
		// a bar is not a spinnable message: release the spinner
		p.spinner.supervise(nil)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped || stream == nil {
		return
	}

	p.writeMessage(msg)
}

// Spin redraws a message with a spin suffix; only effective when the
// message's stream is an interactive terminal. Called by the spinner
// worker.
func (p *Printer) Spin(msg *Message, spintext string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}

	if width := p.width(msg.Stream); width > 0 {
		p.writeLineTerminal(msg, spintext, width)
	}
}

// Stop stops the spinner, completes or erases any unfinished terminal
// line and closes the log file. Safe to call only once; the Emitter
// guards repeated termination.
func (p *Printer) Stop() {
	p.mu.Lock()

	if p.stopped {
		p.mu.Unlock()
		return
	}

	p.mu.Unlock()

	// joined outside the lock: the worker may need one last redraw
	p.spinner.stop()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}

	if p.unfinished != nil {
		if p.prev != nil && p.prev.Ephemeral {
			// erase the pending ephemeral line and reset the cursor
			if width := p.width(p.unfinished); width > 0 {
				fmt.Fprint(p.unfinished, "\r"+strings.Repeat(" ", width-1)+"\r")
			}
		} else {
			// the last message is permanent: leave the cursor on the next
			// clean line
			fmt.Fprint(p.unfinished, "\n")
		}
	}

	p.log.Close()
	p.stopped = true
}

// newMessage builds an immutable record with secrets applied, or nil
// when the printer is already stopped.
func (p *Printer) newMessage(stream io.Writer, text string, opts ShowOptions, bar *BarInfo) *Message {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return nil
	}

	return &Message{
		Stream:         stream,
		Text:           strings.TrimRight(maskSecrets(text, p.secrets), " \t\r\n"),
		Ephemeral:      opts.Ephemeral,
		UseTimestamp:   opts.UseTimestamp,
		EndLine:        opts.EndLine,
		Bar:            bar,
		CreatedAt:      time.Now(),
		terminalPrefix: maskSecrets(p.terminalPrefix, p.secrets),
	}
}

// writeMessage renders a message through the terminal or captured path.
// Called with the lock held.
func (p *Printer) writeMessage(msg *Message) {
	width := p.width(msg.Stream)

	if msg.Bar != nil {
		// bars are only ever drawn on real terminals; captured output
		// silently skips them (the before/after markers are logged)
		if width > 0 {
			p.writeBarTerminal(msg, width)
		}
	} else if width > 0 {
		p.writeLineTerminal(msg, "", width)
	} else {
		p.writeLineCaptured(msg)
	}

	p.prev = msg
}

func (p *Printer) writeLineTerminal(msg *Message, spintext string, width int) {
	text := timestampedText(msg, strings.TrimRight(msg.prefixedText(), " "))

	start, closePrev, crPrev := lineStart(p.prev, p.prev == nil || p.prev.Stream == msg.Stream, spintext != "")

	if crPrev {
		// reset the cursor on the stream holding the ephemeral line
		fmt.Fprint(p.prev.Stream, "\r")
	}

	if closePrev {
		fmt.Fprint(p.prev.Stream, "\n")
	}

	// no need to rewrite the same ephemeral message repeatedly
	shouldOverwrite := spintext != "" || msg.EndLine || !msg.Ephemeral
	if shouldOverwrite || !msg.sameAs(p.prev) {
		fmt.Fprint(msg.Stream, start+formatLine(text, spintext, width, msg.Ephemeral))
	}

	if msg.EndLine {
		// finish the just shown line, a clean terminal is needed for some
		// external thing
		fmt.Fprint(msg.Stream, "\n")
		p.unfinished = nil
	} else {
		p.unfinished = msg.Stream
	}
}

func (p *Printer) writeBarTerminal(msg *Message, width int) {
	text := timestampedText(msg, msg.Text)

	start, closePrev, crPrev := lineStart(p.prev, p.prev == nil || p.prev.Stream == msg.Stream, false)

	if crPrev {
		fmt.Fprint(p.prev.Stream, "\r")
	}

	if closePrev {
		fmt.Fprint(p.prev.Stream, "\n")
	}

	fmt.Fprint(msg.Stream, start+formatBar(text, msg.Bar.Progress, msg.Bar.Total, width))
	p.unfinished = msg.Stream
}

// writeLineCaptured writes to a non-terminal destination: no control
// characters, no padding, no truncation.
func (p *Printer) writeLineCaptured(msg *Message) {
	fmt.Fprint(msg.Stream, timestampedText(msg, msg.Text)+"\n")
}

// writeLog appends the always-timestamped text to the log file. The
// file is written unbuffered so a crash leaves a complete log.
func (p *Printer) writeLog(msg *Message) {
	fmt.Fprintf(p.log, "%s %s\n", formatTimestamp(msg.CreatedAt), msg.Text)
}
