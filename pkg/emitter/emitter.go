// Package emitter is the public façade of the messaging toolkit: it
// translates semantic calls plus a verbosity mode into the channel,
// timestamp and ephemerality parameters the printer needs, and owns the
// process-wide lifecycle (init, stop, pause, resume).
package emitter

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/ansel1/merry/v2"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/outblocks/emit/pkg/printer"
)

// Config carries everything Init needs.
type Config struct {
	Mode     Mode
	AppName  string
	Greeting string

	// LogPath overrides the computed per-application rotated log file;
	// a leading ~ is expanded.
	LogPath string

	// StreamingBrief live-appends bridged info records to the current
	// progress line in brief mode.
	StreamingBrief bool

	// DocsBaseURL is combined with error doc slugs.
	DocsBaseURL string

	// Stdout and Stderr override the process streams, mainly for tests.
	Stdout io.Writer
	Stderr io.Writer

	// Testing puts the emitter in test-support mode: the spinner is
	// never started and a prior active instance is silently stopped on
	// re-Init instead of being treated as a double init.
	Testing bool

	// Printer tweaks the underlying printer; nil for defaults.
	Printer *printer.Options
}

func (c Config) validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.AppName, validation.Required),
		validation.Field(&c.Greeting, validation.Required),
		validation.Field(&c.Mode, validation.Min(ModeQuiet), validation.Max(ModeTrace)),
	)
}

// Emitter is the main interface to all the message emitting
// functionality. Create one with New, wire it through the application's
// composition point, Init it once, and terminate it exactly once with
// EndedOK or Error (repeats are absorbed).
type Emitter struct {
	mu sync.Mutex

	mode     Mode
	printer  *printer.Printer
	logPath  string
	appName  string
	greeting string

	docsBaseURL    string
	streamingBrief bool

	stdout io.Writer
	stderr io.Writer

	printerOpts *printer.Options

	initiated bool
	stopped   bool
	paused    bool
	testMode  bool
}

// New returns an uninitialized Emitter. Every method except Init panics
// until Init is called; that is a bug in the embedding application, not
// a runtime condition.
func New() *Emitter {
	return &Emitter{}
}

// Init resolves the log file, boots the printer, writes the greeting to
// the log and applies the requested mode. A log file that cannot be
// opened is fatal; no fallback location is attempted.
func (e *Emitter) Init(cfg Config) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initiated && !e.stopped {
		if !e.testMode && !cfg.Testing {
			panic("emitter: double init")
		}

		// test fixtures re-init freely; drop the previous instance
		e.printer.Stop()
	}

	if err := cfg.validate(); err != nil {
		return merry.Errorf("invalid emitter config: %w", err)
	}

	logPath := cfg.LogPath

	var err error

	if logPath != "" {
		logPath, err = homedir.Expand(logPath)
		if err != nil {
			return merry.Wrap(err)
		}
	} else {
		logPath, err = resolveLogPath(cfg.AppName, time.Now())
		if err != nil {
			return err
		}
	}

	popts := cfg.Printer
	if popts == nil {
		popts = &printer.Options{}
	}

	if cfg.Testing {
		popts.DisableSpinner = true
	}

	p, err := printer.New(logPath, popts)
	if err != nil {
		return err
	}

	e.printer = p
	e.printerOpts = popts
	e.logPath = logPath
	e.appName = cfg.AppName
	e.greeting = cfg.Greeting
	e.docsBaseURL = cfg.DocsBaseURL
	e.streamingBrief = cfg.StreamingBrief
	e.testMode = cfg.Testing
	e.initiated = true
	e.stopped = false
	e.paused = false

	e.stdout = cfg.Stdout
	if e.stdout == nil {
		e.stdout = os.Stdout
	}

	e.stderr = cfg.Stderr
	if e.stderr == nil {
		e.stderr = os.Stderr
	}

	// before anything else, the greeting goes to the log
	e.printer.Show(nil, e.greeting, printer.ShowOptions{})

	e.applyMode(cfg.Mode)

	return nil
}

// check guards every non-termination method.
func (e *Emitter) check() {
	if !e.initiated {
		panic("emitter: not initialized")
	}

	if e.paused {
		panic("emitter: paused")
	}

	if e.stopped {
		panic("emitter: already stopped")
	}
}

// Mode returns the current verbosity mode.
func (e *Emitter) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.check()

	return e.mode
}

// SetMode switches the verbosity mode; any mode may transition to any
// other. Escalating to verbose or louder (re-)emits the greeting and
// the log location to the screen, so a user who turns verbosity up
// mid-run sees where the detailed record is kept.
func (e *Emitter) SetMode(mode Mode) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.check()
	e.applyMode(mode)
}

func (e *Emitter) applyMode(mode Mode) {
	e.mode = mode

	if mode < ModeVerbose {
		return
	}

	pol := policies[mode]

	for _, msg := range []string{e.greeting, fmt.Sprintf("Logging execution to '%s'", e.logPath)} {
		e.printer.Show(e.stderr, msg, printer.ShowOptions{
			UseTimestamp: pol.timestamps,
			EndLine:      true,
			AvoidLogging: true,
		})
	}
}

// LogPath returns the resolved log file location.
func (e *Emitter) LogPath() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.check()

	return e.logPath
}

// Message shows a final, result-grade text to the user on the primary
// channel (log-only in quiet mode). It clears any active streamed
// prefix.
func (e *Emitter) Message(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.check()
	e.printer.SetTerminalPrefix("")

	stream := e.stdout
	if e.mode == ModeQuiet {
		stream = nil
	}

	e.printer.Show(stream, text, printer.ShowOptions{
		UseTimestamp: policies[e.mode].timestamps,
	})
}

// Progress shows a step of a multi-step command on the secondary
// channel. Presentation follows the mode table: ephemeral in brief
// (unless permanent is set), permanent and possibly timestamped in
// louder modes, log-only in quiet mode.
func (e *Emitter) Progress(text string, permanent bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.check()

	pol := policies[e.mode].progress
	ephemeral := pol.ephemeral && !permanent

	if e.streamingBrief {
		// tag subsequently bridged records with the current step; a
		// permanent step closes the tagging
		prefix := ""
		if ephemeral {
			prefix = text
		}

		e.printer.SetTerminalPrefix(prefix)
	}

	e.printer.Show(e.progressStream(pol), text, printer.ShowOptions{
		Ephemeral:    ephemeral,
		UseTimestamp: pol.timestamp,
	})
}

// Verbose shows detail useful to the attentive user, on screen from
// verbose mode up, always logged.
func (e *Emitter) Verbose(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.check()
	e.showPolicy(policies[e.mode].verbose, text)
}

// Debug records the internals of the process, on screen from debug
// mode up, always logged.
func (e *Emitter) Debug(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.check()
	e.showPolicy(policies[e.mode].debug, text)
}

// Trace shows firehose-grade detail. Below trace mode it produces
// nothing at all, not even a log line.
func (e *Emitter) Trace(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.check()

	if !policies[e.mode].traceEnabled {
		return
	}

	e.printer.Show(e.stderr, text, printer.ShowOptions{UseTimestamp: true})
}

func (e *Emitter) showPolicy(pol callPolicy, text string) {
	var stream io.Writer
	if pol.onScreen {
		stream = e.stderr
	}

	e.printer.Show(stream, text, printer.ShowOptions{
		Ephemeral:    pol.ephemeral,
		UseTimestamp: pol.timestamp,
	})
}

func (e *Emitter) progressStream(pol callPolicy) io.Writer {
	if !pol.onScreen {
		return nil
	}

	return e.stderr
}

// SetSecrets replaces the list of strings masked out of every output.
func (e *Emitter) SetSecrets(secrets []string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.check()
	e.printer.SetSecrets(secrets)
}

// Pause suspends terminal control while fn runs: the printer is stopped
// (log flushed and closed) and recreated in append mode afterwards.
// During fn every other Emitter call fails fast instead of silently
// dropping output. An error from fn propagates after the resume
// cleanup runs.
func (e *Emitter) Pause(fn func() error) error {
	e.mu.Lock()
	e.check()

	pol := policies[e.mode].progress
	e.printer.Show(e.progressStream(pol), "Emitter: Pausing control of the terminal", printer.ShowOptions{
		Ephemeral:    pol.ephemeral,
		UseTimestamp: pol.timestamp,
	})
	e.printer.Stop()
	e.paused = true
	e.mu.Unlock()

	fnErr := fn()

	e.mu.Lock()
	defer e.mu.Unlock()

	e.paused = false

	p, err := printer.New(e.logPath, e.printerOpts)
	if err != nil {
		if fnErr != nil {
			return fnErr
		}

		return err
	}

	e.printer = p
	e.printer.Show(nil, "Emitter: Resuming control of the terminal", printer.ShowOptions{})

	return fnErr
}

// EndedOK finishes the messaging system gracefully. Repeated
// termination (in any combination with ReportError) is absorbed.
func (e *Emitter) EndedOK() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initiated {
		panic("emitter: not initialized")
	}

	if e.paused {
		panic("emitter: paused")
	}

	if e.stopped {
		return
	}

	e.printer.Stop()
	e.stopped = true
}

// ReportError renders a rich report for err (message, details, cause
// chain, resolution, docs and log location) and terminates the session.
// Error visibility is never fully suppressed: even quiet mode shows the
// main message and the log location on the secondary channel. Repeated
// termination is absorbed.
func (e *Emitter) ReportError(err *Error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initiated {
		panic("emitter: not initialized")
	}

	if e.paused {
		panic("emitter: paused")
	}

	if e.stopped {
		return
	}

	e.printer.SetTerminalPrefix("")

	pol := policies[e.mode]
	opts := printer.ShowOptions{UseTimestamp: pol.timestamps, EndLine: true}

	// the exact detail only reaches the screen in debug or louder;
	// everything is always in the log
	detailed := e.mode >= ModeDebug

	show := func(text string, onScreen bool) {
		stream := io.Writer(nil)
		if onScreen {
			stream = e.stderr
		}

		e.printer.Show(stream, text, opts)
	}

	show(err.Message, true)

	for _, line := range err.detailLines() {
		show(line, detailed)
	}

	for _, line := range err.causeLines() {
		show(line, detailed)
	}

	if err.Resolution != "" {
		show("Recommended resolution: "+err.Resolution, true)
	}

	if link := err.docsLink(e.docsBaseURL); link != "" {
		show("For more information, check out: "+link, true)
	}

	if !err.NoLogpathReport {
		show(fmt.Sprintf("Full execution log: '%s'", e.logPath), true)
	}

	e.printer.Stop()
	e.stopped = true
}
