package printer

import (
	"fmt"
	"sync"
	"time"
)

const (
	// how long a message stays current before the spinner kicks in
	defaultSpinnerThreshold = 2 * time.Second

	// time between each spinner redraw
	defaultSpinnerDelay = 100 * time.Millisecond
)

var spinnerGlyphs = []rune{'-', '\\', '|', '/'}

// stopMessage is a sentinel posted on the queue to terminate the worker.
var stopMessage = &Message{}

// spinner is a supervisor goroutine that redraws long-standing messages
// with a spin glyph and the elapsed time next to them.
//
// Every shown message (or nil, meaning there is nothing to supervise) is
// posted through supervise. When a message stays current longer than the
// threshold the worker repeatedly calls the printer's Spin with a fresh
// suffix, until a new message arrives; a last Spin with a blank suffix
// then cleans the glyph. The lock handshake in supervise guarantees the
// caller does not render on top of an in-flight spin redraw.
type spinner struct {
	printer *Printer

	threshold time.Duration
	delay     time.Duration

	queue chan *Message
	done  chan struct{}

	// held while the worker is in its spinning state
	spinMu sync.Mutex

	// serializes supervise callers and guards supervised
	superviseMu sync.Mutex
	supervised  *Message

	started bool
}

func newSpinner(p *Printer, threshold, delay time.Duration) *spinner {
	if threshold <= 0 {
		threshold = defaultSpinnerThreshold
	}

	if delay <= 0 {
		delay = defaultSpinnerDelay
	}

	return &spinner{
		printer:   p,
		threshold: threshold,
		delay:     delay,
		queue:     make(chan *Message),
		done:      make(chan struct{}),
	}
}

func (s *spinner) start() {
	s.started = true

	go s.run()
}

func (s *spinner) run() {
	defer close(s.done)

	var prev *Message

	tInit := time.Now()

	for prev != stopMessage {
		var newMsg *Message

		select {
		case newMsg = <-s.queue:
		case <-time.After(s.threshold):
			// waited too much: start showing a spinner (if there is a
			// previous message to spin) until further info arrives
			if prev == nil || prev.EndLine {
				continue
			}

			glyph := 0

			s.spinMu.Lock()

		spinning:
			for {
				elapsed := time.Since(tInit).Seconds()
				spintext := fmt.Sprintf(" %c (%.1fs)", spinnerGlyphs[glyph%len(spinnerGlyphs)], elapsed)
				glyph++

				s.printer.Spin(prev, spintext)

				select {
				case newMsg = <-s.queue:
					// got a new message: clean the spinner and exit the
					// spinning state
					s.printer.Spin(prev, " ")
					break spinning
				case <-time.After(s.delay):
				}
			}

			s.spinMu.Unlock()
		}

		prev = newMsg
		tInit = time.Now()
	}
}

// supervise hands a new current message (or nil) to the worker. It
// blocks until the worker has either taken it or finished cleaning up
// the spin state of the previous one.
func (s *spinner) supervise(m *Message) {
	if !s.started {
		return
	}

	s.superviseMu.Lock()
	defer s.superviseMu.Unlock()

	// don't bother the worker when repeating the same message
	if m.sameAs(s.supervised) {
		return
	}

	s.supervised = m

	select {
	case s.queue <- m:
	case <-s.done:
		// worker already asked to stop, nothing left to supervise
		return
	}

	// (maybe) wait for the worker to exit its spinning state, which does
	// some cleaning
	s.spinMu.Lock()
	//nolint:staticcheck
	s.spinMu.Unlock()
}

// stop terminates the worker after any in-flight cycle finishes. No
// redraw happens after stop returns.
func (s *spinner) stop() {
	if !s.started {
		return
	}

	s.queue <- stopMessage
	<-s.done
}
