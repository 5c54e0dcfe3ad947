package emitter

import (
	"os"

	"github.com/outblocks/emit/pkg/printer"
)

// Stream is the scoped controller returned by OpenStream: a writable
// byte stream whose newline-terminated chunks surface as prefixed
// lines, presented the way a progress message is under the current
// mode. Hand File to a subprocess, or Write to it directly; Close when
// the scope ends.
type Stream struct {
	forwarder *printer.StreamForwarder
}

// OpenStream hands the output of a third party (typically a
// subprocess) to the printer. When text is not empty it is first shown
// as a progress step.
func (e *Emitter) OpenStream(text string) (*Stream, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.check()

	pol := policies[e.mode].progress

	if text != "" {
		e.printer.Show(e.progressStream(pol), text, printer.ShowOptions{
			Ephemeral:    pol.ephemeral,
			UseTimestamp: pol.timestamp,
		})
	}

	f, err := printer.NewStreamForwarder(e.printer, e.progressStream(pol), printer.ShowOptions{
		Ephemeral:    pol.ephemeral,
		UseTimestamp: pol.timestamp,
	})
	if err != nil {
		return nil, err
	}

	return &Stream{forwarder: f}, nil
}

// Write feeds raw bytes into the stream.
func (s *Stream) Write(b []byte) (int, error) {
	return s.forwarder.Write(b)
}

// File exposes the writable pipe end for a subprocess's stdout or
// stderr.
func (s *Stream) File() *os.File {
	return s.forwarder.File()
}

// Close flushes data already in flight, waits for the reader worker to
// finish and releases the pipe.
func (s *Stream) Close() error {
	return s.forwarder.Close()
}
