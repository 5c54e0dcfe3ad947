package printer

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/ansel1/merry/v2"
	"golang.org/x/text/encoding/unicode"
)

// prefix marker for every forwarded stream line
const streamLinePrefix = ":: "

// StreamForwarder drains a byte pipe fed by an external writer
// (typically a subprocess) and forwards assembled lines to the Printer.
//
// The caller writes arbitrary bytes to the forwarder (or hands its File
// to a subprocess); every newline-terminated chunk becomes one
// forwarded, prefixed, tab-expanded, lossily UTF-8 decoded line. Close
// flushes any pending partial line and joins the worker.
type StreamForwarder struct {
	printer *Printer
	stream  io.Writer
	opts    ShowOptions

	r, w *os.File
	done chan struct{}
}

// NewStreamForwarder creates the pipe and starts the drain worker. The
// stream and options decide where and how forwarded lines are shown,
// the same way a progress message is.
func NewStreamForwarder(p *Printer, stream io.Writer, opts ShowOptions) (*StreamForwarder, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, merry.Errorf("cannot create stream pipe: %w", err)
	}

	f := &StreamForwarder{
		printer: p,
		stream:  stream,
		opts:    opts,
		r:       r,
		w:       w,
		done:    make(chan struct{}),
	}

	go f.run()

	return f, nil
}

// Write feeds bytes into the pipe.
func (f *StreamForwarder) Write(b []byte) (int, error) {
	return f.w.Write(b)
}

// File exposes the writable end of the pipe, to be handed to a
// subprocess as its stdout/stderr.
func (f *StreamForwarder) File() *os.File {
	return f.w
}

// Close closes the writable end, waits for data already in flight to be
// flushed and the worker to exit, then releases the pipe. A subprocess
// still holding its own copy of the descriptor keeps the worker alive
// until that copy is closed too.
func (f *StreamForwarder) Close() error {
	err := f.w.Close()

	<-f.done

	if err2 := f.r.Close(); err == nil {
		err = err2
	}

	return merry.Wrap(err)
}

func (f *StreamForwarder) run() {
	defer close(f.done)

	var pending []byte

	buf := make([]byte, 4096)

	for {
		n, err := f.r.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)

			for {
				idx := bytes.IndexByte(pending, '\n')
				if idx < 0 {
					break
				}

				f.forward(pending[:idx])
				pending = pending[idx+1:]
			}
		}

		if err != nil {
			// EOF when every write end is closed; flush the final
			// partial line, if any
			if len(pending) != 0 {
				f.forward(pending)
			}

			return
		}
	}
}

// forward decodes one raw line and shows it through the printer with
// the stream marker prefix.
func (f *StreamForwarder) forward(raw []byte) {
	// invalid sequences are replaced, never fatal
	decoded, err := unicode.UTF8.NewDecoder().Bytes(raw)
	if err != nil {
		decoded = raw
	}

	line := strings.ReplaceAll(string(decoded), "\t", "  ")

	f.printer.Show(f.stream, streamLinePrefix+line, f.opts)
}
