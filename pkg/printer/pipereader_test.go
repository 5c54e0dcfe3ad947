package printer

import (
	"bytes"
	"testing"
)

func TestStreamForwarderLines(t *testing.T) {
	p := newTestPrinter(t)
	out := &bytes.Buffer{}

	f, err := NewStreamForwarder(p, out, ShowOptions{})
	if err != nil {
		t.Fatalf("create forwarder: %v", err)
	}

	// chunk boundaries do not have to align with line boundaries
	if _, err := f.Write([]byte("hello\nwor")); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := f.Write([]byte("ld\n")); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	p.Stop()

	want := ":: hello\n:: world\n"
	if got := out.String(); got != want {
		t.Fatalf("forwarded output = %q, want %q", got, want)
	}
}

func TestStreamForwarderFlushesPartialLineOnClose(t *testing.T) {
	p := newTestPrinter(t)
	out := &bytes.Buffer{}

	f, err := NewStreamForwarder(p, out, ShowOptions{})
	if err != nil {
		t.Fatalf("create forwarder: %v", err)
	}

	if _, err := f.Write([]byte("no newline at the end")); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	p.Stop()

	want := ":: no newline at the end\n"
	if got := out.String(); got != want {
		t.Fatalf("forwarded output = %q, want %q", got, want)
	}
}

func TestStreamForwarderExpandsTabs(t *testing.T) {
	p := newTestPrinter(t)
	out := &bytes.Buffer{}

	f, err := NewStreamForwarder(p, out, ShowOptions{})
	if err != nil {
		t.Fatalf("create forwarder: %v", err)
	}

	if _, err := f.Write([]byte("col1\tcol2\n")); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	p.Stop()

	want := ":: col1  col2\n"
	if got := out.String(); got != want {
		t.Fatalf("forwarded output = %q, want %q", got, want)
	}
}

func TestStreamForwarderReplacesInvalidUTF8(t *testing.T) {
	p := newTestPrinter(t)
	out := &bytes.Buffer{}

	f, err := NewStreamForwarder(p, out, ShowOptions{})
	if err != nil {
		t.Fatalf("create forwarder: %v", err)
	}

	if _, err := f.Write([]byte{'o', 'k', ' ', 0xff, '\n'}); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	p.Stop()

	want := ":: ok �\n"
	if got := out.String(); got != want {
		t.Fatalf("forwarded output = %q, want %q", got, want)
	}
}

func TestStreamForwarderEmptyClose(t *testing.T) {
	p := newTestPrinter(t)
	out := &bytes.Buffer{}

	f, err := NewStreamForwarder(p, out, ShowOptions{})
	if err != nil {
		t.Fatalf("create forwarder: %v", err)
	}

	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	p.Stop()

	if got := out.String(); got != "" {
		t.Fatalf("forwarded output = %q, want nothing", got)
	}
}
