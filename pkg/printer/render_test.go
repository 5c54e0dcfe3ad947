package printer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
)

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2023, 5, 1, 9, 8, 7, 123_456_789, time.UTC)

	got := formatTimestamp(ts)
	want := "2023-05-01 09:08:07.123"

	if got != want {
		t.Fatalf("formatTimestamp() = %q, want %q", got, want)
	}
}

func TestMaskSecrets(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		secrets []string
		want    string
	}{
		{"no secrets", "some text", nil, "some text"},
		{"simple", "token=abc123 rest", []string{"abc123"}, "token=***** rest"},
		{"multiple occurrences", "abc abc", []string{"abc"}, "***** *****"},
		{"multiple secrets", "user pass", []string{"user", "pass"}, "***** *****"},
		{"empty secret ignored", "text", []string{""}, "text"},
		{"no match", "text", []string{"nope"}, "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := maskSecrets(tt.text, tt.secrets)
			if got != tt.want {
				t.Fatalf("maskSecrets(%q, %v) = %q, want %q", tt.text, tt.secrets, got, tt.want)
			}
		})
	}
}

func TestLineStart(t *testing.T) {
	stream1 := &bytes.Buffer{}
	stream2 := &bytes.Buffer{}

	tests := []struct {
		name       string
		prev       *Message
		sameStream bool
		spinning   bool

		wantStart     string
		wantClosePrev bool
		wantCrPrev    bool
	}{
		{
			name:       "first message starts clean",
			prev:       nil,
			sameStream: true,
		},
		{
			name:       "previous completed the line",
			prev:       &Message{Stream: stream1, EndLine: true},
			sameStream: true,
		},
		{
			name:       "previous ephemeral gets overwritten",
			prev:       &Message{Stream: stream1, Ephemeral: true},
			sameStream: true,
			wantStart:  "\r",
		},
		{
			name:          "previous permanent gets completed",
			prev:          &Message{Stream: stream1},
			sameStream:    true,
			wantClosePrev: true,
		},
		{
			name:       "spinning overwrites regardless",
			prev:       &Message{Stream: stream1},
			sameStream: true,
			spinning:   true,
			wantStart:  "\r",
		},
		{
			name:       "ephemeral on another stream resets there",
			prev:       &Message{Stream: stream1, Ephemeral: true},
			sameStream: false,
			wantCrPrev: true,
		},
		{
			name:       "permanent on another stream",
			prev:       &Message{Stream: stream2},
			sameStream: false,

			wantClosePrev: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, closePrev, crPrev := lineStart(tt.prev, tt.sameStream, tt.spinning)

			if start != tt.wantStart || closePrev != tt.wantClosePrev || crPrev != tt.wantCrPrev {
				t.Fatalf("lineStart() = (%q, %v, %v), want (%q, %v, %v)",
					start, closePrev, crPrev, tt.wantStart, tt.wantClosePrev, tt.wantCrPrev)
			}
		})
	}
}

func TestFormatLine(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		spintext  string
		width     int
		ephemeral bool
		want      string
	}{
		{
			name:  "short text padded to one short of the edge",
			text:  "hello",
			width: 40,
			want:  "hello" + strings.Repeat(" ", 34),
		},
		{
			name:      "long ephemeral truncated with ellipsis",
			text:      "0123456789abc",
			width:     10,
			ephemeral: true,
			want:      "01234567…",
		},
		{
			name:  "long permanent left to wrap",
			text:  "0123456789abc",
			width: 10,
			want:  "0123456789abc" + strings.Repeat(" ", 6),
		},
		{
			name:     "spin suffix keeps only the last wrapped line",
			text:     strings.Repeat("x", 60),
			spintext: " - (0.4s)",
			width:    40,
			want:     strings.Repeat("x", 20) + " - (0.4s)" + strings.Repeat(" ", 10),
		},
		{
			name:     "spin suffix on an exact multiple of the width",
			text:     strings.Repeat("x", 80),
			spintext: " - (0.4s)",
			width:    40,
			want:     strings.Repeat("x", 29) + "…" + " - (0.4s)",
		},
		{
			name:     "spin suffix on fitting text",
			text:     "working",
			spintext: " \\ (2.5s)",
			width:    40,
			want:     "working" + " \\ (2.5s)" + strings.Repeat(" ", 23),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatLine(tt.text, tt.spintext, tt.width, tt.ephemeral)
			if got != tt.want {
				t.Fatalf("formatLine(%q, %q, %d, %v) = %q, want %q",
					tt.text, tt.spintext, tt.width, tt.ephemeral, got, tt.want)
			}

			if w := runewidth.StringWidth(got); tt.ephemeral && w > tt.width-1 {
				t.Fatalf("ephemeral render is %d cells wide, must stay under %d", w, tt.width)
			}
		})
	}
}

func TestLastWrappedLine(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"shorter than width", "short", 10, "short"},
		{"exact multiple keeps everything", "0123456789", 5, "0123456789"},
		{"keeps the trailing remainder", strings.Repeat("x", 60) + "tail", 30, "tail"},
		{"one cell over", "0123456789a", 10, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lastWrappedLine(tt.text, tt.width)
			if got != tt.want {
				t.Fatalf("lastWrappedLine(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestFormatBar(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		progress float64
		total    float64
		width    int
		want     string
	}{
		{
			name:     "partial progress",
			text:     "Downloading",
			progress: 700,
			total:    1788,
			width:    40,
			want:     "Downloading [██████          ] 700/1788",
		},
		{
			name:     "complete",
			text:     "Downloading",
			progress: 1788,
			total:    1788,
			width:    40,
			want:     "Downloading [" + strings.Repeat("█", 15) + "] 1788/1788",
		},
		{
			name:     "overshoot capped at full",
			text:     "Downloading",
			progress: 2000,
			total:    1788,
			width:    40,
			want:     "Downloading [" + strings.Repeat("█", 15) + "] 2000/1788",
		},
		{
			name:     "too narrow for any bar",
			text:     "Downloading",
			progress: 1,
			total:    2,
			width:    10,
			want:     "Downloadi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatBar(tt.text, tt.progress, tt.total, tt.width)
			if got != tt.want {
				t.Fatalf("formatBar(%q, %v, %v, %d) = %q, want %q",
					tt.text, tt.progress, tt.total, tt.width, got, tt.want)
			}
		})
	}
}

func TestTimestampedText(t *testing.T) {
	ts := time.Date(2023, 5, 1, 9, 8, 7, 0, time.UTC)

	plain := &Message{Text: "text", CreatedAt: ts}
	if got := timestampedText(plain, "text"); got != "text" {
		t.Fatalf("timestampedText() = %q, want %q", got, "text")
	}

	stamped := &Message{Text: "text", CreatedAt: ts, UseTimestamp: true}

	want := "2023-05-01 09:08:07.000 text"
	if got := timestampedText(stamped, "text"); got != want {
		t.Fatalf("timestampedText() = %q, want %q", got, want)
	}
}
