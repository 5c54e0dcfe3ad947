package util

import (
	"bytes"
	"testing"
)

func TestTerminalWidthNonFile(t *testing.T) {
	if got := TerminalWidth(&bytes.Buffer{}); got != 0 {
		t.Fatalf("TerminalWidth() = %d, want 0 for a non-file writer", got)
	}
}

func TestTerminalWidthNilWriter(t *testing.T) {
	if got := TerminalWidth(nil); got != 0 {
		t.Fatalf("TerminalWidth(nil) = %d, want 0", got)
	}
}

func TestIndentString(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		indent string
		want   string
	}{
		{"empty", "", "  ", ""},
		{"single line", "a", "  ", "  a"},
		{"multi line", "a\nb", "> ", "> a\n> b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IndentString(tt.s, tt.indent); got != tt.want {
				t.Fatalf("IndentString(%q, %q) = %q, want %q", tt.s, tt.indent, got, tt.want)
			}
		})
	}
}

func TestHumanizeList(t *testing.T) {
	tests := []struct {
		name        string
		values      []string
		conjunction string
		want        string
	}{
		{"empty", nil, "and", ""},
		{"single", []string{"foo"}, "and", "foo"},
		{"pair", []string{"foo", "bar"}, "and", "foo, and bar"},
		{"several", []string{"foo", "bar", "baz"}, "or", "foo, bar, or baz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HumanizeList(tt.values, tt.conjunction); got != tt.want {
				t.Fatalf("HumanizeList(%v, %q) = %q, want %q", tt.values, tt.conjunction, got, tt.want)
			}
		})
	}
}
