package printer

import (
	"bytes"
	"testing"
	"time"
)

func TestMessageSameAs(t *testing.T) {
	stream1 := &bytes.Buffer{}
	stream2 := &bytes.Buffer{}

	base := func() *Message {
		return &Message{Stream: stream1, Text: "text", Ephemeral: true, CreatedAt: time.Now()}
	}

	tests := []struct {
		name string
		a    *Message
		b    *Message
		want bool
	}{
		{"both nil", nil, nil, true},
		{"one nil", base(), nil, false},
		{"equal ignoring creation time", base(), base(), true},
		{"different text", base(), &Message{Stream: stream1, Text: "other", Ephemeral: true}, false},
		{"different stream", base(), &Message{Stream: stream2, Text: "text", Ephemeral: true}, false},
		{"different ephemerality", base(), &Message{Stream: stream1, Text: "text"}, false},
		{
			"different prefix",
			base(),
			&Message{Stream: stream1, Text: "text", Ephemeral: true, terminalPrefix: "p"},
			false,
		},
		{
			"bar vs no bar",
			&Message{Stream: stream1, Bar: &BarInfo{Progress: 1, Total: 2}},
			&Message{Stream: stream1},
			false,
		},
		{
			"different bar progress",
			&Message{Stream: stream1, Bar: &BarInfo{Progress: 1, Total: 2}},
			&Message{Stream: stream1, Bar: &BarInfo{Progress: 2, Total: 2}},
			false,
		},
		{
			"equal bars",
			&Message{Stream: stream1, Bar: &BarInfo{Progress: 1, Total: 2}},
			&Message{Stream: stream1, Bar: &BarInfo{Progress: 1, Total: 2}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.sameAs(tt.b); got != tt.want {
				t.Fatalf("sameAs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMessagePrefixedText(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		prefix string
		want   string
	}{
		{"no prefix", "text", "", "text"},
		{"prefix joined with separator", "text", "pfx", "pfx :: text"},
		{"text equal to prefix not repeated", "pfx", "pfx", "pfx"},
		{"forwarded line already separated", ":: line", "pfx", "pfx :: line"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Message{Text: tt.text, terminalPrefix: tt.prefix}

			if got := m.prefixedText(); got != tt.want {
				t.Fatalf("prefixedText() = %q, want %q", got, tt.want)
			}
		})
	}
}
