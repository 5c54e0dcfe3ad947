package util

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/term"
)

// TerminalWidth returns the column count of the terminal behind w, or 0
// when w is not an interactive terminal (or pretends not to be one).
func TerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}

	if os.Getenv("CI") == "true" || os.Getenv("TERM") == "dumb" {
		return 0
	}

	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}

	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return 0
	}

	return width
}

var newline = regexp.MustCompile(`\n`)

func IndentString(s, indent string) string {
	if s == "" {
		return s
	}

	return fmt.Sprintf("%s%s", indent, newline.ReplaceAllString(s, fmt.Sprintf("\n%s", indent)))
}

// HumanizeList converts a collection of values into a string that lists
// them, e.g. "a, b and c".
func HumanizeList(values []string, conjunction string) string {
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	}

	start := strings.Join(values[:len(values)-1], ", ")

	return fmt.Sprintf("%s, %s %s", start, conjunction, values[len(values)-1])
}
