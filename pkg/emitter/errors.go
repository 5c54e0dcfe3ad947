package emitter

import (
	"strings"

	"github.com/ansel1/merry/v2"

	"github.com/outblocks/emit/internal/util"
)

// Error is a program error carrying enough information for a rich
// report: the main message, third-party details, a resolution hint,
// documentation pointers and the exit code the application should use.
type Error struct {
	// Message is the main text shown to the user, always.
	Message string

	// Details is the full error information received from a third party
	// which originated the error situation.
	Details string

	// Resolution is an extra line indicating how the error may be fixed
	// or avoided.
	Resolution string

	// DocsURL points the user to documentation; when set it wins over
	// any DocSlug composition.
	DocsURL string

	// DocSlug is combined with the Emitter's configured docs base URL;
	// it is normalized to start with a slash.
	DocSlug string

	// NoLogpathReport suppresses the log-file location line.
	NoLogpathReport bool

	// RetCode is the suggested process exit code; defaults to 1.
	RetCode int

	// Err is the causing error, if any; its chain (and captured stack,
	// when wrapped with merry) ends up in the report.
	Err error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ReturnCode is the process exit code to use for this error; it
// defaults to 1 when unset.
func (e *Error) ReturnCode() int {
	if e.RetCode == 0 {
		return 1
	}

	return e.RetCode
}

// docsLink resolves the documentation URL to report, if any.
func (e *Error) docsLink(baseURL string) string {
	if e.DocsURL != "" {
		return e.DocsURL
	}

	if e.DocSlug == "" || baseURL == "" {
		return ""
	}

	slug := e.DocSlug
	if !strings.HasPrefix(slug, "/") {
		slug = "/" + slug
	}

	return strings.TrimRight(baseURL, "/") + slug
}

// causeLines extracts the report lines for the causing error chain:
// each cause on its own line, followed by its captured stack trace when
// one is present.
func (e *Error) causeLines() []string {
	if e.Err == nil {
		return nil
	}

	lines := []string{"Caused by: " + e.Err.Error()}

	if stack := merry.Stacktrace(e.Err); stack != "" {
		indented := util.IndentString(strings.TrimRight(stack, "\n"), "  ")
		lines = append(lines, strings.Split(indented, "\n")...)
	}

	return lines
}

// detailLines renders the third-party detail block; continuation lines
// are indented under the heading.
func (e *Error) detailLines() []string {
	if e.Details == "" {
		return nil
	}

	head, rest, multi := strings.Cut(e.Details, "\n")

	lines := []string{"Detailed information: " + head}
	if multi {
		lines = append(lines, strings.Split(util.IndentString(rest, "  "), "\n")...)
	}

	return lines
}

// AsError converts any error into an *Error suitable for reporting,
// preserving it as the cause when it is not already one.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}

	if e, ok := err.(*Error); ok { //nolint:errorlint
		return e
	}

	return &Error{
		Message: err.Error(),
		Err:     err,
	}
}
