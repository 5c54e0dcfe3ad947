package emitter

import (
	"strings"

	"github.com/ansel1/merry/v2"
)

// Mode sets how much of what is emitted reaches the screen. All modes
// log everything (except Trace content below ModeTrace, which is
// dropped entirely).
type Mode int

const (
	// ModeQuiet shows only final messages and errors.
	ModeQuiet Mode = iota

	// ModeBrief is the default: progress is shown ephemerally.
	ModeBrief

	// ModeVerbose keeps progress and verbose content on screen.
	ModeVerbose

	// ModeDebug adds debug content and screen timestamps.
	ModeDebug

	// ModeTrace shows and logs absolutely everything.
	ModeTrace
)

var modeNames = []string{"quiet", "brief", "verbose", "debug", "trace"}

func (m Mode) String() string {
	if m < ModeQuiet || m > ModeTrace {
		return "unknown"
	}

	return modeNames[m]
}

// ParseMode converts a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}

	return 0, merry.Errorf("bad verbosity level '%s'; valid values are 'quiet', 'brief', 'verbose', 'debug' and 'trace'", s)
}

// ModeNames lists the valid mode names, in increasing verbosity order.
func ModeNames() []string {
	return append([]string(nil), modeNames...)
}

// callPolicy describes how one kind of call presents under a mode:
// whether it reaches the screen at all, whether the line is ephemeral
// and whether it carries a screen timestamp.
type callPolicy struct {
	onScreen  bool
	ephemeral bool
	timestamp bool
}

// modePolicy is one row of the presentation table. Every façade method
// consults this table instead of re-deriving mode semantics.
type modePolicy struct {
	progress callPolicy // Progress, ProgressBar and OpenStream
	verbose  callPolicy
	debug    callPolicy

	// trace content only exists at all when traceEnabled is set
	traceEnabled bool

	// screen timestamps for final messages, greetings and errors
	timestamps bool
}

var policies = map[Mode]modePolicy{
	ModeQuiet: {
		// ephemeral stays set even though nothing reaches the screen
		progress: callPolicy{onScreen: false, ephemeral: true},
	},
	ModeBrief: {
		progress: callPolicy{onScreen: true, ephemeral: true},
	},
	ModeVerbose: {
		progress: callPolicy{onScreen: true},
		verbose:  callPolicy{onScreen: true},
	},
	ModeDebug: {
		progress:   callPolicy{onScreen: true, timestamp: true},
		verbose:    callPolicy{onScreen: true, timestamp: true},
		debug:      callPolicy{onScreen: true, timestamp: true},
		timestamps: true,
	},
	ModeTrace: {
		progress:     callPolicy{onScreen: true, timestamp: true},
		verbose:      callPolicy{onScreen: true, timestamp: true},
		debug:        callPolicy{onScreen: true, timestamp: true},
		traceEnabled: true,
		timestamps:   true,
	},
}
