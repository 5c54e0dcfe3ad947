package emittertest_test

import (
	"strings"
	"testing"

	"github.com/outblocks/emit/pkg/emitter"
	"github.com/outblocks/emit/pkg/emitter/emittertest"
)

func TestNewCapturesOutput(t *testing.T) {
	inst := emittertest.New(t, emitter.ModeBrief)

	inst.Message("a final result")
	inst.Progress("a step", false)

	if got := inst.Out.String(); !strings.Contains(got, "a final result") {
		t.Fatalf("stdout = %q, want the message", got)
	}

	if got := inst.Err.String(); !strings.Contains(got, "a step") {
		t.Fatalf("stderr = %q, want the step", got)
	}
}

func TestNewSupportsExplicitTermination(t *testing.T) {
	inst := emittertest.New(t, emitter.ModeQuiet)

	inst.Message("quiet result")
	inst.EndedOK()
	// cleanup terminates again; that repeat must be absorbed
}

func TestMultipleInstancesPerTest(t *testing.T) {
	first := emittertest.New(t, emitter.ModeBrief)
	second := emittertest.New(t, emitter.ModeDebug)

	if got := second.Mode(); got != emitter.ModeDebug {
		t.Fatalf("mode = %v, want %v", got, emitter.ModeDebug)
	}

	_ = first
}
