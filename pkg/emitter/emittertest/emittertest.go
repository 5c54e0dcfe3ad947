// Package emittertest provides ready-made emitter fixtures for tests of
// applications built on the toolkit.
package emittertest

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/outblocks/emit/pkg/emitter"
)

// Instance is an initialized test emitter with its screen output
// captured and its log kept in a per-test temporary directory.
type Instance struct {
	*emitter.Emitter

	Out *bytes.Buffer
	Err *bytes.Buffer

	LogPath string
}

// New returns an emitter initialized in test-support mode (no spinner,
// re-init allowed) at the given verbosity. The emitter is terminated
// during test cleanup unless the test already did so.
func New(t *testing.T, mode emitter.Mode) *Instance {
	t.Helper()

	inst := &Instance{
		Emitter: emitter.New(),
		Out:     &bytes.Buffer{},
		Err:     &bytes.Buffer{},
		LogPath: filepath.Join(t.TempDir(), "testapp.log"),
	}

	err := inst.Init(emitter.Config{
		Mode:     mode,
		AppName:  "testapp",
		Greeting: "Specific greeting to be ignored",
		LogPath:  inst.LogPath,
		Stdout:   inst.Out,
		Stderr:   inst.Err,
		Testing:  true,
	})
	if err != nil {
		t.Fatalf("init test emitter: %v", err)
	}

	t.Cleanup(inst.EndedOK)

	return inst
}
