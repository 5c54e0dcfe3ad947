package emitter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/ansel1/merry/v2"
	"github.com/goreleaser/fileglob"
	"github.com/outblocks/emit/pkg/clipath"
)

// the limit to how many log files to keep, inclusive of the one about
// to be created
const maxLogFiles = 5

// resolveLogPath provides a unique log file path for the application.
//
// The app name is used for both the directory where the logs are
// located and each log name. Old logs are rotated away by filename sort
// order once the retention limit is reached; files already removed by a
// concurrent process are tolerated. Existing files are never renamed
// nor compressed, they may be in use by another process.
func resolveLogPath(appName string, now time.Time) (string, error) {
	dir := clipath.LogDir(appName)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", merry.Errorf("cannot create log directory '%s': %w", dir, err)
	}

	rotateLogs(dir, appName)

	filename := fmt.Sprintf("%s-%s.log", appName, now.Format("20060102-150405.000000"))

	return filepath.Join(dir, filename), nil
}

// rotateLogs removes the oldest excess log files, keeping room for the
// about-to-be-created one.
func rotateLogs(dir, appName string) {
	// MaybeRootFS lets the absolute directory anchor the pattern
	present, err := fileglob.Glob(filepath.Join(dir, appName+"-*.log"), fileglob.MaybeRootFS)
	if err != nil {
		return
	}

	sort.Strings(present)

	limit := maxLogFiles - 1
	if len(present) <= limit {
		return
	}

	for _, path := range present[:len(present)-limit] {
		// may be gone already, removed concurrently
		_ = os.Remove(path)
	}
}
