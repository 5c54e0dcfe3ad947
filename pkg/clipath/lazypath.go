// Package clipath resolves platform-appropriate per-application
// directories, with environment overrides taking precedence over the
// XDG base directory defaults.
package clipath

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const (
	// LogHomeEnvSuffix is appended to the upper-cased application name to
	// form the environment variable that overrides the log directory,
	// e.g. MYAPP_LOG_HOME.
	LogHomeEnvSuffix = "_LOG_HOME"

	// ConfigHomeEnvSuffix likewise overrides the config directory.
	ConfigHomeEnvSuffix = "_CONFIG_HOME"
)

// lazypath is a lazily-resolved path root for one application.
type lazypath string

func (l lazypath) path(envSuffix string, defaultBase string, elem ...string) string {
	// There is an order to checking for a path.
	// 1. See if an application environment variable has been set.
	// 2. Fall back to the XDG default.
	base := os.Getenv(envName(string(l), envSuffix))
	if base != "" {
		return filepath.Join(base, filepath.Join(elem...))
	}

	return filepath.Join(defaultBase, string(l), filepath.Join(elem...))
}

func envName(appName, suffix string) string {
	name := strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(appName)

	return strings.ToUpper(name) + suffix
}

// logPath defines the base directory relative to which the application
// log files should be stored.
func (l lazypath) logPath(elem ...string) string {
	return l.path(LogHomeEnvSuffix, xdg.StateHome, filepath.Join(elem...))
}

// configPath defines the base directory relative to which user specific
// configuration files should be stored.
func (l lazypath) configPath(elem ...string) string {
	return l.path(ConfigHomeEnvSuffix, xdg.ConfigHome, filepath.Join(elem...))
}
