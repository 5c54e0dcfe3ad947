// Inspired by similar approach in: https://github.com/helm/helm (Apache 2.0 License).
package clipath

// LogDir returns the dir where the named application keeps its logs.
func LogDir(appName string, elem ...string) string {
	return lazypath(appName).logPath(elem...)
}

// ConfigDir returns the dir where the named application keeps its
// configuration.
func ConfigDir(appName string, elem ...string) string {
	return lazypath(appName).configPath(elem...)
}
