// Package keys holds the Viper keys for terminal flags and internal state.
package keys

// Terminal keys
const (
	ExperimentalMode string = "experimental-mode"
	CookiesFile      string = "cookies-file"
	CookieSource     string = "cookies-from-browser"
	OutputDir        string = "output-dir"
	SkipCount        string = "skip"
	DebugLevel       string = "debug-level"
)

// Internal program keys
const (
	Execute   string = "execute"
	TargetURL string = "target-url"
)
