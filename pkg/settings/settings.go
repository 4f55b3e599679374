// Package settings holds build metadata and the per-run settings of the
// gridnav CLI, plus context helpers to pass them down.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "gridnav"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds the commit hash, version and build timestamp of the binary.
type VersionInfo struct {
	Commit       string `json:"commit" yaml:"commit"`
	BuildVersion string `json:"version" yaml:"version"`
	BuildTime    string `json:"buildTime" yaml:"buildTime"`
}

// Run holds the settings of a single invocation.
type Run struct {
	MinLogLevel int8
	NoColor     bool
	// Interactive is false when rendering a snapshot or printing a map.
	Interactive bool
	ExitOnError bool
	// ConfigPath is the grid config file in effect, if any.
	ConfigPath string
}

// NewCliParams returns the defaults for an interactive CLI run.
func NewCliParams() *Run {
	return &Run{
		Interactive: true,
		ExitOnError: true,
	}
}
