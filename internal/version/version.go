package version

import (
	"fmt"

	"github.com/fatih/color"
)

// Version information for the lumen CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI, without colour.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with each numeric part in its own colour.
// Anything that is not `major.minor.patch[-suffix]` is returned as is.
func Colored() string {
	var major, minor, patch int
	var suffix string
	n, _ := fmt.Sscanf(Version, "%d.%d.%d%s", &major, &minor, &patch, &suffix)
	if n < 3 {
		return Version
	}
	return fmt.Sprintf("%s.%s.%s%s",
		versionMajorColor.Sprint(major),
		versionMinorColor.Sprint(minor),
		versionPatchColor.Sprint(patch),
		suffix)
}

// Tool is the identifier written into emitted artifacts.
func Tool() string {
	return "lumen " + Version
}
