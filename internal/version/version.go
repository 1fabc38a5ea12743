package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the abstractc CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Major, Minor and Patch are the numeric parts of the semantic version.
	Major = "0"
	Minor = "1"
	Patch = "0"
	// Suffix is the pre-release part, without the leading '-'.
	Suffix = "dev"

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

// Plain returns the semantic version without colors, e.g. "0.1.0-dev".
func Plain() string {
	v := Major + "." + Minor + "." + Patch
	if Suffix != "" {
		v += "-" + Suffix
	}
	return v
}

// Colored returns the version with each component highlighted. With
// enabled=false it equals Plain().
func Colored(enabled bool) string {
	parts := []*color.Color{versionMajorColor, versionMinorColor, versionPatchColor}
	values := []string{Major, Minor, Patch}
	out := make([]string, len(values))
	for i, c := range parts {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		out[i] = c.Sprint(values[i])
	}
	v := strings.Join(out, ".")
	if Suffix != "" {
		v += "-" + Suffix
	}
	return v
}

// Describe renders the long form printed by `abstractc version`.
func Describe(enabled bool) string {
	var b strings.Builder
	b.WriteString("abstractc " + Colored(enabled))
	if GitCommit != "" {
		b.WriteString("\ncommit: " + GitCommit)
	}
	if BuildDate != "" {
		b.WriteString("\nbuilt:  " + BuildDate)
	}
	return b.String()
}
