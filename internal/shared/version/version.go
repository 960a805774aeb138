// Package version formats the build version reported by the CLI and /health.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Dev is reported when the binary was built without a version.
const Dev = "dev"

// Normalize ensures a semantic version carries the "v" prefix.
// Examples: "1.2.3" -> "v1.2.3", "v1.2.3" -> "v1.2.3"
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return ""
	}
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// Display returns the canonical form of a release version ("1.2" -> "v1.2.0").
// Anything that is not semver, such as a commit hash, is returned trimmed,
// and an empty version reads as Dev.
func Display(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return Dev
	}
	if v := Normalize(version); semver.IsValid(v) {
		return semver.Canonical(v) + buildSuffix(v)
	}
	return version
}

// buildSuffix keeps "+build" metadata, which semver.Canonical drops.
func buildSuffix(v string) string {
	if build := semver.Build(v); build != "" {
		return build
	}
	return ""
}
