package jobschema

import "regexp"

// semverPattern implements the SemVer 2.0.0 grammar (semver.org Appendix A).
// Only format validity is needed here, never ordering or range comparison,
// so a single anchored regexp covers it.
var semverPattern = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)` +
	`(?:-((?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)(?:\.(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*))*))?` +
	`(?:\+([0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*))?$`)

// IsValidSemver reports whether s is a well-formed SemVer 2.0.0 version string.
func IsValidSemver(s string) bool {
	return semverPattern.MatchString(s)
}
