// Package version validates and orders upstream release identifiers.
//
// Release identifiers are dotted numeric strings of arbitrary depth
// ("1.2", "2.1.30", "1.42.2.10156"). Ordering is numeric per segment, so
// "1.9.0" sorts before "1.10.0".
package version

import (
	"regexp"

	goversion "github.com/hashicorp/go-version"
)

// releasePattern matches digits(.digits)+ with nothing else around it.
var releasePattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)+$`)

// IsRelease reports whether s is a bare dotted numeric release identifier.
// Identifiers with a segment that does not fit in an int64 are rejected so
// that every accepted release has a numeric key.
func IsRelease(s string) bool {
	if !releasePattern.MatchString(s) {
		return false
	}
	_, err := goversion.NewVersion(s)
	return err == nil
}
