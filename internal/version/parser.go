package version

import (
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// Normalize trims whitespace and any leading "v" characters from raw and
// reports whether the remainder is a release identifier.
// Examples:
//   - "v1.2.3"  -> "1.2.3", true
//   - " 2.0 "   -> "2.0", true
//   - "1"       -> "", false
//   - "1.2-rc1" -> "", false
func Normalize(raw string) (string, bool) {
	s := strings.TrimLeft(strings.TrimSpace(raw), "v")
	if !IsRelease(s) {
		return "", false
	}
	return s, true
}

// Key converts a release identifier into its numeric segments, one per
// dot-separated part. It returns nil for input that is not a release.
func Key(release string) []int {
	if !IsRelease(release) {
		return nil
	}
	parsed, err := goversion.NewVersion(release)
	if err != nil {
		return nil
	}

	// go-version pads short versions to three segments; keep only the
	// segments that were actually written.
	segments := parsed.Segments()
	if n := strings.Count(release, ".") + 1; len(segments) > n {
		segments = segments[:n]
	}
	return segments
}
