package version

import (
	"slices"
	"strings"
)

// Compare orders two release identifiers by their numeric keys and returns:
//
//	-1 if a < b
//	 0 if a == b
//	 1 if a > b
//
// Keys compare lexicographically, so a shorter key that is a prefix of a
// longer one sorts first ("1.2" < "1.2.0"). Identifiers with equal keys but
// different spelling ("1.02" and "1.2") fall back to string order so that
// sorting stays deterministic.
func Compare(a, b string) int {
	if c := slices.Compare(Key(a), Key(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// Sort orders releases ascending in place.
func Sort(releases []string) {
	slices.SortFunc(releases, Compare)
}

// Sorted returns the releases in ascending order without modifying the input.
func Sorted(releases []string) []string {
	out := slices.Clone(releases)
	Sort(out)
	return out
}
