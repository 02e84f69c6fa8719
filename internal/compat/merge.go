package compat

import (
	"github.com/chis/compatsync/internal/version"
)

// Merge folds newly validated releases into records and returns the
// normalized releases that were written, in input order without duplicates.
//
// Each entry of missing is v-stripped and validated; invalid entries are
// skipped. For every valid release the tag is set to proxyTag and each
// platform takes, in order of preference: the status in results, the
// status already recorded for that release, or StatusFail. Releases not
// listed in missing are left untouched even when results mention them.
//
// records is modified in place and must not be nil.
func Merge(records Records, results Results, missing []string, proxyTag string) []string {
	var merged []string
	seen := make(map[string]bool, len(missing))

	for _, raw := range missing {
		release, ok := version.Normalize(raw)
		if !ok {
			continue
		}

		prior := records[release]
		next := Record{
			Tag:       proxyTag,
			Platforms: make(map[Platform]Status, len(Platforms)),
		}
		for _, p := range Platforms {
			if s, ok := results.Lookup(p, release); ok {
				next.Platforms[p] = s
			} else if s, ok := prior.Status(p); ok {
				next.Platforms[p] = s
			} else {
				next.Platforms[p] = StatusFail
			}
		}
		records[release] = next

		if !seen[release] {
			seen[release] = true
			merged = append(merged, release)
		}
	}

	return merged
}
