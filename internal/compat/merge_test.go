package compat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func allStatus(s Status) map[Platform]Status {
	out := make(map[Platform]Status, len(Platforms))
	for _, p := range Platforms {
		out[p] = s
	}
	return out
}

func TestMerge(t *testing.T) {
	t.Run("new release defaults to fail and takes the tag", func(t *testing.T) {
		records := Records{}
		merged := Merge(records, Results{}, []string{"1.0.0"}, "v42")

		assert.Equal(t, []string{"1.0.0"}, merged)
		assert.Equal(t, Record{Tag: "v42", Platforms: allStatus(StatusFail)}, records["1.0.0"])
	})

	t.Run("results fill platform statuses", func(t *testing.T) {
		records := Records{}
		results := Results{}
		results.Set(PlatformLinux, "1.0.0", StatusPass)

		Merge(records, results, []string{"1.0.0"}, "v42")

		want := allStatus(StatusFail)
		want[PlatformLinux] = StatusPass
		assert.Equal(t, want, records["1.0.0"].Platforms)
	})

	t.Run("prior status retained when results omit a platform", func(t *testing.T) {
		records := Records{
			"1.0.0": {Tag: "v1", Platforms: map[Platform]Status{
				PlatformMac:     StatusPass,
				PlatformWindows: StatusPass,
			}},
		}
		results := Results{}
		results.Set(PlatformWindows, "1.0.0", StatusFail)

		Merge(records, results, []string{"1.0.0"}, "v2")

		got := records["1.0.0"]
		assert.Equal(t, "v2", got.Tag)
		assert.Equal(t, StatusPass, got.Platforms[PlatformMac])
		assert.Equal(t, StatusFail, got.Platforms[PlatformWindows])
		assert.Equal(t, StatusFail, got.Platforms[PlatformLinux])
	})

	t.Run("releases outside the missing list are untouched", func(t *testing.T) {
		existing := Record{Tag: "v1", Platforms: map[Platform]Status{PlatformLinux: StatusFail}}
		records := Records{"0.9.0": existing}
		results := Results{}
		results.Set(PlatformLinux, "0.9.0", StatusPass)

		merged := Merge(records, results, []string{"1.0.0"}, "v2")

		assert.Equal(t, []string{"1.0.0"}, merged)
		assert.Equal(t, existing, records["0.9.0"])
	})

	t.Run("invalid and duplicate entries", func(t *testing.T) {
		records := Records{}
		merged := Merge(records, Results{}, []string{"v1.2.3", "latest", "1", "1.2.3", "", "99999999999999999999.1"}, "v9")

		assert.Equal(t, []string{"1.2.3"}, merged)
		assert.Len(t, records, 1)
		assert.Equal(t, "v9", records["1.2.3"].Tag)
	})
}
