package table

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chis/compatsync/internal/compat"
)

const existingTable = `# Claude Code compatibility

Rows are added automatically after tests pass for a Claude Code release.

| Claude Code version | claude-proxy tag | linux | mac | windows | rockylinux8 | ubuntu20.04 |
| --- | --- | --- | --- | --- | --- | --- |
| 2.1.4 | v0.9.0 | pass | PASS | fail | | |
| v2.1.30 | v1.0.0 | pass | pass | pass | pass | passed |
| not-a-version | v1.0.0 | pass | | | | |
`

// legacyTable is the two-column layout written before platform tracking.
const legacyTable = `| Claude Code version | claude-proxy tag |
|:---|---:|
| 1.0.40 | v0.3.1 |
| 1.0.9 | v0.3.0 |
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "compat.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParse(t *testing.T) {
	t.Run("full table", func(t *testing.T) {
		records, err := Parse(strings.NewReader(existingTable))
		require.NoError(t, err)
		require.Len(t, records, 2)

		rec := records["2.1.4"]
		assert.Equal(t, "v0.9.0", rec.Tag)
		assert.Equal(t, map[compat.Platform]compat.Status{
			compat.PlatformLinux:   compat.StatusPass,
			compat.PlatformMac:     compat.StatusPass,
			compat.PlatformWindows: compat.StatusFail,
		}, rec.Platforms)

		rec = records["2.1.30"]
		assert.Equal(t, "v1.0.0", rec.Tag)
		assert.Equal(t, compat.StatusFail, rec.Platforms[compat.PlatformUbuntu2004])
	})

	t.Run("legacy two column table", func(t *testing.T) {
		records, err := Parse(strings.NewReader(legacyTable))
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "v0.3.1", records["1.0.40"].Tag)
		assert.Empty(t, records["1.0.40"].Platforms)
	})

	t.Run("short rows align from the left", func(t *testing.T) {
		input := "| Claude Code version | claude-proxy tag | linux | mac |\n| 1.0.0 | v1 |\n"
		records, err := Parse(strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, compat.Record{Tag: "v1", Platforms: map[compat.Platform]compat.Status{}}, records["1.0.0"])
	})

	t.Run("extra cells are ignored", func(t *testing.T) {
		input := "| Claude Code version | claude-proxy tag |\n| 1.0.0 | v1 | pass | junk |\n"
		records, err := Parse(strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, "v1", records["1.0.0"].Tag)
		assert.Empty(t, records["1.0.0"].Platforms)
	})

	t.Run("unknown platform column ignored", func(t *testing.T) {
		input := "| Claude Code version | claude-proxy tag | solaris |\n| 1.0.0 | v1 | pass |\n"
		records, err := Parse(strings.NewReader(input))
		require.NoError(t, err)
		assert.Empty(t, records["1.0.0"].Platforms)
	})

	t.Run("platform header matched case-insensitively", func(t *testing.T) {
		input := "| Claude Code version | claude-proxy tag | Linux |\n| 1.0.0 | v1 | pass |\n"
		records, err := Parse(strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, compat.StatusPass, records["1.0.0"].Platforms[compat.PlatformLinux])
	})

	t.Run("oversized version segment dropped", func(t *testing.T) {
		input := "| Claude Code version | claude-proxy tag |\n| 99999999999999999999.1 | v1 |\n| 1.0 | v2 |\n"
		records, err := Parse(strings.NewReader(input))
		require.NoError(t, err)
		assert.Len(t, records, 1)
		assert.Contains(t, records, "1.0")
	})

	t.Run("long lines are not an error", func(t *testing.T) {
		input := strings.Repeat("x", 200*1024) + "\n" + legacyTable +
			"| 2.0.0 | " + strings.Repeat("t", 100*1024) + " |"
		records, err := Parse(strings.NewReader(input))
		require.NoError(t, err)
		assert.Len(t, records, 3)
		assert.Len(t, records["2.0.0"].Tag, 100*1024)
	})

	t.Run("crlf line endings", func(t *testing.T) {
		input := strings.ReplaceAll(legacyTable, "\n", "\r\n")
		records, err := Parse(strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, "v0.3.1", records["1.0.40"].Tag)
	})

	t.Run("no table", func(t *testing.T) {
		records, err := Parse(strings.NewReader("# Title\n\nnothing here\n"))
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("header without version column keeps nothing", func(t *testing.T) {
		input := "| tag | linux |\n| --- | --- |\n| 1.0.0 | pass |\n"
		records, err := Parse(strings.NewReader(input))
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestLoad(t *testing.T) {
	t.Run("missing file is empty", func(t *testing.T) {
		records, err := Load(filepath.Join(t.TempDir(), "nope.md"))
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("reads from disk", func(t *testing.T) {
		records, err := Load(writeFile(t, legacyTable))
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("directory path returns error", func(t *testing.T) {
		_, err := Load(t.TempDir())
		assert.Error(t, err)
	})
}

func TestRender(t *testing.T) {
	t.Run("empty table", func(t *testing.T) {
		want := Preamble + "\n" +
			"| Claude Code version | claude-proxy tag | linux | mac | windows | rockylinux8 | ubuntu20.04 |\n" +
			"| --- | --- | --- | --- | --- | --- | --- |\n"
		assert.Equal(t, want, Render(compat.Records{}))
	})

	t.Run("rows sorted numerically", func(t *testing.T) {
		records := compat.Records{
			"1.9.0":  {Tag: "a"},
			"1.10.0": {Tag: "b"},
			"1.2.0":  {Tag: "c"},
		}
		out := Render(records)

		i2 := strings.Index(out, "| 1.2.0 |")
		i9 := strings.Index(out, "| 1.9.0 |")
		i10 := strings.Index(out, "| 1.10.0 |")
		require.True(t, i2 > 0 && i9 > 0 && i10 > 0, out)
		assert.Less(t, i2, i9)
		assert.Less(t, i9, i10)
	})

	t.Run("missing cells render empty", func(t *testing.T) {
		records := compat.Records{
			"1.0.0": {Tag: "v42", Platforms: map[compat.Platform]compat.Status{
				compat.PlatformLinux: compat.StatusPass,
			}},
		}
		assert.Contains(t, Render(records), "| 1.0.0 | v42 | pass |  |  |  |  |\n")
	})

	t.Run("deterministic", func(t *testing.T) {
		records := compat.Records{"1.0.0": {Tag: "a"}, "0.1.0": {Tag: "b"}, "3.0": {}}
		assert.Equal(t, Render(records), Render(records))
	})
}

func TestRoundTrip(t *testing.T) {
	records := compat.Records{
		"1.0.0": {Tag: "v42", Platforms: map[compat.Platform]compat.Status{
			compat.PlatformLinux:       compat.StatusPass,
			compat.PlatformMac:         compat.StatusFail,
			compat.PlatformWindows:     compat.StatusFail,
			compat.PlatformRockyLinux8: compat.StatusPass,
			compat.PlatformUbuntu2004:  compat.StatusFail,
		}},
		"1.10.0":       {Tag: "v43", Platforms: map[compat.Platform]compat.Status{compat.PlatformMac: compat.StatusPass}},
		"2.1.30.10156": {Tag: ""},
	}

	parsed, err := Parse(strings.NewReader(Render(records)))
	require.NoError(t, err)

	if diff := cmp.Diff(records, parsed, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
