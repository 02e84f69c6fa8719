// Package table reads and writes the markdown compatibility table.
package table

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chis/compatsync/internal/compat"
	"github.com/chis/compatsync/internal/logging"
	"github.com/chis/compatsync/internal/version"
)

const (
	// ColumnVersion is the header of the upstream release column.
	ColumnVersion = "Claude Code version"
	// ColumnTag is the header of the proxy tag column.
	ColumnTag = "claude-proxy tag"
)

// Preamble precedes the table in the rendered document.
const Preamble = `# Claude Code compatibility

Rows are added automatically after tests pass for a Claude Code release.
`

// Columns returns the rendered header names in order.
func Columns() []string {
	cols := []string{ColumnVersion, ColumnTag}
	for _, p := range compat.Platforms {
		cols = append(cols, string(p))
	}
	return cols
}

// Load reads the table at path. A missing file yields an empty set.
func Load(path string) (compat.Records, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return compat.Records{}, nil
		}
		return nil, fmt.Errorf("failed to open compatibility table: %w", err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read compatibility table %s: %w", path, err)
	}
	return records, nil
}

// Parse scans markdown text for a pipe table. The first pipe line is the
// header; dash separator lines are skipped; rows whose version cell is not a
// release identifier are dropped. Only read errors are returned.
func Parse(r io.Reader) (compat.Records, error) {
	records := compat.Records{}
	var header []string

	// bufio.Reader has no line length limit, unlike bufio.Scanner.
	br := bufio.NewReader(r)
	lineNo := 0
	for {
		raw, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		if raw == "" && err != nil {
			break
		}
		lineNo++
		line := strings.TrimRight(raw, "\r\n")
		if !strings.HasPrefix(line, "|") {
			continue
		}

		cells := splitRow(line)
		if header == nil {
			header = make([]string, len(cells))
			for i, c := range cells {
				header[i] = strings.ToLower(c)
			}
			continue
		}
		if isSeparator(cells) {
			continue
		}

		release, rec, ok := parseRow(header, cells)
		if !ok {
			logging.Debug("skipping table line %d: no valid version", lineNo)
			continue
		}
		records[release] = rec
	}

	return records, nil
}

func parseRow(header, cells []string) (string, compat.Record, bool) {
	n := min(len(header), len(cells))

	var release string
	rec := compat.Record{Platforms: map[compat.Platform]compat.Status{}}
	for i := 0; i < n; i++ {
		name, value := header[i], cells[i]
		switch name {
		case strings.ToLower(ColumnVersion):
			release = strings.TrimLeft(value, "v")
		case strings.ToLower(ColumnTag):
			rec.Tag = value
		default:
			if p, ok := compat.ParsePlatform(name); ok && value != "" {
				rec.Platforms[p] = compat.NormalizeStatus(value)
			}
		}
	}

	if !version.IsRelease(release) {
		return "", compat.Record{}, false
	}
	return release, rec, true
}

// splitRow strips the outer pipes and returns trimmed cells.
func splitRow(line string) []string {
	inner := strings.Trim(strings.TrimSpace(line), "|")
	parts := strings.Split(inner, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func isSeparator(cells []string) bool {
	dashes := false
	for _, c := range cells {
		for _, r := range c {
			switch r {
			case '-':
				dashes = true
			case ':', ' ':
			default:
				return false
			}
		}
	}
	return dashes
}

// Render produces the full markdown document for records. Rows are ordered by
// release; equal input always renders identical bytes.
func Render(records compat.Records) string {
	var b strings.Builder
	b.WriteString(Preamble)
	b.WriteString("\n")

	cols := Columns()
	writeRow(&b, cols)

	sep := make([]string, len(cols))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(&b, sep)

	releases := make([]string, 0, len(records))
	for r := range records {
		releases = append(releases, r)
	}
	version.Sort(releases)

	for _, release := range releases {
		rec := records[release]
		cells := []string{release, rec.Tag}
		for _, p := range compat.Platforms {
			s, _ := rec.Status(p)
			cells = append(cells, string(s))
		}
		writeRow(&b, cells)
	}

	return b.String()
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("| ")
	b.WriteString(strings.Join(cells, " | "))
	b.WriteString(" |\n")
}
