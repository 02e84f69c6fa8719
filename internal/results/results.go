// Package results loads per-platform test outcome files.
//
// Each file in the results directory is a JSON object:
//
//	{"platform": "linux", "results": {"2.1.30": "pass", "2.1.31": "fail"}}
//
// When "platform" is absent the file name without extension is used.
package results

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chis/compatsync/internal/compat"
	"github.com/chis/compatsync/internal/logging"
	"github.com/chis/compatsync/internal/version"
)

// File is the on-disk shape of one results file.
type File struct {
	Platform *string                    `json:"platform"`
	Results  map[string]json.RawMessage `json:"results"`
}

// Load reads every *.json file in dir. A missing directory yields an empty
// set; unreadable, malformed or unknown-platform files are skipped.
func Load(dir string) (compat.Results, error) {
	out := compat.Results{}

	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return out, nil
		}
		return nil, fmt.Errorf("failed to stat results directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("results path %s is not a directory", dir)
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list results directory: %w", err)
	}
	sort.Strings(paths)

	for _, path := range paths {
		platform, statuses, err := loadFile(path)
		if err != nil {
			logging.Warn("skipping results file %s: %v", path, err)
			continue
		}
		for release, status := range statuses {
			out.Set(platform, release, status)
		}
		logging.Debug("loaded %d results for %s from %s", len(statuses), platform, filepath.Base(path))
	}

	return out, nil
}

func loadFile(path string) (compat.Platform, map[string]compat.Status, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return "", nil, fmt.Errorf("invalid JSON: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if f.Platform != nil {
		name = *f.Platform
	}
	platform, ok := compat.ParsePlatform(name)
	if !ok {
		return "", nil, fmt.Errorf("unknown platform %q", name)
	}

	statuses := make(map[string]compat.Status, len(f.Results))
	for raw, value := range f.Results {
		release, ok := version.Normalize(raw)
		if !ok {
			continue
		}
		statuses[release] = decodeStatus(value)
	}
	return platform, statuses, nil
}

// decodeStatus normalizes a JSON status value; non-strings count as fail.
func decodeStatus(raw json.RawMessage) compat.Status {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return compat.StatusFail
	}
	return compat.NormalizeStatus(s)
}
