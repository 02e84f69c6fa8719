// Package filesync performs idempotent whole-file updates.
//
// Every update is split into a Prepare step that reads the target and
// computes the new content, and Change.Apply which writes it only when the
// content differs. Callers that must not leave partial results behind can
// prepare all changes first and apply them once every preparation succeeded.
package filesync

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Change is a pending update to one file.
type Change struct {
	// Path is the file the change targets.
	Path string

	// Content is the desired file content.
	Content string

	// Changed reports whether Content differs from what is on disk.
	Changed bool
}

// Apply writes the change if it alters the file, creating parent
// directories as needed. It reports whether a write happened.
func (c Change) Apply() (bool, error) {
	if !c.Changed {
		return false, nil
	}
	if dir := filepath.Dir(c.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return false, fmt.Errorf("failed to create directory for %s: %w", c.Path, err)
		}
	}
	if err := os.WriteFile(c.Path, []byte(c.Content), 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", c.Path, err)
	}
	return true, nil
}

// readOptional returns the file content, or "" when the file does not exist.
func readOptional(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// PrepareFile compares content with the current file at path.
func PrepareFile(path, content string) (Change, error) {
	existing, err := readOptional(path)
	if err != nil {
		return Change{}, err
	}
	return Change{Path: path, Content: content, Changed: existing != content}, nil
}

// UpdateFile writes content to path unless the file already holds it.
func UpdateFile(path, content string) (bool, error) {
	c, err := PrepareFile(path, content)
	if err != nil {
		return false, err
	}
	return c.Apply()
}

// PreparePatchVersionFile prepares the pin file holding the latest tested
// release: the trimmed version followed by a newline. A blank version
// yields a no-op change.
func PreparePatchVersionFile(path, version string) (Change, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		return Change{Path: path}, nil
	}
	return PrepareFile(path, version+"\n")
}

// UpdatePatchVersionFile writes the pin file unless it is already current.
func UpdatePatchVersionFile(path, version string) (bool, error) {
	c, err := PreparePatchVersionFile(path, version)
	if err != nil {
		return false, err
	}
	return c.Apply()
}
