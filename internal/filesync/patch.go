package filesync

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// ErrPatternNotFound is returned when a file has no assignment to patch.
var ErrPatternNotFound = errors.New("pattern not found")

// Assignment locates a quoted string value in source text. The pattern must
// have exactly three groups: the text before the value, the value, and the
// closing quote.
type Assignment struct {
	Name    string
	pattern *regexp.Regexp
}

var (
	// TestVersionConstant is the Go constant pinning the integration test
	// release.
	TestVersionConstant = Assignment{
		Name:    "defaultClaudePatchVersion",
		pattern: regexp.MustCompile(`(const\s+defaultClaudePatchVersion\s*=\s*")([^"\n]*)(")`),
	}

	// CIVersionKey is the workflow environment entry pinning the CI release.
	CIVersionKey = Assignment{
		Name:    "CLAUDE_PATCH_VERSION",
		pattern: regexp.MustCompile(`(CLAUDE_PATCH_VERSION:\s*")([^"\n]*)(")`),
	}
)

// Replace substitutes value into every match in text. It returns
// ErrPatternNotFound when there is no match at all.
func (a Assignment) Replace(text, value string) (string, error) {
	if !a.pattern.MatchString(text) {
		return "", fmt.Errorf("%s: %w", a.Name, ErrPatternNotFound)
	}
	repl := "${1}" + strings.ReplaceAll(value, "$", "$$") + "${3}"
	return a.pattern.ReplaceAllString(text, repl), nil
}

// Prepare reads path and computes the patched content. Unlike PrepareFile, a
// missing file is an error.
func (a Assignment) Prepare(path, value string) (Change, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Change{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	text := string(data)

	updated, err := a.Replace(text, value)
	if err != nil {
		return Change{}, fmt.Errorf("%w in %s", err, path)
	}
	return Change{Path: path, Content: updated, Changed: updated != text}, nil
}

// Update patches path in place, writing only when the value changes.
func (a Assignment) Update(path, value string) (bool, error) {
	c, err := a.Prepare(path, value)
	if err != nil {
		return false, err
	}
	return c.Apply()
}

// UpdateTestVersion sets defaultClaudePatchVersion in the Go test file.
func UpdateTestVersion(path, version string) (bool, error) {
	return TestVersionConstant.Update(path, version)
}

// UpdateCIVersion sets CLAUDE_PATCH_VERSION in a CI workflow file.
func UpdateCIVersion(path, version string) (bool, error) {
	return CIVersionKey.Update(path, version)
}
