package update

import "github.com/chis/compatsync/internal/config"

// FileKind names the role of a file touched by a sync run.
type FileKind string

const (
	FileTable        FileKind = "table"
	FilePatchVersion FileKind = "patch_version"
	FileTestVersion  FileKind = "test_version"
	FileCIVersion    FileKind = "ci_version"
)

// Options are the inputs of one sync run.
type Options struct {
	// MissingJSON is a JSON array of newly validated releases.
	MissingJSON string

	// LatestVersion, when set, is written to the pin, test and CI files.
	LatestVersion string

	// ProxyTag is recorded against every missing release. Required.
	ProxyTag string

	// DryRun computes changes without writing them.
	DryRun bool

	// Paths locates every file read or written.
	Paths config.Config
}

// FileResult reports what happened to one target file.
type FileResult struct {
	Kind    FileKind `json:"kind"`
	Path    string   `json:"path"`
	Changed bool     `json:"changed"`
}

// Result summarises a sync run.
type Result struct {
	RunID    string       `json:"run_id"`
	Updated  bool         `json:"updated"`
	DryRun   bool         `json:"dry_run"`
	Versions []string     `json:"versions"`
	Files    []FileResult `json:"files"`
}
