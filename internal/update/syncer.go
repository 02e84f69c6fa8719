// Package update runs one compatibility sync: it merges newly validated
// releases into the compatibility table and pins the latest release in the
// files that track it.
package update

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/chis/compatsync/internal/compat"
	"github.com/chis/compatsync/internal/config"
	"github.com/chis/compatsync/internal/filesync"
	"github.com/chis/compatsync/internal/logging"
	"github.com/chis/compatsync/internal/results"
	"github.com/chis/compatsync/internal/table"
)

// Syncer executes sync runs.
type Syncer struct {
	log *logging.Logger
}

// NewSyncer creates a Syncer. A nil logger uses the package default.
func NewSyncer(log *logging.Logger) *Syncer {
	if log == nil {
		log = logging.Default()
	}
	return &Syncer{log: log}
}

type pendingChange struct {
	kind   FileKind
	change filesync.Change
}

// Run validates opts, computes every file change and then writes them.
// Nothing is written unless all changes could be computed, so a missing
// version constant leaves every file untouched.
func (s *Syncer) Run(opts Options) (*Result, error) {
	runID := uuid.NewString()
	log := s.log.WithField("run_id", runID)

	missing, err := ParseMissing(opts.MissingJSON)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(opts.ProxyTag) == "" {
		return nil, &UsageError{Err: ErrProxyTagRequired}
	}

	paths := opts.Paths
	records, err := table.Load(paths.TablePath)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded %d rows from %s", len(records), paths.TablePath)

	found, err := results.Load(paths.ResultsDir)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded results for %d platforms from %s", len(found), paths.ResultsDir)

	merged := compat.Merge(records, found, missing, opts.ProxyTag)
	if skipped := len(missing) - len(merged); skipped > 0 {
		log.Debug("ignored %d invalid or duplicate missing entries", skipped)
	}
	for _, release := range merged {
		log.Info("recording %s with tag %s", release, opts.ProxyTag)
	}

	pending, err := s.prepare(paths, records, strings.TrimSpace(opts.LatestVersion))
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:    runID,
		DryRun:   opts.DryRun,
		Versions: merged,
		Files:    make([]FileResult, 0, len(pending)),
	}
	if result.Versions == nil {
		result.Versions = []string{}
	}

	for _, p := range pending {
		changed := p.change.Changed
		if !opts.DryRun {
			if changed, err = p.change.Apply(); err != nil {
				return nil, err
			}
		}
		if changed {
			result.Updated = true
			log.Info("updated %s (%s)", p.change.Path, p.kind)
		} else {
			log.Debug("%s already up to date", p.change.Path)
		}
		result.Files = append(result.Files, FileResult{Kind: p.kind, Path: p.change.Path, Changed: changed})
	}

	return result, nil
}

func (s *Syncer) prepare(paths config.Config, records compat.Records, latest string) ([]pendingChange, error) {
	tableChange, err := filesync.PrepareFile(paths.TablePath, table.Render(records))
	if err != nil {
		return nil, err
	}
	pending := []pendingChange{{kind: FileTable, change: tableChange}}

	if latest == "" {
		return pending, nil
	}

	pin, err := filesync.PreparePatchVersionFile(paths.PatchVersionPath, latest)
	if err != nil {
		return nil, err
	}
	pending = append(pending, pendingChange{kind: FilePatchVersion, change: pin})

	test, err := filesync.TestVersionConstant.Prepare(paths.TestFile, latest)
	if err != nil {
		return nil, wrapPatchError(err)
	}
	pending = append(pending, pendingChange{kind: FileTestVersion, change: test})

	if paths.CIPath != "" {
		ci, err := filesync.CIVersionKey.Prepare(paths.CIPath, latest)
		if err != nil {
			return nil, wrapPatchError(err)
		}
		pending = append(pending, pendingChange{kind: FileCIVersion, change: ci})
	}

	return pending, nil
}

func wrapPatchError(err error) error {
	if errors.Is(err, filesync.ErrPatternNotFound) {
		return &NotFoundError{Err: err}
	}
	return err
}

// ParseMissing decodes the --missing-json value. An empty string means no
// releases. Array elements may be strings or numbers; other elements are
// dropped and left for validation to ignore.
func ParseMissing(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var items []interface{}
	if err := dec.Decode(&items); err != nil {
		return nil, NewUsageError("%w: %v", ErrInvalidMissingJSON, err)
	}
	if items == nil {
		return nil, NewUsageError("%w: not an array", ErrInvalidMissingJSON)
	}
	if dec.More() {
		return nil, NewUsageError("%w: trailing data after array", ErrInvalidMissingJSON)
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case json.Number:
			out = append(out, v.String())
		}
	}
	return out, nil
}
