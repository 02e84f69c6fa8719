// Package config resolves file locations and logging settings for a sync run.
package config

// Default locations, relative to the repository root the tool runs in.
const (
	DefaultConfigPath       = ".claude-code-sync.yaml"
	DefaultTablePath        = "docs/claude_code_compatibility.md"
	DefaultTestFile         = "internal/cli/claude_patch_integration_test.go"
	DefaultPatchVersionPath = "scripts/claude_patch_version.txt"
	DefaultResultsDir       = "results"
)

// Config holds the settable paths and logging options.
type Config struct {
	// TablePath is the markdown compatibility table.
	TablePath string `yaml:"table_path"`

	// TestFile holds the defaultClaudePatchVersion constant.
	TestFile string `yaml:"test_file"`

	// PatchVersionPath is the plain-text pin file.
	PatchVersionPath string `yaml:"patch_version_path"`

	// ResultsDir holds per-platform JSON result files.
	ResultsDir string `yaml:"results_dir"`

	// CIPath optionally names a CI workflow with a CLAUDE_PATCH_VERSION entry.
	// Empty disables the CI update.
	CIPath string `yaml:"ci_path"`

	// LogLevel and LogFormat override LOG_LEVEL and LOG_FORMAT when set.
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		TablePath:        DefaultTablePath,
		TestFile:         DefaultTestFile,
		PatchVersionPath: DefaultPatchVersionPath,
		ResultsDir:       DefaultResultsDir,
	}
}

// MergeConfigs overlays the non-empty fields of override onto base.
func MergeConfigs(base, override Config) Config {
	merged := base
	overlay(&merged.TablePath, override.TablePath)
	overlay(&merged.TestFile, override.TestFile)
	overlay(&merged.PatchVersionPath, override.PatchVersionPath)
	overlay(&merged.ResultsDir, override.ResultsDir)
	overlay(&merged.CIPath, override.CIPath)
	overlay(&merged.LogLevel, override.LogLevel)
	overlay(&merged.LogFormat, override.LogFormat)
	return merged
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
