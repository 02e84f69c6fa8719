package config

import (
	"fmt"
	"strings"
)

// ValidationResult contains the results of configuration validation.
// Separates errors (blocking issues) from warnings (non-blocking issues).
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// IsValid returns true if there are no validation errors.
func (vr *ValidationResult) IsValid() bool {
	return len(vr.Errors) == 0
}

// AddError adds an error message to the validation result.
func (vr *ValidationResult) AddError(msg string) {
	vr.Errors = append(vr.Errors, msg)
}

// AddWarning adds a warning message to the validation result.
func (vr *ValidationResult) AddWarning(msg string) {
	vr.Warnings = append(vr.Warnings, msg)
}

// Err joins the errors into one error, or returns nil.
func (vr *ValidationResult) Err() error {
	if vr.IsValid() {
		return nil
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(vr.Errors, "; "))
}

// ValidateConfig checks that every required path is set and that logging
// options are recognised.
func ValidateConfig(cfg Config) ValidationResult {
	result := ValidationResult{}

	required := []struct {
		key   string
		value string
	}{
		{"table_path", cfg.TablePath},
		{"test_file", cfg.TestFile},
		{"patch_version_path", cfg.PatchVersionPath},
		{"results_dir", cfg.ResultsDir},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			result.AddError(fmt.Sprintf("%s cannot be empty", r.key))
		}
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		result.AddWarning(fmt.Sprintf("unknown log_level %q, using info", cfg.LogLevel))
	}

	switch strings.ToLower(cfg.LogFormat) {
	case "", "console", "json":
	default:
		result.AddWarning(fmt.Sprintf("unknown log_format %q, using console", cfg.LogFormat))
	}

	return result
}
