package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chis/compatsync/internal/config"
	"github.com/chis/compatsync/internal/logging"
	"github.com/chis/compatsync/internal/output"
	"github.com/chis/compatsync/internal/update"
)

// SyncOptions contains options for the sync command
type SyncOptions struct {
	MissingJSON   string
	LatestVersion string
	ProxyTag      string
	ConfigPath    string
	JSON          bool
	DryRun        bool
	Verbose       bool
	LogFormat     string

	// Paths holds flag values; only flags set explicitly override the config file.
	Paths config.Config
}

// SyncCommand implements the sync command
type SyncCommand struct {
	options SyncOptions
}

// NewSyncCommand creates a new sync command
func NewSyncCommand() *SyncCommand {
	return &SyncCommand{
		options: SyncOptions{
			MissingJSON: "[]",
			ConfigPath:  config.DefaultConfigPath,
			Paths:       config.Defaults(),
		},
	}
}

func newRootCommand() *cobra.Command {
	sc := NewSyncCommand()
	opts := &sc.options

	cmd := &cobra.Command{
		Use:   "claude-code-sync",
		Short: "Update the Claude Code compatibility table and pinned test version",
		Long: `Update the Claude Code compatibility table and pinned test version.

Releases listed in --missing-json are recorded with --proxy-tag and the
per-platform outcomes found in --results-dir. When --latest-version is set,
the pin file and the defaultClaudePatchVersion constant are updated too.

Prints "updated" when any file changed and "no changes" otherwise.`,
		Version:       output.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return sc.Run(cmd)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.MissingJSON, "missing-json", opts.MissingJSON, "JSON array of versions")
	flags.StringVar(&opts.LatestVersion, "latest-version", "", "Latest Claude Code version")
	flags.StringVar(&opts.ProxyTag, "proxy-tag", "", "claude-proxy tag (required)")
	flags.StringVar(&opts.Paths.TablePath, "table-path", opts.Paths.TablePath, "Compatibility table path")
	flags.StringVar(&opts.Paths.TestFile, "test-file", opts.Paths.TestFile, "Integration test file path")
	flags.StringVar(&opts.Paths.PatchVersionPath, "patch-version-path", opts.Paths.PatchVersionPath, "Pinned Claude Code version file")
	flags.StringVar(&opts.Paths.ResultsDir, "results-dir", opts.Paths.ResultsDir, "Directory of per-platform JSON results")
	flags.StringVar(&opts.Paths.CIPath, "ci-path", "", "CI workflow with CLAUDE_PATCH_VERSION to update (optional)")
	flags.StringVar(&opts.ConfigPath, "config", opts.ConfigPath, "YAML config file")
	flags.BoolVar(&opts.JSON, "json", false, "Output a JSON report")
	flags.BoolVar(&opts.DryRun, "dry-run", false, "Report changes without writing files")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&opts.LogFormat, "log-format", "", "Log format: console, json")

	return cmd
}

// resolveConfig layers explicitly set flags over the config file.
func (c *SyncCommand) resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(c.options.ConfigPath)
	if err != nil {
		return config.Config{}, update.NewUsageError("%w", err)
	}

	flagged := config.Config{}
	flags := cmd.Flags()
	if flags.Changed("table-path") {
		flagged.TablePath = c.options.Paths.TablePath
	}
	if flags.Changed("test-file") {
		flagged.TestFile = c.options.Paths.TestFile
	}
	if flags.Changed("patch-version-path") {
		flagged.PatchVersionPath = c.options.Paths.PatchVersionPath
	}
	if flags.Changed("results-dir") {
		flagged.ResultsDir = c.options.Paths.ResultsDir
	}
	if flags.Changed("ci-path") {
		flagged.CIPath = c.options.Paths.CIPath
	}
	flagged.LogFormat = c.options.LogFormat
	if c.options.Verbose {
		flagged.LogLevel = "debug"
	}

	return config.MergeConfigs(cfg, flagged), nil
}

func newLogger(w io.Writer, cfg config.Config) *logging.Logger {
	log := logging.New()
	log.SetOutput(w)
	if cfg.LogLevel != "" {
		log.SetLevel(logging.ParseLevel(cfg.LogLevel))
	}
	if cfg.LogFormat != "" {
		log.SetJSON(strings.EqualFold(cfg.LogFormat, "json"))
	}
	return log
}

// Run executes the sync command
func (c *SyncCommand) Run(cmd *cobra.Command) error {
	err := c.run(cmd)
	if err != nil && c.options.JSON {
		_ = output.WriteJSONError(cmd.OutOrStdout(), err)
	}
	return err
}

func (c *SyncCommand) run(cmd *cobra.Command) error {
	cfg, err := c.resolveConfig(cmd)
	if err != nil {
		return err
	}

	log := newLogger(cmd.ErrOrStderr(), cfg)
	logging.SetDefault(log)
	defer func() { _ = log.Sync() }()

	validation := config.ValidateConfig(cfg)
	for _, w := range validation.Warnings {
		log.Warn("%s", w)
	}
	if err := validation.Err(); err != nil {
		return &update.UsageError{Err: err}
	}

	result, err := update.NewSyncer(log).Run(update.Options{
		MissingJSON:   c.options.MissingJSON,
		LatestVersion: c.options.LatestVersion,
		ProxyTag:      c.options.ProxyTag,
		DryRun:        c.options.DryRun,
		Paths:         cfg,
	})
	if err != nil {
		return err
	}

	if c.options.JSON {
		return output.WriteJSONData(cmd.OutOrStdout(), result)
	}
	return output.WriteStatus(cmd.OutOrStdout(), result.Updated)
}
