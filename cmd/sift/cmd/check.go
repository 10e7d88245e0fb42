package cmd

import (
	stdcontext "context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/siftlint/sift/internal/config"
	"github.com/siftlint/sift/internal/discovery"
	"github.com/siftlint/sift/internal/linter"
	"github.com/siftlint/sift/internal/processor"
	"github.com/siftlint/sift/internal/reporter"
	"github.com/siftlint/sift/internal/rules"
	"github.com/siftlint/sift/internal/version"
)

// Exit codes
const (
	ExitSuccess     = 0 // No violations (or below fail-level threshold)
	ExitViolations  = 1 // Violations found at or above fail-level
	ExitConfigError = 2 // Parse or config error
	ExitNoFiles     = 3 // No Python files found (missing file, empty glob, empty directory)
)

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Check Python source file(s) for issues",
		ArgsUsage: "[FILE...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (default: auto-discover)",
			},
			&cli.StringSliceFlag{
				Name:    "select",
				Usage:   "Enable specific rules (code or prefix: UP007, SIM, ALL)",
				Sources: cli.EnvVars("SIFT_SELECT"),
			},
			&cli.StringSliceFlag{
				Name:    "ignore",
				Usage:   "Disable specific rules (code or prefix: UP007, SIM, ALL)",
				Sources: cli.EnvVars("SIFT_IGNORE"),
			},
			&cli.IntFlag{
				Name:    "line-length",
				Usage:   "Maximum allowed line length in characters",
				Sources: cli.EnvVars("SIFT_LINE_LENGTH"),
			},
			&cli.BoolFlag{
				Name:    "fix",
				Usage:   "Apply fixes automatically",
				Sources: cli.EnvVars("SIFT_FIX"),
			},
			&cli.BoolFlag{
				Name:  "add-noqa",
				Usage: "Add noqa directives for all findings instead of reporting them",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, sarif, github-actions, markdown",
				Sources: cli.EnvVars("SIFT_FORMAT", "SIFT_OUTPUT_FORMAT"),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output path: stdout, stderr, or file path",
				Sources: cli.EnvVars("SIFT_OUTPUT_PATH"),
			},
			&cli.BoolFlag{
				Name:    "no-color",
				Usage:   "Disable colored output",
				Sources: cli.EnvVars("NO_COLOR"),
			},
			&cli.BoolFlag{
				Name:    "show-source",
				Usage:   "Show source code snippets (default: true)",
				Value:   true,
				Sources: cli.EnvVars("SIFT_OUTPUT_SHOW_SOURCE"),
			},
			&cli.BoolFlag{
				Name:  "hide-source",
				Usage: "Hide source code snippets",
			},
			&cli.StringFlag{
				Name:    "fail-level",
				Usage:   "Minimum severity to cause non-zero exit: error, warning, info, style, none",
				Sources: cli.EnvVars("SIFT_OUTPUT_FAIL_LEVEL"),
			},
			&cli.StringSliceFlag{
				Name:    "exclude",
				Usage:   "Glob pattern to exclude files (can be repeated)",
				Sources: cli.EnvVars("SIFT_EXCLUDE"),
			},
		},
		Action: runCheck,
	}
}

// checkResults holds the aggregated results of checking all discovered files.
type checkResults struct {
	diagnostics  []rules.Diagnostic
	fileSources  map[string][]byte
	firstCfg     *config.Config
	fixesApplied int
	filesFixed   int
}

// runCheck is the action handler for the check command.
func runCheck(ctx stdcontext.Context, cmd *cli.Command) error {
	inputs := cmd.Args().Slice()
	if len(inputs) == 0 {
		inputs = []string{"."}
	}

	// Config exclude patterns apply to discovery alongside --exclude.
	excludes := cmd.StringSlice("exclude")
	if baseCfg, err := loadConfigForFile(cmd, "."); err == nil {
		excludes = append(excludes, baseCfg.Exclude...)
	}

	discovered, err := discovery.Discover(inputs, discovery.Options{
		Patterns:        discovery.DefaultPatterns(),
		ExcludePatterns: excludes,
	})
	if err != nil {
		var notFound *discovery.FileNotFoundError
		if errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", notFound)
			return cli.Exit("", ExitNoFiles)
		}
		fmt.Fprintf(os.Stderr, "Error: failed to discover files: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	if len(discovered) == 0 {
		reportNoFilesFound(inputs)
		return cli.Exit("", ExitNoFiles)
	}

	if cmd.Bool("add-noqa") {
		return runAddNoqa(ctx, cmd, discovered)
	}

	res, err := checkFiles(ctx, discovered, cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	chain := processor.Default()
	procCtx := processor.NewContext(res.firstCfg, res.fileSources)
	allDiagnostics := chain.Process(res.diagnostics, procCtx)

	if res.fixesApplied > 0 {
		fmt.Fprintf(os.Stderr, "Fixed %d issues in %d files\n", res.fixesApplied, res.filesFixed)
	}

	return writeReport(cmd, res.firstCfg, allDiagnostics, res.fileSources, len(discovered), res.fixesApplied)
}

// checkFiles runs the lint pipeline on each discovered file and aggregates
// results. Files are processed concurrently; result order follows discovery
// order.
func checkFiles(ctx stdcontext.Context, discovered []discovery.DiscoveredFile, cmd *cli.Command) (*checkResults, error) {
	type fileResult struct {
		diagnostics []rules.Diagnostic
		source      []byte
		cfg         *config.Config
		applied     int
	}

	results := make([]fileResult, len(discovered))
	applyFixes := cmd.Bool("fix")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(runtime.GOMAXPROCS(0), len(discovered)))

	for i, df := range discovered {
		g.Go(func() error {
			file := df.Path

			cfg, err := loadConfigForFile(cmd, file)
			if err != nil {
				return fmt.Errorf("failed to load config for %s: %w", file, err)
			}

			if applyFixes {
				fixed, err := linter.FixFile(gctx, linter.Input{FilePath: file, Config: cfg})
				if err != nil {
					return fmt.Errorf("failed to check %s: %w", file, err)
				}
				if fixed.Applied > 0 {
					if err := writeFilePreservingMode(file, fixed.Content); err != nil {
						return err
					}
				}
				results[i] = fileResult{
					diagnostics: fixed.Diagnostics,
					source:      fixed.Content,
					cfg:         cfg,
					applied:     fixed.Applied,
				}
				return nil
			}

			result, err := linter.LintFile(gctx, linter.Input{FilePath: file, Config: cfg})
			if err != nil {
				return fmt.Errorf("failed to check %s: %w", file, err)
			}
			results[i] = fileResult{
				diagnostics: result.Diagnostics,
				source:      result.Source,
				cfg:         cfg,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &checkResults{fileSources: make(map[string][]byte)}
	for i, fr := range results {
		file := discovered[i].Path
		res.fileSources[file] = fr.source
		res.diagnostics = append(res.diagnostics, fr.diagnostics...)
		res.fixesApplied += fr.applied
		if fr.applied > 0 {
			res.filesFixed++
		}
		if res.firstCfg == nil {
			res.firstCfg = fr.cfg
		}
	}

	return res, nil
}

// runAddNoqa inserts suppression directives for every finding and reports
// how many lines were edited.
func runAddNoqa(ctx stdcontext.Context, cmd *cli.Command, discovered []discovery.DiscoveredFile) error {
	type fileResult struct {
		content []byte
		added   int
	}

	results := make([]fileResult, len(discovered))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(runtime.GOMAXPROCS(0), len(discovered)))

	for i, df := range discovered {
		g.Go(func() error {
			cfg, err := loadConfigForFile(cmd, df.Path)
			if err != nil {
				return fmt.Errorf("failed to load config for %s: %w", df.Path, err)
			}

			res, err := linter.AddNoqa(gctx, linter.Input{FilePath: df.Path, Config: cfg})
			if err != nil {
				return fmt.Errorf("failed to check %s: %w", df.Path, err)
			}
			results[i] = fileResult{content: res.Content, added: res.Added}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	totalAdded, filesEdited := 0, 0
	for i, fr := range results {
		if fr.added == 0 {
			continue
		}
		if err := writeFilePreservingMode(discovered[i].Path, fr.content); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return cli.Exit("", ExitConfigError)
		}
		totalAdded += fr.added
		filesEdited++
	}

	fmt.Fprintf(os.Stderr, "Added %d noqa directives to %d files\n", totalAdded, filesEdited)
	return nil
}

// writeFilePreservingMode writes content to path, keeping the original
// file permissions.
func writeFilePreservingMode(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, content, mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// writeReport formats and writes the diagnostic report.
func writeReport(
	cmd *cli.Command, cfg *config.Config, diagnostics []rules.Diagnostic,
	fileSources map[string][]byte, filesScanned, fixesApplied int,
) error {
	outCfg := getOutputConfig(cmd, cfg)

	formatType, err := reporter.ParseFormat(outCfg.format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	writer, closeWriter, err := reporter.GetWriter(outCfg.path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}
	defer func() {
		if err := closeWriter(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close output: %v\n", err)
		}
	}()

	opts := reporter.Options{
		Format:      formatType,
		Writer:      writer,
		ShowSource:  outCfg.showSource,
		ToolName:    "sift",
		ToolVersion: version.Version(),
		ToolURI:     "https://github.com/siftlint/sift",
	}

	if cmd.IsSet("no-color") && cmd.Bool("no-color") {
		color := false
		opts.Color = &color
	}

	rep, err := reporter.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create reporter: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	metadata := reporter.ReportMetadata{
		FilesScanned: filesScanned,
		RulesEnabled: len(linter.EnabledRuleCodes(cfg)),
		FixesApplied: fixesApplied,
	}

	if err := rep.Report(diagnostics, fileSources, metadata); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to write output: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	exitCode := determineExitCode(diagnostics, outCfg.failLevel)
	if exitCode != ExitSuccess {
		return cli.Exit("", exitCode)
	}

	return nil
}

// loadConfigForFile loads configuration for a target file, applying CLI overrides.
func loadConfigForFile(cmd *cli.Command, targetPath string) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if configPath := cmd.String("config"); configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load(targetPath)
	}
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("select") {
		cfg.Select = append(cfg.Select, cmd.StringSlice("select")...)
	}
	if cmd.IsSet("ignore") {
		cfg.Ignore = append(cfg.Ignore, cmd.StringSlice("ignore")...)
	}
	if cmd.IsSet("line-length") {
		cfg.LineLength = cmd.Int("line-length")
	}
	if cmd.IsSet("fix") {
		cfg.Fix = cmd.Bool("fix")
	}

	// Output settings are handled in getOutputConfig to avoid duplication

	return cfg, nil
}

// outputConfig holds output configuration values.
type outputConfig struct {
	format     string
	path       string
	showSource bool
	failLevel  string
}

// getOutputConfig returns output configuration from CLI flags and config.
func getOutputConfig(cmd *cli.Command, cfg *config.Config) outputConfig {
	// Start with defaults
	oc := outputConfig{
		format:     "text",
		path:       "stdout",
		showSource: true,
		failLevel:  "style",
	}

	if cfg != nil {
		if cfg.Output.Format != "" {
			oc.format = cfg.Output.Format
		}

		if cfg.Output.Path != "" {
			oc.path = cfg.Output.Path
		}

		oc.showSource = cfg.Output.ShowSource

		if cfg.Output.FailLevel != "" {
			oc.failLevel = cfg.Output.FailLevel
		}
	}

	// CLI flags take precedence
	if cmd.IsSet("format") {
		oc.format = cmd.String("format")
	}

	if cmd.IsSet("output") {
		oc.path = cmd.String("output")
	}

	if cmd.IsSet("show-source") {
		oc.showSource = cmd.Bool("show-source")
	}

	if cmd.IsSet("hide-source") && cmd.Bool("hide-source") {
		oc.showSource = false
	}

	if cmd.IsSet("fail-level") {
		oc.failLevel = cmd.String("fail-level")
	}

	return oc
}

// determineExitCode returns the appropriate exit code based on findings and fail-level.
func determineExitCode(diagnostics []rules.Diagnostic, failLevel string) int {
	// "none" means never fail due to findings
	if failLevel == "none" {
		return ExitSuccess
	}

	// Parse fail-level first to catch config errors even with no findings
	threshold, err := parseFailLevel(failLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid --fail-level %q\n", failLevel)
		return ExitConfigError
	}

	if len(diagnostics) == 0 {
		return ExitSuccess
	}

	for _, d := range diagnostics {
		if d.Severity.IsAtLeast(threshold) {
			return ExitViolations
		}
	}

	return ExitSuccess
}

// parseFailLevel parses a fail-level string to a Severity.
func parseFailLevel(level string) (rules.Severity, error) {
	switch level {
	case "", "style":
		// Default to "style" (any finding fails)
		return rules.SeverityStyle, nil
	default:
		return rules.ParseSeverity(level)
	}
}

// reportNoFilesFound prints a context-aware message when no Python files are found.
func reportNoFilesFound(inputs []string) {
	for _, input := range inputs {
		if discovery.ContainsGlobChars(input) {
			fmt.Fprintf(os.Stderr, "Error: no Python files matched pattern: %s\n", input)
			return
		}
	}

	// For directory inputs, resolve to absolute path so the user knows exactly
	// which directory was scanned.
	for _, input := range inputs {
		abs, err := filepath.Abs(input)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err == nil && info.IsDir() {
			fmt.Fprintf(os.Stderr, "Error: no Python files found in %s\n", abs)
			return
		}
	}

	fmt.Fprintf(os.Stderr, "Error: no Python files found\n")
}
