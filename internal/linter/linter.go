// Package linter provides the shared lint pipeline used by the CLI.
//
// The pipeline: config discovery → parse → tree walk → suppression →
// diagnostic collection. Callers run [LintFile] and then apply the
// processor chain to filter and transform the results.
package linter

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/siftlint/sift/internal/check"
	"github.com/siftlint/sift/internal/config"
	"github.com/siftlint/sift/internal/noqa"
	"github.com/siftlint/sift/internal/python"
	"github.com/siftlint/sift/internal/rules"
	_ "github.com/siftlint/sift/internal/rules/all" // Register all rules.
	"github.com/siftlint/sift/internal/sourcemap"
)

// Input configures a single invocation of [LintFile].
type Input struct {
	// FilePath is used for config discovery and diagnostic locations.
	FilePath string

	// Content is the file content to lint. If nil, LintFile reads from FilePath.
	Content []byte

	// Config is the resolved configuration. If nil, LintFile loads from FilePath.
	Config *config.Config

	// Autofix enables fix attachment on diagnostics.
	Autofix bool
}

// Result contains the output of [LintFile].
type Result struct {
	// Diagnostics are the findings that survived suppression, before
	// processor filtering.
	Diagnostics []rules.Diagnostic

	// File is the parsed source (syntax tree plus line facts).
	File *python.File

	// Source is the content that was linted.
	Source []byte

	// Config is the resolved config (loaded or passed in via Input).
	Config *config.Config
}

// LintFile runs the full lint pipeline for one file.
func LintFile(ctx context.Context, input Input) (*Result, error) {
	content := input.Content
	if content == nil {
		var err error
		content, err = os.ReadFile(input.FilePath)
		if err != nil {
			return nil, err
		}
	}

	cfg := input.Config
	if cfg == nil {
		var err error
		cfg, err = config.Load(input.FilePath)
		if err != nil {
			logrus.WithField("file", input.FilePath).WithError(err).Warn("config load failed, using defaults")
			cfg = config.Default()
		}
	}
	if input.Autofix {
		fixing := *cfg
		fixing.Fix = true
		cfg = &fixing
	}

	parsed, err := python.Parse(ctx, content)
	if err != nil {
		return nil, err
	}

	sm := sourcemap.New(content)
	diags := check.Analyze(parsed.Module, content, parsed.CommentLines, cfg, input.FilePath)
	diags = noqa.Check(diags, sm, parsed.CommentLines, parsed.NoqaLineFor, cfg, input.FilePath, input.Autofix)

	return &Result{
		Diagnostics: diags,
		File:        parsed,
		Source:      content,
		Config:      cfg,
	}, nil
}

// EnabledRuleCodes returns the rule codes active for the given config,
// sorted.
func EnabledRuleCodes(cfg *config.Config) []string {
	var enabled []string
	for _, code := range rules.DefaultRegistry().Codes() {
		if cfg.Enabled(code) {
			enabled = append(enabled, code)
		}
	}
	return enabled
}
