// Package testutil provides test helpers for the Python linter.
package testutil

import (
	"context"
	"testing"

	"github.com/siftlint/sift/internal/check"
	"github.com/siftlint/sift/internal/config"
	"github.com/siftlint/sift/internal/linter"
	"github.com/siftlint/sift/internal/python"
	"github.com/siftlint/sift/internal/rules"
	_ "github.com/siftlint/sift/internal/rules/all" // Register all rules
)

// Parse parses Python source from a string, failing the test on syntax
// errors.
func Parse(t *testing.T, source string) *python.File {
	t.Helper()

	f, err := python.Parse(context.Background(), []byte(source))
	if err != nil {
		t.Fatalf("failed to parse source: %v", err)
	}
	return f
}

// Analyze runs the registered rules over source with the given config,
// without suppression handling. A nil config enables every rule with
// fixes on.
func Analyze(t *testing.T, source string, cfg *config.Config) []rules.Diagnostic {
	t.Helper()

	if cfg == nil {
		cfg = AllRules()
	}
	f := Parse(t, source)
	return check.Analyze(f.Module, []byte(source), f.CommentLines, cfg, "test.py")
}

// Lint runs the full lint pipeline (rules plus noqa handling) over source.
func Lint(t *testing.T, source string, cfg *config.Config) []rules.Diagnostic {
	t.Helper()

	if cfg == nil {
		cfg = AllRules()
	}
	res, err := linter.LintFile(context.Background(), linter.Input{
		FilePath: "test.py",
		Content:  []byte(source),
		Config:   cfg,
	})
	if err != nil {
		t.Fatalf("failed to lint source: %v", err)
	}
	return res.Diagnostics
}

// AllRules returns a config with every rule selected and fixes enabled.
func AllRules() *config.Config {
	cfg := config.Default()
	cfg.Select = []string{"ALL"}
	cfg.Fix = true
	return cfg
}

// Codes extracts the rule codes of diagnostics, in order.
func Codes(diags []rules.Diagnostic) []string {
	codes := make([]string, len(diags))
	for i, d := range diags {
		codes[i] = d.Code
	}
	return codes
}
