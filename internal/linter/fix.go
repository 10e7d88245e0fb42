package linter

import (
	"context"

	"github.com/siftlint/sift/internal/fix"
	"github.com/siftlint/sift/internal/noqa"
	"github.com/siftlint/sift/internal/rules"
	"github.com/siftlint/sift/internal/sourcemap"
)

// maxFixPasses bounds the fix/re-lint loop. Fixes can cascade (merging
// a nested if exposes another), but each pass must strictly shrink the
// fixable set, so the bound is only a backstop against a misbehaving
// rule that re-reports its own output.
const maxFixPasses = 10

// FixResult contains the output of [FixFile].
type FixResult struct {
	// Content is the source after all applicable fixes.
	Content []byte

	// Applied is the total number of fixes applied across passes.
	Applied int

	// Diagnostics are the findings remaining after fixing.
	Diagnostics []rules.Diagnostic
}

// FixFile lints and fixes one file until no applicable fixes remain,
// then reports the leftover findings. The file itself is not written;
// callers own persistence.
func FixFile(ctx context.Context, input Input) (*FixResult, error) {
	input.Autofix = true

	content := input.Content
	applied := 0
	var diags []rules.Diagnostic

	for pass := 0; pass < maxFixPasses; pass++ {
		input.Content = content
		res, err := LintFile(ctx, input)
		if err != nil {
			return nil, err
		}
		content = res.Source
		diags = res.Diagnostics
		input.Config = res.Config

		fixed, n := fix.Apply(string(content), diags)
		if n == 0 {
			break
		}
		applied += n
		content = []byte(fixed)
	}

	return &FixResult{
		Content:     content,
		Applied:     applied,
		Diagnostics: diags,
	}, nil
}

// AddNoqaResult contains the output of [AddNoqa].
type AddNoqaResult struct {
	// Content is the source with directives added.
	Content []byte

	// Added is the number of lines that gained or extended a directive.
	Added int
}

// AddNoqa lints one file and inserts suppression directives for every
// finding that is not already suppressed.
func AddNoqa(ctx context.Context, input Input) (*AddNoqaResult, error) {
	res, err := LintFile(ctx, input)
	if err != nil {
		return nil, err
	}

	sm := sourcemap.New(res.Source)
	content, added := noqa.AddDirectives(res.Diagnostics, sm, res.File.CommentLines, res.File.NoqaLineFor)
	return &AddNoqaResult{Content: []byte(content), Added: added}, nil
}
