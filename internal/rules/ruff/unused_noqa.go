// Package ruff registers metadata for rules enforced outside the tree
// walk. The unused-noqa check runs in the suppression pass, after
// matching decides which directives earned their keep.
package ruff

import "github.com/siftlint/sift/internal/rules"

func init() {
	rules.Register(rules.Metadata{
		Code:            rules.UnusedSuppressionCode,
		Name:            "unused-noqa",
		Summary:         "noqa directive suppresses nothing",
		DocURL:          "https://docs.siftlint.dev/rules/unused-noqa",
		DefaultSeverity: rules.SeverityWarning,
		Fixable:         true,
	})
}
