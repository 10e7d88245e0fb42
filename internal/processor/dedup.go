package processor

import (
	"fmt"
	"path/filepath"

	"github.com/siftlint/sift/internal/rules"
)

// Deduplication removes duplicate diagnostics. Two diagnostics are
// duplicates when they share file, start position, and code; the first
// occurrence wins.
type Deduplication struct{}

// NewDeduplication creates a new deduplication processor.
func NewDeduplication() *Deduplication {
	return &Deduplication{}
}

// Name returns the processor's identifier.
func (p *Deduplication) Name() string {
	return "deduplication"
}

// Process removes duplicate diagnostics.
func (p *Deduplication) Process(diags []rules.Diagnostic, _ *Context) []rules.Diagnostic {
	seen := make(map[string]bool)
	return filterDiagnostics(diags, func(d rules.Diagnostic) bool {
		key := fmt.Sprintf("%s:%d:%d:%s",
			filepath.ToSlash(d.File), d.Location.Start.Row, d.Location.Start.Col, d.Code)
		if seen[key] {
			return false
		}
		seen[key] = true
		return true
	})
}
