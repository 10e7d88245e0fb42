package processor

import (
	"strings"

	"github.com/siftlint/sift/internal/rules"
)

// PathNormalization converts file paths to forward slashes for
// cross-platform consistency, so output is identical regardless of OS.
type PathNormalization struct{}

// NewPathNormalization creates a new path normalization processor.
func NewPathNormalization() *PathNormalization {
	return &PathNormalization{}
}

// Name returns the processor's identifier.
func (p *PathNormalization) Name() string {
	return "path-normalization"
}

// Process normalizes all file paths to use forward slashes.
func (p *PathNormalization) Process(diags []rules.Diagnostic, _ *Context) []rules.Diagnostic {
	return transformDiagnostics(diags, func(d rules.Diagnostic) rules.Diagnostic {
		d.File = strings.ReplaceAll(d.File, "\\", "/")
		return d
	})
}
