// Package processor provides a composable diagnostic processing pipeline.
//
// The processor chain pattern is inspired by golangci-lint's approach:
// diagnostics flow through a sequence of processors, each transforming
// the slice (filtering, modifying, or augmenting).
//
// Standard pipeline order:
//  1. PathNormalization - Cross-platform path consistency
//  2. Deduplication - Remove duplicate diagnostics
//  3. Sorting - Stable output ordering
//  4. SnippetAttachment - Populate Snippet field
package processor

import (
	"github.com/siftlint/sift/internal/config"
	"github.com/siftlint/sift/internal/rules"
	"github.com/siftlint/sift/internal/sourcemap"
)

// Processor transforms a slice of diagnostics.
// Implementations should be stateless where possible, using Context for shared state.
type Processor interface {
	// Name returns the processor's identifier (for debugging/logging).
	Name() string

	// Process applies the processor's logic to diagnostics.
	// Must not modify the input slice; return a new slice if filtering.
	Process(diags []rules.Diagnostic, ctx *Context) []rules.Diagnostic
}

// Context provides shared state for processors.
// Populated once before running the chain, then passed to each processor.
type Context struct {
	// Config is the loaded configuration.
	Config *config.Config

	// FileSources maps file paths to their raw source content.
	// Used by SnippetAttachment for extracting source code.
	FileSources map[string][]byte

	// sourceMaps caches parsed source maps by file path.
	sourceMaps map[string]*sourcemap.SourceMap
}

// NewContext creates a new processor context.
func NewContext(cfg *config.Config, fileSources map[string][]byte) *Context {
	return &Context{
		Config:      cfg,
		FileSources: fileSources,
		sourceMaps:  make(map[string]*sourcemap.SourceMap),
	}
}

// GetSourceMap returns or creates a SourceMap for the given file.
// Returns nil if the file is not in FileSources.
func (ctx *Context) GetSourceMap(file string) *sourcemap.SourceMap {
	if sm, ok := ctx.sourceMaps[file]; ok {
		return sm
	}
	source, ok := ctx.FileSources[file]
	if !ok {
		return nil
	}
	sm := sourcemap.New(source)
	ctx.sourceMaps[file] = sm
	return sm
}

// Chain runs processors in sequence.
type Chain struct {
	processors []Processor
}

// NewChain creates a new processor chain.
func NewChain(processors ...Processor) *Chain {
	return &Chain{processors: processors}
}

// Default returns the standard chain in its canonical order.
func Default() *Chain {
	return NewChain(
		NewPathNormalization(),
		NewDeduplication(),
		NewSorting(),
		NewSnippetAttachment(),
	)
}

// Process runs all processors in sequence.
func (c *Chain) Process(diags []rules.Diagnostic, ctx *Context) []rules.Diagnostic {
	for _, p := range c.processors {
		diags = p.Process(diags, ctx)
	}
	return diags
}

// filterDiagnostics returns a new slice containing only diagnostics
// where keep() returns true.
func filterDiagnostics(diags []rules.Diagnostic, keep func(d rules.Diagnostic) bool) []rules.Diagnostic {
	result := make([]rules.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if keep(d) {
			result = append(result, d)
		}
	}
	return result
}

// transformDiagnostics returns a new slice with each diagnostic
// transformed by transform().
func transformDiagnostics(
	diags []rules.Diagnostic,
	transform func(d rules.Diagnostic) rules.Diagnostic,
) []rules.Diagnostic {
	result := make([]rules.Diagnostic, len(diags))
	for i, d := range diags {
		result[i] = transform(d)
	}
	return result
}
