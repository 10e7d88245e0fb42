// Package fix applies diagnostic fixes to source text.
package fix

import (
	"sort"

	"github.com/siftlint/sift/internal/rules"
	"github.com/siftlint/sift/internal/syntax"
)

// Apply rewrites source by applying every fix carried by diags, skipping
// any fix that overlaps one already accepted. Returns the new content
// and the number of fixes applied. Fixing can unlock further findings,
// so callers typically re-lint and re-apply until the count reaches
// zero.
func Apply(source string, diags []rules.Diagnostic) (string, int) {
	var fixes []rules.Fix
	for _, d := range diags {
		if d.Fix != nil {
			fixes = append(fixes, *d.Fix)
		}
	}
	if len(fixes) == 0 {
		return source, 0
	}

	sort.Slice(fixes, func(i, j int) bool {
		return fixes[i].Location.Start.Before(fixes[j].Location.Start)
	})

	kept := fixes[:1]
	for _, f := range fixes[1:] {
		if f.Location.Overlaps(kept[len(kept)-1].Location) {
			continue
		}
		kept = append(kept, f)
	}

	// Splice back to front so earlier byte offsets stay valid.
	starts := lineStarts(source)
	out := source
	for i := len(kept) - 1; i >= 0; i-- {
		start := byteOffset(source, starts, kept[i].Location.Start)
		end := byteOffset(source, starts, kept[i].Location.End)
		if start < 0 || end < start {
			continue
		}
		out = out[:start] + kept[i].Content + out[end:]
	}
	return out, len(kept)
}

func lineStarts(source string) []int {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// byteOffset converts a row/column position into a byte offset into
// source. Columns count runes, matching how diagnostics measure them;
// columns past the end of the line clamp to the line end.
func byteOffset(source string, starts []int, p syntax.Position) int {
	if p.Row < 1 || p.Row > len(starts) {
		return -1
	}
	base := starts[p.Row-1]
	col := p.Col
	for i, r := range source[base:] {
		if r == '\n' || r == '\r' || col == 0 {
			return base + i
		}
		col--
	}
	return len(source)
}
