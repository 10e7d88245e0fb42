package noqa

import (
	"bytes"
	"sort"
	"strings"

	"github.com/siftlint/sift/internal/rules"
	"github.com/siftlint/sift/internal/sourcemap"
)

// AddDirectives rewrites the source so that every diagnostic is
// suppressed by a `# noqa` directive on its governing line. Existing
// code-list directives are extended in place; lines without one get a
// trailing comment appended. Returns the new content and the number of
// lines edited.
//
// Callers pass the diagnostics that survived suppression: anything an
// existing directive already covers never reaches this function.
func AddDirectives(
	diags []rules.Diagnostic,
	sm *sourcemap.SourceMap,
	commentRows []int,
	noqaLineFor map[int]int,
) (string, int) {
	existing := map[int]Directive{}
	for _, row := range commentRows {
		if d := ExtractDirective(row, sm.Line(row)); d.Kind != DirectiveNone {
			existing[row] = d
		}
	}

	pending := map[int]map[string]bool{}
	for _, d := range diags {
		switch d.Code {
		case rules.UnusedSuppressionCode, rules.BlanketSuppressionCode:
			// Suppressing the suppression checks defeats them.
			continue
		}
		row := d.Row()
		if d.Parent != nil {
			row = d.Parent.Row
		}
		if mapped, ok := noqaLineFor[row]; ok {
			row = mapped
		}
		if pending[row] == nil {
			pending[row] = map[string]bool{}
		}
		pending[row][d.Code] = true
	}
	if len(pending) == 0 {
		return string(sm.Source()), 0
	}

	lines := make([]string, sm.LineCount())
	for row := 1; row <= sm.LineCount(); row++ {
		lines[row-1] = sm.Line(row)
	}

	edited := 0
	for row, codes := range pending {
		if row < 1 || row > len(lines) {
			continue
		}
		dir, has := existing[row]
		if has && dir.Kind == DirectiveAll {
			continue
		}
		if has {
			for _, code := range dir.Codes {
				codes[code] = true
			}
		}
		sorted := make([]string, 0, len(codes))
		for code := range codes {
			sorted = append(sorted, code)
		}
		sort.Strings(sorted)
		comment := "# noqa: " + strings.Join(sorted, ", ")

		line := []rune(lines[row-1])
		if has {
			lines[row-1] = string(line[:dir.Start]) + comment + string(line[dir.End:])
		} else {
			lines[row-1] = strings.TrimRight(string(line), " \t") + "  " + comment
		}
		edited++
	}

	// SourceMap strips \r when splitting, so rejoin with the file's own
	// line ending to keep CRLF input CRLF.
	newline := "\n"
	if bytes.Contains(sm.Source(), []byte("\r\n")) {
		newline = "\r\n"
	}
	return strings.Join(lines, newline), edited
}
