// Package sourcemap provides line-oriented access to source text: line
// lookup, snippet extraction, and slicing by the checker's Range model.
//
// All row numbers here are 1-based and columns are 0-based character
// offsets, matching internal/syntax positions. Column arithmetic is done
// in runes so multi-byte source does not skew `# noqa` spans or fixes.
package sourcemap

import (
	"bytes"
	"strings"

	"github.com/siftlint/sift/internal/syntax"
)

// SourceMap precomputes line boundaries for a file's source text.
type SourceMap struct {
	source []byte
	lines  []string
}

// New builds a SourceMap. Lines are split on \n; a trailing \r is trimmed
// so CRLF input slices the same as LF input.
func New(source []byte) *SourceMap {
	raw := bytes.Split(source, []byte{'\n'})
	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = strings.TrimSuffix(string(line), "\r")
	}
	return &SourceMap{source: source, lines: lines}
}

// Source returns the raw source content. Callers must not modify it.
func (sm *SourceMap) Source() []byte {
	return sm.source
}

// LineCount returns the number of physical lines.
func (sm *SourceMap) LineCount() int {
	return len(sm.lines)
}

// Line returns the text of a 1-based line without its line ending.
// Out-of-range rows return the empty string.
func (sm *SourceMap) Line(row int) string {
	if row < 1 || row > len(sm.lines) {
		return ""
	}
	return sm.lines[row-1]
}

// LineWidth returns the length of a 1-based line in characters.
func (sm *SourceMap) LineWidth(row int) int {
	return len([]rune(sm.Line(row)))
}

// Slice returns the text covered by a half-open range. Multi-line slices
// join the covered segments with \n.
func (sm *SourceMap) Slice(r syntax.Range) string {
	if r.Start.Row == r.End.Row {
		return sliceLine(sm.Line(r.Start.Row), r.Start.Col, r.End.Col)
	}
	var b strings.Builder
	b.WriteString(sliceLine(sm.Line(r.Start.Row), r.Start.Col, -1))
	for row := r.Start.Row + 1; row < r.End.Row; row++ {
		b.WriteByte('\n')
		b.WriteString(sm.Line(row))
	}
	b.WriteByte('\n')
	b.WriteString(sliceLine(sm.Line(r.End.Row), 0, r.End.Col))
	return b.String()
}

// Snippet extracts an inclusive range of 1-based lines, clamped to the
// file. Used by reporters for source context.
func (sm *SourceMap) Snippet(startRow, endRow int) string {
	if startRow < 1 {
		startRow = 1
	}
	if endRow > len(sm.lines) {
		endRow = len(sm.lines)
	}
	if startRow > endRow {
		return ""
	}
	return strings.Join(sm.lines[startRow-1:endRow], "\n")
}

// Indentation returns the leading whitespace of a 1-based line.
func (sm *SourceMap) Indentation(row int) string {
	line := sm.Line(row)
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// sliceLine cuts a single line by rune columns; endCol -1 means to the
// end of the line. Columns are clamped to the line width.
func sliceLine(line string, startCol, endCol int) string {
	runes := []rune(line)
	if startCol < 0 {
		startCol = 0
	}
	if startCol > len(runes) {
		startCol = len(runes)
	}
	if endCol < 0 || endCol > len(runes) {
		endCol = len(runes)
	}
	if startCol >= endCol {
		return ""
	}
	return string(runes[startCol:endCol])
}
