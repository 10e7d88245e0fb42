package check

import (
	"strings"

	"github.com/siftlint/sift/internal/syntax"
)

// HasCommentIn reports whether the source covered by the range contains a
// comment. Span replacements would silently destroy such comments, so
// every fix-synthesizing rule guards on this before attaching a fix.
func (c *Checker) HasCommentIn(r syntax.Range) bool {
	text := c.Source.Slice(r)
	for _, line := range strings.Split(text, "\n") {
		if lineHasComment(line) {
			return true
		}
	}
	return false
}

// lineHasComment scans one physical line for a `#` outside of a string
// literal. Tracks single- and double-quote state with backslash escapes;
// triple-quoted strings spanning the scanned region are rare inside the
// statement spans rules replace, and a false positive there only means a
// fix is conservatively withheld.
func lineHasComment(line string) bool {
	var quote rune
	escaped := false
	for _, r := range line {
		if escaped {
			escaped = false
			continue
		}
		switch {
		case r == '\\':
			escaped = true
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '#':
			return true
		}
	}
	return false
}
