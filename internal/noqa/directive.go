// Package noqa implements inline suppression: parsing of `# noqa`
// directives, matching diagnostics against them, and enforcement of the
// directives themselves.
package noqa

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DirectiveKind classifies a suppression comment.
type DirectiveKind int

const (
	// DirectiveNone means the line carries no suppression comment.
	DirectiveNone DirectiveKind = iota
	// DirectiveAll is a bare `# noqa`, suppressing every code on the line.
	DirectiveAll
	// DirectiveCodes is `# noqa: X1, Y2`, suppressing the listed codes.
	DirectiveCodes
)

// Directive is one parsed suppression comment. Columns are 0-based rune
// offsets into the line, so fixes can address the directive precisely.
type Directive struct {
	Kind  DirectiveKind
	Codes []string

	// Row is the 1-based line the directive sits on.
	Row int
	// Spaces counts the whitespace runes immediately before the `#`.
	Spaces int
	// Start is the column of the `#`; End is one past the directive.
	Start int
	End   int
}

// Includes reports whether the directive suppresses the given code,
// looking through historical code redirects on the listed side.
func (d Directive) Includes(code string, redirect func(string) string) bool {
	switch d.Kind {
	case DirectiveAll:
		return true
	case DirectiveCodes:
		for _, listed := range d.Codes {
			if redirect(listed) == code {
				return true
			}
		}
	}
	return false
}

var (
	directivePattern = regexp.MustCompile(`(?i)#\s*noqa(?P<sep>:)?`)
	codePattern      = regexp.MustCompile(`^[,\s]*([A-Z]+[0-9]+)`)
	exemptionPattern = regexp.MustCompile(`(?i)#\s*(?:flake8|sift)\s*:\s*noqa(?P<sep>:)?`)
)

// ExtractDirective parses the suppression comment on one source line, if
// any. Text after a code list that is not itself a code ends the
// directive; a colon with no parseable codes degrades to a blanket
// suppression.
func ExtractDirective(row int, line string) Directive {
	m := directivePattern.FindStringIndex(line)
	if m == nil {
		return Directive{Kind: DirectiveNone}
	}

	d := Directive{
		Row:    row,
		Spaces: trailingSpaces(line[:m[0]]),
		Start:  utf8.RuneCountInString(line[:m[0]]),
	}

	rest := line[m[1]:]
	if !strings.HasSuffix(strings.ToLower(line[m[0]:m[1]]), ":") {
		d.Kind = DirectiveAll
		d.End = utf8.RuneCountInString(line[:m[1]])
		return d
	}

	consumed := m[1]
	for {
		cm := codePattern.FindStringSubmatchIndex(rest)
		if cm == nil {
			break
		}
		d.Codes = append(d.Codes, rest[cm[2]:cm[3]])
		consumed += cm[3]
		rest = rest[cm[3]:]
	}
	if len(d.Codes) == 0 {
		d.Kind = DirectiveAll
		d.End = utf8.RuneCountInString(line[:m[1]])
		return d
	}
	d.Kind = DirectiveCodes
	d.End = utf8.RuneCountInString(line[:consumed])
	return d
}

// IsFileExempt reports whether the line is a file-level exemption comment
// (`# flake8: noqa` or `# sift: noqa`). The code-listing form is not an
// exemption: flake8 ignores trailing codes there, and honoring them
// silently would exempt far more than the author wrote.
func IsFileExempt(line string) bool {
	m := exemptionPattern.FindStringSubmatchIndex(line)
	if m == nil {
		return false
	}
	// m[2] >= 0 means the trailing colon matched, i.e. a code list follows.
	return m[2] < 0
}

func trailingSpaces(s string) int {
	runes := []rune(s)
	n := 0
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] != ' ' && runes[i] != '\t' {
			break
		}
		n++
	}
	return n
}
