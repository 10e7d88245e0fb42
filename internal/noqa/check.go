package noqa

import (
	"fmt"
	"strings"

	"github.com/siftlint/sift/internal/config"
	"github.com/siftlint/sift/internal/rules"
	"github.com/siftlint/sift/internal/sourcemap"
	"github.com/siftlint/sift/internal/syntax"
)

// tracked pairs a parsed directive with the codes that matched through
// it during suppression.
type tracked struct {
	directive Directive
	matched   map[string]bool
}

// Check applies suppression directives to a file's diagnostics and
// enforces the directives themselves.
//
// commentRows lists the 1-based rows that contain comments; directives
// are only recognized there, so a `# noqa` inside a string literal is
// inert. noqaLineFor maps rows inside multi-line statements to the row
// whose trailing comment governs them.
//
// Matching tries a diagnostic's parent line first, then its own line.
// Matched diagnostics are dropped. Afterwards, if the unused-noqa rule
// is enabled, every directive that earned nothing is reported: a blanket
// directive or a fully unused code list gets a deletion fix, a partially
// used list gets rewritten to the codes that still pull their weight.
func Check(
	diags []rules.Diagnostic,
	sm *sourcemap.SourceMap,
	commentRows []int,
	noqaLineFor map[int]int,
	cfg *config.Config,
	file string,
	autofix bool,
) []rules.Diagnostic {
	directives := map[int]*tracked{}
	var rows []int
	for _, row := range commentRows {
		line := sm.Line(row)
		if IsFileExempt(line) {
			return nil
		}
		d := ExtractDirective(row, line)
		if d.Kind == DirectiveNone {
			continue
		}
		directives[row] = &tracked{directive: d, matched: map[string]bool{}}
		rows = append(rows, row)
	}

	directiveFor := func(row int) *tracked {
		if mapped, ok := noqaLineFor[row]; ok {
			row = mapped
		}
		return directives[row]
	}

	kept := make([]rules.Diagnostic, 0, len(diags))
	for _, d := range diags {
		// Blanket-noqa findings point at directives; letting the directive
		// suppress its own report would make the rule unenforceable.
		if d.Code == rules.BlanketSuppressionCode {
			kept = append(kept, d)
			continue
		}
		suppressed := false
		if d.Parent != nil {
			if td := directiveFor(d.Parent.Row); td != nil && td.directive.Includes(d.Code, rules.Redirect) {
				td.matched[d.Code] = true
				suppressed = true
			}
		}
		if !suppressed {
			if td := directiveFor(d.Row()); td != nil && td.directive.Includes(d.Code, rules.Redirect) {
				td.matched[d.Code] = true
				suppressed = true
			}
		}
		if !suppressed {
			kept = append(kept, d)
		}
	}

	if cfg.Enabled(rules.UnusedSuppressionCode) {
		for _, row := range rows {
			td := directives[row]
			if d, ok := enforce(td, sm, cfg, autofix); ok {
				d.File = file
				kept = append(kept, d)
			}
		}
	}

	return rules.SortDiagnostics(kept)
}

// enforce reports one directive that suppressed less than it claims.
func enforce(td *tracked, sm *sourcemap.SourceMap, cfg *config.Config, autofix bool) (rules.Diagnostic, bool) {
	dir := td.directive
	loc := syntax.NewRange(dir.Row, dir.Start, dir.Row, dir.End)

	switch dir.Kind {
	case DirectiveAll:
		if len(td.matched) > 0 {
			return rules.Diagnostic{}, false
		}
		d := rules.NewDiagnostic(rules.UnusedSuppressionCode, "Unused blanket noqa directive", loc)
		if autofix && cfg.ShouldFix(rules.UnusedSuppressionCode) {
			d.Amend(deleteDirective(dir, sm))
		}
		return d, true

	case DirectiveCodes:
		// A directive that lists the unused-noqa code is asking to be left
		// alone; enforcing it anyway would fight the author's explicit opt-out.
		if dir.Includes(rules.UnusedSuppressionCode, rules.Redirect) {
			return rules.Diagnostic{}, false
		}

		var keep, disabled, unmatched, unknown []string
		for _, code := range dir.Codes {
			canonical := rules.Redirect(code)
			switch {
			case !rules.Known(canonical):
				if cfg.IsExternal(code) {
					keep = append(keep, code)
				} else {
					unknown = append(unknown, code)
				}
			case td.matched[canonical]:
				keep = append(keep, code)
			case !cfg.Enabled(canonical):
				disabled = append(disabled, code)
			default:
				unmatched = append(unmatched, code)
			}
		}
		if len(disabled) == 0 && len(unmatched) == 0 && len(unknown) == 0 {
			return rules.Diagnostic{}, false
		}

		d := rules.NewDiagnostic(rules.UnusedSuppressionCode, "Unused noqa directive", loc).
			WithDetail(enforcementDetail(disabled, unmatched, unknown))
		if autofix && cfg.ShouldFix(rules.UnusedSuppressionCode) {
			if len(keep) == 0 {
				d.Amend(deleteDirective(dir, sm))
			} else {
				// Replace through end of line so stray text after the code
				// list does not survive the rewrite.
				content := "# noqa: " + strings.Join(keep, ", ")
				end := syntax.Position{Row: dir.Row, Col: sm.LineWidth(dir.Row)}
				d.Amend(rules.Replacement(content, loc.Start, end))
			}
		}
		return d, true
	}
	return rules.Diagnostic{}, false
}

// deleteDirective removes the comment plus the whitespace that separated
// it from the code, through end of line.
func deleteDirective(dir Directive, sm *sourcemap.SourceMap) rules.Fix {
	return rules.Deletion(
		syntax.Position{Row: dir.Row, Col: dir.Start - dir.Spaces},
		syntax.Position{Row: dir.Row, Col: sm.LineWidth(dir.Row)},
	)
}

func enforcementDetail(disabled, unmatched, unknown []string) string {
	var parts []string
	if len(unmatched) > 0 {
		parts = append(parts, fmt.Sprintf("unused: %s", strings.Join(unmatched, ", ")))
	}
	if len(unknown) > 0 {
		parts = append(parts, fmt.Sprintf("unknown: %s", strings.Join(unknown, ", ")))
	}
	if len(disabled) > 0 {
		parts = append(parts, fmt.Sprintf("disabled: %s", strings.Join(disabled, ", ")))
	}
	return strings.Join(parts, "; ")
}
