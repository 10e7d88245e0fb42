package rules

import "sort"

// sortDiagnostics sorts by file path, then primary range, then code.
// SliceStable keeps registration order for diagnostics at the same
// position, so output is reproducible run to run.
func sortDiagnostics(diags []Diagnostic) []Diagnostic {
	sorted := make([]Diagnostic, len(diags))
	copy(sorted, diags)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if c := a.Location.Compare(b.Location); c != 0 {
			return c < 0
		}
		return a.Code < b.Code
	})
	return sorted
}
