package rules

// codeRedirects maps retired or historical rule codes to their current
// identifiers. Suppression matching and enforcement both resolve codes
// through this table before comparing. The table is initialized once and
// never mutated during analysis.
var codeRedirects = map[string]string{
	// Former "U" prefix for the upgrade family.
	"U007": "UP007",
	"U022": "UP022",
	// Former meta-lint code for unused suppressions.
	"M001": "RUF100",
}

// Redirect resolves a code through the alias table. Unaliased codes are
// returned unchanged.
func Redirect(code string) string {
	if target, ok := codeRedirects[code]; ok {
		return target
	}
	return code
}

// UnusedSuppressionCode identifies the enforcement rule that flags unused
// or invalid `# noqa` directives.
const UnusedSuppressionCode = "RUF100"

// BlanketSuppressionCode identifies the finding produced by the
// suppression-marker detector itself ("this line has a bare noqa").
// It is never counted as matched by a directive during enforcement.
const BlanketSuppressionCode = "PGH004"
