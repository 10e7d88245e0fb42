package rules

// Metadata contains static information about a rule.
type Metadata struct {
	// Code is the stable short identifier (e.g. "SIM102", "RUF100").
	Code string

	// Name is the human-readable rule name, in kebab-case.
	Name string

	// Summary explains what the rule checks, one line.
	Summary string

	// DocURL links to detailed documentation.
	DocURL string

	// DefaultSeverity is the severity when not overridden.
	DefaultSeverity Severity

	// Fixable marks rules that can synthesize an auto-fix. Whether a fix
	// is actually attached also depends on configuration and on the
	// rule's own safety guards.
	Fixable bool
}

// Prefix returns the leading letters of the code, the rule family
// (e.g. "SIM" for "SIM102"). Configuration selects rules by prefix.
func (m Metadata) Prefix() string {
	for i, r := range m.Code {
		if r >= '0' && r <= '9' {
			return m.Code[:i]
		}
	}
	return m.Code
}
