package config

import "strings"

// matchLen returns the length of the longest pattern that is a prefix of
// code, or -1 when none matches. "ALL" matches everything with length 0,
// so any explicit prefix beats it.
func matchLen(patterns []string, code string) int {
	best := -1
	for _, p := range patterns {
		if p == "ALL" {
			if best < 0 {
				best = 0
			}
			continue
		}
		if strings.HasPrefix(code, p) && len(p) > best {
			best = len(p)
		}
	}
	return best
}

// Enabled reports whether a rule code is active. The most specific
// matching entry across Select and Ignore wins; Ignore wins ties.
func (c *Config) Enabled(code string) bool {
	sel := matchLen(c.Select, code)
	ign := matchLen(c.Ignore, code)
	return sel >= 0 && sel > ign
}

// ShouldFix reports whether a rule may attach an auto-fix. The rule must
// be enabled, and the most specific entry across Fixable and Unfixable
// must come from Fixable (Unfixable wins ties).
func (c *Config) ShouldFix(code string) bool {
	if !c.Enabled(code) {
		return false
	}
	fix := matchLen(c.Fixable, code)
	nofix := matchLen(c.Unfixable, code)
	return fix >= 0 && fix > nofix
}

// IsExternal reports whether a code belongs to another tool per the
// External configuration; such codes are always treated as valid by
// suppression enforcement.
func (c *Config) IsExternal(code string) bool {
	for _, p := range c.External {
		if p != "" && strings.HasPrefix(code, p) {
			return true
		}
	}
	return false
}
