// Package all imports all rule packages to register them.
// Import this package with a blank identifier to enable all rules:
//
//	import _ "github.com/siftlint/sift/internal/rules/all"
//
// The import order here fixes registration order, which in turn fixes
// dispatch order among rules that watch the same node kind.
package all

import (
	// Import all rule packages to trigger their init() registration
	_ "github.com/siftlint/sift/internal/rules/pycodestyle"
	_ "github.com/siftlint/sift/internal/rules/pygrep"
	_ "github.com/siftlint/sift/internal/rules/ruff"
	_ "github.com/siftlint/sift/internal/rules/simplify"
	_ "github.com/siftlint/sift/internal/rules/upgrade"
)
