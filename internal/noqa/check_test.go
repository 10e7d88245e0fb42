package noqa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siftlint/sift/internal/config"
	"github.com/siftlint/sift/internal/noqa"
	"github.com/siftlint/sift/internal/rules"
	_ "github.com/siftlint/sift/internal/rules/all" // Register all rules
	"github.com/siftlint/sift/internal/sourcemap"
	"github.com/siftlint/sift/internal/syntax"
)

func allRules() *config.Config {
	cfg := config.Default()
	cfg.Select = []string{"ALL"}
	return cfg
}

func diag(code string, row, col, endCol int) rules.Diagnostic {
	return rules.NewDiagnostic(code, "test finding", syntax.NewRange(row, col, row, endCol))
}

func TestCheckSuppressesOnOwnLine(t *testing.T) {
	t.Parallel()

	sm := sourcemap.New([]byte("x: Optional[int] = None  # noqa: UP007\n"))
	diags := []rules.Diagnostic{diag("UP007", 1, 3, 16)}

	kept := noqa.Check(diags, sm, []int{1}, nil, allRules(), "t.py", false)
	assert.Empty(t, kept)
}

func TestCheckBlanketSuppressesEverything(t *testing.T) {
	t.Parallel()

	sm := sourcemap.New([]byte("bad_line()  # noqa\n"))
	diags := []rules.Diagnostic{diag("UP007", 1, 0, 8), diag("SIM102", 1, 0, 8)}

	kept := noqa.Check(diags, sm, []int{1}, nil, allRules(), "t.py", false)
	assert.Empty(t, kept)
}

func TestCheckUnlistedCodeSurvives(t *testing.T) {
	t.Parallel()

	sm := sourcemap.New([]byte("x = d[k]  # noqa: UP007\n"))
	diags := []rules.Diagnostic{diag("SIM401", 1, 0, 8)}

	kept := noqa.Check(diags, sm, []int{1}, nil, allRules(), "t.py", false)
	require.Len(t, kept, 2)
	assert.Equal(t, "SIM401", kept[0].Code)
	// The directive earned nothing, so it is reported as unused.
	assert.Equal(t, rules.UnusedSuppressionCode, kept[1].Code)
}

func TestCheckRedirectedCodeSuppresses(t *testing.T) {
	t.Parallel()

	sm := sourcemap.New([]byte("x: Optional[int] = None  # noqa: U007\n"))
	diags := []rules.Diagnostic{diag("UP007", 1, 3, 16)}

	kept := noqa.Check(diags, sm, []int{1}, nil, allRules(), "t.py", false)
	assert.Empty(t, kept, "historical code should suppress and count as used")
}

func TestCheckParentLineSuppression(t *testing.T) {
	t.Parallel()

	source := "x = call(  # noqa: UP007\n    Optional[int],\n)\n"
	sm := sourcemap.New([]byte(source))

	d := diag("UP007", 2, 4, 17)
	parent := syntax.Position{Row: 1, Col: 0}
	d = d.WithParent(parent)

	kept := noqa.Check([]rules.Diagnostic{d}, sm, []int{1}, nil, allRules(), "t.py", false)
	assert.Empty(t, kept)
}

func TestCheckLogicalLineRedirection(t *testing.T) {
	t.Parallel()

	source := "x = (\n    value\n)  # noqa: UP007\n"
	sm := sourcemap.New([]byte(source))

	// Rows 1-2 of the statement map to its final row 3.
	noqaLineFor := map[int]int{1: 3, 2: 3}
	diags := []rules.Diagnostic{diag("UP007", 1, 0, 1)}

	kept := noqa.Check(diags, sm, []int{3}, noqaLineFor, allRules(), "t.py", false)
	assert.Empty(t, kept)
}

func TestCheckFileExemption(t *testing.T) {
	t.Parallel()

	sm := sourcemap.New([]byte("# flake8: noqa\nbad()\n"))
	diags := []rules.Diagnostic{diag("UP007", 2, 0, 3)}

	kept := noqa.Check(diags, sm, []int{1}, nil, allRules(), "t.py", false)
	assert.Nil(t, kept)
}

func TestCheckUnusedBlanketDirective(t *testing.T) {
	t.Parallel()

	sm := sourcemap.New([]byte("x = 1  # noqa\n"))

	kept := noqa.Check(nil, sm, []int{1}, nil, allRules(), "t.py", true)
	require.Len(t, kept, 1)

	d := kept[0]
	assert.Equal(t, rules.UnusedSuppressionCode, d.Code)
	assert.Equal(t, "Unused blanket noqa directive", d.Message)
	assert.Equal(t, "t.py", d.File)

	require.NotNil(t, d.Fix)
	assert.Equal(t, "", d.Fix.Content)
	assert.Equal(t, syntax.Position{Row: 1, Col: 5}, d.Fix.Location.Start)
	assert.Equal(t, syntax.Position{Row: 1, Col: 13}, d.Fix.Location.End)
}

func TestCheckPartiallyUsedList(t *testing.T) {
	t.Parallel()

	sm := sourcemap.New([]byte("x: Optional[int] = None  # noqa: UP007, SIM102, ZZZ999\n"))
	diags := []rules.Diagnostic{diag("UP007", 1, 3, 16)}

	kept := noqa.Check(diags, sm, []int{1}, nil, allRules(), "t.py", true)
	require.Len(t, kept, 1)

	d := kept[0]
	assert.Equal(t, rules.UnusedSuppressionCode, d.Code)
	assert.Equal(t, "Unused noqa directive", d.Message)
	assert.Equal(t, "unused: SIM102; unknown: ZZZ999", d.Detail)

	require.NotNil(t, d.Fix)
	assert.Equal(t, "# noqa: UP007", d.Fix.Content)
}

func TestCheckFullyUnusedListDeleted(t *testing.T) {
	t.Parallel()

	sm := sourcemap.New([]byte("x = 1  # noqa: UP007\n"))

	kept := noqa.Check(nil, sm, []int{1}, nil, allRules(), "t.py", true)
	require.Len(t, kept, 1)
	require.NotNil(t, kept[0].Fix)
	assert.Equal(t, "", kept[0].Fix.Content, "fully unused list is deleted, not rewritten")
}

func TestCheckNoFixWithoutAutofix(t *testing.T) {
	t.Parallel()

	sm := sourcemap.New([]byte("x = 1  # noqa\n"))

	kept := noqa.Check(nil, sm, []int{1}, nil, allRules(), "t.py", false)
	require.Len(t, kept, 1)
	assert.Nil(t, kept[0].Fix)
}

func TestCheckSelfReferentialDirectiveLeftAlone(t *testing.T) {
	t.Parallel()

	sm := sourcemap.New([]byte("x = 1  # noqa: RUF100\n"))

	kept := noqa.Check(nil, sm, []int{1}, nil, allRules(), "t.py", true)
	assert.Empty(t, kept, "a directive listing RUF100 opts out of enforcement")
}

func TestCheckExternalCodesKept(t *testing.T) {
	t.Parallel()

	cfg := allRules()
	cfg.External = []string{"V"}
	sm := sourcemap.New([]byte("x = 1  # noqa: V500\n"))

	kept := noqa.Check(nil, sm, []int{1}, nil, cfg, "t.py", true)
	assert.Empty(t, kept, "external prefixes are never reported unknown")
}

func TestCheckDisabledRuleCodeReported(t *testing.T) {
	t.Parallel()

	cfg := allRules()
	cfg.Ignore = []string{"E501"}
	sm := sourcemap.New([]byte("x = 1  # noqa: E501\n"))

	kept := noqa.Check(nil, sm, []int{1}, nil, cfg, "t.py", true)
	require.Len(t, kept, 1)

	d := kept[0]
	assert.Equal(t, rules.UnusedSuppressionCode, d.Code)
	assert.Equal(t, "disabled: E501", d.Detail)

	// No code survives the rewrite, so the whole comment goes.
	require.NotNil(t, d.Fix)
	assert.Equal(t, "", d.Fix.Content)
}

func TestCheckDisabledCodeDroppedFromRewrite(t *testing.T) {
	t.Parallel()

	cfg := allRules()
	cfg.Ignore = []string{"E501"}
	sm := sourcemap.New([]byte("x: Optional[int] = None  # noqa: UP007, E501\n"))
	diags := []rules.Diagnostic{diag("UP007", 1, 3, 16)}

	kept := noqa.Check(diags, sm, []int{1}, nil, cfg, "t.py", true)
	require.Len(t, kept, 1)

	d := kept[0]
	assert.Equal(t, rules.UnusedSuppressionCode, d.Code)
	assert.Equal(t, "disabled: E501", d.Detail)

	require.NotNil(t, d.Fix)
	assert.Equal(t, "# noqa: UP007", d.Fix.Content)
}

func TestCheckRewriteReplacesThroughEndOfLine(t *testing.T) {
	t.Parallel()

	sm := sourcemap.New([]byte("x: Optional[int] = None  # noqa: UP007, SIM102 stale note\n"))
	diags := []rules.Diagnostic{diag("UP007", 1, 3, 16)}

	kept := noqa.Check(diags, sm, []int{1}, nil, allRules(), "t.py", true)
	require.Len(t, kept, 1)

	d := kept[0]
	require.NotNil(t, d.Fix)
	assert.Equal(t, "# noqa: UP007", d.Fix.Content)
	assert.Equal(t, sm.LineWidth(1), d.Fix.Location.End.Col,
		"trailing text after the code list must not survive")
}

func TestCheckBlanketFindingNotSuppressed(t *testing.T) {
	t.Parallel()

	sm := sourcemap.New([]byte("x = 1  # noqa\n"))
	pgh := diag(rules.BlanketSuppressionCode, 1, 7, 13)

	kept := noqa.Check([]rules.Diagnostic{pgh}, sm, []int{1}, nil, allRules(), "t.py", false)
	// The directive earned nothing (its own finding does not count), so
	// the unused-directive report joins the blanket-noqa one.
	require.Len(t, kept, 2)
	assert.Equal(t, rules.BlanketSuppressionCode, kept[0].Code)
	assert.Equal(t, rules.UnusedSuppressionCode, kept[1].Code)
}

func TestCheckEnforcementDisabled(t *testing.T) {
	t.Parallel()

	cfg := allRules()
	cfg.Ignore = []string{rules.UnusedSuppressionCode}
	sm := sourcemap.New([]byte("x = 1  # noqa\n"))

	kept := noqa.Check(nil, sm, []int{1}, nil, cfg, "t.py", true)
	assert.Empty(t, kept)
}
