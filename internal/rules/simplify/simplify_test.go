package simplify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siftlint/sift/internal/config"
	"github.com/siftlint/sift/internal/rules"
	"github.com/siftlint/sift/internal/rules/simplify"
	"github.com/siftlint/sift/internal/testutil"
)

func byCode(diags []rules.Diagnostic, code string) []rules.Diagnostic {
	var out []rules.Diagnostic
	for _, d := range diags {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

func TestNestedIf(t *testing.T) {
	t.Parallel()

	src := "if a:\n    if b:\n        work()\n"
	diags := byCode(testutil.Analyze(t, src, nil), simplify.CodeNestedIf)
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, "Use a single `if` statement instead of nested `if` statements", d.Message)
	assert.Equal(t, 1, d.Location.Start.Row)
	require.NotNil(t, d.Fix)
	assert.Equal(t, "if a and b:\n    work()", d.Fix.Content)
}

func TestNestedIfIndented(t *testing.T) {
	t.Parallel()

	src := "def f():\n    if a:\n        if b:\n            work()\n"
	diags := byCode(testutil.Analyze(t, src, nil), simplify.CodeNestedIf)
	require.Len(t, diags, 1)
	require.NotNil(t, diags[0].Fix)
	assert.Equal(t, "if a and b:\n        work()", diags[0].Fix.Content)
}

func TestNestedIfParenthesizesOr(t *testing.T) {
	t.Parallel()

	src := "if a or b:\n    if c:\n        work()\n"
	diags := byCode(testutil.Analyze(t, src, nil), simplify.CodeNestedIf)
	require.Len(t, diags, 1)
	require.NotNil(t, diags[0].Fix)
	assert.Equal(t, "if (a or b) and c:\n    work()", diags[0].Fix.Content)
}

func TestNestedIfSkips(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"outer else", "if a:\n    if b:\n        work()\nelse:\n    other()\n"},
		{"inner else", "if a:\n    if b:\n        work()\n    else:\n        other()\n"},
		{"inner elif", "if a:\n    if b:\n        work()\n    elif c:\n        other()\n"},
		{"extra body statement", "if a:\n    setup()\n    if b:\n        work()\n"},
		{"main guard", "if __name__ == \"__main__\":\n    if b:\n        main()\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := byCode(testutil.Analyze(t, tt.src, nil), simplify.CodeNestedIf)
			assert.Empty(t, diags)
		})
	}
}

func TestNestedIfCommentBetweenTestsWithholdsFix(t *testing.T) {
	t.Parallel()

	src := "if a:\n    # explains b\n    if b:\n        work()\n"
	diags := byCode(testutil.Analyze(t, src, nil), simplify.CodeNestedIf)
	require.Len(t, diags, 1)
	assert.Nil(t, diags[0].Fix)
}

func TestNestedIfKeepsTrailingBodyComment(t *testing.T) {
	t.Parallel()

	src := "if a:\n    if b:\n        work()  # important\n"
	diags := byCode(testutil.Analyze(t, src, nil), simplify.CodeNestedIf)
	require.Len(t, diags, 1)
	require.NotNil(t, diags[0].Fix)
	assert.Equal(t, "if a and b:\n    work()  # important", diags[0].Fix.Content)
}

func TestNestedIfNoFixWhenDisabled(t *testing.T) {
	t.Parallel()

	cfg := testutil.AllRules()
	cfg.Fix = false
	src := "if a:\n    if b:\n        work()\n"
	diags := byCode(testutil.Analyze(t, src, cfg), simplify.CodeNestedIf)
	require.Len(t, diags, 1)
	assert.Nil(t, diags[0].Fix)
}

func TestNestedIfOverlongFixDeclined(t *testing.T) {
	t.Parallel()

	cfg := testutil.AllRules()
	cfg.LineLength = 20
	src := "if alpha_condition:\n    if beta_condition:\n        work()\n"
	diags := byCode(testutil.Analyze(t, src, cfg), simplify.CodeNestedIf)
	require.Len(t, diags, 1)
	assert.Nil(t, diags[0].Fix)
}

func TestTernary(t *testing.T) {
	t.Parallel()

	src := "if a:\n    x = 1\nelse:\n    x = 2\n"
	diags := byCode(testutil.Analyze(t, src, nil), simplify.CodeTernary)
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, "Use ternary operator `x = 1 if a else 2` instead of `if`-`else`-block", d.Message)
	require.NotNil(t, d.Fix)
	assert.Equal(t, "x = 1 if a else 2", d.Fix.Content)
	assert.Equal(t, 1, d.Fix.Location.Start.Row)
	assert.Equal(t, 4, d.Fix.Location.End.Row)
}

func TestTernarySkips(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"different targets", "if a:\n    x = 1\nelse:\n    y = 2\n"},
		{"no else", "if a:\n    x = 1\n"},
		{"extra statement", "if a:\n    x = 1\n    log()\nelse:\n    x = 2\n"},
		{"attribute target", "if a:\n    o.x = 1\nelse:\n    o.x = 2\n"},
		{"version gate", "import sys\nif sys.version_info >= (3, 9):\n    x = new()\nelse:\n    x = old()\n"},
		{"platform gate", "import sys\nif sys.platform == \"win32\":\n    x = 1\nelse:\n    x = 2\n"},
		{"elif arm", "if a:\n    y = 0\nelif b:\n    x = 1\nelse:\n    x = 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := byCode(testutil.Analyze(t, tt.src, nil), simplify.CodeTernary)
			assert.Empty(t, diags)
		})
	}
}

func TestTernaryCommentWithholdsFixOnly(t *testing.T) {
	t.Parallel()

	src := "if a:\n    x = 1  # fast path\nelse:\n    x = 2\n"
	diags := byCode(testutil.Analyze(t, src, nil), simplify.CodeTernary)
	require.Len(t, diags, 1)
	assert.Nil(t, diags[0].Fix)
}

func TestTernaryOverlongFixDeclined(t *testing.T) {
	t.Parallel()

	cfg := testutil.AllRules()
	cfg.LineLength = 10
	src := "if condition:\n    value = first\nelse:\n    value = second\n"
	diags := byCode(testutil.Analyze(t, src, cfg), simplify.CodeTernary)
	require.Len(t, diags, 1)
	assert.Nil(t, diags[0].Fix)
}

func TestDictGet(t *testing.T) {
	t.Parallel()

	src := "if key in d:\n    x = d[key]\nelse:\n    x = default\n"
	diags := byCode(testutil.Analyze(t, src, nil), simplify.CodeDictGet)
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, "Use `x = d.get(key, default)` instead of an `if` block", d.Message)
	require.NotNil(t, d.Fix)
	assert.Equal(t, "x = d.get(key, default)", d.Fix.Content)
}

func TestDictGetNotIn(t *testing.T) {
	t.Parallel()

	src := "if key not in d:\n    x = default\nelse:\n    x = d[key]\n"
	diags := byCode(testutil.Analyze(t, src, nil), simplify.CodeDictGet)
	require.Len(t, diags, 1)
	require.NotNil(t, diags[0].Fix)
	assert.Equal(t, "x = d.get(key, default)", diags[0].Fix.Content)
}

func TestDictGetSkips(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"different keys", "if key in d:\n    x = d[other]\nelse:\n    x = default\n"},
		{"different dicts", "if key in d:\n    x = e[key]\nelse:\n    x = default\n"},
		{"different targets", "if key in d:\n    x = d[key]\nelse:\n    y = default\n"},
		{"default has side effects", "if key in d:\n    x = d[key]\nelse:\n    x = compute()\n"},
		{"equality test", "if key == d:\n    x = d[key]\nelse:\n    x = default\n"},
		{"body not a lookup", "if key in d:\n    x = key\nelse:\n    x = default\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := byCode(testutil.Analyze(t, tt.src, nil), simplify.CodeDictGet)
			assert.Empty(t, diags)
		})
	}
}

func TestReturnBool(t *testing.T) {
	t.Parallel()

	src := "def f():\n    if a:\n        return True\n    else:\n        return False\n"
	diags := byCode(testutil.Analyze(t, src, nil), simplify.CodeReturnBool)
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, "Return the condition `a` directly", d.Message)
	require.NotNil(t, d.Fix)
	assert.Equal(t, "return a", d.Fix.Content)
}

func TestReturnBoolNegated(t *testing.T) {
	t.Parallel()

	src := "def f():\n    if a == b:\n        return False\n    else:\n        return True\n"
	diags := byCode(testutil.Analyze(t, src, nil), simplify.CodeReturnBool)
	require.Len(t, diags, 1)
	require.NotNil(t, diags[0].Fix)
	assert.Equal(t, "return not (a == b)", diags[0].Fix.Content)
}

func TestReturnBoolNegatedPlainName(t *testing.T) {
	t.Parallel()

	src := "def f():\n    if a:\n        return False\n    else:\n        return True\n"
	diags := byCode(testutil.Analyze(t, src, nil), simplify.CodeReturnBool)
	require.Len(t, diags, 1)
	require.NotNil(t, diags[0].Fix)
	assert.Equal(t, "return not a", diags[0].Fix.Content)
}

func TestReturnBoolSkips(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"same value both arms", "def f():\n    if a:\n        return True\n    else:\n        return True\n"},
		{"non-bool return", "def f():\n    if a:\n        return 1\n    else:\n        return 0\n"},
		{"bare return", "def f():\n    if a:\n        return\n    else:\n        return False\n"},
		{"no else", "def f():\n    if a:\n        return True\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := byCode(testutil.Analyze(t, tt.src, nil), simplify.CodeReturnBool)
			assert.Empty(t, diags)
		})
	}
}

func TestSimplifyRespectsSelection(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Select = []string{simplify.CodeTernary}
	src := "if a:\n    if b:\n        x = 1\n"
	diags := testutil.Analyze(t, src, cfg)
	assert.Empty(t, byCode(diags, simplify.CodeNestedIf))
}
