package linter_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siftlint/sift/internal/linter"
	"github.com/siftlint/sift/internal/testutil"
)

func lintString(t *testing.T, source string) *linter.Result {
	t.Helper()
	res, err := linter.LintFile(context.Background(), linter.Input{
		FilePath: "test.py",
		Content:  []byte(source),
		Config:   testutil.AllRules(),
	})
	require.NoError(t, err)
	return res
}

func TestLintFile(t *testing.T) {
	t.Parallel()

	src := "from typing import Optional\nx: Optional[int] = None\nif a:\n    if b:\n        work()\n"
	res := lintString(t, src)

	codes := testutil.Codes(res.Diagnostics)
	assert.ElementsMatch(t, []string{"UP007", "SIM102"}, codes)
	assert.Equal(t, []byte(src), res.Source)
	require.NotNil(t, res.File)
}

func TestLintFileSuppression(t *testing.T) {
	t.Parallel()

	src := "from typing import Optional\nx: Optional[int] = None  # noqa: UP007\n"
	res := lintString(t, src)
	assert.Empty(t, res.Diagnostics)
}

func TestLintFileSyntaxError(t *testing.T) {
	t.Parallel()

	_, err := linter.LintFile(context.Background(), linter.Input{
		FilePath: "test.py",
		Content:  []byte("def f(:\n"),
		Config:   testutil.AllRules(),
	})
	require.Error(t, err)
}

func TestLintFileMissingFile(t *testing.T) {
	t.Parallel()

	_, err := linter.LintFile(context.Background(), linter.Input{
		FilePath: "does/not/exist.py",
		Config:   testutil.AllRules(),
	})
	require.Error(t, err)
}

func TestFixFile(t *testing.T) {
	t.Parallel()

	src := "from typing import Optional\nx: Optional[int] = None\n"
	res, err := linter.FixFile(context.Background(), linter.Input{
		FilePath: "test.py",
		Content:  []byte(src),
		Config:   testutil.AllRules(),
	})
	require.NoError(t, err)

	assert.Equal(t, "from typing import Optional\nx: int | None = None\n", string(res.Content))
	assert.Equal(t, 1, res.Applied)
	assert.Empty(t, res.Diagnostics)
}

func TestFixFileCascades(t *testing.T) {
	t.Parallel()

	// Flattening the outer pair exposes a new nested pair on the next
	// pass.
	src := "if a:\n    if b:\n        if c:\n            work()\n"
	res, err := linter.FixFile(context.Background(), linter.Input{
		FilePath: "test.py",
		Content:  []byte(src),
		Config:   testutil.AllRules(),
	})
	require.NoError(t, err)

	assert.Equal(t, "if a and b and c:\n    work()\n", string(res.Content))
	assert.Equal(t, 2, res.Applied)
	assert.Empty(t, res.Diagnostics)
}

func TestFixFileIdempotent(t *testing.T) {
	t.Parallel()

	src := "x = 1\ny = 2\n"
	res, err := linter.FixFile(context.Background(), linter.Input{
		FilePath: "test.py",
		Content:  []byte(src),
		Config:   testutil.AllRules(),
	})
	require.NoError(t, err)

	assert.Equal(t, src, string(res.Content))
	assert.Zero(t, res.Applied)
}

func TestFixFileKeepsUnfixableFindings(t *testing.T) {
	t.Parallel()

	cfg := testutil.AllRules()
	cfg.LineLength = 20
	src := "value = some_long_function(argument)\n"
	res, err := linter.FixFile(context.Background(), linter.Input{
		FilePath: "test.py",
		Content:  []byte(src),
		Config:   cfg,
	})
	require.NoError(t, err)

	assert.Equal(t, src, string(res.Content))
	assert.Zero(t, res.Applied)
	assert.Equal(t, []string{"E501"}, testutil.Codes(res.Diagnostics))
}

func TestAddNoqa(t *testing.T) {
	t.Parallel()

	src := "from typing import Optional\nx: Optional[int] = None\n"
	res, err := linter.AddNoqa(context.Background(), linter.Input{
		FilePath: "test.py",
		Content:  []byte(src),
		Config:   testutil.AllRules(),
	})
	require.NoError(t, err)

	assert.Equal(t, "from typing import Optional\nx: Optional[int] = None  # noqa: UP007\n", string(res.Content))
	assert.Equal(t, 1, res.Added)
}

func TestAddNoqaNothingToSuppress(t *testing.T) {
	t.Parallel()

	src := "x = 1\n"
	res, err := linter.AddNoqa(context.Background(), linter.Input{
		FilePath: "test.py",
		Content:  []byte(src),
		Config:   testutil.AllRules(),
	})
	require.NoError(t, err)

	assert.Equal(t, src, string(res.Content))
	assert.Zero(t, res.Added)
}

func TestEnabledRuleCodes(t *testing.T) {
	t.Parallel()

	all := linter.EnabledRuleCodes(testutil.AllRules())
	assert.Contains(t, all, "SIM102")
	assert.Contains(t, all, "E501")

	cfg := testutil.AllRules()
	cfg.Select = []string{"SIM"}
	some := linter.EnabledRuleCodes(cfg)
	assert.Contains(t, some, "SIM108")
	assert.NotContains(t, some, "E501")
	assert.Less(t, len(some), len(all))
}
