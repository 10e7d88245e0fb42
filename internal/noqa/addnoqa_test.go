package noqa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/siftlint/sift/internal/noqa"
	"github.com/siftlint/sift/internal/rules"
	"github.com/siftlint/sift/internal/sourcemap"
	"github.com/siftlint/sift/internal/syntax"
)

func TestAddDirectivesAppends(t *testing.T) {
	t.Parallel()

	sm := sourcemap.New([]byte("x: Optional[int] = None\n"))
	diags := []rules.Diagnostic{diag("UP007", 1, 3, 16)}

	content, added := noqa.AddDirectives(diags, sm, nil, nil)
	assert.Equal(t, 1, added)
	assert.Equal(t, "x: Optional[int] = None  # noqa: UP007\n", content)
}

func TestAddDirectivesSortsCodes(t *testing.T) {
	t.Parallel()

	sm := sourcemap.New([]byte("y = d[k] if k in d else None\n"))
	diags := []rules.Diagnostic{
		diag("UP007", 1, 0, 5),
		diag("SIM401", 1, 0, 5),
	}

	content, added := noqa.AddDirectives(diags, sm, nil, nil)
	assert.Equal(t, 1, added)
	assert.Equal(t, "y = d[k] if k in d else None  # noqa: SIM401, UP007\n", content)
}

func TestAddDirectivesMergesWithExisting(t *testing.T) {
	t.Parallel()

	sm := sourcemap.New([]byte("x = 1  # noqa: SIM102\n"))
	diags := []rules.Diagnostic{diag("UP007", 1, 0, 5)}

	content, added := noqa.AddDirectives(diags, sm, []int{1}, nil)
	assert.Equal(t, 1, added)
	assert.Equal(t, "x = 1  # noqa: SIM102, UP007\n", content)
}

func TestAddDirectivesPreservesCRLF(t *testing.T) {
	t.Parallel()

	sm := sourcemap.New([]byte("x: Optional[int] = None\r\ny = 2\r\n"))
	diags := []rules.Diagnostic{diag("UP007", 1, 3, 16)}

	content, added := noqa.AddDirectives(diags, sm, nil, nil)
	assert.Equal(t, 1, added)
	assert.Equal(t, "x: Optional[int] = None  # noqa: UP007\r\ny = 2\r\n", content)
}

func TestAddDirectivesLeavesBlanketAlone(t *testing.T) {
	t.Parallel()

	source := "x = 1  # noqa\n"
	sm := sourcemap.New([]byte(source))
	diags := []rules.Diagnostic{diag("UP007", 1, 0, 5)}

	content, added := noqa.AddDirectives(diags, sm, []int{1}, nil)
	assert.Equal(t, 0, added)
	assert.Equal(t, source, content)
}

func TestAddDirectivesSkipsEnforcementFindings(t *testing.T) {
	t.Parallel()

	source := "x = 1\n"
	sm := sourcemap.New([]byte(source))
	diags := []rules.Diagnostic{
		diag(rules.UnusedSuppressionCode, 1, 7, 13),
		diag(rules.BlanketSuppressionCode, 1, 7, 13),
	}

	content, added := noqa.AddDirectives(diags, sm, nil, nil)
	assert.Equal(t, 0, added)
	assert.Equal(t, source, content)
}

func TestAddDirectivesTargetsParentRow(t *testing.T) {
	t.Parallel()

	source := "x = call(\n    Optional[int],\n)\n"
	sm := sourcemap.New([]byte(source))

	d := diag("UP007", 2, 4, 17).WithParent(syntax.Position{Row: 1, Col: 0})
	noqaLineFor := map[int]int{1: 3, 2: 3}

	content, added := noqa.AddDirectives([]rules.Diagnostic{d}, sm, nil, noqaLineFor)
	assert.Equal(t, 1, added)
	assert.Equal(t, "x = call(\n    Optional[int],\n)  # noqa: UP007\n", content)
}

func TestAddDirectivesTrimsTrailingWhitespace(t *testing.T) {
	t.Parallel()

	sm := sourcemap.New([]byte("x = 1   \n"))
	diags := []rules.Diagnostic{diag("UP007", 1, 0, 5)}

	content, added := noqa.AddDirectives(diags, sm, nil, nil)
	assert.Equal(t, 1, added)
	assert.Equal(t, "x = 1  # noqa: UP007\n", content)
}

func TestAddDirectivesNothingPending(t *testing.T) {
	t.Parallel()

	source := "x = 1\n"
	sm := sourcemap.New([]byte(source))

	content, added := noqa.AddDirectives(nil, sm, nil, nil)
	assert.Equal(t, 0, added)
	assert.Equal(t, source, content)
}
