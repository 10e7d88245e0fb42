package noqa

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/siftlint/sift/internal/rules"
)

func TestExtractDirective(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		line      string
		wantKind  DirectiveKind
		wantCodes []string
	}{
		{"no comment", "x = 1", DirectiveNone, nil},
		{"unrelated comment", "x = 1  # explanation", DirectiveNone, nil},
		{"bare noqa", "x = 1  # noqa", DirectiveAll, nil},
		{"uppercase", "x = 1  # NOQA", DirectiveAll, nil},
		{"no space after hash", "x = 1  #noqa", DirectiveAll, nil},
		{"single code", "x = 1  # noqa: UP007", DirectiveCodes, []string{"UP007"}},
		{"multiple codes", "x = 1  # noqa: UP007, SIM102", DirectiveCodes, []string{"UP007", "SIM102"}},
		{"codes without spaces", "x = 1  # noqa:UP007,SIM102", DirectiveCodes, []string{"UP007", "SIM102"}},
		{"colon but no codes", "x = 1  # noqa: have a nice day", DirectiveAll, nil},
		{"trailing prose ends list", "x = 1  # noqa: UP007 because reasons", DirectiveCodes, []string{"UP007"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ExtractDirective(1, tt.line)
			assert.Equal(t, tt.wantKind, d.Kind)
			assert.Equal(t, tt.wantCodes, d.Codes)
		})
	}
}

func TestExtractDirectiveColumns(t *testing.T) {
	t.Parallel()

	d := ExtractDirective(3, "x = 1  # noqa: UP007")
	assert.Equal(t, 3, d.Row)
	assert.Equal(t, 7, d.Start)
	assert.Equal(t, 20, d.End)
	assert.Equal(t, 2, d.Spaces)
}

func TestExtractDirectiveRuneColumns(t *testing.T) {
	t.Parallel()

	// The multi-byte identifier must not skew the directive's columns.
	d := ExtractDirective(1, "héllo = 1  # noqa")
	assert.Equal(t, 11, d.Start)
	assert.Equal(t, 17, d.End)
}

func TestIncludes(t *testing.T) {
	t.Parallel()

	all := Directive{Kind: DirectiveAll}
	assert.True(t, all.Includes("UP007", rules.Redirect))

	codes := Directive{Kind: DirectiveCodes, Codes: []string{"UP007", "SIM102"}}
	assert.True(t, codes.Includes("UP007", rules.Redirect))
	assert.True(t, codes.Includes("SIM102", rules.Redirect))
	assert.False(t, codes.Includes("E501", rules.Redirect))

	// Historical codes suppress through the redirect table.
	old := Directive{Kind: DirectiveCodes, Codes: []string{"U007"}}
	assert.True(t, old.Includes("UP007", rules.Redirect))
	assert.False(t, old.Includes("U007", rules.Redirect))

	none := Directive{Kind: DirectiveNone}
	assert.False(t, none.Includes("UP007", rules.Redirect))
}

func TestIsFileExempt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want bool
	}{
		{"# flake8: noqa", true},
		{"# sift: noqa", true},
		{"#flake8:noqa", true},
		{"# FLAKE8: NOQA", true},
		{"# flake8: noqa: E501", false},
		{"# noqa", false},
		{"x = 1", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFileExempt(tt.line))
		})
	}
}
