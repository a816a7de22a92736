package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteralMatcher_FindAll(t *testing.T) {
	tests := []struct {
		name    string
		literal string
		text    string
		want    [][2]int
	}{
		{
			name:    "single occurrence",
			literal: "url.parse(",
			text:    `const u = url.parse(input);`,
			want:    [][2]int{{10, 20}},
		},
		{
			name:    "multiple non-overlapping occurrences",
			literal: "aa",
			text:    "aaaa",
			want:    [][2]int{{0, 2}, {2, 4}},
		},
		{
			name:    "regex metacharacters are not interpreted",
			literal: "a.b",
			text:    "axb a.b",
			want:    [][2]int{{4, 7}},
		},
		{
			name:    "no occurrence",
			literal: "findDOMNode(",
			text:    "nothing here",
			want:    nil,
		},
		{
			name:    "empty literal matches nothing",
			literal: "",
			text:    "anything",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Literal(tt.literal).FindAll(tt.text))
		})
	}
}

func TestPatternMatcher_FindAll(t *testing.T) {
	m, err := Pattern(`require\(['"][^'"]+['"]\)`)
	require.NoError(t, err)

	text := `const fs = require('fs');` + "\n" + `const path = require("path");`
	spans := m.FindAll(text)
	require.Len(t, spans, 2)
	assert.Equal(t, `require('fs')`, text[spans[0][0]:spans[0][1]])
	assert.Equal(t, `require("path")`, text[spans[1][0]:spans[1][1]])
}

func TestPatternMatcher_Stateless(t *testing.T) {
	// Repeated scans must be idempotent: no cursor state survives a call.
	m := MustPattern(`dep\d+`)
	text := "dep1 dep2 dep3"

	first := m.FindAll(text)
	second := m.FindAll(text)
	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
}

func TestPattern_InvalidExpression(t *testing.T) {
	_, err := Pattern(`forwardRef((`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rule pattern")
}

func TestReplaceRewrite(t *testing.T) {
	fn := Replace("Buffer.from(")
	assert.Equal(t, "Buffer.from(", fn("new Buffer("))
}
