package rewrite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/relic-cli/api/schemas"
	"github.com/xkilldash9x/relic-cli/internal/rules"
)

// -- Single-issue fix --

func TestApplyFix_ReplacesFirstOccurrenceOnly(t *testing.T) {
	text := "fs.exists(a); fs.exists(b);"

	got, err := ApplyFix(text, "fs.exists(", "fs.access(")
	require.NoError(t, err)
	assert.Equal(t, "fs.access(a); fs.exists(b);", got)
}

func TestApplyFix_TrimmedFallback(t *testing.T) {
	// The scan captured surrounding whitespace that the editor collapsed.
	text := "let u = new URL(input);"

	got, err := ApplyFix(text, "  new URL(input)  ", "parseURL(input)")
	require.NoError(t, err)
	assert.Equal(t, "let u = parseURL(input);", got)
}

func TestApplyFix_SnippetNotFound(t *testing.T) {
	text := "already migrated code"

	got, err := ApplyFix(text, "ReactDOM.render(", "ReactDOM.createRoot(")
	require.ErrorIs(t, err, ErrSnippetNotFound)
	// The text must come back unchanged on failure.
	assert.Equal(t, text, got)
}

func TestApplyFix_EmptyMatchedText(t *testing.T) {
	_, err := ApplyFix("some code", "", "anything")
	assert.ErrorIs(t, err, ErrSnippetNotFound)
}

// -- Bulk fix --

func TestApplyAllFixes_GlobalReplace(t *testing.T) {
	text := strings.Repeat("new Buffer(x); ", 3)

	result, err := ApplyAllFixes(text, []Fix{{MatchedText: "new Buffer(", Replacement: "Buffer.from("}})
	require.NoError(t, err)

	assert.Equal(t, 0, strings.Count(result.RewrittenText, "new Buffer("))
	assert.Equal(t, 3, strings.Count(result.RewrittenText, "Buffer.from("))
	assert.Equal(t, 3, result.Applied)
	assert.Equal(t, []string{"new Buffer("}, result.OriginalHighlights)
	assert.Equal(t, []string{"Buffer.from("}, result.RewrittenHighlights)
	assert.Equal(t, text, result.OriginalText)
}

func TestApplyAllFixes_OverlapSafety(t *testing.T) {
	// One match contains the other. Descending-length ordering must apply
	// the longer rewrite before the shorter one can destroy it.
	text := "const C = forwardRef((props, ref) => render(props));"

	fixes := []Fix{
		{MatchedText: "forwardRef(", Replacement: "("},
		{MatchedText: "forwardRef((props, ref) => render(props))", Replacement: "((props) => render(props))"},
	}

	result, err := ApplyAllFixes(text, fixes)
	require.NoError(t, err)

	assert.Equal(t, "const C = ((props) => render(props));", result.RewrittenText)
	// Balanced parentheses survive the combined rewrite.
	assert.Equal(t,
		strings.Count(result.RewrittenText, "("),
		strings.Count(result.RewrittenText, ")"),
	)
}

func TestApplyAllFixes_PartialApplication(t *testing.T) {
	text := "url.parse(href);"

	fixes := []Fix{
		{MatchedText: "url.parse(", Replacement: "new URL("},
		{MatchedText: "querystring.parse(", Replacement: "new URLSearchParams("},
	}

	result, err := ApplyAllFixes(text, fixes)
	require.NoError(t, err)

	// The absent snippet is skipped, not fatal.
	assert.Equal(t, "new URL(href);", result.RewrittenText)
	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, []string{"url.parse("}, result.OriginalHighlights)
}

func TestApplyAllFixes_NoApplicableFixes(t *testing.T) {
	text := "clean modern code"

	result, err := ApplyAllFixes(text, []Fix{
		{MatchedText: "new Buffer(", Replacement: "Buffer.from("},
		{MatchedText: "", Replacement: "x"},
	})

	require.ErrorIs(t, err, ErrNoApplicableFixes)
	assert.Equal(t, text, result.RewrittenText)
	assert.Zero(t, result.Applied)
}

func TestApplyAllFixes_EmptyFixList(t *testing.T) {
	// Zero issues is an ordinary no-op, not an error.
	result, err := ApplyAllFixes("anything", nil)
	require.NoError(t, err)
	assert.Equal(t, "anything", result.RewrittenText)
	assert.Zero(t, result.Applied)
}

func TestApplyAllFixes_VanishedAfterPriorReplacement(t *testing.T) {
	// Both fixes target overlapping text; once the longer one rewrites it,
	// the shorter snippet may no longer exist and must count as not-found.
	text := "crypto.createCipher(alg, pw)"

	fixes := []Fix{
		{MatchedText: "crypto.createCipher(alg, pw)", Replacement: "crypto.createCipheriv(alg, key, iv)"},
		{MatchedText: "createCipher(alg, pw)", Replacement: "createDecipher(alg, pw)"},
	}

	result, err := ApplyAllFixes(text, fixes)
	require.NoError(t, err)
	assert.Equal(t, "crypto.createCipheriv(alg, key, iv)", result.RewrittenText)
	assert.Equal(t, 1, result.Applied)
}

func TestApplyAllFixes_IdenticalReplacementSkipped(t *testing.T) {
	result, err := ApplyAllFixes("stable text", []Fix{{MatchedText: "stable", Replacement: "stable"}})
	require.ErrorIs(t, err, ErrNoApplicableFixes)
	assert.Equal(t, "stable text", result.RewrittenText)
}

// -- FixesFor bridging --

func TestFixesFor(t *testing.T) {
	profile, err := rules.NewProfile("test", "Test", "1.0", "d", []rules.Rule{
		{
			ID:       "with-rewrite",
			Matcher:  rules.Literal("new Buffer("),
			Severity: schemas.SeverityCritical,
			Message:  "Buffer ctor removed.",
			Rewrite:  rules.Replace("Buffer.from("),
		},
		{
			ID:       "suggestion-only",
			Matcher:  rules.Literal("process.binding("),
			Severity: schemas.SeverityCritical,
			Message:  "process.binding removed.",
		},
	}, nil)
	require.NoError(t, err)

	findings := []schemas.Finding{
		{RuleID: "with-rewrite", MatchedText: "new Buffer("},
		{RuleID: "with-rewrite", MatchedText: "new Buffer("}, // duplicate occurrence
		{RuleID: "suggestion-only", MatchedText: "process.binding("},
		{RuleID: "not-in-profile", MatchedText: "whatever"},
	}

	fixes := FixesFor(profile, findings)
	require.Len(t, fixes, 1)
	assert.Equal(t, Fix{MatchedText: "new Buffer(", Replacement: "Buffer.from("}, fixes[0])
}
