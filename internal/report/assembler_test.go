package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/relic-cli/api/schemas"
)

func TestAssemble(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	findings := []schemas.Finding{
		{RuleID: "a", Severity: schemas.SeverityCritical, MatchedText: "x"},
		{RuleID: "b", Severity: schemas.SeverityWarning, MatchedText: "y"},
		{RuleID: "a", Severity: schemas.SeverityCritical, MatchedText: "x"},
	}
	logLines := []string{"[Error] something"}

	rep := Assemble("react-19", "app.jsx", findings, 40, logLines, nil, now)

	assert.Equal(t, "react-19", rep.ProfileID)
	assert.Equal(t, "app.jsx", rep.Target)
	assert.Equal(t, 40, rep.HealthScore)
	assert.Equal(t, "3 issue(s) found, 2 critical", rep.Summary)
	assert.Equal(t, logLines, rep.LogLines)
	assert.Equal(t, now, rep.Timestamp)

	// Each finding gets a report-unique id; the caller's slice is untouched.
	require.Len(t, rep.Findings, 3)
	seen := make(map[string]bool)
	for _, f := range rep.Findings {
		require.NotEmpty(t, f.ID)
		assert.False(t, seen[f.ID], "finding ids must be unique within a report")
		seen[f.ID] = true
	}
	assert.Empty(t, findings[0].ID)
}

func TestAssemble_SeverityCountsMatchFindings(t *testing.T) {
	findings := []schemas.Finding{
		{Severity: schemas.SeverityCritical},
		{Severity: schemas.SeverityWarning},
		{Severity: schemas.SeverityWarning},
		{Severity: schemas.SeverityInfo},
	}

	rep := Assemble("node-22", "", findings, 53, nil, nil, time.Now())

	counts := rep.SeverityCounts()
	assert.Equal(t, 1, counts[schemas.SeverityCritical])
	assert.Equal(t, 2, counts[schemas.SeverityWarning])
	assert.Equal(t, 1, counts[schemas.SeverityInfo])

	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, len(rep.Findings), total)
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, "No issues found", Summarize(nil))

	findings := []schemas.Finding{
		{Severity: schemas.SeverityInfo},
		{Severity: schemas.SeverityCritical},
	}
	assert.Equal(t, "2 issue(s) found, 1 critical", Summarize(findings))
}
