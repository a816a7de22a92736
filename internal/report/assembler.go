// Package report assembles findings, score and scan logs into the report
// artifact consumed by the report writers and any external presentation.
package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/xkilldash9x/relic-cli/api/schemas"
)

// Assemble packages one analysis pass into an AnalysisReport. It copies the
// findings and assigns each a report-unique id so consumers can key on them;
// the inputs are never mutated.
func Assemble(profileID, target string, findings []schemas.Finding, score int, logLines []string, audits []schemas.DependencyAudit, now time.Time) *schemas.AnalysisReport {
	keyed := make([]schemas.Finding, len(findings))
	copy(keyed, findings)
	for i := range keyed {
		keyed[i].ID = NewFindingID()
	}

	return &schemas.AnalysisReport{
		ProfileID:    profileID,
		Target:       target,
		HealthScore:  score,
		Summary:      Summarize(findings),
		Findings:     keyed,
		Dependencies: audits,
		LogLines:     logLines,
		Timestamp:    now,
	}
}

// NewFindingID returns a fresh report-unique finding identifier.
func NewFindingID() string {
	return uuid.New().String()
}

// Summarize produces the deterministic summary line for a findings list.
// External providers supply their own summary text; this is the rule-engine
// path.
func Summarize(findings []schemas.Finding) string {
	if len(findings) == 0 {
		return "No issues found"
	}
	critical := 0
	for _, f := range findings {
		if f.Severity == schemas.SeverityCritical {
			critical++
		}
	}
	return fmt.Sprintf("%d issue(s) found, %d critical", len(findings), critical)
}
