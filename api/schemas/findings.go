package schemas

import (
	"time"
)

// -- Finding Schemas --

// Severity represents the severity level of a compatibility finding. The
// values are lowercase to align with report output and config keys.
type Severity string

// Constants defining the standard severity levels for findings.
const (
	SeverityCritical Severity = "critical" // API is removed or broken on the target platform.
	SeverityWarning  Severity = "warning"  // API is deprecated and scheduled for removal.
	SeverityInfo     Severity = "info"     // API works but has a preferred modern alternative.
)

// Rank returns the ordering weight of a severity; higher means more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// Finding encapsulates one concrete match of a detection rule against the
// input text. The severity, message and suggestion are snapshotted from the
// rule at scan time so a Finding can be serialized and displayed without a
// live reference to the rule that produced it.
type Finding struct {
	ID     string `json:"id"`      // Report-unique identifier, assigned at assembly time.
	RuleID string `json:"rule_id"` // Back-reference to the rule that matched.

	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`    // Why the match is a problem.
	Suggestion string   `json:"suggestion"` // Free-text migration guidance.

	// MatchedText is the exact substring that matched the rule's pattern.
	MatchedText string `json:"matched_text"`

	// Line is the 1-based line at which the match starts.
	Line int `json:"line"`

	// StartOffset and EndOffset are byte offsets into the scanned text.
	// They disambiguate duplicate matches of identical text.
	StartOffset int `json:"start_offset"`
	EndOffset   int `json:"end_offset"`
}

// -- Dependency Audit Schemas --

// CompatStatus describes how a declared dependency relates to the target
// platform epoch.
type CompatStatus string

const (
	StatusOK           CompatStatus = "ok"           // No known issue.
	StatusOutdated     CompatStatus = "outdated"     // Works, but a newer compatible release exists.
	StatusDeprecated   CompatStatus = "deprecated"   // Package is abandoned or deprecated upstream.
	StatusIncompatible CompatStatus = "incompatible" // Known to break on the target platform.
)

// DependencyAudit is the per-package entry of the optional dependency section
// of a report.
type DependencyAudit struct {
	Name           string       `json:"name"`
	CurrentVersion string       `json:"current_version"`
	LatestVersion  string       `json:"latest_version,omitempty"`
	Status         CompatStatus `json:"status"`
	Action         string       `json:"action,omitempty"` // Suggested remediation, human readable.
}

// -- Report Schemas --

// AnalysisReport is the aggregate artifact of one analysis pass, whether it
// came from the rule engine or from an external analysis provider. Reports
// are immutable; a re-scan produces a fresh report.
type AnalysisReport struct {
	ProfileID string `json:"profile_id"`
	Target    string `json:"target,omitempty"` // File path or "<stdin>".

	// HealthScore is the severity-weighted compatibility score in [0,100].
	HealthScore int    `json:"health_score"`
	Summary     string `json:"summary"`

	Findings     []Finding         `json:"findings"`
	Dependencies []DependencyAudit `json:"dependencies,omitempty"`

	// LogLines are the ordered human-readable scan log entries.
	LogLines []string `json:"log_lines,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// SeverityCounts tallies findings by severity. The findings list is the
// single source of truth; callers derive breakdowns from it rather than
// carrying separate counters that could drift.
func (r *AnalysisReport) SeverityCounts() map[Severity]int {
	counts := make(map[Severity]int, 3)
	for _, f := range r.Findings {
		counts[f.Severity]++
	}
	return counts
}

// -- Rewrite Schemas --

// RewriteResult records the outcome of a single or bulk fix operation. The
// two highlight slices are parallel: OriginalHighlights[i] was replaced by
// RewrittenHighlights[i]. RewrittenText equals OriginalText when nothing
// applied.
type RewriteResult struct {
	OriginalText  string `json:"original_text"`
	RewrittenText string `json:"rewritten_text"`

	OriginalHighlights  []string `json:"original_highlights,omitempty"`
	RewrittenHighlights []string `json:"rewritten_highlights,omitempty"`

	// Applied is the total number of replaced occurrences across all fixes.
	Applied int `json:"applied"`
}
