// File: internal/reporting/text_reporter.go
package reporting

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xkilldash9x/relic-cli/api/schemas"
)

// TextReporter renders reports as a human-readable summary. This is the
// default terminal format.
type TextReporter struct {
	writer io.WriteCloser
}

// NewTextReporter creates a reporter for plain-text output. It takes
// ownership of the writer.
func NewTextReporter(writer io.WriteCloser) *TextReporter {
	return &TextReporter{writer: writer}
}

// Write renders one report.
func (r *TextReporter) Write(report *schemas.AnalysisReport) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "== Compatibility report: %s ==\n", report.Target)
	fmt.Fprintf(&sb, "Profile:      %s\n", report.ProfileID)
	fmt.Fprintf(&sb, "Health score: %d/100\n", report.HealthScore)
	fmt.Fprintf(&sb, "Summary:      %s\n", report.Summary)

	if len(report.Findings) > 0 {
		sb.WriteString("\nFindings:\n")
		// Most severe first, then document order.
		ordered := make([]schemas.Finding, len(report.Findings))
		copy(ordered, report.Findings)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Severity.Rank() > ordered[j].Severity.Rank()
		})
		for _, f := range ordered {
			fmt.Fprintf(&sb, "  [%s] line %d: %s\n", strings.ToUpper(string(f.Severity)), f.Line, f.Message)
			fmt.Fprintf(&sb, "      matched: %q\n", f.MatchedText)
			if f.Suggestion != "" {
				fmt.Fprintf(&sb, "      fix:     %s\n", f.Suggestion)
			}
		}
	}

	if len(report.Dependencies) > 0 {
		sb.WriteString("\nDependencies:\n")
		for _, d := range report.Dependencies {
			line := fmt.Sprintf("  %s %s [%s]", d.Name, d.CurrentVersion, d.Status)
			if d.Action != "" {
				line += " - " + d.Action
			}
			sb.WriteString(line + "\n")
		}
	}

	sb.WriteString("\n")
	_, err := io.WriteString(r.writer, sb.String())
	if err != nil {
		return fmt.Errorf("failed to write text report: %w", err)
	}
	return nil
}

// Close closes the underlying writer.
func (r *TextReporter) Close() error {
	return r.writer.Close()
}
