// Package scanner runs all rules of a platform profile against an input
// text. It is pure computation: no I/O, no mutation of its inputs, and a
// deterministic output ordering (rule declaration order, then occurrence
// order within a rule).
package scanner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xkilldash9x/relic-cli/api/schemas"
	"github.com/xkilldash9x/relic-cli/internal/rules"
)

// Scan finds every occurrence of every rule in the profile and returns the
// findings plus the ordered human-readable log lines of the pass.
func Scan(text string, profile *rules.Profile) ([]schemas.Finding, []string) {
	newlines := newlineOffsets(text)

	var findings []schemas.Finding
	var logLines []string

	for _, rule := range profile.Rules {
		spans := rule.Matcher.FindAll(text)
		if len(spans) == 0 {
			continue
		}

		for _, span := range spans {
			findings = append(findings, schemas.Finding{
				RuleID:      rule.ID,
				Severity:    rule.Severity,
				Message:     rule.Message,
				Suggestion:  rule.Suggestion,
				MatchedText: text[span[0]:span[1]],
				Line:        lineAt(newlines, span[0]),
				StartOffset: span[0],
				EndOffset:   span[1],
			})
		}

		if rule.Severity == schemas.SeverityCritical {
			logLines = append(logLines, "[Error] "+rule.Message)
		} else {
			logLines = append(logLines, "[Warn] "+rule.Message)
		}
	}

	if len(findings) == 0 {
		logLines = append(logLines, "No compatibility issues detected.")
	} else {
		logLines = append(logLines, fmt.Sprintf("Scan complete: %d issue(s) found.", len(findings)))
	}

	return findings, logLines
}

// newlineOffsets returns the byte offsets of every '\n' in text, ascending.
// Computing this once per scan keeps the per-match line lookup at
// O(log lines) instead of rescanning the prefix for every finding.
func newlineOffsets(text string) []int {
	var offsets []int
	for from := 0; ; {
		i := strings.IndexByte(text[from:], '\n')
		if i < 0 {
			break
		}
		offsets = append(offsets, from+i)
		from += i + 1
	}
	return offsets
}

// lineAt returns the 1-based line number of the given byte offset: one plus
// the count of newlines strictly before it.
func lineAt(newlines []int, offset int) int {
	return 1 + sort.SearchInts(newlines, offset)
}
