// Package rewrite applies rule rewrites to source text, one issue at a time
// or in bulk. Bulk application is best-effort: issues whose matched text has
// already been edited away are skipped, never failed.
package rewrite

import (
	"errors"
	"sort"
	"strings"

	"github.com/xkilldash9x/relic-cli/api/schemas"
	"github.com/xkilldash9x/relic-cli/internal/rules"
)

var (
	// ErrSnippetNotFound reports that the matched text of a fix no longer
	// exists in the current code, typically because the code changed after
	// the scan. Callers surface this to the user; it is not a crash.
	ErrSnippetNotFound = errors.New("snippet not found in current code")

	// ErrNoApplicableFixes reports that a bulk fix had issues to work with
	// but none of their matched snippets were present. The text is returned
	// unchanged; callers warn instead of silently no-op'ing.
	ErrNoApplicableFixes = errors.New("no fixes were applicable to the current code")
)

// Fix is one textual replacement to perform: a matched snippet and the
// replacement derived from the owning rule's substring rewrite.
type Fix struct {
	MatchedText string
	Replacement string
}

// resolve finds the snippet to operate on in text: the exact matched string
// first, then — tolerating minor formatting drift between scan time and fix
// time — the same string with surrounding whitespace trimmed. Empty or
// absent snippets resolve to "".
func resolve(text, matched string) string {
	if matched != "" && strings.Contains(text, matched) {
		return matched
	}
	trimmed := strings.TrimSpace(matched)
	if trimmed != "" && strings.Contains(text, trimmed) {
		return trimmed
	}
	return ""
}

// ApplyFix replaces the first occurrence of the issue's matched text with
// the replacement and returns the new full text. The input is returned
// unchanged alongside ErrSnippetNotFound when the snippet cannot be located.
func ApplyFix(text, matched, replacement string) (string, error) {
	target := resolve(text, matched)
	if target == "" {
		return text, ErrSnippetNotFound
	}
	return strings.Replace(text, target, replacement, 1), nil
}

// ApplyAllFixes applies every fix to text in one bulk pass.
//
// Fixes are processed in order of descending matched-text length so that a
// longer match is not partially destroyed by an earlier replacement of a
// shorter substring it contains. Each fix resolves against the current,
// progressively updated text and replaces every occurrence of its snippet;
// unresolvable fixes are skipped. The returned result carries the parallel
// highlight lists and the total count of replaced occurrences.
func ApplyAllFixes(text string, fixes []Fix) (schemas.RewriteResult, error) {
	result := schemas.RewriteResult{
		OriginalText:  text,
		RewrittenText: text,
	}

	ordered := make([]Fix, len(fixes))
	copy(ordered, fixes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].MatchedText) > len(ordered[j].MatchedText)
	})

	current := text
	for _, fix := range ordered {
		target := resolve(current, fix.MatchedText)
		if target == "" || target == fix.Replacement {
			continue
		}

		occurrences := strings.Count(current, target)
		current = strings.ReplaceAll(current, target, fix.Replacement)

		result.Applied += occurrences
		result.OriginalHighlights = append(result.OriginalHighlights, target)
		result.RewrittenHighlights = append(result.RewrittenHighlights, fix.Replacement)
	}
	result.RewrittenText = current

	if len(fixes) > 0 && result.Applied == 0 {
		return result, ErrNoApplicableFixes
	}
	return result, nil
}

// FixesFor derives the bulk-fix work list from scan findings: one Fix per
// distinct (matched text, replacement) pair among findings whose rule
// carries an automatic rewrite. Findings of suggestion-only rules are left
// out; they have no mechanical migration.
func FixesFor(profile *rules.Profile, findings []schemas.Finding) []Fix {
	seen := make(map[Fix]struct{}, len(findings))
	var fixes []Fix
	for _, f := range findings {
		rule, ok := profile.Rule(f.RuleID)
		if !ok || rule.Rewrite == nil {
			continue
		}
		fix := Fix{
			MatchedText: f.MatchedText,
			Replacement: rule.Rewrite(f.MatchedText),
		}
		if _, dup := seen[fix]; dup {
			// Bulk replacement is global, so duplicate occurrences of the
			// same snippet collapse into one work item.
			continue
		}
		seen[fix] = struct{}{}
		fixes = append(fixes, fix)
	}
	return fixes
}
