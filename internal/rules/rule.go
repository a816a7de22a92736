// Package rules defines the declarative detection rules and the platform
// profiles that bundle them. Profiles are static data resolved and validated
// once at startup; everything downstream (scanner, rewrite engine) treats
// them as immutable.
package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xkilldash9x/relic-cli/api/schemas"
)

// Matcher locates occurrences of a pattern in source text. It is an explicit
// variant of either a literal substring or a compiled regular expression,
// resolved at profile construction so the scan hot path has no type
// branching and no mutable cursor state: every FindAll call is a fresh,
// stateless pass over the input.
type Matcher struct {
	literal string
	pattern *regexp.Regexp
}

// Literal returns a matcher that finds the exact substring s, with no
// metacharacter interpretation.
func Literal(s string) Matcher {
	return Matcher{literal: s}
}

// Pattern compiles expr into a regular expression matcher. The compile
// happens once, here; an invalid expression is a configuration error.
func Pattern(expr string) (Matcher, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Matcher{}, fmt.Errorf("invalid rule pattern %q: %w", expr, err)
	}
	return Matcher{pattern: re}, nil
}

// MustPattern is Pattern for statically-known expressions; it panics on a
// compile failure, which for built-in profiles means a programmer error
// caught by the profile tests.
func MustPattern(expr string) Matcher {
	m, err := Pattern(expr)
	if err != nil {
		panic(err)
	}
	return m
}

// IsZero reports whether the matcher was never assigned a pattern.
func (m Matcher) IsZero() bool {
	return m.literal == "" && m.pattern == nil
}

// String describes the matcher for diagnostics.
func (m Matcher) String() string {
	if m.pattern != nil {
		return "/" + m.pattern.String() + "/"
	}
	return fmt.Sprintf("%q", m.literal)
}

// FindAll returns the [start,end) spans of all non-overlapping occurrences
// of the matcher in text, in position order.
func (m Matcher) FindAll(text string) [][2]int {
	if m.pattern != nil {
		idx := m.pattern.FindAllStringIndex(text, -1)
		spans := make([][2]int, 0, len(idx))
		for _, loc := range idx {
			if loc[1] == loc[0] {
				// Zero-width regex matches carry no matched text to report
				// or rewrite.
				continue
			}
			spans = append(spans, [2]int{loc[0], loc[1]})
		}
		return spans
	}

	if m.literal == "" {
		return nil
	}
	var spans [][2]int
	for from := 0; ; {
		i := strings.Index(text[from:], m.literal)
		if i < 0 {
			break
		}
		start := from + i
		end := start + len(m.literal)
		spans = append(spans, [2]int{start, end})
		from = end
	}
	return spans
}

// RewriteFunc maps a matched substring to its replacement. Rewrites are pure
// substring transforms so many rules' fixes compose in one bulk operation;
// rules without an automatic rewrite leave it nil and rely on the suggestion
// text alone.
type RewriteFunc func(matched string) string

// Replace builds a RewriteFunc that ignores the matched text and substitutes
// a fixed replacement. Most built-in rewrites are of this form.
func Replace(replacement string) RewriteFunc {
	return func(string) string { return replacement }
}

// Rule is a single deprecation or breakage signature: a matcher bound to a
// severity, an explanation, migration guidance and an optional automatic
// rewrite.
type Rule struct {
	ID         string
	Matcher    Matcher
	Severity   schemas.Severity
	Message    string
	Suggestion string
	Rewrite    RewriteFunc
}

func (r Rule) validate() error {
	if r.ID == "" {
		return fmt.Errorf("rule has an empty id")
	}
	if r.Matcher.IsZero() {
		return fmt.Errorf("rule %q has an empty matcher", r.ID)
	}
	switch r.Severity {
	case schemas.SeverityCritical, schemas.SeverityWarning, schemas.SeverityInfo:
	default:
		return fmt.Errorf("rule %q has unknown severity %q", r.ID, r.Severity)
	}
	if r.Message == "" {
		return fmt.Errorf("rule %q has an empty message", r.ID)
	}
	return nil
}
