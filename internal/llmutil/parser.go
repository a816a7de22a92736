// Package llmutil contains helpers for cleaning up the semi-structured text
// that language models return, chiefly JSON wrapped in markdown fences or
// conversational filler.
package llmutil

import (
	"fmt"
	"regexp"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// fencedJSON matches a markdown code fence with an optional json tag and
// captures its body. \x60 is a backtick; raw strings cannot contain them.
var fencedJSON = regexp.MustCompile("(?s)\x60\x60\x60(?:json)?\\s*(.+?)\\s*\x60\x60\x60")

// ExtractJSON pulls the most plausible JSON document out of an LLM response:
// the body of a markdown fence if present, otherwise the outermost {...} or
// [...] span, otherwise the trimmed response as-is.
func ExtractJSON(response string) string {
	response = strings.TrimSpace(response)

	if m := fencedJSON.FindStringSubmatch(response); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}

	if span := outermost(response, '{', '}'); span != "" {
		return span
	}
	if span := outermost(response, '[', ']'); span != "" {
		return span
	}
	return response
}

func outermost(s string, open, close byte) string {
	first := strings.IndexByte(s, open)
	last := strings.LastIndexByte(s, close)
	if first < 0 || last <= first {
		return ""
	}
	return s[first : last+1]
}

// ParseJSON extracts and unmarshals an LLM response into T. The error
// includes a truncated snippet of what was actually parsed, which is the
// only useful clue when a model goes off-script.
func ParseJSON[T any](response string) (*T, error) {
	payload := ExtractJSON(response)

	var result T
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal LLM JSON response: %w (extracted: %s)", err, truncate(payload, 400))
	}
	return &result, nil
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
