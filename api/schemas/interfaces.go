package schemas

import (
	"context"
)

// AnalysisProvider is the boundary every issue source implements: the
// built-in rule engine and any external (e.g. LLM-backed) analyzer. Both
// return the same report shape so downstream consumers (scoring display,
// bulk fix, report writers) work unmodified regardless of the source.
type AnalysisProvider interface {
	// Analyze inspects the given source text and returns a full report.
	// contextHint is optional free text forwarded to providers that can use
	// it (the rule engine ignores it).
	Analyze(ctx context.Context, code string, contextHint string) (*AnalysisReport, error)
}

// -- LLM Client Schemas & Interface --

// GenerationOptions provides parameters to control the text generation
// process of an LLM, such as creativity (temperature) and output format.
type GenerationOptions struct {
	Temperature     float64 `json:"temperature"`       // Controls randomness. Lower is more deterministic.
	ForceJSONFormat bool    `json:"force_json_format"` // If true, forces the model to output valid JSON.
	MaxOutputTokens int     `json:"max_output_tokens"` // Upper bound on the completion size. 0 uses the provider default.
}

// GenerationRequest encapsulates a complete request to the LLM, including
// the system and user prompts and generation options.
type GenerationRequest struct {
	SystemPrompt string            `json:"system_prompt"` // Instructions for the model's persona and task.
	UserPrompt   string            `json:"user_prompt"`   // The specific query or input from the user.
	Options      GenerationOptions `json:"options"`       // Generation parameters.
}

// LLMClient defines a standard interface for interacting with a Large
// Language Model, abstracting the specifics of the underlying provider.
type LLMClient interface {
	// Generate produces a text completion based on the provided request.
	Generate(ctx context.Context, req GenerationRequest) (string, error)
	// Close cleans up any resources held by the client.
	Close() error
}
