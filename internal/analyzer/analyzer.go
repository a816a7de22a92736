// File: internal/analyzer/analyzer.go

// Package analyzer routes code analysis through an external LLM provider.
// It is a drop-in alternative to the deterministic rule engine: both sides
// implement schemas.AnalysisProvider, so callers swap them without caring
// which one produced the report.
package analyzer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xkilldash9x/relic-cli/api/schemas"
	"github.com/xkilldash9x/relic-cli/internal/config"
	"github.com/xkilldash9x/relic-cli/internal/llmutil"
	"github.com/xkilldash9x/relic-cli/internal/report"
)

const systemPrompt = `You are a platform compatibility auditor. You receive a source code snippet and must identify usages of deprecated, removed, or discouraged APIs for the stated target platform.

Respond with a single JSON object matching this schema exactly:
{
  "profile_id": "<target platform id>",
  "health_score": <integer 0-100, 100 means no issues>,
  "summary": "<one sentence>",
  "findings": [
    {
      "rule_id": "<short-kebab-case-identifier>",
      "severity": "critical" | "warning" | "info",
      "message": "<why this is a problem>",
      "suggestion": "<how to migrate>",
      "matched_text": "<the exact offending substring from the input>",
      "line": <1-based line number>
    }
  ]
}

Report only concrete findings anchored to text present in the input. If the code is clean, return an empty findings array and a health_score of 100.`

// Analyzer implements schemas.AnalysisProvider on top of an LLM client.
type Analyzer struct {
	client  schemas.LLMClient
	cfg     config.AnalyzerConfig
	logger  *zap.Logger
	profile string
	target  string
}

var _ schemas.AnalysisProvider = (*Analyzer)(nil)

// New builds an Analyzer over the given client. The profile id is forwarded
// to the model as the target platform and stamped into the report.
func New(client schemas.LLMClient, cfg config.AnalyzerConfig, profileID string, logger *zap.Logger) *Analyzer {
	return &Analyzer{
		client:  client,
		cfg:     cfg,
		logger:  logger.Named("analyzer"),
		profile: profileID,
		target:  "<input>",
	}
}

// WithTarget returns a copy of the analyzer that stamps reports with the
// given target label.
func (a *Analyzer) WithTarget(target string) *Analyzer {
	clone := *a
	clone.target = target
	return &clone
}

// Analyze sends the code to the provider and converts the response into an
// AnalysisReport. All failures come back as *ProviderError.
func (a *Analyzer) Analyze(ctx context.Context, code, contextHint string) (*schemas.AnalysisReport, error) {
	start := time.Now()

	raw, err := a.client.Generate(ctx, schemas.GenerationRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   a.buildUserPrompt(code, contextHint),
		Options: schemas.GenerationOptions{
			Temperature:     a.cfg.Temperature,
			ForceJSONFormat: true,
			MaxOutputTokens: a.cfg.MaxTokens,
		},
	})
	if err != nil {
		return nil, Classify(err)
	}

	parsed, err := llmutil.ParseJSON[schemas.AnalysisReport](raw)
	if err != nil {
		a.logger.Warn("Provider returned unparseable analysis", zap.Error(err))
		return nil, &ProviderError{
			Category: CategoryMalformed,
			Message:  "the provider returned a response that is not a valid analysis report",
			Err:      err,
		}
	}

	a.normalize(parsed)

	a.logger.Info("AI analysis complete",
		zap.String("profile", a.profile),
		zap.Int("findings", len(parsed.Findings)),
		zap.Int("health_score", parsed.HealthScore),
		zap.Duration("duration", time.Since(start)),
	)
	return parsed, nil
}

// Close releases the underlying client.
func (a *Analyzer) Close() error {
	return a.client.Close()
}

func (a *Analyzer) buildUserPrompt(code, contextHint string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Target platform: %s\n", a.profile)
	if contextHint != "" {
		fmt.Fprintf(&sb, "Additional context from the user: %s\n", contextHint)
	}
	sb.WriteString("\nCode to analyze:\n```\n")
	sb.WriteString(code)
	sb.WriteString("\n```\n")
	return sb.String()
}

// normalize fills in the fields the model is not trusted to produce: report
// identity, finding IDs, timestamps, and a score clamped to [0,100].
func (a *Analyzer) normalize(r *schemas.AnalysisReport) {
	r.ProfileID = a.profile
	r.Target = a.target
	r.Timestamp = time.Now().UTC()

	if r.HealthScore < 0 {
		r.HealthScore = 0
	}
	if r.HealthScore > 100 {
		r.HealthScore = 100
	}

	for i := range r.Findings {
		r.Findings[i].ID = report.NewFindingID()
		if r.Findings[i].Severity.Rank() == 0 {
			r.Findings[i].Severity = schemas.SeverityInfo
		}
	}
	if r.Findings == nil {
		r.Findings = []schemas.Finding{}
	}
	if r.Summary == "" {
		r.Summary = report.Summarize(r.Findings)
	}
}
