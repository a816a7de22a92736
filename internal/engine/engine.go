// Package engine wires the rule-based pipeline together: profile selection,
// scan, score and report assembly. The engine implements the same
// AnalysisProvider interface as the external AI analyzer, so every consumer
// downstream handles either source identically.
package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xkilldash9x/relic-cli/api/schemas"
	"github.com/xkilldash9x/relic-cli/internal/report"
	"github.com/xkilldash9x/relic-cli/internal/rewrite"
	"github.com/xkilldash9x/relic-cli/internal/rules"
	"github.com/xkilldash9x/relic-cli/internal/scanner"
	"github.com/xkilldash9x/relic-cli/internal/scoring"
)

// RuleEngine runs one platform profile's rules over input text. It holds no
// mutable state between calls; concurrent Analyze calls are safe.
type RuleEngine struct {
	profile *rules.Profile
	policy  scoring.Policy
	logger  *zap.Logger

	// target labels reports (file path or "<stdin>"); purely informational.
	target string
}

// Compile-time check: the rule engine is a drop-in AnalysisProvider.
var _ schemas.AnalysisProvider = (*RuleEngine)(nil)

// New creates a rule engine for the given profile and scoring policy.
func New(profile *rules.Profile, policy scoring.Policy, logger *zap.Logger) *RuleEngine {
	return &RuleEngine{
		profile: profile,
		policy:  policy,
		logger:  logger.Named("rule-engine"),
	}
}

// WithTarget returns a shallow copy of the engine that labels its reports
// with the given target name.
func (e *RuleEngine) WithTarget(target string) *RuleEngine {
	clone := *e
	clone.target = target
	return &clone
}

// Profile exposes the engine's profile, e.g. for deriving fixes from the
// findings of a report it produced.
func (e *RuleEngine) Profile() *rules.Profile {
	return e.profile
}

// Analyze scans code with every rule of the profile, scores the findings and
// assembles the report. The context hint is accepted for interface parity
// with external providers and ignored; the error return exists for the same
// reason and is always nil — a scan over in-memory text cannot fail.
func (e *RuleEngine) Analyze(ctx context.Context, code string, contextHint string) (*schemas.AnalysisReport, error) {
	_ = contextHint

	findings, logLines := scanner.Scan(code, e.profile)
	score := scoring.Score(findings, e.policy)

	e.logger.Debug("Rule scan finished",
		zap.String("profile", e.profile.ID),
		zap.Int("findings", len(findings)),
		zap.Int("score", score),
	)

	return report.Assemble(e.profile.ID, e.target, findings, score, logLines, nil, time.Now()), nil
}

// Fixes derives the bulk-fix work list for findings previously produced by
// this engine's profile.
func (e *RuleEngine) Fixes(findings []schemas.Finding) []rewrite.Fix {
	return rewrite.FixesFor(e.profile, findings)
}
