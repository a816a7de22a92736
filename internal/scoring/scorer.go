// Package scoring reduces a findings list into a single health score via
// severity-weighted deductions from 100.
package scoring

import (
	"github.com/xkilldash9x/relic-cli/api/schemas"
	"github.com/xkilldash9x/relic-cli/internal/config"
)

// Policy holds the per-severity deduction applied for each finding.
type Policy struct {
	Critical int
	Warning  int
	Info     int
}

// DefaultPolicy is the reference deduction table. The values are policy
// constants, overridable through configuration.
var DefaultPolicy = Policy{Critical: 25, Warning: 10, Info: 2}

// PolicyFromConfig maps the scoring configuration onto a Policy.
func PolicyFromConfig(cfg config.ScoringConfig) Policy {
	return Policy{
		Critical: cfg.CriticalPenalty,
		Warning:  cfg.WarningPenalty,
		Info:     cfg.InfoPenalty,
	}
}

func (p Policy) penalty(s schemas.Severity) int {
	switch s {
	case schemas.SeverityCritical:
		return p.Critical
	case schemas.SeverityWarning:
		return p.Warning
	case schemas.SeverityInfo:
		return p.Info
	default:
		return 0
	}
}

// Score computes the health score for a findings list: 100 minus the summed
// per-severity penalties, clamped at 0. Pure and order-independent; only
// subtraction occurs, so 100 is the natural ceiling.
func Score(findings []schemas.Finding, policy Policy) int {
	score := 100
	for _, f := range findings {
		score -= policy.penalty(f.Severity)
	}
	if score < 0 {
		return 0
	}
	return score
}
