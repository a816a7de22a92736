package rules

import (
	"fmt"

	"github.com/xkilldash9x/relic-cli/api/schemas"
)

// Advisory captures what a profile knows about a third-party package on the
// target platform. Advisories feed the optional dependency audit section of
// a report; they are data, never fetched at scan time.
type Advisory struct {
	Latest string
	Status schemas.CompatStatus
	Action string
}

// Profile is a named, versioned bundle of detection rules representing one
// target runtime or framework epoch. Immutable after construction.
type Profile struct {
	ID           string
	Name         string
	VersionLabel string
	Description  string

	// Rules in declaration order; the scanner preserves this ordering.
	Rules []Rule

	// Advisories keyed by package name, for the dependency audit.
	Advisories map[string]Advisory

	byID map[string]*Rule
}

// NewProfile validates and assembles a profile. All pattern compilation has
// already happened inside the Matcher constructors; this is where duplicate
// ids and malformed rules fail fast, at load time rather than per scan.
func NewProfile(id, name, versionLabel, description string, ruleSet []Rule, advisories map[string]Advisory) (*Profile, error) {
	if id == "" {
		return nil, fmt.Errorf("profile id must not be empty")
	}
	byID := make(map[string]*Rule, len(ruleSet))
	for i := range ruleSet {
		r := &ruleSet[i]
		if err := r.validate(); err != nil {
			return nil, fmt.Errorf("profile %q: %w", id, err)
		}
		if _, dup := byID[r.ID]; dup {
			return nil, fmt.Errorf("profile %q: duplicate rule id %q", id, r.ID)
		}
		byID[r.ID] = r
	}
	return &Profile{
		ID:           id,
		Name:         name,
		VersionLabel: versionLabel,
		Description:  description,
		Rules:        ruleSet,
		Advisories:   advisories,
		byID:         byID,
	}, nil
}

// Rule looks up a rule by id. The second return is false when the profile
// has no such rule.
func (p *Profile) Rule(id string) (*Rule, bool) {
	r, ok := p.byID[id]
	return r, ok
}
