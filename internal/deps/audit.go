// File: internal/deps/audit.go

// Package deps audits a project's declared dependencies against the advisory
// data carried by a platform profile. The audit is entirely offline: it reads
// a package manifest from disk and never contacts a registry.
package deps

import (
	"fmt"
	"os"
	"sort"

	jsoniter "github.com/json-iterator/go"

	"github.com/xkilldash9x/relic-cli/api/schemas"
	"github.com/xkilldash9x/relic-cli/internal/rules"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// packageManifest is the subset of package.json the audit cares about.
type packageManifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// AuditFile reads a package.json style manifest and audits it against the
// profile's advisories.
func AuditFile(path string, profile *rules.Profile) ([]schemas.DependencyAudit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	audits, err := Audit(data, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to audit manifest %s: %w", path, err)
	}
	return audits, nil
}

// Audit parses the manifest bytes and produces one entry per declared
// dependency, sorted by package name. Runtime and dev dependencies are
// treated alike; a package unknown to the profile is reported as ok.
func Audit(manifest []byte, profile *rules.Profile) ([]schemas.DependencyAudit, error) {
	var pkg packageManifest
	if err := json.Unmarshal(manifest, &pkg); err != nil {
		return nil, fmt.Errorf("invalid package manifest: %w", err)
	}

	declared := make(map[string]string, len(pkg.Dependencies)+len(pkg.DevDependencies))
	for name, version := range pkg.Dependencies {
		declared[name] = version
	}
	for name, version := range pkg.DevDependencies {
		// Runtime declarations win when a package appears in both sections.
		if _, ok := declared[name]; !ok {
			declared[name] = version
		}
	}

	audits := make([]schemas.DependencyAudit, 0, len(declared))
	for name, version := range declared {
		entry := schemas.DependencyAudit{
			Name:           name,
			CurrentVersion: version,
			Status:         schemas.StatusOK,
		}
		if adv, ok := profile.Advisories[name]; ok {
			entry.LatestVersion = adv.Latest
			entry.Status = adv.Status
			entry.Action = adv.Action
		}
		audits = append(audits, entry)
	}

	sort.Slice(audits, func(i, j int) bool { return audits[i].Name < audits[j].Name })
	return audits, nil
}
