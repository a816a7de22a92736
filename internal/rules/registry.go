package rules

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownProfile is returned by Get for an id no profile was registered
// under.
var ErrUnknownProfile = errors.New("unknown platform profile")

// registry is the process-wide profile set. It is populated during init and
// read-only afterwards, so concurrent scans need no locking beyond the
// one-time build.
type registry struct {
	order []*Profile
	byID  map[string]*Profile
}

var (
	buildOnce sync.Once
	global    *registry
)

func getRegistry() *registry {
	buildOnce.Do(func() {
		profiles := builtinProfiles()
		r := &registry{byID: make(map[string]*Profile, len(profiles))}
		for _, p := range profiles {
			if _, dup := r.byID[p.ID]; dup {
				panic(fmt.Sprintf("duplicate builtin profile id %q", p.ID))
			}
			r.order = append(r.order, p)
			r.byID[p.ID] = p
		}
		global = r
	})
	return global
}

// Profiles returns all registered profiles in registration order.
func Profiles() []*Profile {
	return getRegistry().order
}

// Get returns the profile registered under id.
func Get(id string) (*Profile, error) {
	p, ok := getRegistry().byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, id)
	}
	return p, nil
}

// Default returns the first registered profile, used when the caller does
// not select one explicitly.
func Default() *Profile {
	return getRegistry().order[0]
}
