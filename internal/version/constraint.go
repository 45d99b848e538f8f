package version

import "strings"

// Kind discriminates the typed constraint forms a requested version string
// can take.
type Kind int

const (
	// KindExact pins one version verbatim.
	KindExact Kind = iota
	// KindLatest selects the highest plain release.
	KindLatest
	// KindLatestMatching selects the highest version matching a pattern.
	KindLatestMatching
	// KindLatestAllowed derives the constraint from required_version.
	KindLatestAllowed
	// KindMinRequired selects the minimum required_version names.
	KindMinRequired
)

// DefaultPattern matches exactly three numeric components, which keeps
// prerelease builds out of plain "latest" resolution.
const DefaultPattern = `^[0-9]+\.[0-9]+\.[0-9]+$`

// Constraint is the typed form of a requested version string. It is derived
// once per resolution and consumed immediately.
type Constraint struct {
	Kind    Kind
	Version string // exact pin, when Kind == KindExact
	Pattern string // regex source, when Kind == KindLatestMatching
}

// ParseConstraint classifies a raw requested string. A leading "v" is
// stripped first, so "v1.5.0" and "1.5.0" are the same pin.
func ParseConstraint(requested string) Constraint {
	req := strings.TrimPrefix(strings.TrimSpace(requested), "v")
	switch {
	case req == "min-required":
		return Constraint{Kind: KindMinRequired}
	case req == "latest-allowed":
		return Constraint{Kind: KindLatestAllowed}
	case strings.HasPrefix(req, "latest"):
		if i := strings.Index(req, ":"); i >= 0 {
			return Constraint{Kind: KindLatestMatching, Pattern: req[i+1:]}
		}
		return Constraint{Kind: KindLatest}
	default:
		return Constraint{Kind: KindExact, Version: req}
	}
}
