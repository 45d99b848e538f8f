// Package version implements the resolution core: semantic version values,
// typed constraints, declaration-file extraction and the precedence engine
// that turns an environment/file/default signal into a concrete version.
package version

import (
	"errors"
	"fmt"
	"regexp"
	"sort"

	"github.com/Masterminds/semver/v3"
)

// ErrNotAVersion marks a string that does not parse as a semantic version.
// Callers treat it as "skip this candidate", never as fatal.
var ErrNotAVersion = errors.New("not a semantic version")

// Parse parses a full three-component semantic version string. The returned
// value formats back to the original input via Original.
func Parse(s string) (*semver.Version, error) {
	v, err := semver.StrictNewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotAVersion, s)
	}
	return v, nil
}

// Latest returns the highest version among names matching re, or "" when
// none match. Names that do not parse are skipped.
func Latest(names []string, re *regexp.Regexp) string {
	var best *semver.Version
	for _, name := range names {
		if !re.MatchString(name) {
			continue
		}
		v, err := Parse(name)
		if err != nil {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
		}
	}
	if best == nil {
		return ""
	}
	return best.Original()
}

// SortDescending orders version strings highest first, dropping entries that
// do not parse.
func SortDescending(names []string) []string {
	versions := make([]*semver.Version, 0, len(names))
	for _, name := range names {
		v, err := Parse(name)
		if err != nil {
			continue
		}
		versions = append(versions, v)
	}
	sort.Sort(sort.Reverse(semver.Collection(versions)))
	out := make([]string, len(versions))
	for i, v := range versions {
		out[i] = v.Original()
	}
	return out
}
