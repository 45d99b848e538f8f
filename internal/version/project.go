package version

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
)

// Declaration files carry a required_version specifier, e.g.
//
//	terraform {
//	  required_version = ">= 1.2.0"
//	}
//
// Scanning is line-oriented and best-effort by design: the first occurrence
// across all matching files, in filesystem enumeration order, wins. Multiple
// declarations are never merged.

var (
	requiredVersionRe = regexp.MustCompile(`(?m)^\s*[^#]*required_version\s*[:=]?\s*\(?"?([^"]+)"?\)?`)
	specifierRe       = regexp.MustCompile(`([~=!<>]{0,2}\s*)([0-9]+(?:\.[0-9]+){0,2})(-[a-z]+[0-9]+)?`)
	numericRe         = regexp.MustCompile(`[0-9.]+`)
)

// readDeclarations concatenates the contents of dir's *.tf and *.tf.json
// files in enumeration order. A missing directory yields no content.
func readDeclarations(fsys afero.Fs, dir string) (string, error) {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("list declaration files: %w", err)
	}

	var combined strings.Builder
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (!strings.HasSuffix(name, ".tf") && !strings.HasSuffix(name, ".tf.json")) {
			continue
		}
		data, err := afero.ReadFile(fsys, filepath.Join(dir, name))
		if err != nil {
			return "", fmt.Errorf("read declaration file %s: %w", name, err)
		}
		combined.Write(data)
		combined.WriteByte('\n')
	}
	return combined.String(), nil
}

// MinRequired scans dir's declaration files and returns the minimum version
// named by the first required_version specifier, padded to three components.
// The empty string means no minimum was found, which callers treat as "fall
// through", not as an error. A "!=" specifier names a version to avoid, not
// a minimum, so it also yields nothing.
func MinRequired(fsys afero.Fs, dir string) (string, error) {
	combined, err := readDeclarations(fsys, dir)
	if err != nil {
		return "", err
	}

	m := requiredVersionRe.FindStringSubmatch(combined)
	if m == nil {
		return "", nil
	}

	parts := specifierRe.FindStringSubmatch(m[1])
	if parts == nil {
		return "", nil
	}
	if strings.HasPrefix(strings.TrimSpace(parts[1]), "!=") {
		return "", nil
	}

	found := parts[2]
	for strings.Count(found, ".") < 2 {
		found += ".0"
	}
	return found + parts[3], nil
}

// LatestAllowedConstraint translates the first required_version specifier in
// dir into the latest-family constraint it permits:
//
//	> X  (and >= X)  ->  unconstrained latest
//	<= X or < X      ->  exact pin on X
//	~> X.Y[.Z]       ->  latest filtered to the prefix left of the dropped
//	                     rightmost component
//
// Multi-level ranges like "~> 1" have no numeric prefix to keep and yield
// nothing. The second return value reports whether a mapping was found.
func LatestAllowedConstraint(fsys afero.Fs, dir string) (Constraint, bool, error) {
	combined, err := readDeclarations(fsys, dir)
	if err != nil {
		return Constraint{}, false, err
	}

	var specLine string
	for _, line := range strings.Split(combined, "\n") {
		if strings.Contains(line, "required_version") {
			specLine = line
			break
		}
	}
	if specLine == "" {
		return Constraint{}, false, nil
	}

	spec := specLine
	if parts := strings.Split(specLine, `"`); len(parts) >= 2 {
		spec = parts[1]
	}
	spec = strings.TrimSpace(spec)
	num := numericRe.FindString(spec)

	switch {
	case strings.HasPrefix(spec, "~>"):
		if i := strings.LastIndex(num, "."); i >= 0 {
			prefix := num[:i]
			return Constraint{
				Kind:    KindLatestMatching,
				Pattern: "^" + regexp.QuoteMeta(prefix) + `\.`,
			}, true, nil
		}
		return Constraint{}, false, nil
	case strings.HasPrefix(spec, ">"):
		return Constraint{Kind: KindLatest}, true, nil
	case strings.HasPrefix(spec, "<"):
		if num == "" {
			return Constraint{}, false, nil
		}
		return Constraint{Kind: KindExact, Version: num}, true, nil
	}
	return Constraint{}, false, nil
}
