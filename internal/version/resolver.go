package version

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"

	"github.com/drjonesii/tfenv-go/internal/config"
	"github.com/drjonesii/tfenv-go/internal/platform"
)

// VersionFileName is the per-directory (and user-home) declaration file
// holding a raw requested version string.
const VersionFileName = ".terraform-version"

var (
	// ErrResolution means no constraint-satisfying version could be
	// determined through any resolution step.
	ErrResolution = errors.New("unable to resolve version")
	// ErrNoMatchingVersion means a latest-family pattern matched nothing,
	// locally or remotely.
	ErrNoMatchingVersion = errors.New("no matching version")
)

// Catalog lists the remotely published version names for a product.
// Implemented by internal/releases; injected so resolution stays
// network-free until it genuinely needs the remote.
type Catalog interface {
	Versions(ctx context.Context, product platform.Product) ([]string, error)
}

// Resolver turns the environment/file/default signal into a concrete
// version string. Filesystem probes go through Fs so tests can run on an
// in-memory filesystem.
type Resolver struct {
	Fs      afero.Fs
	Config  *config.Config
	Catalog Catalog
	// WorkDir and Home anchor the declaration-file searches; they default
	// to the process working directory and the user's home directory.
	WorkDir string
	Home    string
}

// NewResolver builds a resolver over the real filesystem.
func NewResolver(cfg *config.Config, catalog Catalog) (*Resolver, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determine working directory: %w", err)
	}
	home, _ := os.UserHomeDir() // no home directory just skips that step
	return &Resolver{
		Fs:      afero.NewOsFs(),
		Config:  cfg,
		Catalog: catalog,
		WorkDir: wd,
		Home:    home,
	}, nil
}

// Resolve walks the precedence chain and resolves the winning request.
// Every fallback step is explicit; nothing defaults silently:
//
//  1. TFENV_TERRAFORM_VERSION, if non-empty.
//  2. The nearest .terraform-version file walking up from the working
//     directory.
//  3. $HOME/.terraform-version.
//  4. The literal "latest".
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	requested, err := r.requestedVersion()
	if err != nil {
		return "", err
	}
	return r.ResolveRequested(ctx, requested)
}

func (r *Resolver) requestedVersion() (string, error) {
	if v := strings.TrimSpace(r.Config.ForceVersion); v != "" {
		return v, nil
	}

	for dir := r.WorkDir; ; {
		s, ok, err := r.readVersionFile(filepath.Join(dir, VersionFileName))
		if err != nil {
			return "", err
		}
		if ok {
			return s, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if r.Home != "" {
		s, ok, err := r.readVersionFile(filepath.Join(r.Home, VersionFileName))
		if err != nil {
			return "", err
		}
		if ok {
			return s, nil
		}
	}

	return "latest", nil
}

// readVersionFile reads a declaration file if it exists. Missing files and
// empty contents both fall through to the next resolution step.
func (r *Resolver) readVersionFile(path string) (string, bool, error) {
	data, err := afero.ReadFile(r.Fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", path, err)
	}
	s := strings.TrimSpace(string(data))
	if s == "" {
		return "", false, nil
	}
	return s, true, nil
}

// ResolveRequested resolves one raw requested string, such as "1.5.0",
// "latest:^1\.2\." or "min-required".
func (r *Resolver) ResolveRequested(ctx context.Context, requested string) (string, error) {
	return r.resolveConstraint(ctx, ParseConstraint(requested))
}

func (r *Resolver) resolveConstraint(ctx context.Context, c Constraint) (string, error) {
	switch c.Kind {
	case KindExact:
		// No existence check here: installation is a separate step.
		return c.Version, nil
	case KindMinRequired:
		min, err := MinRequired(r.Fs, r.WorkDir)
		if err != nil {
			return "", err
		}
		if min == "" {
			return "", fmt.Errorf("%w: no required_version declaration in %s provides a minimum", ErrResolution, r.WorkDir)
		}
		return min, nil
	case KindLatestAllowed:
		mapped, ok, err := LatestAllowedConstraint(r.Fs, r.WorkDir)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("%w: no required_version declaration in %s maps to latest-allowed", ErrResolution, r.WorkDir)
		}
		return r.resolveConstraint(ctx, mapped)
	default:
		return r.resolveLatest(ctx, c)
	}
}

// resolveLatest picks the highest version matching the active pattern,
// preferring the locally installed set. The remote catalog is consulted only
// when nothing installed matches and auto-install is enabled, which keeps
// the common pinned-and-installed case network-free.
func (r *Resolver) resolveLatest(ctx context.Context, c Constraint) (string, error) {
	pattern := DefaultPattern
	if c.Kind == KindLatestMatching {
		pattern = c.Pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid version pattern %q: %w", pattern, err)
	}

	installed, err := r.InstalledVersions()
	if err != nil {
		return "", err
	}
	if best := Latest(installed, re); best != "" {
		return best, nil
	}

	if !r.Config.AutoInstall {
		return "", fmt.Errorf("%w: no installed version matches %q and auto-install is disabled", ErrNoMatchingVersion, pattern)
	}

	remote, err := r.Catalog.Versions(ctx, r.Config.Product)
	if err != nil {
		return "", err
	}
	if best := Latest(remote, re); best != "" {
		return best, nil
	}
	return "", fmt.Errorf("%w: remote %s listing has no version matching %q", ErrNoMatchingVersion, r.Config.Product, pattern)
}

// InstalledVersions lists the subdirectories of the versions root whose
// names parse as versions. The filesystem is the source of truth; nothing is
// cached between calls.
func (r *Resolver) InstalledVersions() ([]string, error) {
	entries, err := afero.ReadDir(r.Fs, r.Config.VersionsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list installed versions: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := Parse(entry.Name()); err != nil {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
