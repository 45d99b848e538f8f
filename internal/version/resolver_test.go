package version

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drjonesii/tfenv-go/internal/config"
	"github.com/drjonesii/tfenv-go/internal/platform"
)

type stubCatalog struct {
	versions []string
	err      error
	calls    int
}

func (s *stubCatalog) Versions(ctx context.Context, product platform.Product) ([]string, error) {
	s.calls++
	return s.versions, s.err
}

func newTestResolver(catalog *stubCatalog) *Resolver {
	return &Resolver{
		Fs: afero.NewMemMapFs(),
		Config: &config.Config{
			Product:     platform.ProductTerraform,
			RootDir:     "/opt/tfenv",
			ConfigDir:   "/opt/tfenv",
			AutoInstall: true,
		},
		Catalog: catalog,
		WorkDir: "/work/project",
		Home:    "/home/user",
	}
}

func markInstalled(t *testing.T, r *Resolver, versions ...string) {
	t.Helper()
	for _, v := range versions {
		require.NoError(t, r.Fs.MkdirAll(r.Config.InstallDir(v), 0o755))
	}
}

func TestResolveEnvOverridesEverything(t *testing.T) {
	r := newTestResolver(&stubCatalog{})
	r.Config.ForceVersion = "1.5.0"
	writeProjectFile(t, r.Fs, "/work/project/.terraform-version", "9.9.9\n")

	got, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.5.0", got)
}

func TestResolveNearestVersionFileWins(t *testing.T) {
	r := newTestResolver(&stubCatalog{})
	writeProjectFile(t, r.Fs, "/work/project/.terraform-version", "0.11.14\n")
	writeProjectFile(t, r.Fs, "/work/.terraform-version", "9.9.9\n")

	got, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0.11.14", got)
}

func TestResolveWalksUpToParent(t *testing.T) {
	r := newTestResolver(&stubCatalog{})
	writeProjectFile(t, r.Fs, "/work/.terraform-version", "1.4.6\n")

	got, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.4.6", got)
}

func TestResolveEmptyFileFallsThrough(t *testing.T) {
	r := newTestResolver(&stubCatalog{})
	writeProjectFile(t, r.Fs, "/work/project/.terraform-version", "\n")
	writeProjectFile(t, r.Fs, "/home/user/.terraform-version", "1.4.6\n")

	got, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.4.6", got)
}

func TestResolveDefaultsToLatestInstalled(t *testing.T) {
	catalog := &stubCatalog{versions: []string{"9.9.9"}}
	r := newTestResolver(catalog)
	markInstalled(t, r, "1.2.0", "1.3.0")
	writeProjectFile(t, r.Fs, "/opt/tfenv/versions/notes.txt", "not a version dir\n")
	require.NoError(t, r.Fs.MkdirAll("/opt/tfenv/versions/tmp", 0o755))

	got, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.3.0", got)
	assert.Equal(t, 0, catalog.calls, "installed match must not hit the remote")
}

func TestResolveLatestFallsBackToRemote(t *testing.T) {
	catalog := &stubCatalog{versions: []string{"1.2.0", "1.4.5"}}
	r := newTestResolver(catalog)

	got, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.4.5", got)
	assert.Equal(t, 1, catalog.calls)
}

func TestResolveLatestAutoInstallDisabled(t *testing.T) {
	catalog := &stubCatalog{versions: []string{"1.4.5"}}
	r := newTestResolver(catalog)
	r.Config.AutoInstall = false

	_, err := r.Resolve(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoMatchingVersion))
	assert.Contains(t, err.Error(), "auto-install is disabled")
	assert.Equal(t, 0, catalog.calls)
}

func TestResolveLatestPattern(t *testing.T) {
	r := newTestResolver(&stubCatalog{})
	markInstalled(t, r, "1.2.0", "1.2.5", "1.3.0")

	got, err := r.ResolveRequested(context.Background(), `latest:^1\.2\.`)
	require.NoError(t, err)
	assert.Equal(t, "1.2.5", got)
}

func TestResolveLatestExcludesPrereleases(t *testing.T) {
	catalog := &stubCatalog{versions: []string{"1.6.0-alpha1", "1.5.7"}}
	r := newTestResolver(catalog)
	markInstalled(t, r, "1.6.0-alpha1")

	got, err := r.ResolveRequested(context.Background(), "latest")
	require.NoError(t, err)
	assert.Equal(t, "1.5.7", got)
}

func TestResolveRemoteNoMatch(t *testing.T) {
	catalog := &stubCatalog{versions: []string{"0.9.0"}}
	r := newTestResolver(catalog)

	_, err := r.ResolveRequested(context.Background(), `latest:^1\.`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoMatchingVersion))
	assert.Contains(t, err.Error(), "remote")
}

func TestResolveExactPassesThrough(t *testing.T) {
	r := newTestResolver(&stubCatalog{})

	got, err := r.ResolveRequested(context.Background(), "v1.5.0")
	require.NoError(t, err)
	assert.Equal(t, "1.5.0", got)
}

func TestResolveMinRequired(t *testing.T) {
	r := newTestResolver(&stubCatalog{})
	writeProjectFile(t, r.Fs, "/work/project/main.tf",
		"terraform {\n  required_version = \">= 1.3.7\"\n}\n")

	got, err := r.ResolveRequested(context.Background(), "min-required")
	require.NoError(t, err)
	assert.Equal(t, "1.3.7", got)
}

func TestResolveMinRequiredNoDeclaration(t *testing.T) {
	r := newTestResolver(&stubCatalog{})
	writeProjectFile(t, r.Fs, "/work/project/main.tf",
		"terraform {\n  required_version = \"!= 1.5.0\"\n}\n")

	_, err := r.ResolveRequested(context.Background(), "min-required")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrResolution))
}

func TestResolveLatestAllowed(t *testing.T) {
	catalog := &stubCatalog{versions: []string{"1.2.9", "1.3.0", "2.0.0"}}
	r := newTestResolver(catalog)
	writeProjectFile(t, r.Fs, "/work/project/main.tf",
		"terraform {\n  required_version = \"~> 1.2\"\n}\n")

	got, err := r.ResolveRequested(context.Background(), "latest-allowed")
	require.NoError(t, err)
	assert.Equal(t, "1.3.0", got)
}

func TestResolveLatestAllowedNoDeclaration(t *testing.T) {
	r := newTestResolver(&stubCatalog{})

	_, err := r.ResolveRequested(context.Background(), "latest-allowed")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrResolution))
}

func TestInstalledVersionsMissingDir(t *testing.T) {
	r := newTestResolver(&stubCatalog{})
	installed, err := r.InstalledVersions()
	require.NoError(t, err)
	assert.Empty(t, installed)
}
