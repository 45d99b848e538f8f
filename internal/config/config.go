// Package config loads the TFENV_* environment surface once at startup and
// hands the rest of the program a plain struct. Viper does not leak past this
// package.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/drjonesii/tfenv-go/internal/platform"
)

// Config holds everything read from the environment.
type Config struct {
	// Product selects which tool family is managed (TFENV_PRODUCT).
	Product platform.Product
	// Remote overrides the release index and download base URL
	// (TFENV_REMOTE). Empty means the per-product default. It never applies
	// to checksum or signature material.
	Remote string
	// RootDir is the tool root holding bundled keys and the use-gpgv marker
	// (TFENV_ROOT).
	RootDir string
	// ConfigDir holds the version pin file and the versions/ tree
	// (TFENV_CONFIG_DIR, defaulting to RootDir).
	ConfigDir string
	// ForceVersion short-circuits resolution when non-empty
	// (TFENV_TERRAFORM_VERSION).
	ForceVersion string
	// AutoInstall permits network access during latest resolution and
	// installing missing versions on exec (TFENV_AUTO_INSTALL, default true).
	AutoInstall bool
	// TrustSignature enables the signature stage of the trust chain
	// (TFENV_TRUST_TFENV=yes).
	TrustSignature bool
}

// Load reads the TFENV_* environment variables, applying defaults for
// anything unset.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TFENV")
	v.AutomaticEnv()
	v.SetDefault("product", string(platform.ProductTerraform))
	v.SetDefault("auto_install", true)

	root := v.GetString("root")
	if root == "" {
		detected, err := rootFromExecutable()
		if err != nil {
			return nil, err
		}
		root = detected
	}

	configDir := v.GetString("config_dir")
	if configDir == "" {
		configDir = root
	}

	return &Config{
		Product:        platform.Product(strings.ToLower(v.GetString("product"))),
		Remote:         v.GetString("remote"),
		RootDir:        root,
		ConfigDir:      configDir,
		ForceVersion:   v.GetString("terraform_version"),
		AutoInstall:    v.GetBool("auto_install"),
		TrustSignature: strings.EqualFold(v.GetString("trust_tfenv"), "yes"),
	}, nil
}

// rootFromExecutable falls back to the executable's grandparent directory,
// mirroring the usual <root>/bin/tfenv installation layout.
func rootFromExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("determine tfenv root: %w", err)
	}
	return filepath.Dir(filepath.Dir(exe)), nil
}

// VersionsDir returns the root of the installed version tree.
func (c *Config) VersionsDir() string {
	return filepath.Join(c.ConfigDir, "versions")
}

// VersionFile returns the path of the pinned default version file.
func (c *Config) VersionFile() string {
	return filepath.Join(c.ConfigDir, "version")
}

// InstallDir returns the directory a given version installs into.
func (c *Config) InstallDir(version string) string {
	return filepath.Join(c.VersionsDir(), version)
}

// BinaryPath returns where the product executable for a version lives.
func (c *Config) BinaryPath(version string) string {
	return filepath.Join(c.InstallDir(version), c.Product.BinaryName())
}

// KeyringPath returns the location of the bundled trusted public keys.
func (c *Config) KeyringPath() string {
	return filepath.Join(c.RootDir, "share", "hashicorp-keys.pgp")
}

// SignatureEnabled reports whether the signature stage of the trust chain
// should run: either the trust toggle is set or the use-gpgv marker file
// exists in the root directory.
func (c *Config) SignatureEnabled() bool {
	if c.TrustSignature {
		return true
	}
	info, err := os.Stat(filepath.Join(c.RootDir, "use-gpgv"))
	return err == nil && !info.IsDir()
}
