package install

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/drjonesii/tfenv-go/internal/config"
	"github.com/drjonesii/tfenv-go/internal/platform"
)

const (
	// DefaultTerraformDownloadBase serves terraform release artifacts.
	DefaultTerraformDownloadBase = "https://releases.hashicorp.com/terraform/"
	// DefaultOpenTofuDownloadBase serves opentofu release artifacts.
	DefaultOpenTofuDownloadBase = "https://github.com/opentofu/opentofu/releases/download/"
)

// Installer runs the download / verify / unpack pipeline for one version.
type Installer struct {
	cfg        *config.Config
	downloader *Downloader
	trustRoot  string
}

// New creates an installer for the given configuration.
func New(cfg *config.Config) *Installer {
	return &Installer{
		cfg:        cfg,
		downloader: NewDownloader(),
		trustRoot:  TrustRoot,
	}
}

// Installed reports whether version already has an executable binary in
// place.
func (i *Installer) Installed(version string) bool {
	return platform.IsExecutable(i.cfg.BinaryPath(version))
}

// Install downloads, verifies and unpacks one exact version. Verification
// happens against material fetched from the canonical trust root before the
// install directory is created, so a failed install leaves no trace in the
// version tree. Installing a version that is already present is a no-op.
func (i *Installer) Install(ctx context.Context, version string) error {
	if i.Installed(version) {
		log.Info("already installed", "product", i.cfg.Product, "version", version)
		return nil
	}

	assetName := platform.AssetName(i.cfg.Product, version)
	assetURL, err := i.assetURL(version, assetName)
	if err != nil {
		return err
	}

	workDir, err := os.MkdirTemp("", "tfenv-install-")
	if err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	archivePath := filepath.Join(workDir, assetName)
	log.Info("downloading", "product", i.cfg.Product, "version", version, "url", assetURL)
	if err := i.downloader.FetchToFile(ctx, assetURL, archivePath); err != nil {
		return err
	}

	if err := i.verify(ctx, version, archivePath, assetName); err != nil {
		return err
	}

	installDir := i.cfg.InstallDir(version)
	if err := os.MkdirAll(installDir, 0o755); err != nil {
		return fmt.Errorf("create install dir: %w", err)
	}
	binaryName := i.cfg.Product.BinaryName()
	if err := ExtractBinary(archivePath, filepath.Join(installDir, binaryName), binaryName); err != nil {
		return err
	}

	log.Info("installed", "product", i.cfg.Product, "version", version, "path", installDir)
	return nil
}

// assetURL builds the artifact download URL. Terraform nests assets under a
// bare version directory; opentofu tags carry a leading "v".
func (i *Installer) assetURL(version, assetName string) (string, error) {
	base := i.cfg.Remote
	if base == "" {
		switch i.cfg.Product {
		case platform.ProductTerraform:
			base = DefaultTerraformDownloadBase
		case platform.ProductOpenTofu:
			base = DefaultOpenTofuDownloadBase
		default:
			return "", fmt.Errorf("no download base known for product %q", i.cfg.Product)
		}
	}
	if i.cfg.Product == platform.ProductTerraform {
		return base + version + "/" + assetName, nil
	}
	return base + "v" + version + "/" + assetName, nil
}

// verify runs the trust chain for terraform artifacts: the checksum stage
// always, the signature stage when enabled. The checksum manifest and its
// signature come from the canonical trust root even when a mirror serves the
// artifact itself. Other products have no manifest at the trust root, so
// they install unverified with a visible notice.
func (i *Installer) verify(ctx context.Context, version, archivePath, assetName string) error {
	if i.cfg.Product != platform.ProductTerraform {
		log.Warn("no verification material published for product, installing unverified",
			"product", i.cfg.Product, "version", version)
		return nil
	}

	sumsName := fmt.Sprintf("terraform_%s_SHA256SUMS", version)
	sumsURL := fmt.Sprintf("%s/%s/%s", i.trustRoot, version, sumsName)
	manifest, err := i.downloader.FetchBytes(ctx, sumsURL)
	if err != nil {
		return err
	}
	if err := VerifyChecksum(archivePath, manifest, assetName); err != nil {
		return err
	}
	log.Info("checksum verified", "asset", assetName)

	if !i.cfg.SignatureEnabled() {
		return nil
	}

	signature, err := i.downloader.FetchBytes(ctx, sumsURL+".sig")
	if err != nil {
		return err
	}
	keyring, err := LoadKeyring(i.cfg.KeyringPath())
	if err != nil {
		return err
	}
	if err := VerifySignature(manifest, signature, keyring); err != nil {
		return err
	}
	log.Info("signature verified", "version", version)
	return nil
}

// Uninstall removes an installed version's directory.
func (i *Installer) Uninstall(version string) error {
	installDir := i.cfg.InstallDir(version)
	if _, err := os.Stat(installDir); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("version %s is not installed", version)
		}
		return fmt.Errorf("inspect install dir: %w", err)
	}
	if err := os.RemoveAll(installDir); err != nil {
		return fmt.Errorf("remove install dir: %w", err)
	}
	log.Info("uninstalled", "product", i.cfg.Product, "version", version)
	return nil
}
