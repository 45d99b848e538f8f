// Package platform maps Go's runtime identifiers onto the naming scheme used
// by release archives, and knows which executable each product ships.
package platform

import (
	"fmt"
	"os"
	"runtime"
)

// Product is a distributable tool family managed by tfenv.
type Product string

const (
	// ProductTerraform is the default product.
	ProductTerraform Product = "terraform"
	// ProductOpenTofu is the OpenTofu fork, distributed via GitHub releases.
	ProductOpenTofu Product = "opentofu"
)

// String returns the product name.
func (p Product) String() string {
	return string(p)
}

// BinaryName returns the name of the executable the product ships inside its
// release archive.
func (p Product) BinaryName() string {
	name := "terraform"
	if p == ProductOpenTofu {
		name = "tofu"
	}
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return name
}

// OS returns the operating-system token used in release asset names.
func OS() string {
	return runtime.GOOS
}

// Arch returns the architecture token used in release asset names.
func Arch() string {
	return runtime.GOARCH
}

// AssetName returns the zip file name published for a product release on the
// current platform, e.g. "terraform_1.5.0_linux_amd64.zip".
func AssetName(p Product, version string) string {
	return fmt.Sprintf("%s_%s_%s_%s.zip", p, version, OS(), Arch())
}

// SetExecutable marks path executable. Permission bits do not exist on
// Windows, so this is a no-op there.
func SetExecutable(path string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	if err := os.Chmod(path, 0o755); err != nil {
		return fmt.Errorf("set executable: %w", err)
	}
	return nil
}

// IsExecutable reports whether path is a regular file with the executable
// bit set. On Windows any regular file qualifies.
func IsExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if !info.Mode().IsRegular() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
