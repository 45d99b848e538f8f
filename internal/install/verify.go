package install

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp" //nolint:staticcheck // Using ProtonMail's maintained fork
)

// TrustRoot is where checksum manifests and their signatures come from.
// Mirror overrides apply only to artifact downloads; verification material
// always comes from here.
const TrustRoot = "https://releases.hashicorp.com/terraform"

// VerifyChecksum compares the SHA-256 digest of the file at artifactPath
// against the manifest entry for assetName. The manifest is the usual
// "<hex>  <filename>" line format. Filenames must match exactly; the
// comparison of hex digests is case-insensitive.
func VerifyChecksum(artifactPath string, manifest []byte, assetName string) error {
	expected, err := findChecksum(manifest, assetName)
	if err != nil {
		return err
	}

	actual, err := fileSHA256(artifactPath)
	if err != nil {
		return fmt.Errorf("calculate checksum: %w", err)
	}

	if !strings.EqualFold(actual, expected) {
		return fmt.Errorf("%w for %s:\nactual:   %s\nexpected: %s",
			ErrChecksumMismatch, assetName, actual, expected)
	}
	return nil
}

// findChecksum scans the manifest for an exact filename match.
func findChecksum(manifest []byte, assetName string) (string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(manifest))
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}
		if parts[1] == assetName {
			return parts[0], nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("scan checksum manifest: %w", err)
	}
	return "", fmt.Errorf("%w for %s", ErrChecksumNotFound, assetName)
}

// fileSHA256 returns the hex-encoded SHA-256 digest of a file.
func fileSHA256(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// VerifySignature checks the detached signature over the checksum manifest
// against the trusted keyring. Armored signatures are tried first, then
// binary.
func VerifySignature(manifest, signature []byte, keyring openpgp.EntityList) error {
	_, err := openpgp.CheckArmoredDetachedSignature(
		keyring, bytes.NewReader(manifest), bytes.NewReader(signature), nil)
	if err != nil {
		_, err = openpgp.CheckDetachedSignature(
			keyring, bytes.NewReader(manifest), bytes.NewReader(signature), nil)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	}
	return nil
}
