// Package install downloads, verifies and unpacks release artifacts into
// the per-version install tree.
package install

import "errors"

var (
	// ErrChecksumNotFound means the checksum manifest carried no entry for
	// the exact artifact filename.
	ErrChecksumNotFound = errors.New("checksum not found")
	// ErrChecksumMismatch means the artifact digest disagreed with the
	// manifest entry.
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrSignatureInvalid means the checksum manifest's detached signature
	// did not verify against the trusted keyring.
	ErrSignatureInvalid = errors.New("signature verification failed")
	// ErrExtraction means the archive did not contain the expected binary.
	ErrExtraction = errors.New("binary not found in archive")
)
