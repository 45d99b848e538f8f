package install

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/drjonesii/tfenv-go/internal/platform"
)

// ExtractBinary pulls the named binary out of a zip archive and writes it
// executable at destPath. Everything else in the archive is ignored.
func ExtractBinary(archivePath, destPath, binaryName string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer reader.Close()

	for _, entry := range reader.File {
		if path.Base(entry.Name) != binaryName || entry.FileInfo().IsDir() {
			continue
		}
		if err := writeEntry(entry, destPath); err != nil {
			return err
		}
		return platform.SetExecutable(destPath)
	}
	return fmt.Errorf("%w: %s missing from %s", ErrExtraction, binaryName, archivePath)
}

func writeEntry(entry *zip.File, destPath string) error {
	src, err := entry.Open()
	if err != nil {
		return fmt.Errorf("open archive entry: %w", err)
	}
	defer src.Close()

	dest, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return fmt.Errorf("create binary file: %w", err)
	}
	if _, err := io.Copy(dest, src); err != nil {
		dest.Close()
		return fmt.Errorf("write binary file: %w", err)
	}
	if err := dest.Close(); err != nil {
		return fmt.Errorf("close binary file: %w", err)
	}
	return nil
}
