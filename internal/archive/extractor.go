package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CountEntries returns the number of file entries in a raw archive, so
// callers can size progress reporting before extraction begins.
func CountEntries(raw []byte) (int, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return 0, fmt.Errorf("failed to read archive: %w", err)
	}
	count := 0
	for _, f := range zr.File {
		if !strings.HasSuffix(f.Name, "/") {
			count++
		}
	}
	return count, nil
}

// Extract unpacks a raw archive under outputDir, creating it and any
// missing ancestor directories as needed, and returns the number of files
// written. Entries whose names end with a path separator become
// directories and carry no content.
//
// Extraction is not transactional: a failure part way through leaves the
// entries already written on disk.
//
// Entry names that are absolute or contain ".." segments are rejected with
// ErrUnsafePath before anything is written for them.
func Extract(raw []byte, outputDir string, tick Tick) (int, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return 0, fmt.Errorf("failed to read archive: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	written := 0
	for _, f := range zr.File {
		if err := checkEntryName(strings.TrimSuffix(f.Name, "/")); err != nil {
			return written, err
		}
		dest := filepath.Join(outputDir, filepath.FromSlash(f.Name))

		if strings.HasSuffix(f.Name, "/") {
			if err := os.MkdirAll(dest, 0755); err != nil {
				return written, fmt.Errorf("failed to create directory %s: %w", dest, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return written, fmt.Errorf("failed to create directory for %s: %w", dest, err)
		}
		if err := writeEntry(f, dest); err != nil {
			return written, err
		}
		written++
		if tick != nil {
			tick()
		}
	}
	return written, nil
}

func writeEntry(f *zip.File, dest string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open archive entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}

	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return out.Close()
}
