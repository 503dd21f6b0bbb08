package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	aerrors "archrypt/internal/errors"
)

// Tick is invoked once per packed or extracted file. Implementations must
// not influence control flow; a nil Tick is valid.
type Tick func()

// CountFiles returns the number of files Build would pack for the given
// targets, so callers can size progress reporting before work begins.
func CountFiles(targets []string) (int, error) {
	total := 0
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return 0, err
		}
		switch {
		case info.Mode().IsRegular():
			total++
		case info.IsDir():
			err := filepath.WalkDir(target, func(_ string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.Type().IsRegular() {
					total++
				}
				return nil
			})
			if err != nil {
				return 0, err
			}
		default:
			return 0, fmt.Errorf("%s: %w", target, aerrors.ErrInvalidTarget)
		}
	}
	return total, nil
}

// Build packs the target files and directories into a zip archive staged at
// a temporary file, and returns that file's path. The caller owns the file
// and must remove it; Build removes it itself on failure.
//
// A file target becomes one entry named by its base name. A directory
// target is walked recursively (lexical order, so output is deterministic)
// and each contained file becomes an entry named
// "<directory base name>/<path relative to the directory>".
//
// Returns ErrInvalidTarget for targets that are neither files nor
// directories, and ErrDuplicateEntry when two targets produce the same
// entry name. Any failure aborts the whole build.
func Build(targets []string, tick Tick) (archivePath string, err error) {
	tmp, err := os.CreateTemp("", "archrypt-*.zip")
	if err != nil {
		return "", fmt.Errorf("failed to create staging file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	zw := zip.NewWriter(tmp)
	seen := make(map[string]struct{})

	for _, target := range targets {
		info, statErr := os.Stat(target)
		if statErr != nil {
			return "", statErr
		}

		switch {
		case info.Mode().IsRegular():
			if err = addFile(zw, seen, filepath.Base(target), target, tick); err != nil {
				return "", err
			}
		case info.IsDir():
			if err = addDir(zw, seen, target, tick); err != nil {
				return "", err
			}
		default:
			err = fmt.Errorf("%s: %w", target, aerrors.ErrInvalidTarget)
			return "", err
		}
	}

	if err = zw.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize archive: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close staging file: %w", err)
	}
	return tmp.Name(), nil
}

// addDir walks a directory target and adds every contained file, prefixed
// with the directory's own base name.
func addDir(zw *zip.Writer, seen map[string]struct{}, target string, tick Tick) error {
	base := filepath.Base(filepath.Clean(target))
	return filepath.WalkDir(target, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(target, p)
		if err != nil {
			return err
		}
		name := path.Join(base, filepath.ToSlash(rel))
		return addFile(zw, seen, name, p, tick)
	})
}

func addFile(zw *zip.Writer, seen map[string]struct{}, name, srcPath string, tick Tick) error {
	if err := checkEntryName(name); err != nil {
		return err
	}
	if _, dup := seen[name]; dup {
		return fmt.Errorf("%s: %w", name, aerrors.ErrDuplicateEntry)
	}
	seen[name] = struct{}{}

	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to add %s to archive: %w", name, err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("failed to pack %s: %w", name, err)
	}

	if tick != nil {
		tick()
	}
	return nil
}

// checkEntryName rejects names that could resolve outside the extraction
// directory: absolute paths and any path containing a ".." segment.
func checkEntryName(name string) error {
	if name == "" || strings.HasPrefix(name, "/") || filepath.IsAbs(filepath.FromSlash(name)) {
		return fmt.Errorf("%q: %w", name, aerrors.ErrUnsafePath)
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == ".." {
			return fmt.Errorf("%q: %w", name, aerrors.ErrUnsafePath)
		}
	}
	return nil
}
