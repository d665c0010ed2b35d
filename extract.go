package main

import (
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/ulikunitz/xz"
)

// A DecompFn wraps a reader with the decompressor for an archive's encoding.
type DecompFn func(r io.Reader) (io.Reader, error)

// decompressorFor picks the decompressor from the archive file name. A
// '.crate' file is a gzipped tar; '.gz', '.bz2' and '.xz' suffixes select the
// matching decompressor, and anything else is passed through untouched.
func decompressorFor(filename string) DecompFn {
	switch {
	case strings.HasSuffix(filename, ".crate"), strings.HasSuffix(filename, ".gz"):
		return func(r io.Reader) (io.Reader, error) {
			return gzip.NewReader(r)
		}
	case strings.HasSuffix(filename, ".bz2"):
		return func(r io.Reader) (io.Reader, error) {
			return bzip2.NewReader(r), nil
		}
	case strings.HasSuffix(filename, ".xz"):
		return func(r io.Reader) (io.Reader, error) {
			return xz.NewReader(r)
		}
	default:
		return func(r io.Reader) (io.Reader, error) {
			return r, nil
		}
	}
}

// ExtractArchive unpacks the archive 'data' (named 'filename', which decides
// the decompressor) into the directory 'dir', preserving entry paths. A
// non-nil filter restricts extraction to the entries it matches. Entries
// whose paths would escape 'dir' are rejected.
func ExtractArchive(data []byte, filename, dir string, filter glob.Glob) error {
	archive, err := NewTarArchive(data, decompressorFor(filename))
	if err != nil {
		return fmt.Errorf("extract %s: %w", filename, err)
	}

	for {
		f, err := archive.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("extract %s: %w", filename, err)
		}

		target, err := safeJoin(dir, f.Name)
		if err != nil {
			return err
		}

		if f.Dir {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}
		if filter != nil && !filter.Match(f.Name) {
			continue
		}

		contents, err := archive.ReadAll()
		if err != nil {
			return fmt.Errorf("extract %s: %w", f.Name, err)
		}
		if err := writeFile(contents, target, f.Mode.Perm()); err != nil {
			return err
		}
	}
}

// safeJoin joins an archive entry name onto dir, refusing names that climb
// out of it.
func safeJoin(dir, name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("archive entry `%s` escapes the target directory", name)
	}
	return filepath.Join(dir, cleaned), nil
}

// Write a file to disk, creating parent directories as necessary.
func writeFile(data []byte, path string, mode fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(data)
	return err
}
