package main

import (
	"archive/tar"
	"bytes"
	"io"
	"io/fs"
)

// A File is one entry of a crate archive.
type File struct {
	Name string
	Mode fs.FileMode
	Dir  bool
}

// An Archive iterates over the entries of a crate archive. Next advances to
// the next regular file or directory, and ReadAll returns the contents of
// the current entry.
type Archive interface {
	Next() (File, error)
	ReadAll() ([]byte, error)
}

// A TarArchive reads a tar stream after running it through the given
// decompressor. Crate archives are gzipped tars, but the decompressor is
// picked by file suffix so alternate registries may serve other encodings.
type TarArchive struct {
	r *tar.Reader
}

func NewTarArchive(data []byte, decompress DecompFn) (Archive, error) {
	r := bytes.NewReader(data)
	dr, err := decompress(r)
	if err != nil {
		return nil, err
	}
	return &TarArchive{
		r: tar.NewReader(dr),
	}, nil
}

func (t *TarArchive) Next() (File, error) {
	for {
		hdr, err := t.r.Next()
		if err != nil {
			return File{}, err
		}
		if hdr.Typeflag == tar.TypeReg || hdr.Typeflag == tar.TypeDir {
			return File{
				Name: hdr.Name,
				Mode: fs.FileMode(hdr.Mode),
				Dir:  hdr.Typeflag == tar.TypeDir,
			}, err
		}
	}
}

func (t *TarArchive) ReadAll() ([]byte, error) {
	return io.ReadAll(t.r)
}
