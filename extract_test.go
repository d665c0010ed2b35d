package main

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/gobwas/glob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeCrateArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()

	buf := &bytes.Buffer{}
	gw := gzip.NewWriter(buf)
	tw := tar.NewWriter(gw)
	for name, contents := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Typeflag: tar.TypeReg,
			Name:     name,
			Mode:     0644,
			Size:     int64(len(contents)),
		}))
		_, err := tw.Write([]byte(contents))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

func TestExtractArchive(t *testing.T) {
	data := makeCrateArchive(t, map[string]string{
		"demo-1.0.0/Cargo.toml": "[package]\nname = \"demo\"\n",
		"demo-1.0.0/src/lib.rs": "pub fn demo() {}\n",
	})

	dir := t.TempDir()
	require.NoError(t, ExtractArchive(data, "demo-1.0.0.crate", dir, nil))

	manifest, err := os.ReadFile(filepath.Join(dir, "demo-1.0.0", "Cargo.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), "name = \"demo\"")

	lib, err := os.ReadFile(filepath.Join(dir, "demo-1.0.0", "src", "lib.rs"))
	require.NoError(t, err)
	assert.Equal(t, "pub fn demo() {}\n", string(lib))
}

func TestExtractArchiveFilter(t *testing.T) {
	data := makeCrateArchive(t, map[string]string{
		"demo-1.0.0/Cargo.toml": "[package]\n",
		"demo-1.0.0/src/lib.rs": "pub fn demo() {}\n",
	})

	dir := t.TempDir()
	filter := glob.MustCompile("*.toml")
	require.NoError(t, ExtractArchive(data, "demo-1.0.0.crate", dir, filter))

	_, err := os.Stat(filepath.Join(dir, "demo-1.0.0", "Cargo.toml"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "demo-1.0.0", "src", "lib.rs"))
	assert.True(t, os.IsNotExist(err))
}

func TestExtractArchiveRejectsTraversal(t *testing.T) {
	data := makeCrateArchive(t, map[string]string{
		"../evil.txt": "nope",
	})

	err := ExtractArchive(data, "demo-1.0.0.crate", t.TempDir(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes")
}

func TestDecompressorFor(t *testing.T) {
	// a .crate file is a gzipped tar
	var raw bytes.Buffer
	gw := gzip.NewWriter(&raw)
	gw.Write([]byte("hello"))
	require.NoError(t, gw.Close())

	r, err := decompressorFor("demo-1.0.0.crate")(bytes.NewReader(raw.Bytes()))
	require.NoError(t, err)
	out := &bytes.Buffer{}
	_, err = out.ReadFrom(r)
	require.NoError(t, err)
	assert.Equal(t, "hello", out.String())

	// unknown suffixes pass through untouched
	r, err = decompressorFor("demo.bin")(bytes.NewReader([]byte("raw")))
	require.NoError(t, err)
	out.Reset()
	out.ReadFrom(r)
	assert.Equal(t, "raw", out.String())
}
