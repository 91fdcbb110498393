package scaffold

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTarGz(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	gw := gzip.NewWriter(f)
	tw := tar.NewWriter(gw)
	for name, content := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0644,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
}

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func TestImportPackFromTarGz(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "svc.tar.gz")
	writeTarGz(t, archive, map[string]string{
		"svc/main.go":      "// {{.Name}}\n",
		"svc/cfg/app.yaml": "name: {{.Name}}\n",
	})

	packsDir := filepath.Join(dir, "packs")
	name, err := ImportPack(archive, packsDir)
	require.NoError(t, err)
	assert.Equal(t, "svc", name)

	raw, err := os.ReadFile(filepath.Join(packsDir, "svc", "cfg", "app.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "name: {{.Name}}\n", string(raw))
}

func TestImportPackFromZip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "tools.zip")
	writeZip(t, archive, map[string]string{
		"tools/run.sh": "echo {{.Name}}\n",
	})

	name, err := ImportPack(archive, filepath.Join(dir, "packs"))
	require.NoError(t, err)
	assert.Equal(t, "tools", name)
}

func TestImportPackRejectsUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "pack.rar")
	require.NoError(t, os.WriteFile(archive, []byte("not an archive"), 0644))

	_, err := ImportPack(archive, filepath.Join(dir, "packs"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported archive format")
}

func TestImportPackRequiresTopLevelDirectory(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "flat.tar.gz")
	writeTarGz(t, archive, map[string]string{
		"loose.txt": "no directory here\n",
	})

	_, err := ImportPack(archive, filepath.Join(dir, "packs"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "top-level pack directory")
}
