package scaffold

import (
	"archive/tar"    // For reading .tar archives
	"archive/zip"    // For reading .zip archives
	"compress/bzip2" // For reading .bz2 compressed data
	"compress/gzip"  // For reading .gz compressed data
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip" // For reading .7z archives
	"github.com/xi2/xz"          // For reading .xz compressed data

	"project-forge/internal/logger"
)

// ImportPack extracts a user-authored template pack archive into packsDir and
// returns the pack name (the archive's top-level directory, or the archive
// base name when its files sit at the archive root). Re-importing a pack of
// the same name overwrites it.
func ImportPack(archive, packsDir string) (string, error) {
	if err := os.MkdirAll(packsDir, 0755); err != nil {
		return "", fmt.Errorf("cannot create packs directory: %w", err)
	}

	topLevel, err := extractArchive(archive, packsDir)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(topLevel); err != nil || !info.IsDir() {
		return "", fmt.Errorf("archive %s must contain a single top-level pack directory", archive)
	}

	name := filepath.Base(topLevel)
	logger.Debug("[DEBUG] Imported template pack %s into %s\n", name, packsDir)
	return name, nil
}

// packNameFromArchive derives a pack name from an archive file name by
// stripping the known archive extensions.
func packNameFromArchive(path string) string {
	filename := filepath.Base(path)
	for _, ext := range []string{".tar.gz", ".tgz", ".tar.bz2", ".tar.xz", ".tar", ".zip", ".7z"} {
		if strings.HasSuffix(filename, ext) {
			return strings.TrimSuffix(filename, ext)
		}
	}
	return filename
}

// extractArchive routes to the appropriate extraction function based on the
// archive type and returns the extracted top-level path.
func extractArchive(src, dest string) (string, error) {
	switch {
	case strings.HasSuffix(src, ".zip"):
		logger.Debug("[DEBUG] compression type is zip\n")
		return extractZip(src, dest)
	case strings.HasSuffix(src, ".7z"):
		logger.Debug("[DEBUG] compression type is .7z\n")
		return extract7z(src, dest)
	case strings.HasSuffix(src, ".tar"), strings.HasSuffix(src, ".tar.gz"), strings.HasSuffix(src, ".tgz"),
		strings.HasSuffix(src, ".tar.bz2"), strings.HasSuffix(src, ".tar.xz"):
		logger.Debug("[DEBUG] compression type is .tar.*\n")
		return extractTarArchive(src, dest)
	default:
		return "", fmt.Errorf("unsupported archive format: %s", src)
	}
}

// extractTarArchive handles tar and compressed tar variants.
func extractTarArchive(src, dest string) (string, error) {
	logger.Debug("[DEBUG] uncompressing %s to %s\n", src, dest)
	f, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var reader io.Reader = f
	switch {
	case strings.HasSuffix(src, ".tar.gz"), strings.HasSuffix(src, ".tgz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			return "", err
		}
		defer gr.Close()
		reader = gr
	case strings.HasSuffix(src, ".tar.bz2"):
		reader = bzip2.NewReader(f)
	case strings.HasSuffix(src, ".tar.xz"):
		xzr, err := xz.NewReader(f, 0)
		if err != nil {
			return "", err
		}
		reader = xzr
	}

	tr := tar.NewReader(reader)
	var topLevel string

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break // End of archive
		}
		if err != nil {
			return "", err
		}

		if topLevel == "" {
			topLevel = firstPathComponent(hdr.Name)
		}

		target := filepath.Join(dest, hdr.Name)
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return "", err
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr, os.FileMode(hdr.Mode).Perm()); err != nil {
				return "", err
			}
		}
	}
	return packTarget(src, dest, topLevel), nil
}

// extractZip extracts a .zip archive.
func extractZip(src, dest string) (string, error) {
	r, err := zip.OpenReader(src)
	if err != nil {
		return "", err
	}
	defer r.Close()

	var topLevel string
	for _, f := range r.File {
		if topLevel == "" {
			topLevel = firstPathComponent(f.Name)
		}
		path := filepath.Join(dest, f.Name)
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(path, 0755); err != nil {
				return "", err
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		err = writeEntry(path, rc, f.Mode().Perm())
		rc.Close()
		if err != nil {
			return "", err
		}
	}
	return packTarget(src, dest, topLevel), nil
}

// extract7z handles .7z extraction using the sevenzip library.
func extract7z(src, dest string) (string, error) {
	r, err := sevenzip.OpenReader(src)
	if err != nil {
		return "", fmt.Errorf("failed to open 7z archive: %w", err)
	}
	defer r.Close()

	var topLevel string
	for _, f := range r.File {
		if topLevel == "" {
			topLevel = firstPathComponent(f.Name)
		}
		path := filepath.Join(dest, f.Name)
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(path, f.Mode().Perm()); err != nil {
				return "", err
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		err = writeEntry(path, rc, f.Mode().Perm())
		rc.Close()
		if err != nil {
			return "", err
		}
	}
	return packTarget(src, dest, topLevel), nil
}

// writeEntry writes one archive entry to disk, creating parent directories.
func writeEntry(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	if mode == 0 {
		mode = 0644
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// firstPathComponent returns the leading component of an archive entry name.
func firstPathComponent(name string) string {
	name = filepath.ToSlash(name)
	if idx := strings.Index(name, "/"); idx > 0 {
		return name[:idx]
	}
	return name
}

// packTarget resolves the pack directory an extraction produced. Archives
// whose entries sit under a single top-level directory use that directory;
// flat archives fall back to a directory named after the archive itself.
func packTarget(src, dest, topLevel string) string {
	if topLevel != "" {
		candidate := filepath.Join(dest, topLevel)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
	}
	return filepath.Join(dest, packNameFromArchive(src))
}
