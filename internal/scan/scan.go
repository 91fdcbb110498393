package scan

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"project-forge/internal/logger"
)

// DefaultExclusions lists directory names that are never descended into.
// They are dependency caches, prior build outputs, or compiled-object
// directories; matching files inside them are stale or third-party and
// would poison detection and artifact search.
var DefaultExclusions = []string{
	"node_modules",
	"build",
	"dist",
	"out",
	"target",
	"obj",
	"bin",
	"__pycache__",
	"vendor",
}

// Scanner walks a directory tree on an afero filesystem, applying a fixed
// exclusion set plus any extra names supplied at construction. All detection
// and artifact-search code goes through a Scanner so tests can run against
// in-memory trees.
type Scanner struct {
	fs      afero.Fs
	exclude map[string]bool
}

// New creates a Scanner over the given filesystem. extra names are added to
// the default exclusion set.
func New(fs afero.Fs, extra ...string) *Scanner {
	exclude := make(map[string]bool, len(DefaultExclusions)+len(extra))
	for _, name := range DefaultExclusions {
		exclude[name] = true
	}
	for _, name := range extra {
		exclude[name] = true
	}
	return &Scanner{fs: fs, exclude: exclude}
}

// Fs returns the filesystem the scanner operates on.
func (s *Scanner) Fs() afero.Fs {
	return s.fs
}

// skipDir reports whether a directory name is excluded from traversal.
// Hidden directories (leading dot) are always skipped.
func (s *Scanner) skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || s.exclude[name]
}

// FindByExtensions recursively collects every regular file under root whose
// extension (case-insensitive, with leading dot, e.g. ".cpp") is in exts.
// Unreadable subdirectories are skipped, never fatal.
func (s *Scanner) FindByExtensions(root string, exts ...string) []string {
	want := make(map[string]bool, len(exts))
	for _, e := range exts {
		want[strings.ToLower(e)] = true
	}

	var found []string
	s.collectByExt(root, want, &found)
	return found
}

func (s *Scanner) collectByExt(dir string, want map[string]bool, found *[]string) {
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		// Permission or transient I/O problems on a subdirectory are treated
		// as an empty directory rather than failing the whole scan.
		logger.Debug("[DEBUG] Skipping unreadable directory %s: %v\n", dir, err)
		return
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if s.skipDir(entry.Name()) {
				continue
			}
			s.collectByExt(path, want, found)
			continue
		}
		if want[strings.ToLower(filepath.Ext(entry.Name()))] {
			*found = append(*found, path)
		}
	}
}

// FindNamed returns the first file under root whose base name equals name.
// The current directory's own files are always checked before recursing into
// its subdirectories, so a project-root config file wins over a same-named
// file buried deeper in the tree. Recursion into siblings is depth-first in
// directory order. Returns ok=false when no match exists.
func (s *Scanner) FindNamed(root, name string) (string, bool) {
	return s.findNamed(root, func(base string) bool { return base == name })
}

// FindNamedFold is FindNamed with case-insensitive name comparison, used for
// build descriptors like Makefile/makefile.
func (s *Scanner) FindNamedFold(root, name string) (string, bool) {
	return s.findNamed(root, func(base string) bool { return strings.EqualFold(base, name) })
}

func (s *Scanner) findNamed(dir string, match func(string) bool) (string, bool) {
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		logger.Debug("[DEBUG] Skipping unreadable directory %s: %v\n", dir, err)
		return "", false
	}

	// Files in the current directory first.
	var subdirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			if !s.skipDir(entry.Name()) {
				subdirs = append(subdirs, entry.Name())
			}
			continue
		}
		if match(entry.Name()) {
			return filepath.Join(dir, entry.Name()), true
		}
	}

	// Then each subdirectory in turn.
	for _, sub := range subdirs {
		if path, ok := s.findNamed(filepath.Join(dir, sub), match); ok {
			return path, true
		}
	}
	return "", false
}

// DirExists reports whether a directory exists at path.
func (s *Scanner) DirExists(path string) bool {
	info, err := s.fs.Stat(path)
	return err == nil && info.IsDir()
}

// FirstExecutable returns the first regular file in dir (non-recursive) with
// an executable permission bit set. Used to locate build artifacts in
// conventional output locations.
func (s *Scanner) FirstExecutable(dir string) (string, bool) {
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return "", false
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if entry.Mode().IsRegular() && entry.Mode().Perm()&0111 != 0 {
			return filepath.Join(dir, entry.Name()), true
		}
	}
	return "", false
}
