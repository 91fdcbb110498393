package builder

import (
	"path/filepath"

	"project-forge/internal/logger"
)

// cleanDirs are the directories removed by Clean: the canonical output
// directory plus the conventional per-ecosystem build/cache directories.
var cleanDirs = []string{OutputDir, "dist", "out", "obj", "target", "__pycache__", ".cache"}

// Clean removes build outputs beneath root and returns the names of the
// directories it removed. When a Makefile is present its own clean target is
// attempted first, best-effort. An already-clean project is not an error;
// Clean is safe to run repeatedly.
func (o *Orchestrator) Clean(root string) []string {
	if makefile, ok := o.scanner.FindNamedFold(root, "Makefile"); ok {
		logger.Debug("[DEBUG] Attempting make clean in %s\n", filepath.Dir(makefile))
		if err := o.run(filepath.Dir(makefile), "make", "clean"); err != nil {
			// Best-effort: many Makefiles have no clean target.
			logger.Debug("[DEBUG] make clean failed: %v\n", err)
		}
	}

	var removed []string
	for _, name := range cleanDirs {
		dir := filepath.Join(root, name)
		if !o.scanner.DirExists(dir) {
			continue
		}
		if err := o.fs.RemoveAll(dir); err != nil {
			logger.Warn("[WARN] Could not remove %s: %v\n", dir, err)
			continue
		}
		logger.Info("[INFO] Removed %s\n", dir)
		removed = append(removed, name)
	}
	return removed
}
