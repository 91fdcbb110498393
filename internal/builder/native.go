package builder

import (
	"path/filepath"
	"sort"

	"project-forge/internal/detect"
	"project-forge/internal/logger"
)

// includeDirNames are the conventional header directories added to the
// include search path when present, on top of every source file's own
// directory.
var includeDirNames = []string{"include", "inc", "headers"}

// buildNative builds a C or C++ project. An existing build descriptor is
// preferred: make runs in the Makefile's own directory and the artifact is
// then searched for in the conventional output locations. Both a failing
// build system and one that "succeeds" without producing an executable fall
// back to direct compiler invocation; the two fallback paths are logged
// distinctly so operators can tell them apart. Only a failure of the fallback
// itself is terminal.
func (o *Orchestrator) buildNative(t detect.Type, root string) Result {
	if makefile, ok := o.scanner.FindNamedFold(root, "Makefile"); ok {
		dir := filepath.Dir(makefile)
		logger.Info("[INFO] Using existing build system: make (in %s)\n", dir)

		if err := o.run(dir, "make"); err != nil {
			logger.Warn("[WARN] make failed (%v); falling back to direct compilation\n", err)
		} else if artifact, found := o.findArtifact(root); found {
			return o.installArtifact(root, artifact)
		} else {
			logger.Warn("[WARN] Build system reported success but produced no executable; falling back to direct compilation\n")
		}
	}
	return o.compileDirect(t, root)
}

// compileDirect invokes gcc or g++ directly against every source file of the
// matching family, with warnings enabled and the union of include directories
// on the search path.
func (o *Orchestrator) compileDirect(t detect.Type, root string) Result {
	compiler := "gcc"
	if t == detect.TypeCPP {
		compiler = "g++"
	}

	sources := o.scanner.FindByExtensions(root, detect.Descriptors[t].Extensions...)
	if len(sources) == 0 {
		return failf("no %s source files found under %s", detect.Descriptors[t].Name, root)
	}

	if _, err := o.outputDir(root); err != nil {
		return failf("cannot create output directory: %v", err)
	}
	// The compiler runs with the project root as working directory, so the
	// output path handed to it is root-relative.
	relOut := filepath.Join(OutputDir, projectName(root))
	out := filepath.Join(root, relOut)

	args := []string{"-Wall"}
	for _, src := range sources {
		rel, err := filepath.Rel(root, src)
		if err != nil {
			rel = src
		}
		args = append(args, rel)
	}
	for _, inc := range o.includeDirs(root, sources) {
		rel, err := filepath.Rel(root, inc)
		if err != nil {
			rel = inc
		}
		args = append(args, "-I", rel)
	}
	args = append(args, "-o", relOut)

	logger.Info("[INFO] Compiling %d source file(s) with %s\n", len(sources), compiler)
	if err := o.run(root, compiler, args...); err != nil {
		return failf("%s failed: %v", compiler, err)
	}
	if !o.isExecutableFile(out) {
		if err := o.fs.Chmod(out, 0755); err != nil {
			return failf("compiler reported success but %s is missing", out)
		}
	}

	logger.Info("[INFO] Build artifact ready at %s\n", out)
	return Result{Success: true, Artifact: out, Kind: KindBinary}
}

// includeDirs computes the include search path: the set of directories the
// sources live in, plus the conventional header directories that exist.
func (o *Orchestrator) includeDirs(root string, sources []string) []string {
	set := make(map[string]bool)
	for _, src := range sources {
		set[filepath.Dir(src)] = true
	}
	for _, name := range includeDirNames {
		dir := filepath.Join(root, name)
		if o.scanner.DirExists(dir) {
			set[dir] = true
		}
	}

	dirs := make([]string, 0, len(set))
	for dir := range set {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs) // deterministic compiler invocations
	return dirs
}
