package builder

import (
	"path/filepath"

	"project-forge/internal/logger"
)

// buildGo builds a Go module from the project root, directing the binary at
// the canonical output path.
func (o *Orchestrator) buildGo(root string) Result {
	if _, err := o.outputDir(root); err != nil {
		return failf("cannot create output directory: %v", err)
	}
	relOut := filepath.Join(OutputDir, projectName(root))
	out := filepath.Join(root, relOut)

	logger.Info("[INFO] Running go build\n")
	if err := o.run(root, "go", "build", "-o", relOut); err != nil {
		return failf("go build failed: %v", err)
	}
	if info, err := o.fs.Stat(out); err != nil || !info.Mode().IsRegular() {
		return failf("go build reported success but %s is missing", out)
	}
	if err := o.fs.Chmod(out, 0755); err != nil {
		return failf("cannot mark %s executable: %v", out, err)
	}

	logger.Info("[INFO] Build artifact ready at %s\n", out)
	return Result{Success: true, Artifact: out, Kind: KindBinary}
}

// buildRust builds a Cargo package in release mode and copies the produced
// binary into the canonical output directory. The binary is first looked up
// by the project's name; when the package name differs from its directory
// name, the release directory is scanned for any executable-flagged file
// instead.
func (o *Orchestrator) buildRust(root string) Result {
	logger.Info("[INFO] Running cargo build --release\n")
	if err := o.run(root, "cargo", "build", "--release"); err != nil {
		return failf("cargo build failed: %v", err)
	}

	releaseDir := filepath.Join(root, "target", "release")
	artifact := filepath.Join(releaseDir, projectName(root))
	if !o.isExecutableFile(artifact) {
		found, ok := o.scanner.FirstExecutable(releaseDir)
		if !ok {
			return failf("cargo reported success but no executable was found under %s", releaseDir)
		}
		logger.Debug("[DEBUG] Package name differs from directory name, using %s\n", found)
		artifact = found
	}
	return o.installArtifact(root, artifact)
}
