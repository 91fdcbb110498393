package builder

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"project-forge/internal/config"
	"project-forge/internal/detect"
	"project-forge/internal/logger"
	"project-forge/internal/scan"
)

// OutputDir is the canonical build-output directory created under the project
// root. Normalized artifacts always land here, whatever the toolchain's own
// output conventions are.
const OutputDir = "build"

// artifactLocations are the conventional places an existing build system may
// have dropped an executable, searched in order relative to the project root.
var artifactLocations = []string{".", OutputDir, "bin", "out", "output", filepath.Join("target", "release")}

// Orchestrator executes the type-specific build procedure for a classified
// project and normalizes the outcome into a Result. The filesystem and the
// command runner are injectable: tests substitute an in-memory tree and a
// fake toolchain, the real constructor wires the OS and streamed exec.
type Orchestrator struct {
	fs      afero.Fs
	scanner *scan.Scanner
	cfg     *config.Config

	// run executes name with args in dir, streaming output to the user, and
	// returns an error on non-zero exit.
	run func(dir, name string, args ...string) error
}

// New creates an Orchestrator against the real filesystem and host toolchains.
func New(cfg *config.Config) *Orchestrator {
	fs := afero.NewOsFs()
	return NewWithDeps(fs, cfg, runStreaming)
}

// NewWithDeps creates an Orchestrator with explicit filesystem and command
// runner, for tests and embedding.
func NewWithDeps(fs afero.Fs, cfg *config.Config, run func(dir, name string, args ...string) error) *Orchestrator {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Orchestrator{
		fs:      fs,
		scanner: scan.New(fs, cfg.Detect.ExtraExclusions...),
		cfg:     cfg,
		run:     run,
	}
}

// runStreaming is the production command runner: it inherits the caller's
// standard streams so compiler and installer output is visible as it happens.
func runStreaming(dir, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	logger.Debug("[DEBUG] Running command: %s %s (in %s)\n", name, strings.Join(args, " "), dir)
	return cmd.Run()
}

// Build runs the build procedure for the given project type rooted at root.
// It never returns an error: every failure is captured into the Result so the
// caller decides how to report it.
func (o *Orchestrator) Build(t detect.Type, root string) Result {
	switch t {
	case detect.TypeC, detect.TypeCPP:
		return o.buildNative(t, root)
	case detect.TypeGo:
		return o.buildGo(root)
	case detect.TypeRust:
		return o.buildRust(root)
	case detect.TypeNode:
		return o.buildNode(root)
	case detect.TypePython:
		return o.buildPython(root)
	case detect.TypeStaticWeb:
		return o.buildStaticWeb(root)
	case detect.TypeWebFramework:
		return o.buildWebFramework(root)
	case detect.TypeDocker:
		return o.buildDocker(root)
	default:
		return failf("unsupported project type %q", t)
	}
}

// projectName derives the artifact/image name from the project directory.
func projectName(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	name := filepath.Base(abs)
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = "app"
	}
	return name
}

// outputDir returns the canonical output directory for root, creating it.
func (o *Orchestrator) outputDir(root string) (string, error) {
	dir := filepath.Join(root, OutputDir)
	return dir, o.fs.MkdirAll(dir, 0755)
}

// isExecutableFile reports whether path is a regular file with an executable
// permission bit.
func (o *Orchestrator) isExecutableFile(path string) bool {
	info, err := o.fs.Stat(path)
	return err == nil && info.Mode().IsRegular() && info.Mode().Perm()&0111 != 0
}

// findArtifact searches the conventional output locations under root for the
// first executable-flagged regular file.
func (o *Orchestrator) findArtifact(root string) (string, bool) {
	for _, loc := range artifactLocations {
		if path, ok := o.scanner.FirstExecutable(filepath.Join(root, loc)); ok {
			logger.Debug("[DEBUG] Found artifact candidate %s\n", path)
			return path, true
		}
	}
	return "", false
}

// installArtifact copies an executable into the canonical output directory,
// preserving the executable bit, and returns the successful Result.
func (o *Orchestrator) installArtifact(root, artifact string) Result {
	outDir, err := o.outputDir(root)
	if err != nil {
		return failf("cannot create output directory: %v", err)
	}

	dest := filepath.Join(outDir, filepath.Base(artifact))
	if artifact != dest {
		if err := o.copyFile(artifact, dest); err != nil {
			return failf("cannot copy artifact into %s: %v", outDir, err)
		}
	}
	if err := o.fs.Chmod(dest, 0755); err != nil {
		return failf("cannot mark %s executable: %v", dest, err)
	}

	logger.Info("[INFO] Build artifact ready at %s\n", dest)
	return Result{Success: true, Artifact: dest, Kind: KindBinary}
}

// copyFile copies src to dst on the orchestrator's filesystem.
func (o *Orchestrator) copyFile(src, dst string) error {
	in, err := o.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := o.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0755)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

// pickByNameSubstring returns the first file whose base name contains one of
// the given substrings, checked in priority order; else the first file.
// Shared by the Python, static-web, and Node entry-point heuristics.
func pickByNameSubstring(files []string, substrings ...string) string {
	for _, sub := range substrings {
		for _, f := range files {
			if strings.Contains(strings.ToLower(filepath.Base(f)), sub) {
				return f
			}
		}
	}
	return files[0]
}
