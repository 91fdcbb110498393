package runner

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"project-forge/internal/builder"
	"project-forge/internal/logger"
)

// Runner executes or opens a build result according to its runtime kind,
// streaming child-process output to the caller's standard streams. The host
// OS and the spawn function are injectable for tests.
type Runner struct {
	goos string
	// execute spawns a child process with inherited streams and returns its
	// exit code. A spawn failure (missing file, permissions) returns an error
	// instead of a code.
	execute func(dir, name string, args ...string) (int, error)
}

// New creates a Runner against the real host.
func New() *Runner {
	return &Runner{goos: runtime.GOOS, execute: spawn}
}

// NewWithDeps creates a Runner with an explicit OS tag and spawn function.
func NewWithDeps(goos string, execute func(dir, name string, args ...string) (int, error)) *Runner {
	return &Runner{goos: goos, execute: execute}
}

// spawn runs a child process with inherited standard streams. Non-zero exit
// is normal termination and yields the code; only spawn-level problems
// surface as errors.
func spawn(dir, name string, args ...string) (int, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	logger.Debug("[DEBUG] Running command: %s %s\n", name, strings.Join(args, " "))

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}

// Run executes res and returns the child's exit status. Run failures are
// reported with a manual fallback command and never invalidate the build
// result: the artifact stays on disk.
func (r *Runner) Run(res builder.Result) int {
	switch res.Kind {
	case builder.KindBinary:
		return r.runBinary(res.Artifact)
	case builder.KindInterpreter:
		return r.runInterpreter(res.Interpreter, res.Artifact)
	case builder.KindDevServer:
		return r.runShell(res.Dir, res.Artifact)
	case builder.KindBrowser:
		return r.openBrowser(res.Artifact)
	case builder.KindContainer:
		return r.runContainer(res.Dir, res.Artifact)
	default:
		logger.Error("[ERROR] Unknown runtime kind %q\n", res.Kind)
		return 1
	}
}

// runBinary spawns a native executable directly, with no shell interpretation.
func (r *Runner) runBinary(artifact string) int {
	if info, err := os.Stat(artifact); err != nil || info.Mode().Perm()&0111 == 0 {
		logger.Error("[ERROR] Artifact %s is missing or not executable\n", artifact)
		return 1
	}

	code, err := r.execute("", artifact)
	if err != nil {
		logger.Error("[ERROR] Could not start %s: %v\n", artifact, err)
		logger.Warn("[WARN] Run it manually: %s\n", artifact)
		return 1
	}
	r.reportExit(code)
	return code
}

// runInterpreter executes an entry file through its interpreter.
func (r *Runner) runInterpreter(interpreter, entry string) int {
	code, err := r.execute("", interpreter, entry)
	if err != nil {
		logger.Error("[ERROR] Could not start %s: %v\n", interpreter, err)
		logger.Warn("[WARN] Run it manually: %s %s\n", interpreter, entry)
		return 1
	}
	r.reportExit(code)
	return code
}

// runShell executes a dev-server command through the host shell from the
// project directory, inheriting standard streams.
func (r *Runner) runShell(dir, command string) int {
	shell, flag := "sh", "-c"
	if r.goos == "windows" {
		shell, flag = "cmd", "/C"
	}
	code, err := r.execute(dir, shell, flag, command)
	if err != nil {
		logger.Error("[ERROR] Could not start shell: %v\n", err)
		logger.Warn("[WARN] Run it manually: %s\n", command)
		return 1
	}
	r.reportExit(code)
	return code
}

// openBrowser invokes the host-specific "open" command on the artifact. On
// failure the path is printed for manual opening rather than treated as a
// crash.
func (r *Runner) openBrowser(path string) int {
	name, args := openCommand(r.goos, path)
	code, err := r.execute("", name, args...)
	if err != nil || code != 0 {
		logger.Warn("[WARN] Could not open a browser; open it manually: %s\n", path)
		return 1
	}
	logger.Info("[INFO] Opened %s\n", path)
	return 0
}

// openCommand resolves the per-OS "open file" invocation.
func openCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "cmd", []string{"/C", "start", "", path}
	default:
		return "xdg-open", []string{path}
	}
}

// runContainer executes a compound build-then-run sequence step by step from
// the project directory, waiting for each to finish. A non-zero step is
// reported but later steps still run; the reported status is the first
// failure.
func (r *Runner) runContainer(dir, command string) int {
	status := 0
	for _, step := range splitSteps(command) {
		fields := strings.Fields(step)
		if len(fields) == 0 {
			continue
		}
		logger.Info("[INFO] Running: %s\n", step)
		code, err := r.execute(dir, fields[0], fields[1:]...)
		if err != nil {
			logger.Error("[ERROR] Could not start %q: %v\n", step, err)
			if status == 0 {
				status = 1
			}
			continue
		}
		if code != 0 {
			logger.Error("[ERROR] Step %q exited with status %d\n", step, code)
			if status == 0 {
				status = code
			}
		}
	}
	r.reportExit(status)
	return status
}

// splitSteps breaks a compound command on its "&&" sequencing operator.
func splitSteps(command string) []string {
	parts := strings.Split(command, "&&")
	steps := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			steps = append(steps, trimmed)
		}
	}
	return steps
}

func (r *Runner) reportExit(code int) {
	if code == 0 {
		logger.Info("[INFO] Process exited with status 0\n")
	} else {
		logger.Warn("[WARN] Process exited with status %d\n", code)
	}
}
