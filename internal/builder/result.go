package builder

import "fmt"

// Kind tags how a successful build result is to be executed. The run step
// dispatches purely on this tag, never on the contents of the stored command.
type Kind string

const (
	// KindBinary is a native executable (C, C++, Go, Rust) spawned directly.
	KindBinary Kind = "binary"
	// KindInterpreter is an entry file executed through a named interpreter.
	KindInterpreter Kind = "interpreter"
	// KindDevServer is a shell command starting a development server.
	KindDevServer Kind = "dev-server"
	// KindBrowser is a file opened with the host's "open" command.
	KindBrowser Kind = "browser"
	// KindContainer is a compound build-then-run command sequence separated
	// by "&&", executed step by step.
	KindContainer Kind = "container"
)

// Result is the normalized outcome of one build. A successful Result always
// carries a non-empty Artifact the runner can act on without re-deriving the
// project type; a failed one carries a human-readable Err and no artifact.
// Results are created by Build, passed by value, and never mutated.
type Result struct {
	Success     bool
	Artifact    string // artifact path or entry command, depending on Kind
	Kind        Kind
	Interpreter string // interpreter program, set only for KindInterpreter
	Dir         string // working directory for the run step; set when Artifact is a command
	Err         string // human-readable failure reason, set only on failure
}

// failf builds a failed Result. All build failures funnel through here so no
// error ever escapes the orchestrator boundary.
func failf(format string, a ...any) Result {
	return Result{Err: fmt.Sprintf(format, a...)}
}
