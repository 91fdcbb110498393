package runner

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-forge/internal/builder"
)

// fakeExec records spawned commands and their working directories, replaying
// scripted exit codes/errors.
type fakeExec struct {
	commands [][]string
	dirs     []string
	codes    []int
	errs     []error
}

func (f *fakeExec) execute(dir, name string, args ...string) (int, error) {
	f.commands = append(f.commands, append([]string{name}, args...))
	f.dirs = append(f.dirs, dir)
	idx := len(f.commands) - 1
	code, err := 0, error(nil)
	if idx < len(f.codes) {
		code = f.codes[idx]
	}
	if idx < len(f.errs) {
		err = f.errs[idx]
	}
	return code, err
}

func TestSplitSteps(t *testing.T) {
	steps := splitSteps("docker build -t app . && docker run --rm app")
	require.Len(t, steps, 2)
	assert.Equal(t, "docker build -t app .", steps[0])
	assert.Equal(t, "docker run --rm app", steps[1])

	assert.Equal(t, []string{"make"}, splitSteps("make"))
	assert.Empty(t, splitSteps("  &&  "))
}

func TestOpenCommandPerOS(t *testing.T) {
	name, args := openCommand("linux", "index.html")
	assert.Equal(t, "xdg-open", name)
	assert.Equal(t, []string{"index.html"}, args)

	name, _ = openCommand("darwin", "index.html")
	assert.Equal(t, "open", name)

	name, args = openCommand("windows", "index.html")
	assert.Equal(t, "cmd", name)
	assert.Contains(t, args, "start")
}

func TestRunInterpreterSpawnsInterpreterWithEntry(t *testing.T) {
	fake := &fakeExec{}
	r := NewWithDeps("linux", fake.execute)

	code := r.Run(builder.Result{
		Success:     true,
		Kind:        builder.KindInterpreter,
		Interpreter: "python3",
		Artifact:    "/proj/main.py",
	})

	assert.Equal(t, 0, code)
	require.Len(t, fake.commands, 1)
	assert.Equal(t, []string{"python3", "/proj/main.py"}, fake.commands[0])
}

func TestRunDevServerGoesThroughShell(t *testing.T) {
	fake := &fakeExec{}
	r := NewWithDeps("linux", fake.execute)

	r.Run(builder.Result{Success: true, Kind: builder.KindDevServer, Artifact: "npm run dev", Dir: "/proj"})

	require.Len(t, fake.commands, 1)
	assert.Equal(t, []string{"sh", "-c", "npm run dev"}, fake.commands[0])
	assert.Equal(t, "/proj", fake.dirs[0], "dev server must start in the project directory, not the tool's cwd")
}

func TestRunContainerContinuesAfterFailedStep(t *testing.T) {
	fake := &fakeExec{codes: []int{2, 0}}
	r := NewWithDeps("linux", fake.execute)

	code := r.Run(builder.Result{
		Success:  true,
		Kind:     builder.KindContainer,
		Artifact: "docker build -t app . && docker run --rm app",
		Dir:      "/proj",
	})

	// Both steps ran; the reported status is the first failure.
	require.Len(t, fake.commands, 2)
	assert.Equal(t, "docker", fake.commands[1][0])
	assert.Equal(t, 2, code)

	// The build context is the project root, so every step runs there.
	assert.Equal(t, []string{"/proj", "/proj"}, fake.dirs, "docker build context must be the project root")
}

func TestRunBinaryMissingArtifact(t *testing.T) {
	fake := &fakeExec{}
	r := NewWithDeps("linux", fake.execute)

	code := r.Run(builder.Result{Success: true, Kind: builder.KindBinary, Artifact: "/no/such/file"})

	assert.Equal(t, 1, code)
	assert.Empty(t, fake.commands, "nothing must be spawned for a missing artifact")
}

func TestRunBinarySpawnsDirectly(t *testing.T) {
	dir := t.TempDir()
	artifact := filepath.Join(dir, "app")
	require.NoError(t, os.WriteFile(artifact, []byte("#!/bin/sh\n"), 0755))

	fake := &fakeExec{codes: []int{3}}
	r := NewWithDeps("linux", fake.execute)

	code := r.Run(builder.Result{Success: true, Kind: builder.KindBinary, Artifact: artifact})

	assert.Equal(t, 3, code)
	require.Len(t, fake.commands, 1)
	assert.Equal(t, []string{artifact}, fake.commands[0])
}

func TestRunInterpreterSpawnFailureReportsManualCommand(t *testing.T) {
	fake := &fakeExec{errs: []error{errors.New("no such interpreter")}}
	r := NewWithDeps("linux", fake.execute)

	code := r.Run(builder.Result{
		Success:     true,
		Kind:        builder.KindInterpreter,
		Interpreter: "node",
		Artifact:    "index.js",
	})
	assert.Equal(t, 1, code)
}

func TestRunUnknownKind(t *testing.T) {
	r := NewWithDeps("linux", (&fakeExec{}).execute)
	assert.Equal(t, 1, r.Run(builder.Result{Success: true, Kind: builder.Kind("vm")}))
}
