package toolchain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-forge/internal/detect"
	"project-forge/internal/state"
)

func newTestState() *state.State {
	return &state.State{
		Toolchains: make(map[string]state.ToolchainState),
		Packs:      make(map[string]state.PackState),
	}
}

// testGuard builds a Guard whose host interactions are scripted:
// installed lists binaries "present" on PATH.
func testGuard(installed []string, confirmAnswer bool) (*Guard, *[]string) {
	var installs []string
	onPath := make(map[string]bool, len(installed))
	for _, name := range installed {
		onPath[name] = true
	}

	g := &Guard{
		st: newTestState(),
		lookPath: func(name string) (string, error) {
			if onPath[name] {
				return "/usr/bin/" + name, nil
			}
			return "", errors.New("not found")
		},
		install: func(manager, pkg string) error {
			installs = append(installs, manager+" "+pkg)
			return nil
		},
		confirm: func(string) bool { return confirmAnswer },
	}
	return g, &installs
}

func TestRequirementForInterpretedTypesIsBypassed(t *testing.T) {
	for _, typ := range []detect.Type{
		detect.TypeNode, detect.TypePython, detect.TypeStaticWeb,
		detect.TypeWebFramework, detect.TypeDocker,
	} {
		_, ok := RequirementFor(typ)
		assert.False(t, ok, "type %s must bypass the toolchain guard", typ)
	}
}

func TestRequirementForCompiledTypes(t *testing.T) {
	req, ok := RequirementFor(detect.TypeGo)
	require.True(t, ok)
	assert.Equal(t, "go", req.Probe)
	assert.Equal(t, "golang", req.Package)
}

func TestEnsurePassesWhenToolchainPresent(t *testing.T) {
	g, installs := testGuard([]string{"gcc"}, false)
	require.NoError(t, g.Ensure(detect.TypeC))
	assert.Empty(t, *installs)
}

func TestEnsureSkipsInterpretedTypes(t *testing.T) {
	g, installs := testGuard(nil, false)
	require.NoError(t, g.Ensure(detect.TypePython))
	assert.Empty(t, *installs)
}

func TestEnsureInstallsAfterConfirmation(t *testing.T) {
	g, installs := testGuard([]string{"apt-get"}, true)

	require.NoError(t, g.Ensure(detect.TypeCPP))
	require.Len(t, *installs, 1)
	assert.Equal(t, "apt-get g++", (*installs)[0])

	// The install is recorded in state.
	recorded, ok := g.st.Toolchains["g++"]
	require.True(t, ok)
	assert.True(t, recorded.InstalledByForge)
	assert.Equal(t, "apt-get", recorded.Manager)
}

func TestEnsureRefusalAbortsBeforeInstall(t *testing.T) {
	g, installs := testGuard([]string{"apt-get"}, false)

	err := g.Ensure(detect.TypeRust)
	assert.ErrorIs(t, err, ErrToolchainMissing)
	assert.Contains(t, err.Error(), "cargo")
	assert.Empty(t, *installs)
}

func TestEnsureAssumeYesSkipsPrompt(t *testing.T) {
	g, installs := testGuard([]string{"brew"}, false)
	g.assumeYes = true

	require.NoError(t, g.Ensure(detect.TypeGo))
	require.Len(t, *installs, 1)
	assert.Equal(t, "brew golang", (*installs)[0])
}

func TestEnsureWithoutPackageManagerFails(t *testing.T) {
	g, installs := testGuard(nil, true)

	err := g.Ensure(detect.TypeC)
	assert.ErrorIs(t, err, ErrToolchainMissing)
	assert.Empty(t, *installs)
}

func TestEnsureInstallFailure(t *testing.T) {
	g, _ := testGuard([]string{"dnf"}, true)
	g.install = func(manager, pkg string) error { return errors.New("mirror down") }

	err := g.Ensure(detect.TypeC)
	assert.ErrorIs(t, err, ErrToolchainMissing)
	assert.Empty(t, g.st.Toolchains)
}

func TestEnsureHonorsForcedManager(t *testing.T) {
	g, installs := testGuard([]string{"apt-get", "brew"}, true)
	g.manager = "brew"

	require.NoError(t, g.Ensure(detect.TypeC))
	require.Len(t, *installs, 1)
	assert.Equal(t, "brew gcc", (*installs)[0])
}

func TestInstallArgs(t *testing.T) {
	name, args := installArgs("apt-get", "gcc")
	assert.Equal(t, "sudo", name)
	assert.Equal(t, []string{"apt-get", "install", "-y", "gcc"}, args)

	name, args = installArgs("pacman", "gcc")
	assert.Equal(t, "sudo", name)
	assert.Contains(t, args, "--noconfirm")

	name, args = installArgs("brew", "go")
	assert.Equal(t, "brew", name)
	assert.Equal(t, []string{"install", "go"}, args)
}
