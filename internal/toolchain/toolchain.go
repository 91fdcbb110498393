package toolchain

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"project-forge/internal/detect"
	"project-forge/internal/logger"
	"project-forge/internal/state"
)

// ErrToolchainMissing is returned when a required compiler/runtime is absent
// and the user declined installation, or installation itself failed. It is
// raised before any compiler invocation is attempted.
var ErrToolchainMissing = errors.New("required toolchain is missing")

// Requirement describes the host package that provides a project type's
// toolchain and the binary probed on PATH to decide whether it is installed.
type Requirement struct {
	Package string // host package name, e.g. "gcc", "golang"
	Probe   string // binary looked up on PATH, e.g. "gcc", "go"
}

// requirements maps compiled project types to their toolchain requirement.
// Interpreted/web/container types ship their own runtime and are deliberately
// absent: the guard bypasses them entirely.
var requirements = map[detect.Type]Requirement{
	detect.TypeC:    {Package: "gcc", Probe: "gcc"},
	detect.TypeCPP:  {Package: "g++", Probe: "g++"},
	detect.TypeGo:   {Package: "golang", Probe: "go"},
	detect.TypeRust: {Package: "cargo", Probe: "cargo"},
}

// RequirementFor returns the toolchain requirement for a project type.
// ok is false for types that bypass the guard.
func RequirementFor(t detect.Type) (Requirement, bool) {
	req, ok := requirements[t]
	return req, ok
}

// packageManagers lists the supported host package manager families, probed
// in order on PATH. The first one found is used.
var packageManagers = []string{"apt-get", "dnf", "yum", "pacman", "zypper", "brew"}

// Guard probes for and, with permission, installs missing toolchains. PATH
// lookup, installer execution, and the confirmation prompt are injectable so
// the decision logic is testable without mutating the host.
type Guard struct {
	manager   string // forced package manager family, empty to probe
	assumeYes bool
	st        *state.State

	lookPath func(string) (string, error)
	install  func(manager, pkg string) error
	confirm  func(prompt string) bool
}

// NewGuard creates a Guard wired to the real host: exec.LookPath probing,
// sudo package-manager invocation with streamed output, and a stdin yes/no
// prompt. manager may force a package manager family; assumeYes skips the
// prompt. Successful installs are recorded in st.
func NewGuard(manager string, assumeYes bool, st *state.State) *Guard {
	return &Guard{
		manager:   manager,
		assumeYes: assumeYes,
		st:        st,
		lookPath:  exec.LookPath,
		install:   runInstaller,
		confirm:   promptYesNo,
	}
}

// Ensure verifies the toolchain for t is present, installing it with the
// user's permission when it is not. Types without a requirement (interpreted,
// web, container) pass trivially. Returns ErrToolchainMissing (wrapped with
// the package name) on refusal or install failure.
func (g *Guard) Ensure(t detect.Type) error {
	req, ok := requirements[t]
	if !ok {
		logger.Debug("[DEBUG] Type %s needs no toolchain check\n", t)
		return nil
	}

	if path, err := g.lookPath(req.Probe); err == nil {
		logger.Debug("[DEBUG] Toolchain %s found at %s\n", req.Probe, path)
		return nil
	}

	logger.Warn("[WARN] Required toolchain '%s' is not installed.\n", req.Package)

	manager := g.manager
	if manager == "" {
		manager, ok = g.detectPackageManager()
		if !ok {
			logger.Error("[ERROR] No supported package manager found on this host.\n")
			return fmt.Errorf("%w: %s (no package manager available to install it)", ErrToolchainMissing, req.Package)
		}
	}

	if !g.assumeYes && !g.confirm(fmt.Sprintf("Install %s via %s?", req.Package, manager)) {
		return fmt.Errorf("%w: %s (installation declined)", ErrToolchainMissing, req.Package)
	}

	logger.Info("[INFO] Installing %s via %s...\n", req.Package, manager)
	if err := g.install(manager, req.Package); err != nil {
		logger.Error("[ERROR] Installation of %s failed: %v\n", req.Package, err)
		return fmt.Errorf("%w: %s (install failed: %v)", ErrToolchainMissing, req.Package, err)
	}

	logger.Info("[INFO] Installed %s\n", req.Package)
	if g.st != nil {
		g.st.Toolchains[req.Package] = state.ToolchainState{
			Package:          req.Package,
			Manager:          manager,
			InstalledByForge: true,
		}
	}
	return nil
}

// detectPackageManager probes PATH for a supported package manager family.
func (g *Guard) detectPackageManager() (string, bool) {
	for _, pm := range packageManagers {
		if _, err := g.lookPath(pm); err == nil {
			logger.Debug("[DEBUG] Using package manager %s\n", pm)
			return pm, true
		}
	}
	return "", false
}

// installArgs builds the non-interactive install invocation for a package
// manager family. brew runs unprivileged; everything else goes through sudo.
func installArgs(manager, pkg string) (string, []string) {
	switch manager {
	case "apt-get":
		return "sudo", []string{"apt-get", "install", "-y", pkg}
	case "dnf", "yum", "zypper":
		return "sudo", []string{manager, "install", "-y", pkg}
	case "pacman":
		return "sudo", []string{"pacman", "-S", "--noconfirm", pkg}
	case "brew":
		return "brew", []string{"install", pkg}
	default:
		return "sudo", []string{manager, "install", pkg}
	}
}

// runInstaller invokes the host package manager, streaming installer output
// to the user's terminal.
func runInstaller(manager, pkg string) error {
	name, args := installArgs(manager, pkg)
	cmd := exec.Command(name, args...)
	logger.Debug("[DEBUG] Running command: %s %s\n", name, strings.Join(args, " "))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	return cmd.Run()
}

// promptYesNo asks a yes/no question on the terminal and blocks for the
// answer. Anything other than y/yes is a refusal.
func promptYesNo(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
