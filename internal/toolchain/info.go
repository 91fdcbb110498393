package toolchain

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// versionProbe describes how to query one toolchain's installed version for
// the diagnostic info report. Nothing downstream decides on this output.
type versionProbe struct {
	Name string
	Cmd  []string
}

var versionProbes = []versionProbe{
	{"gcc", []string{"gcc", "--version"}},
	{"g++", []string{"g++", "--version"}},
	{"go", []string{"go", "version"}},
	{"cargo", []string{"cargo", "--version"}},
	{"node", []string{"node", "--version"}},
	{"npm", []string{"npm", "--version"}},
	{"python3", []string{"python3", "--version"}},
	{"pip3", []string{"pip3", "--version"}},
	{"docker", []string{"docker", "--version"}},
}

// HostDescription returns a human-readable description of the host OS,
// including `uname -a` output when available.
func HostDescription() string {
	desc := fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
	if out, err := exec.Command("uname", "-a").Output(); err == nil {
		desc = fmt.Sprintf("%s (%s)", desc, strings.TrimSpace(string(out)))
	}
	return desc
}

// VersionReport queries every supported toolchain and returns "name: version"
// lines, with "not installed" for absent tools. Read-only diagnostics.
func VersionReport() []string {
	report := make([]string, 0, len(versionProbes))
	for _, probe := range versionProbes {
		report = append(report, fmt.Sprintf("%-8s %s", probe.Name+":", probeVersion(probe.Cmd)))
	}
	return report
}

func probeVersion(cmd []string) string {
	out, err := exec.Command(cmd[0], cmd[1:]...).CombinedOutput()
	if err != nil {
		return "not installed"
	}
	// Version banners can span multiple lines; the first carries the version.
	line := strings.SplitN(strings.TrimSpace(string(out)), "\n", 2)[0]
	return strings.TrimSpace(line)
}
