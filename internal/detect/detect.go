package detect

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"project-forge/internal/logger"
	"project-forge/internal/scan"
)

// ErrNoMatch is returned when no classification rule matches. The caller must
// report "could not detect project type" and abort before any build attempt.
var ErrNoMatch = errors.New("could not detect project type")

// markers maps config, manifest, and lockfile names to project types. A
// config file is the strongest signal there is — the project explicitly
// declares its ecosystem — so this table is consulted before any heuristic.
// Lockfiles sit right after their manifests: a tree whose manifest was
// deleted or ignored still names its ecosystem through the lock. Declaration
// order is the priority order when several markers coexist in one tree.
var markers = []struct {
	file string
	typ  Type
}{
	{"package.json", TypeNode},
	{"package-lock.json", TypeNode},
	{"go.mod", TypeGo},
	{"Cargo.toml", TypeRust},
	{"Cargo.lock", TypeRust},
	{"requirements.txt", TypePython},
	{"setup.py", TypePython},
	{"pyproject.toml", TypePython},
	{"vite.config.js", TypeWebFramework},
	{"vite.config.ts", TypeWebFramework},
	{"angular.json", TypeWebFramework},
	{"Dockerfile", TypeDocker},
}

// countOrder is the fixed family iteration order for the file-count signal.
// Ties are broken by first-checked-family-wins.
var countOrder = []Type{TypeCPP, TypeC, TypeGo, TypeRust, TypeNode, TypePython}

// conventionalSrcDirs are the directory names checked by the last-resort
// directory-convention signal.
var conventionalSrcDirs = []string{"src", "source", "lib", "app"}

// detector bundles the scanner and root for one classification attempt. All
// rules share the discovered-file helpers; there is no other state.
type detector struct {
	scanner *scan.Scanner
	root    string
}

// rule pairs a human-readable signal name with its matcher. Rules are
// evaluated strictly in order and the first match wins, which keeps the
// priority order auditable and testable per rule.
type rule struct {
	name  string
	match func(d *detector) (Type, bool)
}

var rules = []rule{
	{"config-file", (*detector).matchConfigFile},
	{"markup-project", (*detector).matchMarkup},
	{"native-build-system", (*detector).matchNativeBuildSystem},
	{"file-count", (*detector).matchFileCount},
	{"directory-convention", (*detector).matchConventionalDirs},
}

// Detect infers the project type of the tree rooted at root, walking it with
// the supplied filesystem. extraExclusions extends the scanner's built-in
// skip set. Returns ErrNoMatch when no rule applies.
func Detect(fs afero.Fs, root string, extraExclusions ...string) (Type, error) {
	d := &detector{scanner: scan.New(fs, extraExclusions...), root: root}

	for _, r := range rules {
		if t, ok := r.match(d); ok {
			logger.Debug("[DEBUG] Classified as %s via %s signal\n", t, r.name)
			return t, nil
		}
		logger.Debug("[DEBUG] Signal %s did not match\n", r.name)
	}
	return "", ErrNoMatch
}

// matchConfigFile implements the config-file signal: the first marker from
// the table found anywhere in the tree decides the type immediately.
func (d *detector) matchConfigFile() (Type, bool) {
	for _, m := range markers {
		if path, ok := d.scanner.FindNamed(d.root, m.file); ok {
			logger.Debug("[DEBUG] Found marker %s at %s\n", m.file, path)
			return m.typ, true
		}
	}
	return "", false
}

// matchMarkup implements the markup-project signal. HTML plus JSX/TSX means a
// component-framework project; HTML alone, with no dependency-manager
// artifacts in sight, means a plain static site. A tree with HTML and a
// node_modules/lockfile but no manifest falls through to later signals.
func (d *detector) matchMarkup() (Type, bool) {
	html := d.scanner.FindByExtensions(d.root, ".html", ".htm")
	if len(html) == 0 {
		return "", false
	}
	if jsx := d.scanner.FindByExtensions(d.root, ".jsx", ".tsx"); len(jsx) > 0 {
		return TypeWebFramework, true
	}
	if d.hasNodeArtifacts() {
		return "", false
	}
	return TypeStaticWeb, true
}

// hasNodeArtifacts reports whether dependency-manager residue exists that the
// marker table does not already catch: a node_modules directory or a non-npm
// lockfile.
func (d *detector) hasNodeArtifacts() bool {
	if d.scanner.DirExists(filepath.Join(d.root, "node_modules")) {
		return true
	}
	for _, lock := range []string{"yarn.lock", "pnpm-lock.yaml"} {
		if _, ok := d.scanner.FindNamed(d.root, lock); ok {
			return true
		}
	}
	return false
}

// matchNativeBuildSystem implements the native build-system signal.
// A Makefile triggers source inspection: when both C and C++ families are
// present the Makefile content decides (a literal g++ or .cpp reference means
// C++), otherwise whichever family is exclusively present wins, with C++
// preferred when the content gives no hint. CMake and autotools descriptors
// map directly to C++ and C respectively.
func (d *detector) matchNativeBuildSystem() (Type, bool) {
	if makefile, ok := d.scanner.FindNamedFold(d.root, "Makefile"); ok {
		cFiles := d.scanner.FindByExtensions(d.root, Descriptors[TypeC].Extensions...)
		cppFiles := d.scanner.FindByExtensions(d.root, Descriptors[TypeCPP].Extensions...)

		switch {
		case len(cppFiles) > 0 && len(cFiles) > 0:
			// With both families present the Makefile content decides; when
			// it gives no hint either way, bias toward C++, the richer
			// superset.
			if !d.makefileWantsCPP(makefile) {
				logger.Debug("[DEBUG] No compiler hint in %s, biasing toward C++\n", makefile)
			}
			return TypeCPP, true
		case len(cppFiles) > 0:
			return TypeCPP, true
		case len(cFiles) > 0:
			return TypeC, true
		}
		// Makefile with no native sources at all: not a native signal.
	}

	if _, ok := d.scanner.FindNamed(d.root, "CMakeLists.txt"); ok {
		return TypeCPP, true
	}
	if _, ok := d.scanner.FindNamed(d.root, "configure"); ok {
		return TypeC, true
	}
	return "", false
}

// makefileWantsCPP reports whether the Makefile content references the C++
// compiler or C++ sources.
func (d *detector) makefileWantsCPP(path string) bool {
	raw, err := afero.ReadFile(d.scanner.Fs(), path)
	if err != nil {
		logger.Debug("[DEBUG] Could not read %s: %v\n", path, err)
		return false
	}
	content := string(raw)
	return strings.Contains(content, "g++") || strings.Contains(content, ".cpp")
}

// matchFileCount implements the file-count signal: every family is counted in
// one pass over the tree and the strictly greatest count wins. The fixed
// countOrder breaks ties in favor of the first-checked family.
func (d *detector) matchFileCount() (Type, bool) {
	var best Type
	bestCount := 0
	for _, t := range countOrder {
		n := len(d.scanner.FindByExtensions(d.root, Descriptors[t].Extensions...))
		logger.Debug("[DEBUG] File count for %s: %d\n", t, n)
		if n > bestCount {
			best, bestCount = t, n
		}
	}
	if bestCount == 0 {
		return "", false
	}
	return best, true
}

// matchConventionalDirs is the last-resort signal: native sources hiding in
// conventional source directories, preferring C++ when both families appear.
func (d *detector) matchConventionalDirs() (Type, bool) {
	for _, dir := range conventionalSrcDirs {
		path := filepath.Join(d.root, dir)
		if !d.scanner.DirExists(path) {
			continue
		}
		if len(d.scanner.FindByExtensions(path, Descriptors[TypeCPP].Extensions...)) > 0 {
			return TypeCPP, true
		}
		if len(d.scanner.FindByExtensions(path, Descriptors[TypeC].Extensions...)) > 0 {
			return TypeC, true
		}
	}
	return "", false
}
