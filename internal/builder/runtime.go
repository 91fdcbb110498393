package builder

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"project-forge/internal/logger"
	"project-forge/internal/scan"
)

// nodeEntryNames are the conventional entry file names, in priority order.
var nodeEntryNames = []string{"server.js", "app.js", "index.js", "main.js"}

// nodeEntryDirs are where the conventional names are looked for: the project
// root first, then the common server-code subdirectories.
var nodeEntryDirs = []string{"", "src", "server", "backend"}

// clientAssetDirs are excluded from the server-indicator scan: scripts there
// are browser assets, not candidate server entry points.
var clientAssetDirs = []string{"public", "static", "assets", "client"}

// scriptExtensions are the Node script extensions considered by the
// entry-point search.
var scriptExtensions = []string{".js", ".mjs", ".cjs"}

// buildNode prepares a Node.js project: install declared dependencies when a
// manifest exists, then resolve the entry point. There is no compiled
// artifact; the result tells the runner to execute the entry file with node.
func (o *Orchestrator) buildNode(root string) Result {
	manifest, hasManifest := o.scanner.FindNamed(root, "package.json")
	if hasManifest {
		logger.Info("[INFO] Installing Node.js dependencies (npm install)\n")
		if err := o.run(filepath.Dir(manifest), "npm", "install"); err != nil {
			logger.Warn("[WARN] npm install failed (%v); continuing with entry point detection\n", err)
		}
	}

	entry, ok := o.nodeEntryPoint(root, manifest)
	if !ok {
		return failf("could not determine a Node.js entry point under %s", root)
	}
	logger.Info("[INFO] Node.js entry point: %s\n", entry)
	return Result{Success: true, Artifact: entry, Kind: KindInterpreter, Interpreter: "node"}
}

// nodeEntryPoint resolves the file to hand to node, trying in order: the
// manifest's main field, a start/dev script's invoked file, the conventional
// entry names, any script mentioning a known server framework, the first
// script at the project root, and finally the first script found anywhere.
func (o *Orchestrator) nodeEntryPoint(root, manifest string) (string, bool) {
	if manifest != "" {
		if entry, ok := o.entryFromManifest(manifest); ok {
			return entry, true
		}
	}

	for _, dir := range nodeEntryDirs {
		for _, name := range nodeEntryNames {
			path := filepath.Join(root, dir, name)
			if o.fileExists(path) {
				return path, true
			}
		}
	}

	// Scan server-side scripts (client asset directories excluded) for the
	// configured server-framework indicators.
	serverScan := scan.New(o.fs, append(append([]string(nil), o.cfg.Detect.ExtraExclusions...), clientAssetDirs...)...)
	serverScripts := serverScan.FindByExtensions(root, scriptExtensions...)
	for _, script := range serverScripts {
		if o.mentionsServerFramework(script) {
			logger.Debug("[DEBUG] %s mentions a server framework\n", script)
			return script, true
		}
	}

	// First script directly at the project root.
	if entries, err := afero.ReadDir(o.fs, root); err == nil {
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			for _, ext := range scriptExtensions {
				if strings.EqualFold(filepath.Ext(entry.Name()), ext) {
					return filepath.Join(root, entry.Name()), true
				}
			}
		}
	}

	// Absolute last resort: first script anywhere, client assets included.
	if all := o.scanner.FindByExtensions(root, scriptExtensions...); len(all) > 0 {
		return all[0], true
	}
	return "", false
}

// entryFromManifest extracts the entry point declared by package.json: the
// main field when it names an existing file, else the file invoked by the
// start or dev script.
func (o *Orchestrator) entryFromManifest(manifest string) (string, bool) {
	raw, err := afero.ReadFile(o.fs, manifest)
	if err != nil {
		return "", false
	}

	var pkg struct {
		Main    string            `json:"main"`
		Scripts map[string]string `json:"scripts"`
	}
	if err := json.Unmarshal(raw, &pkg); err != nil {
		logger.Debug("[DEBUG] Could not parse %s: %v\n", manifest, err)
		return "", false
	}

	dir := filepath.Dir(manifest)
	if pkg.Main != "" {
		path := filepath.Join(dir, pkg.Main)
		if o.fileExists(path) {
			return path, true
		}
	}
	for _, script := range []string{"start", "dev"} {
		if file, ok := scriptInvokedFile(pkg.Scripts[script]); ok {
			path := filepath.Join(dir, file)
			if o.fileExists(path) {
				return path, true
			}
		}
	}
	return "", false
}

// scriptInvokedFile pulls the script file out of a package.json command text,
// e.g. "node src/server.js --port 3000" yields "src/server.js".
func scriptInvokedFile(command string) (string, bool) {
	for _, token := range strings.Fields(command) {
		for _, ext := range scriptExtensions {
			if strings.HasSuffix(strings.ToLower(token), ext) {
				return token, true
			}
		}
	}
	return "", false
}

// mentionsServerFramework reports whether a script file contains any of the
// configured server-framework indicator substrings.
func (o *Orchestrator) mentionsServerFramework(path string) bool {
	raw, err := afero.ReadFile(o.fs, path)
	if err != nil {
		return false
	}
	content := string(raw)
	for _, indicator := range o.cfg.Detect.ServerIndicators {
		if strings.Contains(content, indicator) {
			return true
		}
	}
	return false
}

// buildPython prepares a Python project: install declared dependencies when a
// requirements file exists, then locate the entry file by the conventional
// name priority (main, index, app, server; else the first match).
func (o *Orchestrator) buildPython(root string) Result {
	if req, ok := o.scanner.FindNamed(root, "requirements.txt"); ok {
		logger.Info("[INFO] Installing Python dependencies (pip3 install -r)\n")
		if err := o.run(filepath.Dir(req), "pip3", "install", "-r", filepath.Base(req)); err != nil {
			logger.Warn("[WARN] pip3 install failed (%v); continuing with entry point detection\n", err)
		}
	}

	files := o.scanner.FindByExtensions(root, ".py")
	if len(files) == 0 {
		return failf("no Python files found under %s", root)
	}
	entry := pickByNameSubstring(files, "main", "index", "app", "server")
	logger.Info("[INFO] Python entry point: %s\n", entry)
	return Result{Success: true, Artifact: entry, Kind: KindInterpreter, Interpreter: "python3"}
}

// buildStaticWeb locates the primary HTML file. There is no build step; the
// result tells the runner to open the page in a browser.
func (o *Orchestrator) buildStaticWeb(root string) Result {
	pages := o.scanner.FindByExtensions(root, ".html", ".htm")
	if len(pages) == 0 {
		return failf("no HTML files found under %s", root)
	}
	page := pickByNameSubstring(pages, "index", "main")
	logger.Info("[INFO] Primary page: %s\n", page)
	return Result{Success: true, Artifact: page, Kind: KindBrowser}
}

// buildWebFramework prepares a component-framework project: install
// dependencies when a manifest exists. There is no compiled artifact; the
// result instructs the runner to start the development server.
func (o *Orchestrator) buildWebFramework(root string) Result {
	if manifest, ok := o.scanner.FindNamed(root, "package.json"); ok {
		logger.Info("[INFO] Installing dependencies (npm install)\n")
		if err := o.run(filepath.Dir(manifest), "npm", "install"); err != nil {
			return failf("npm install failed: %v", err)
		}
	}
	// The dev-server command only makes sense inside the project: it reads
	// the manifest and config from its working directory.
	return Result{Success: true, Artifact: "npm run dev", Kind: KindDevServer, Dir: root}
}

// buildDocker requires a container descriptor and emits the compound
// build-then-run command sequence. No local artifact is produced.
func (o *Orchestrator) buildDocker(root string) Result {
	if _, ok := o.scanner.FindNamed(root, "Dockerfile"); !ok {
		return failf("no Dockerfile found under %s", root)
	}
	image := strings.ToLower(projectName(root))
	command := fmt.Sprintf("docker build -t %s . && docker run --rm %s", image, image)
	// The build context is ".", so the steps must run from the project root.
	return Result{Success: true, Artifact: command, Kind: KindContainer, Dir: root}
}

// fileExists reports whether path is an existing regular file.
func (o *Orchestrator) fileExists(path string) bool {
	info, err := o.fs.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
