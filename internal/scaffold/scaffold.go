package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/spf13/afero"

	"project-forge/internal/logger"
)

// templateData is the variable set available to template bodies.
type templateData struct {
	Name string
	Year int
}

// PacksDir returns the directory user-authored template packs are installed
// to, ~/.project-forge/templates.
func PacksDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "templates"
	}
	return filepath.Join(home, ".project-forge", "templates")
}

// List returns the names of all available templates: built-ins plus imported
// packs found under packsDir, sorted.
func List(fs afero.Fs, packsDir string) []string {
	names := make([]string, 0, len(builtinTemplates))
	for name := range builtinTemplates {
		names = append(names, name)
	}
	if entries, err := afero.ReadDir(fs, packsDir); err == nil {
		for _, entry := range entries {
			if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
				names = append(names, entry.Name())
			}
		}
	}
	sort.Strings(names)
	return names
}

// Generate writes the starter tree for templateName into dest, rendering
// every file through text/template with the project name. Built-in templates
// are tried first, then imported packs. Generation refuses to write into an
// existing non-empty directory.
func Generate(fs afero.Fs, packsDir, templateName, projectName, dest string) error {
	if err := ensureEmpty(fs, dest); err != nil {
		return err
	}
	data := templateData{Name: projectName, Year: time.Now().Year()}

	if files, ok := builtinTemplates[templateName]; ok {
		return renderBuiltin(fs, files, data, dest)
	}

	packDir := filepath.Join(packsDir, templateName)
	if info, err := fs.Stat(packDir); err == nil && info.IsDir() {
		return renderPack(fs, packDir, data, dest)
	}
	return fmt.Errorf("unknown template %q (run 'forge templates' to list available templates)", templateName)
}

// ensureEmpty fails when dest exists and already has entries.
func ensureEmpty(fs afero.Fs, dest string) error {
	entries, err := afero.ReadDir(fs, dest)
	if err != nil {
		return nil // does not exist yet
	}
	if len(entries) > 0 {
		return fmt.Errorf("directory %s already exists and is not empty", dest)
	}
	return nil
}

// renderBuiltin writes a built-in template's files.
func renderBuiltin(fs afero.Fs, files []templateFile, data templateData, dest string) error {
	for _, f := range files {
		mode := os.FileMode(0644)
		if f.Mode != 0 {
			mode = os.FileMode(f.Mode)
		}
		if err := renderFile(fs, f.Content, data, filepath.Join(dest, f.Path), mode); err != nil {
			return err
		}
	}
	logger.Debug("[DEBUG] Rendered %d template file(s) into %s\n", len(files), dest)
	return nil
}

// renderPack walks an imported pack directory and renders every file into
// dest, preserving the relative layout and file modes.
func renderPack(fs afero.Fs, packDir string, data templateData, dest string) error {
	return afero.Walk(fs, packDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(packDir, path)
		if err != nil {
			return err
		}
		raw, err := afero.ReadFile(fs, path)
		if err != nil {
			return err
		}
		return renderFile(fs, string(raw), data, filepath.Join(dest, rel), info.Mode().Perm())
	})
}

// renderFile renders one template body and writes it to target.
func renderFile(fs afero.Fs, body string, data templateData, target string, mode os.FileMode) error {
	tmpl, err := template.New(filepath.Base(target)).Parse(body)
	if err != nil {
		return fmt.Errorf("template %s is malformed: %w", target, err)
	}

	if err := fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("mkdir failed: %w", err)
	}
	out, err := fs.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create %s failed: %w", target, err)
	}
	defer out.Close()

	if err := tmpl.Execute(out, data); err != nil {
		return fmt.Errorf("render %s failed: %w", target, err)
	}
	return nil
}
