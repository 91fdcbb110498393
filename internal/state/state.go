package state

import (
	"encoding/json" // For JSON encoding and decoding of the state file
	"os"            // For file system operations like reading and writing files
	"path/filepath"

	"project-forge/internal/logger"
)

// ToolchainState records a toolchain package that was installed on the host.
// InstalledByForge distinguishes packages this tool installed from packages
// that were already present, so users can see what forge changed on the host.
type ToolchainState struct {
	Package          string `json:"package"`            // Host package name, e.g. "gcc"
	Manager          string `json:"manager"`            // Package manager family used, e.g. "apt-get"
	InstalledByForge bool   `json:"installed_by_forge"` // True if this tool performed the install
}

// PackState records an imported template pack: where it was installed and the
// archive it came from.
type PackState struct {
	Path    string `json:"path"`    // Directory the pack was extracted to
	Archive string `json:"archive"` // Source archive path at import time
}

// State holds the entire saved state for the tool: toolchains it installed
// and template packs it imported, keyed by their names.
type State struct {
	Toolchains map[string]ToolchainState `json:"toolchains"`
	Packs      map[string]PackState      `json:"packs"`
}

// DefaultPath returns the per-user state file location,
// ~/.project-forge/state.json. Falls back to the working directory when the
// home directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "state.json"
	}
	return filepath.Join(home, ".project-forge", "state.json")
}

// Load loads the saved state from a JSON file at the given path.
// If the file does not exist or cannot be read, it returns a new empty State.
// It ensures the maps are non-nil to prevent nil pointer issues.
func Load(path string) *State {
	file, err := os.ReadFile(path)
	if err != nil {
		// File missing or unreadable: start from an empty initialized state.
		return &State{
			Toolchains: make(map[string]ToolchainState),
			Packs:      make(map[string]PackState),
		}
	}

	var st State
	_ = json.Unmarshal(file, &st)

	// Defensive: ensure maps are initialized if JSON contained null fields.
	if st.Toolchains == nil {
		st.Toolchains = make(map[string]ToolchainState)
	}
	if st.Packs == nil {
		st.Packs = make(map[string]PackState)
	}
	return &st
}

// Save writes the given State to a JSON file at the given path, creating the
// parent directory when needed. The JSON is pretty-printed for readability.
// Errors during marshalling or writing are logged but not propagated.
func Save(path string, st *State) {
	file, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		logger.Error("[ERROR] Failed to marshal state: %v\n", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		logger.Error("[ERROR] Failed to create state directory: %v\n", err)
		return
	}

	logger.Debug("[DEBUG] Writing state to %s\n", path)
	if err := os.WriteFile(path, file, 0644); err != nil {
		logger.Error("[ERROR] Failed to write state file %s: %v\n", path, err)
	}
}
