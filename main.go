package main

import (
	"project-forge/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// This design cleanly separates the CLI interface (cmd package) from main,
// allowing easier testing, extension, and reuse of the CLI commands.
//
// The project-forge tool is a project scaffolding and build automation CLI that:
//   - Generates starter project trees from named templates (built-in or imported packs)
//   - Detects the language/ecosystem of an existing project by inspecting its file tree
//     (config markers first, then markup heuristics, build descriptors, source counts)
//   - Ensures the required compiler or runtime is installed on the host, asking before
//     invoking the host package manager to install anything
//   - Invokes the matching native toolchain (gcc, g++, go, cargo, npm, python3, docker)
//     and normalizes the outcome into a single build result
//   - Optionally runs or opens the produced artifact in a way appropriate to its runtime
//     (binary, interpreter, dev server, browser, container)
//
// Error handling strategy:
//   - Detection and toolchain failures abort before any compiler is invoked
//   - Build failures are captured into a structured result and reported, never panicked
//   - Run failures are reported with a manual fallback command; the built artifact
//     remains valid on disk
//
// Integration points:
//   - Shells out to the host toolchains and package managers listed above; it defines
//     only the invocation and the expected artifact location, never the tools' protocols
//   - Writes normalized build artifacts under a fixed `build/` directory in the project
//   - Tracks toolchains it installed and imported template packs in a local state file
func main() {
	cmd.Execute()
}
