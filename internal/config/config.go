package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"project-forge/internal/logger"
)

// DefaultFileName is the optional tuning file looked up in the project
// directory when no --config flag is given.
const DefaultFileName = "forge.yaml"

// Detect holds the tuning tables consumed by detection and entry-point
// heuristics. The server-indicator list is deliberately configuration rather
// than a hardcoded literal: its coverage is heuristic and needs occasional
// tuning without touching detection logic.
type Detect struct {
	// ServerIndicators are substrings whose presence in a script file marks it
	// as a likely server entry point (e.g. "express", "http.createServer").
	ServerIndicators []string `yaml:"server_indicators"`
	// ExtraExclusions are directory names excluded from scans in addition to
	// the built-in set (node_modules, build, dist, ...).
	ExtraExclusions []string `yaml:"extra_exclusions"`
}

// Config is the top-level structure of the optional forge.yaml tuning file.
type Config struct {
	Detect Detect `yaml:"detect"`
	// PackageManager forces a host package manager family (e.g. "apt-get",
	// "brew") instead of probing the PATH for one.
	PackageManager string `yaml:"package_manager"`
}

// defaultServerIndicators is the compiled-in indicator table, applied when the
// tuning file is absent or does not override it.
var defaultServerIndicators = []string{
	"express",
	"fastify",
	"koa",
	"hapi",
	"http.createServer",
	".listen(",
}

// Default returns a Config populated with the compiled-in defaults.
func Default() *Config {
	return &Config{
		Detect: Detect{
			ServerIndicators: append([]string(nil), defaultServerIndicators...),
		},
	}
}

// Load reads the tuning file at path. A missing file is not an error — the
// file is optional tuning, so defaults are returned. A malformed file is
// reported and likewise falls back to defaults rather than aborting a build
// over a tuning problem.
func Load(path string) *Config {
	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Debug("[DEBUG] No config file at %s, using defaults\n", path)
		return Default()
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		logger.Warn("[WARN] Ignoring malformed config %s: %v\n", path, err)
		return Default()
	}
	if len(cfg.Detect.ServerIndicators) == 0 {
		cfg.Detect.ServerIndicators = append([]string(nil), defaultServerIndicators...)
	}
	logger.Debug("[DEBUG] Loaded config from %s\n", path)
	return cfg
}
