package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"project-forge/internal/builder"
	"project-forge/internal/config"
	"project-forge/internal/logger"
)

// cleanCmd removes build outputs from a project: the canonical build
// directory plus the conventional per-ecosystem output/cache directories,
// and a best-effort `make clean` when a Makefile exists. Running it on an
// already-clean project is a no-op, not an error.
var cleanCmd = &cobra.Command{
	Use:   "clean [dir]",
	Short: "Remove build outputs from a project",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		cfg := config.Load(filepath.Join(dir, config.DefaultFileName))

		removed := builder.New(cfg).Clean(dir)
		if len(removed) == 0 {
			logger.Info("[INFO] Nothing to clean in %s\n", dir)
			return
		}
		logger.Info("[INFO] Cleaned %d director(ies) in %s\n", len(removed), dir)
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
