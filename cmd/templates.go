package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"project-forge/internal/logger"
	"project-forge/internal/scaffold"
	"project-forge/internal/state"
)

// templatesCmd lists every template available to `forge new`: the built-ins
// plus any imported packs.
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available project templates",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range scaffold.List(afero.NewOsFs(), scaffold.PacksDir()) {
			fmt.Println(name)
		}
	},
}

// templatesAddCmd imports a user-authored template pack from a local archive
// (.zip, .tar, .tar.gz, .tgz, .tar.bz2, .tar.xz, .7z). Re-importing a pack of
// the same name overwrites it.
var templatesAddCmd = &cobra.Command{
	Use:   "add <archive>",
	Short: "Import a template pack from an archive",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		archive := args[0]

		name, err := scaffold.ImportPack(archive, scaffold.PacksDir())
		if err != nil {
			logger.Error("[ERROR] Failed to import %s: %v\n", archive, err)
			os.Exit(1)
		}

		// Record the pack so users can see where it came from later.
		statePath := state.DefaultPath()
		st := state.Load(statePath)
		st.Packs[name] = state.PackState{
			Path:    filepath.Join(scaffold.PacksDir(), name),
			Archive: archive,
		}
		state.Save(statePath, st)

		logger.Info("[INFO] Imported template pack %q\n", name)
		logger.Info("[INFO] Use it with: forge new %s <name>\n", name)
	},
}

func init() {
	templatesCmd.AddCommand(templatesAddCmd)
	rootCmd.AddCommand(templatesCmd)
}
