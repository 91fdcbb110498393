package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"project-forge/internal/logger"
	"project-forge/internal/scaffold"
)

// newParentDir is the directory the generated project is created under.
var newParentDir string

// newCmd generates a starter project tree from a named template, either a
// built-in or one from an imported pack. Non-interactive: everything comes
// from arguments and flags.
var newCmd = &cobra.Command{
	Use:   "new <template> <name>",
	Short: "Generate a starter project from a template",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		templateName, projectName := args[0], args[1]
		dest := filepath.Join(newParentDir, projectName)

		err := scaffold.Generate(afero.NewOsFs(), scaffold.PacksDir(), templateName, projectName, dest)
		if err != nil {
			logger.Error("[ERROR] %v\n", err)
			os.Exit(1)
		}
		logger.Info("[INFO] Created %s project in %s\n", templateName, dest)
		logger.Info("[INFO] Build it with: forge compile %s\n", dest)
	},
}

func init() {
	newCmd.Flags().StringVarP(&newParentDir, "dir", "d", ".", "Parent directory for the new project")
	rootCmd.AddCommand(newCmd)
}
