package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"project-forge/internal/toolchain"
)

// infoCmd reports the host OS description and the installed version of every
// supported toolchain. Purely diagnostic; nothing decides on this output.
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show host and toolchain versions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Host: %s\n\n", toolchain.HostDescription())
		for _, line := range toolchain.VersionReport() {
			fmt.Println(line)
		}
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
