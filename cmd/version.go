package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd prints the linker-stamped build details.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of regimpact.",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("regimpact (EU digital regulation impact charts)\n")
		cmd.Printf("  Version: %s\n", version)
		cmd.Printf("  Commit:  %s\n", commit)
		cmd.Printf("  Built:   %s\n", date)
		cmd.Printf("  Runtime: %s\n", runtime.Version())
	},
}
