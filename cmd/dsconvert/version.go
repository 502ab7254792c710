// Version command for the dsconvert CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is the CLI version string.
const version = "v0.2.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the dsconvert version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("dsconvert", version)
	},
}
