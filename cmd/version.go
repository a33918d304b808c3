package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/algebrix/algebrix/internal/equation"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("algebrix", version)
		if c, err := equation.Default(); err == nil {
			fmt.Println("embedded catalog", c.Version())
		}
	},
}
