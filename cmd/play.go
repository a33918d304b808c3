package cmd

import (
	"github.com/spf13/cobra"

	"github.com/algebrix/algebrix/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the tutor in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

// runTUI launches the terminal UI. Logs go to the file only.
func runTUI(cmd *cobra.Command) error {
	d, err := buildDeps(cmd, false, nil)
	if err != nil {
		return err
	}
	defer d.close()

	d.logger.Info("starting terminal UI")
	return app.Run(d.tutor)
}
