package commands

import (
	"github.com/spf13/cobra"

	configinfra "github.com/doeshing/fakenews-go/internal/infrastructure/config"
	"github.com/doeshing/fakenews-go/internal/infrastructure/tui"
)

// NewTUICommand starts the terminal UI.
func NewTUICommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the detector in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunTUI(cmd, rt)
		},
	}
}

// RunTUI builds the container with logging moved off the terminal and runs the UI.
func RunTUI(cmd *cobra.Command, rt *Runtime) error {
	if rt.Options.LogOutput == nil && rt.Options.LogFile == "" {
		rt.Options.LogFile = configinfra.DefaultLogPath()
	}
	container, err := rt.Container(cmd.Context())
	if err != nil {
		return err
	}
	container.Logger.Info("starting terminal UI", nil)
	return tui.Run(cmd.Context(), container.Controller, container.Config.Display.InputHeight)
}
