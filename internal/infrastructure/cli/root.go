package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/fakenews-go/internal/app"
	"github.com/doeshing/fakenews-go/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose    bool
	ConfigPath string
}

// NewRootCmd wires the cobra root command. The container is built lazily by
// the commands that need the artifacts.
func NewRootCmd(_ context.Context, opts Options) (*cobra.Command, error) {
	rt := &commands.Runtime{Options: app.Options{
		ConfigPath: opts.ConfigPath,
		Verbose:    opts.Verbose,
	}}

	root := &cobra.Command{
		Use:   "fakenews",
		Short: "Fake News Detector",
		Long:  "Classify news article text as FAKE or REAL with a pre-trained TF-IDF model.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunTUI(cmd, rt)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return rt.Close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&rt.Options.ConfigPath, "config", opts.ConfigPath, "Config file (default ~/.fakenews/config.yaml)")
	root.PersistentFlags().BoolVar(&rt.Options.Verbose, "debug", opts.Verbose, "Enable debug logging")

	root.AddCommand(commands.NewTUICommand(rt))
	root.AddCommand(commands.NewServeCommand(rt))
	root.AddCommand(commands.NewPredictCommand(rt))
	root.AddCommand(commands.NewInspectCommand(rt))
	root.AddCommand(commands.NewConfigCommand(rt))
	root.AddCommand(commands.NewDoctorCommand(rt))
	root.AddCommand(commands.NewVersionCommand())
	return root, nil
}
