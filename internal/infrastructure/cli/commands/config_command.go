package commands

import (
	"fmt"
	"io"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	configapp "github.com/doeshing/fakenews-go/internal/application/config"
	configinfra "github.com/doeshing/fakenews-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with all subcommands
func NewConfigCommand(rt *Runtime) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect fakenews configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd, rt)
		},
	}

	configCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show effective configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showConfiguration(cmd, rt)
			},
		},
		&cobra.Command{
			Use:   "validate",
			Short: "Validate configuration file",
			RunE: func(cmd *cobra.Command, args []string) error {
				_, cfg, err := rt.Config(cmd.Context())
				if err != nil {
					return err
				}
				if err := configapp.Validate(cfg); err != nil {
					return fmt.Errorf("configuration validation failed: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), MsgConfigurationValid)
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the configuration file path",
			RunE: func(cmd *cobra.Command, args []string) error {
				loader, _, err := rt.Config(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), loader.Path())
				return nil
			},
		},
		&cobra.Command{
			Use:   "diff",
			Short: "Show differences from the default configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showConfigurationDiff(cmd, rt)
			},
		},
	)

	return configCmd
}

func showConfiguration(cmd *cobra.Command, rt *Runtime) error {
	loader, cfg, err := rt.Config(cmd.Context())
	if err != nil {
		return err
	}
	data, err := configinfra.Marshal(cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# %s\n", loader.Path())
	_, err = out.Write(data)
	return err
}

func showConfigurationDiff(cmd *cobra.Command, rt *Runtime) error {
	_, current, err := rt.Config(cmd.Context())
	if err != nil {
		return err
	}
	return writeConfigDiff(cmd.OutOrStdout(), cmp.Diff(configinfra.DefaultConfig(), current))
}

func writeConfigDiff(out io.Writer, diff string) error {
	if diff == "" {
		fmt.Fprintln(out, MsgNoDifferencesFromDefault)
		return nil
	}
	fmt.Fprintln(out, "Differences (-default +current):")
	fmt.Fprint(out, diff)
	return nil
}
