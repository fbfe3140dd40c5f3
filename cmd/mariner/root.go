package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configDir string
	ctx := newCommandContext(&configDir)

	rootCmd := &cobra.Command{
		Use:           "mariner",
		Short:         "Boat photo identification service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configDir, "config-dir", "C", ".", "Directory containing config.toml")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newIdentifyCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newVesselCommand(ctx))
	rootCmd.AddCommand(newOpenAPICommand(ctx))

	return rootCmd
}
