package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var workspaceFlag string

	ctx := newCommandContext(&configFlag, &workspaceFlag)

	rootCmd := &cobra.Command{
		Use:           "stylometer",
		Short:         "Fingerprint text sources and guess who wrote an unknown document",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "demo" {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (default <workspace>/configs/settings.toml)")
	rootCmd.PersistentFlags().StringVarP(&workspaceFlag, "workspace", "w", "", "Workspace directory (default ~/Stylometer)")

	rootCmd.AddCommand(newBuildCommand(ctx))
	rootCmd.AddCommand(newShowCommand(ctx))
	rootCmd.AddCommand(newClassifyCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newDemoCommand())
	rootCmd.AddCommand(newServeCommand(ctx))

	return rootCmd
}
