package main

import (
	"github.com/spf13/cobra"
)

const defaultConfigPath = "config.yaml"

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "wordcast",
		Short:         "Turn narration audio into videos with karaoke-highlighted captions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx.explicitConfig = cmd.Flags().Changed("config")
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", defaultConfigPath, "Configuration file path (YAML, or TOML with a .toml extension)")

	rootCmd.AddCommand(newGenerateCommand(ctx))
	rootCmd.AddCommand(newPreviewCommand(ctx))
	rootCmd.AddCommand(newSubtitleCommand(ctx))
	rootCmd.AddCommand(newWatchCommand(ctx))
	rootCmd.AddCommand(newDescribeCommand(ctx))

	return rootCmd
}
