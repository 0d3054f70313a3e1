package main

import (
	"github.com/spf13/cobra"
)

func newDescribeCommand(ctx *commandContext) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "describe <transcripts-dir>",
		Short: "Write Gemini video descriptions for every .txt transcript in a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = cfg.Paths.Output
			}
			log := ctx.logger(cfg)
			return ctx.summarizer(cfg, log).DescribeAll(cmd.Context(), args[0], outDir)
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Destination folder (defaults to paths.output)")

	return cmd
}
