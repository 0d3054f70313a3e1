package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/wordcast/internal/processor"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var req processor.Request

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a captioned video from narration audio",
		Example: `  wordcast generate --audio voice.mp3 --transcript script.txt --format vertical
  wordcast generate --audio voice.wav --output out/episode.mp4 --quality high --highlight-color cyan`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.AudioPath == "" {
				return fmt.Errorf("--audio is required")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			log := ctx.logger(cfg)

			res, err := ctx.processor(cfg, log).Process(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Video: %s\n", res.OutputPath)
			if res.SubtitlePath != "" {
				fmt.Fprintf(out, "Subtitles: %s\n", res.SubtitlePath)
			}
			fmt.Fprintf(out, "Transcript: %s\n", res.Alignment.Outcome)
			if req.KeepTemp {
				fmt.Fprintf(out, "Temp files: %s\n", res.TempDir)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&req.AudioPath, "audio", "a", "", "Narration audio file")
	flags.StringVarP(&req.TranscriptPath, "transcript", "t", "", "Reference transcript (defaults to <audio>.txt when present)")
	flags.StringVarP(&req.OutputPath, "output", "o", "", "Output video path (defaults to <paths.output>/<audio>.mp4)")
	flags.StringVarP(&req.Aspect, "format", "f", "", "Video format: vertical (short) or horizontal (long)")
	flags.StringVarP(&req.Quality, "quality", "q", "", "Render quality: fast, medium or high")
	flags.IntVar(&req.FontSize, "font-size", 0, "Caption font size")
	flags.StringVar(&req.HighlightColor, "highlight-color", "", "Highlight color name or ASS code")
	flags.BoolVar(&req.KeepTemp, "keep-temp", false, "Keep the job's temp directory")
	flags.BoolVar(&req.Describe, "describe", false, "Write a Gemini video description and transcript docx")

	return cmd
}
