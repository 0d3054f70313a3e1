package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/wordcast/internal/align"
	"github.com/nguyentantai21042004/wordcast/internal/caption"
	"github.com/nguyentantai21042004/wordcast/internal/processor"
)

func newSubtitleCommand(ctx *commandContext) *cobra.Command {
	var wordsPath string
	var transcriptPath string
	var outPath string
	var format string
	var fontSize int
	var highlight string

	cmd := &cobra.Command{
		Use:   "subtitle",
		Short: "Build an ASS subtitle file from a JSON word list",
		Long: `Build an ASS subtitle file from a JSON array of {"text", "start", "end"} words.
No external tools are required.`,
		Example: `  wordcast subtitle --words words.json --transcript script.txt --out captions.ass`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if wordsPath == "" || outPath == "" {
				return fmt.Errorf("--words and --out are required")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			words, err := readWords(wordsPath)
			if err != nil {
				return err
			}

			var reference string
			if transcriptPath != "" {
				data, err := os.ReadFile(transcriptPath)
				if err != nil {
					return fmt.Errorf("read transcript: %w", err)
				}
				reference = string(data)
			}

			if format == "" {
				format = cfg.Caption.Aspect
			}
			aspect, err := caption.ParseAspect(format)
			if err != nil {
				return err
			}
			opts := cfg.Caption.LayoutOptions()
			if fontSize > 0 {
				opts.FontSize = fontSize
			}
			if highlight != "" {
				opts.HighlightColor = highlight
			}
			layout, err := caption.NewLayout(aspect, opts)
			if err != nil {
				return err
			}

			aligned := align.Reconcile(words, reference)
			doc, err := caption.Generate(aligned.Words, layout)
			if err != nil {
				return err
			}
			if err := processor.WriteDocument(outPath, doc); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d events to %s (transcript %s)\n", len(doc.Events), outPath, aligned.Outcome)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&wordsPath, "words", "w", "", "JSON word list")
	flags.StringVarP(&transcriptPath, "transcript", "t", "", "Reference transcript to align")
	flags.StringVarP(&outPath, "out", "o", "", "Output .ass path")
	flags.StringVarP(&format, "format", "f", "", "Video format: vertical (short) or horizontal (long)")
	flags.IntVar(&fontSize, "font-size", 0, "Caption font size")
	flags.StringVar(&highlight, "highlight-color", "", "Highlight color name or ASS code")

	return cmd
}

func readWords(path string) ([]caption.WordTiming, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read words: %w", err)
	}
	var words []caption.WordTiming
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("parse words %s: %w", path, err)
	}
	return words, nil
}
