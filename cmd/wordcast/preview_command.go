package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/wordcast/internal/align"
	"github.com/nguyentantai21042004/wordcast/internal/caption"
	"github.com/nguyentantai21042004/wordcast/internal/recognizer"
	"github.com/nguyentantai21042004/wordcast/pkg/executor"
)

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var transcriptPath string
	var format string

	cmd := &cobra.Command{
		Use:   "preview <audio>",
		Short: "Show recognized word timings and caption lines without rendering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			log := ctx.logger(cfg)

			if format == "" {
				format = cfg.Caption.Aspect
			}
			aspect, err := caption.ParseAspect(format)
			if err != nil {
				return err
			}
			layout, err := caption.NewLayout(aspect, cfg.Caption.LayoutOptions())
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

			if err := os.MkdirAll(cfg.Paths.Temp, 0755); err != nil {
				return fmt.Errorf("create temp root: %w", err)
			}
			workDir, err := os.MkdirTemp(cfg.Paths.Temp, "preview-*")
			if err != nil {
				return fmt.Errorf("create temp dir: %w", err)
			}
			defer os.RemoveAll(workDir)

			rec, err := recognizer.New(cfg, executor.New(), log).Recognize(cmd.Context(), args[0], workDir)
			if err != nil {
				return fmt.Errorf("recognize: %w", err)
			}

			aligned := align.Reconcile(rec.Words, reference)
			if err := caption.ValidateWords(aligned.Words); err != nil {
				return err
			}
			lines := caption.GroupLines(aligned.Words, layout.MaxWordsPerLine, caption.PauseThreshold)

			out := cmd.OutOrStdout()
			writePreview(out, rec.Duration, aligned, lines, isTerminal(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&transcriptPath, "transcript", "t", "", "Reference transcript to align")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Video format: vertical (short) or horizontal (long)")

	return cmd
}

func writePreview(w io.Writer, duration float64, aligned align.Result, lines []caption.Line, fancy bool) {
	wordRows := make([][]string, 0, len(aligned.Words))
	for i, word := range aligned.Words {
		wordRows = append(wordRows, []string{
			strconv.Itoa(i + 1),
			caption.FormatTimecode(word.Start),
			caption.FormatTimecode(word.End),
			word.Text,
		})
	}
	fmt.Fprintln(w, renderTable(
		[]string{"#", "Start", "End", "Word"},
		wordRows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignLeft},
		fancy,
	))

	lineRows := make([][]string, 0, len(lines))
	for i, line := range lines {
		lineRows = append(lineRows, []string{
			strconv.Itoa(i + 1),
			caption.FormatTimecode(line.Start()),
			caption.FormatTimecode(line.End()),
			line.Text(),
		})
	}
	fmt.Fprintln(w, renderTable(
		[]string{"Line", "Start", "End", "Text"},
		lineRows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignLeft},
		fancy,
	))

	fmt.Fprintf(w, "Duration: %s  Words: %d  Lines: %d\n", caption.FormatTimecode(duration), len(aligned.Words), len(lines))
	fmt.Fprintf(w, "Transcript: %s", aligned.Outcome)
	if detail := aligned.Detail(); detail != "" {
		fmt.Fprintf(w, " (%s)", detail)
	}
	fmt.Fprintln(w)
}
