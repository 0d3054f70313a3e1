package recognizer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/wordcast/internal/caption"
)

// Recognize runs whisper.cpp with one word per segment and reads its JSON output
func (r *implRecognizer) Recognize(ctx context.Context, audioPath, workDir string) (Recognition, error) {
	wavPath, err := r.extractAudio(ctx, audioPath, workDir)
	if err != nil {
		return Recognition{}, err
	}

	outputPrefix := strings.TrimSuffix(wavPath, filepath.Ext(wavPath))

	r.logger.Info(ctx, "Starting transcription with %d threads: %s", r.whisper.Threads, audioPath)

	// -ml 1 -sow: one segment per word, split on word boundaries
	// -oj: JSON output with millisecond offsets
	args := []string{
		"-m", r.whisper.ModelPath,
		"-f", wavPath,
		"-l", r.whisper.Language,
		"-t", strconv.Itoa(r.whisper.Threads),
		"-ml", "1",
		"-sow",
		"-oj",
		"-of", outputPrefix,
	}
	if r.whisper.Prompt != "" {
		args = append(args, "--prompt", r.whisper.Prompt)
	}
	if !r.whisper.UseGPU {
		args = append(args, "-ng")
	}

	if _, err := r.executor.Execute(ctx, r.whisper.BinaryPath, args...); err != nil {
		return Recognition{}, fmt.Errorf("whisper transcribe: %w", err)
	}

	data, err := os.ReadFile(outputPrefix + ".json")
	if err != nil {
		return Recognition{}, fmt.Errorf("read whisper output: %w", err)
	}
	words, err := parseWhisperJSON(data)
	if err != nil {
		return Recognition{}, err
	}
	if len(words) == 0 {
		return Recognition{}, ErrNoWords
	}

	duration, err := r.probeDuration(ctx, audioPath)
	if err != nil {
		duration = words[len(words)-1].End
		r.logger.Warn(ctx, "Could not probe duration, using last word end %.2fs: %v", duration, err)
	}

	r.logger.Info(ctx, "Transcription completed: %d words, %.1fs", len(words), duration)
	return Recognition{Words: words, Duration: duration}, nil
}

type whisperOutput struct {
	Transcription []whisperSegment `json:"transcription"`
}

type whisperSegment struct {
	Offsets struct {
		From int64 `json:"from"`
		To   int64 `json:"to"`
	} `json:"offsets"`
	Text string `json:"text"`
}

// parseWhisperJSON turns whisper.cpp's per-word segments into ordered words.
// Non-speech markers such as [BLANK_AUDIO] are skipped, and timings are
// clamped so starts never go backwards and ends never precede starts.
func parseWhisperJSON(data []byte) ([]caption.WordTiming, error) {
	var out whisperOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}

	words := make([]caption.WordTiming, 0, len(out.Transcription))
	prevStart := 0.0
	for _, seg := range out.Transcription {
		text := strings.TrimSpace(seg.Text)
		if text == "" || isNonSpeech(text) {
			continue
		}

		start := float64(seg.Offsets.From) / 1000
		end := float64(seg.Offsets.To) / 1000
		if start < prevStart {
			start = prevStart
		}
		if end < start {
			end = start
		}
		prevStart = start

		words = append(words, caption.WordTiming{Text: text, Start: start, End: end})
	}
	return words, nil
}

func isNonSpeech(text string) bool {
	return (strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]")) ||
		(strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")"))
}
