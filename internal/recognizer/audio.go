package recognizer

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// extractAudio converts the input to the 16kHz mono WAV whisper.cpp expects
func (r *implRecognizer) extractAudio(ctx context.Context, audioPath, workDir string) (string, error) {
	wavPath := filepath.Join(workDir, strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))+"_16k.wav")

	r.logger.Debug(ctx, "Converting audio for whisper: %s -> %s", audioPath, wavPath)

	// -vn: drop any video stream
	// -ar 16000 / -ac 1: whisper's native sample rate, mono
	// -c:a pcm_s16le: uncompressed 16-bit PCM
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", audioPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		wavPath,
	}

	if _, err := r.executor.Execute(ctx, r.ffmpeg, args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}
	return wavPath, nil
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// probeDuration asks ffprobe for the container duration in seconds
func (r *implRecognizer) probeDuration(ctx context.Context, audioPath string) (float64, error) {
	out, err := r.executor.Execute(ctx, r.ffprobe,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		audioPath,
	)
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}

	var probe probeOutput
	if err := json.Unmarshal([]byte(out), &probe); err != nil {
		return 0, fmt.Errorf("parse ffprobe output: %w", err)
	}
	duration, err := strconv.ParseFloat(strings.TrimSpace(probe.Format.Duration), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", probe.Format.Duration, err)
	}
	return duration, nil
}
