package renderer

import (
	"context"
	"errors"
)

// ErrBinaryNotFound is returned when ffmpeg is not installed
var ErrBinaryNotFound = errors.New("ffmpeg not found")

// Job describes one composite: a solid background, the audio track and the
// burned-in subtitle document.
type Job struct {
	AudioPath    string
	SubtitlePath string
	OutputPath   string
	// Duration caps the output length; zero lets -shortest decide.
	Duration float64
	Width    int
	Height   int
	// Quality is fast, medium or high; empty uses render.quality.
	Quality string
}

// Renderer composites the final video
type Renderer interface {
	Render(ctx context.Context, job Job) error
}
