package processor

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/wordcast/internal/align"
)

// Request describes one captioned-video job
type Request struct {
	AudioPath string
	// TranscriptPath is the reference text. Empty falls back to a sibling
	// <audio name>.txt when one exists.
	TranscriptPath string
	// OutputPath defaults to <paths.output>/<audio name>.mp4.
	OutputPath string

	// Aspect, Quality, FontSize and HighlightColor override the config when set.
	Aspect         string
	Quality        string
	FontSize       int
	HighlightColor string

	KeepTemp bool
	// Archive moves the audio and its transcript to paths.archived afterwards.
	Archive  bool
	Describe bool
}

// Result summarizes a finished job
type Result struct {
	JobID        string
	OutputPath   string
	SubtitlePath string
	TempDir      string
	Alignment    align.Result
	Events       int
	Duration     float64
	Elapsed      time.Duration
}

// Processor runs the recognize, reconcile, subtitle and render pipeline
type Processor interface {
	Process(ctx context.Context, req Request) (Result, error)
	// ProcessFile handles one audio file picked up in watch mode.
	ProcessFile(ctx context.Context, audioPath string) error
}
