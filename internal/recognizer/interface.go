package recognizer

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/wordcast/internal/caption"
)

// ErrNoWords is returned when the recognizer heard no speech at all
var ErrNoWords = errors.New("no words recognized")

// Recognition is the recognizer output consumed by the caption core
type Recognition struct {
	Words    []caption.WordTiming
	Duration float64
}

// Recognizer extracts word-level timestamps from an audio file
type Recognizer interface {
	Recognize(ctx context.Context, audioPath, workDir string) (Recognition, error)
}
