package summarizer

import (
	"context"
	"errors"
)

// ErrNoAPIKeys is returned when a description is requested without Gemini keys
var ErrNoAPIKeys = errors.New("no Gemini API keys configured")

// Summarizer writes LLM-generated video descriptions from caption transcripts.
type Summarizer interface {
	// Describe writes <title>.md and <title>.docx into destDir and returns the markdown path.
	Describe(ctx context.Context, title, transcript, destDir string) (string, error)
	// DescribeAll describes every .txt transcript in srcDir.
	DescribeAll(ctx context.Context, srcDir, destDir string) error
}
