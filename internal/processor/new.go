package processor

import (
	"github.com/nguyentantai21042004/wordcast/internal/config"
	"github.com/nguyentantai21042004/wordcast/internal/logger"
	"github.com/nguyentantai21042004/wordcast/internal/recognizer"
	"github.com/nguyentantai21042004/wordcast/internal/renderer"
	"github.com/nguyentantai21042004/wordcast/internal/summarizer"
)

type implProcessor struct {
	cfg        *config.Config
	recognizer recognizer.Recognizer
	renderer   renderer.Renderer
	summarizer summarizer.Summarizer
	logger     logger.Logger
}

// New creates a new Processor instance. sum may be nil, which disables descriptions.
func New(cfg *config.Config, rec recognizer.Recognizer, rend renderer.Renderer, sum summarizer.Summarizer, log logger.Logger) Processor {
	return &implProcessor{
		cfg:        cfg,
		recognizer: rec,
		renderer:   rend,
		summarizer: sum,
		logger:     log,
	}
}
