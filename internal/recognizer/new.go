package recognizer

import (
	"github.com/nguyentantai21042004/wordcast/internal/config"
	"github.com/nguyentantai21042004/wordcast/internal/logger"
	"github.com/nguyentantai21042004/wordcast/pkg/executor"
)

type implRecognizer struct {
	whisper  config.WhisperConfig
	ffmpeg   string
	ffprobe  string
	executor executor.Executor
	logger   logger.Logger
}

// New creates a whisper.cpp backed Recognizer
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Recognizer {
	return &implRecognizer{
		whisper:  cfg.Whisper,
		ffmpeg:   cfg.FFmpeg.BinaryPath,
		ffprobe:  cfg.FFmpeg.ProbePath,
		executor: exec,
		logger:   log,
	}
}
