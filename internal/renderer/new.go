package renderer

import (
	"github.com/nguyentantai21042004/wordcast/internal/config"
	"github.com/nguyentantai21042004/wordcast/internal/logger"
	"github.com/nguyentantai21042004/wordcast/pkg/executor"
)

type implRenderer struct {
	ffmpeg   config.FFmpegConfig
	quality  string
	tempRoot string
	executor executor.Executor
	logger   logger.Logger
}

// New creates an ffmpeg Renderer
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Renderer {
	return &implRenderer{
		ffmpeg:   cfg.FFmpeg,
		quality:  cfg.Render.Quality,
		tempRoot: cfg.Paths.Temp,
		executor: exec,
		logger:   log,
	}
}
