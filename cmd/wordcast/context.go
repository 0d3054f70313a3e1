package main

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/wordcast/internal/config"
	"github.com/nguyentantai21042004/wordcast/internal/logger"
	"github.com/nguyentantai21042004/wordcast/internal/processor"
	"github.com/nguyentantai21042004/wordcast/internal/recognizer"
	"github.com/nguyentantai21042004/wordcast/internal/renderer"
	"github.com/nguyentantai21042004/wordcast/internal/summarizer"
	"github.com/nguyentantai21042004/wordcast/pkg/executor"
)

type commandContext struct {
	configFlag     *string
	explicitConfig bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		path := defaultConfigPath
		if c.configFlag != nil && strings.TrimSpace(*c.configFlag) != "" {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.LoadOrDefault(path, c.explicitConfig)
		if err != nil {
			c.configErr = fmt.Errorf("load configuration: %w", err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// logger writes to stderr so command output on stdout stays clean
func (c *commandContext) logger(cfg *config.Config) logger.Logger {
	return logger.NewWithOptions(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: os.Stderr,
	})
}

func (c *commandContext) summarizer(cfg *config.Config, log logger.Logger) summarizer.Summarizer {
	return summarizer.New(cfg.Gemini.APIKeys, cfg.Gemini.Model, log)
}

func (c *commandContext) processor(cfg *config.Config, log logger.Logger) processor.Processor {
	exec := executor.New()
	return processor.New(
		cfg,
		recognizer.New(cfg, exec, log),
		renderer.New(cfg, exec, log),
		c.summarizer(cfg, log),
		log,
	)
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
