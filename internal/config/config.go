package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nguyentantai21042004/wordcast/internal/caption"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Whisper     WhisperConfig     `yaml:"whisper" toml:"whisper"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg" toml:"ffmpeg"`
	Caption     CaptionConfig     `yaml:"caption" toml:"caption"`
	Render      RenderConfig      `yaml:"render" toml:"render"`
	Paths       PathsConfig       `yaml:"paths" toml:"paths"`
	Logging     LoggingConfig     `yaml:"logging" toml:"logging"`
	Performance PerformanceConfig `yaml:"performance" toml:"performance"`
	Gemini      GeminiConfig      `yaml:"gemini" toml:"gemini"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path" toml:"model_path"`
	BinaryPath string `yaml:"binary_path" toml:"binary_path"`
	Language   string `yaml:"language" toml:"language"`
	Prompt     string `yaml:"prompt" toml:"prompt"`
	Threads    int    `yaml:"threads" toml:"threads"`
	UseGPU     bool   `yaml:"use_gpu" toml:"use_gpu"`
}

type FFmpegConfig struct {
	BinaryPath   string `yaml:"binary_path" toml:"binary_path"`
	ProbePath    string `yaml:"probe_path" toml:"probe_path"`
	Encoder      string `yaml:"encoder" toml:"encoder"`
	VideoBitrate string `yaml:"video_bitrate" toml:"video_bitrate"`
	AudioCodec   string `yaml:"audio_codec" toml:"audio_codec"`
	AudioBitrate string `yaml:"audio_bitrate" toml:"audio_bitrate"`
	Preset       string `yaml:"preset" toml:"preset"`
	FPS          int    `yaml:"fps" toml:"fps"`
	Background   string `yaml:"background" toml:"background"`
}

type CaptionConfig struct {
	Aspect         string `yaml:"aspect" toml:"aspect"`
	FontName       string `yaml:"font_name" toml:"font_name"`
	FontSize       int    `yaml:"font_size" toml:"font_size"`
	HighlightColor string `yaml:"highlight_color" toml:"highlight_color"`
	Bold           *bool  `yaml:"bold" toml:"bold"`
	PrimaryColor   string `yaml:"primary_color" toml:"primary_color"`
	OutlineColor   string `yaml:"outline_color" toml:"outline_color"`
	OutlineWidth   *int   `yaml:"outline_width" toml:"outline_width"`
	Shadow         *int   `yaml:"shadow" toml:"shadow"`
	Alignment      *int   `yaml:"alignment" toml:"alignment"`
	MarginV        *int   `yaml:"margin_v" toml:"margin_v"`
}

type RenderConfig struct {
	Quality string `yaml:"quality" toml:"quality"`
}

type PathsConfig struct {
	Input    string `yaml:"input" toml:"input"`
	Output   string `yaml:"output" toml:"output"`
	Archived string `yaml:"archived" toml:"archived"`
	Temp     string `yaml:"temp" toml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" toml:"max_concurrent"`
}

type GeminiConfig struct {
	Model   string   `yaml:"model" toml:"model"`
	APIKeys []string `yaml:"api_keys" toml:"api_keys"`
}

// Default returns a config that works with whisper.cpp and ffmpeg on PATH
func Default() *Config {
	cfg := &Config{
		Whisper: WhisperConfig{
			ModelPath:  "models/ggml-base.en.bin",
			BinaryPath: "whisper-cli",
			Language:   "en",
		},
		Paths: PathsConfig{
			Input:  "data/input",
			Output: "data/output",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
	// defaults only, cannot fail
	_ = cfg.Validate()
	return cfg
}

// LayoutOptions converts the caption section into layout overrides
func (c CaptionConfig) LayoutOptions() caption.LayoutOptions {
	return caption.LayoutOptions{
		FontName:       c.FontName,
		FontSize:       c.FontSize,
		Bold:           c.Bold,
		PrimaryColor:   c.PrimaryColor,
		HighlightColor: c.HighlightColor,
		OutlineColor:   c.OutlineColor,
		OutlineWidth:   c.OutlineWidth,
		Shadow:         c.Shadow,
		Alignment:      c.Alignment,
		MarginV:        c.MarginV,
	}
}

// Validate checks required fields and fills defaults for the rest
func (c *Config) Validate() error {
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("%w: whisper.model_path is required", ErrInvalidConfig)
	}
	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("%w: whisper.binary_path is required", ErrInvalidConfig)
	}
	if c.Whisper.Language == "" {
		return fmt.Errorf("%w: whisper.language is required", ErrInvalidConfig)
	}
	if c.Paths.Input == "" {
		return fmt.Errorf("%w: paths.input is required", ErrInvalidConfig)
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("%w: paths.output is required", ErrInvalidConfig)
	}

	if c.Caption.Aspect == "" {
		c.Caption.Aspect = string(caption.AspectVertical)
	}
	aspect, err := caption.ParseAspect(c.Caption.Aspect)
	if err != nil {
		return fmt.Errorf("%w: caption.aspect: %v", ErrInvalidConfig, err)
	}
	c.Caption.Aspect = string(aspect)
	if c.Caption.HighlightColor == "" {
		c.Caption.HighlightColor = "yellow"
	}
	if c.Caption.FontSize < 0 {
		return fmt.Errorf("%w: caption.font_size must be positive", ErrInvalidConfig)
	}
	for name, v := range map[string]*int{
		"outline_width": c.Caption.OutlineWidth,
		"shadow":        c.Caption.Shadow,
		"margin_v":      c.Caption.MarginV,
	} {
		if v != nil && *v < 0 {
			return fmt.Errorf("%w: caption.%s must not be negative", ErrInvalidConfig, name)
		}
	}
	if a := c.Caption.Alignment; a != nil && (*a < 1 || *a > 9) {
		return fmt.Errorf("%w: caption.alignment must be 1-9 (numpad layout), got %d", ErrInvalidConfig, *a)
	}

	if c.Render.Quality == "" {
		c.Render.Quality = "medium"
	}
	switch c.Render.Quality {
	case "fast", "medium", "high":
	default:
		return fmt.Errorf("%w: render.quality must be fast, medium or high, got %q", ErrInvalidConfig, c.Render.Quality)
	}

	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.ProbePath == "" {
		c.FFmpeg.ProbePath = "ffprobe"
	}
	if c.FFmpeg.Encoder == "" {
		c.FFmpeg.Encoder = "libx264"
	}
	if c.FFmpeg.AudioCodec == "" {
		c.FFmpeg.AudioCodec = "aac"
	}
	if c.FFmpeg.AudioBitrate == "" {
		c.FFmpeg.AudioBitrate = "192k"
	}
	if c.FFmpeg.FPS == 0 {
		c.FFmpeg.FPS = 30
	}
	if c.FFmpeg.Background == "" {
		c.FFmpeg.Background = "black"
	}

	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if len(c.Gemini.APIKeys) == 0 {
		c.Gemini.APIKeys = keysFromEnv()
	}

	return nil
}

func keysFromEnv() []string {
	raw := strings.TrimSpace(os.Getenv("GEMINI_API_KEYS"))
	if raw == "" {
		return nil
	}
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
