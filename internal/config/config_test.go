package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/wordcast/internal/caption"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Whisper: WhisperConfig{
					ModelPath:  "models/test.bin",
					BinaryPath: "./whisper",
					Language:   "en",
				},
				Paths: PathsConfig{
					Input:  "data/input",
					Output: "data/output",
				},
			},
			wantErr: false,
		},
		{
			name: "missing model path",
			config: Config{
				Whisper: WhisperConfig{
					BinaryPath: "./whisper",
					Language:   "en",
				},
				Paths: PathsConfig{
					Input:  "data/input",
					Output: "data/output",
				},
			},
			wantErr: true,
		},
		{
			name: "missing paths",
			config: Config{
				Whisper: WhisperConfig{
					ModelPath:  "models/test.bin",
					BinaryPath: "./whisper",
					Language:   "en",
				},
				Paths: PathsConfig{},
			},
			wantErr: true,
		},
		{
			name: "unknown aspect",
			config: Config{
				Whisper: WhisperConfig{
					ModelPath:  "models/test.bin",
					BinaryPath: "./whisper",
					Language:   "en",
				},
				Caption: CaptionConfig{Aspect: "square"},
				Paths: PathsConfig{
					Input:  "data/input",
					Output: "data/output",
				},
			},
			wantErr: true,
		},
		{
			name: "unknown quality",
			config: Config{
				Whisper: WhisperConfig{
					ModelPath:  "models/test.bin",
					BinaryPath: "./whisper",
					Language:   "en",
				},
				Render: RenderConfig{Quality: "ultra"},
				Paths: PathsConfig{
					Input:  "data/input",
					Output: "data/output",
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestValidateFillsDefaults(t *testing.T) {
	cfg := Config{
		Whisper: WhisperConfig{ModelPath: "m.bin", BinaryPath: "whisper-cli", Language: "en"},
		Caption: CaptionConfig{Aspect: "long"},
		Paths:   PathsConfig{Input: "in", Output: "out"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Caption.Aspect != "horizontal" {
		t.Errorf("Aspect = %v, want %v", cfg.Caption.Aspect, "horizontal")
	}
	if cfg.Render.Quality != "medium" {
		t.Errorf("Quality = %v, want %v", cfg.Render.Quality, "medium")
	}
	if cfg.FFmpeg.FPS != 30 {
		t.Errorf("FPS = %v, want %v", cfg.FFmpeg.FPS, 30)
	}
	if cfg.Paths.Temp != "data/temp" {
		t.Errorf("Temp = %v, want %v", cfg.Paths.Temp, "data/temp")
	}
	if cfg.Performance.MaxConcurrent != 2 {
		t.Errorf("MaxConcurrent = %v, want %v", cfg.Performance.MaxConcurrent, 2)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
	if cfg.Caption.Aspect != "vertical" {
		t.Errorf("Aspect = %v, want %v", cfg.Caption.Aspect, "vertical")
	}
}

func TestLoad(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
whisper:
  model_path: "models/test.bin"
  binary_path: "./whisper"
  language: "en"
  prompt: "test"

ffmpeg:
  video_bitrate: "5M"
  encoder: "h264_videotoolbox"

caption:
  aspect: "horizontal"
  font_size: 72
  highlight_color: "cyan"

paths:
  input: "data/input"
  output: "data/output"

logging:
  level: "info"
  format: "text"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Whisper.ModelPath != "models/test.bin" {
		t.Errorf("ModelPath = %v, want %v", cfg.Whisper.ModelPath, "models/test.bin")
	}
	if cfg.Paths.Input != "data/input" {
		t.Errorf("Input = %v, want %v", cfg.Paths.Input, "data/input")
	}
	if cfg.Caption.FontSize != 72 {
		t.Errorf("FontSize = %v, want %v", cfg.Caption.FontSize, 72)
	}
	if cfg.FFmpeg.Encoder != "h264_videotoolbox" {
		t.Errorf("Encoder = %v, want %v", cfg.FFmpeg.Encoder, "h264_videotoolbox")
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[whisper]
model_path = "models/test.bin"
binary_path = "whisper-cli"
language = "en"

[caption]
aspect = "vertical"
highlight_color = "green"

[paths]
input = "in"
output = "out"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Caption.HighlightColor != "green" {
		t.Errorf("HighlightColor = %v, want %v", cfg.Caption.HighlightColor, "green")
	}
	if cfg.Paths.Output != "out" {
		t.Errorf("Output = %v, want %v", cfg.Paths.Output, "out")
	}
}

func TestLoadZeroCaptionOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
whisper:
  model_path: "models/test.bin"
  binary_path: "whisper-cli"
  language: "en"
paths:
  input: "in"
  output: "out"
caption:
  outline_width: 0
  shadow: 0
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Caption.OutlineWidth == nil || *cfg.Caption.OutlineWidth != 0 {
		t.Fatalf("OutlineWidth = %v, want explicit 0", cfg.Caption.OutlineWidth)
	}
	if cfg.Caption.MarginV != nil {
		t.Errorf("MarginV = %v, want unset", *cfg.Caption.MarginV)
	}

	layout, err := caption.NewLayout(caption.AspectVertical, cfg.Caption.LayoutOptions())
	if err != nil {
		t.Fatalf("NewLayout() error = %v", err)
	}
	if layout.OutlineWidth != 0 {
		t.Errorf("layout OutlineWidth = %d, want 0", layout.OutlineWidth)
	}
	if layout.Shadow != 0 {
		t.Errorf("layout Shadow = %d, want 0", layout.Shadow)
	}
	if layout.MarginV != 50 {
		t.Errorf("layout MarginV = %d, want default 50", layout.MarginV)
	}
}

func TestValidateCaptionOverrides(t *testing.T) {
	negative, badAlign := -1, 10
	for name, cc := range map[string]CaptionConfig{
		"negative outline": {OutlineWidth: &negative},
		"alignment range":  {Alignment: &badAlign},
	} {
		cfg := Default()
		cfg.Whisper.ModelPath = "models/test.bin"
		cfg.Caption = cc
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: Validate() error = %v, want ErrInvalidConfig", name, err)
		}
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestLoadOrDefault(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := LoadOrDefault(missing, false)
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.Whisper.BinaryPath != "whisper-cli" {
		t.Errorf("BinaryPath = %v, want %v", cfg.Whisper.BinaryPath, "whisper-cli")
	}

	if _, err := LoadOrDefault(missing, true); err == nil {
		t.Error("LoadOrDefault() should fail for a missing explicit config")
	}
}
