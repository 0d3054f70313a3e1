package renderer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

const (
	softwareEncoder = "libx264"
	subtitleName    = "subtitle.ass"
)

// Render burns the subtitle document onto a solid background under the audio.
// ffmpeg runs inside an isolated temp dir and references the subtitle by a
// relative name, which sidesteps filter-graph escaping of absolute paths.
func (r *implRenderer) Render(ctx context.Context, job Job) error {
	if _, err := r.executor.LookPath(r.ffmpeg.BinaryPath); err != nil {
		return fmt.Errorf("%w (%s): install it with `brew install ffmpeg` or `sudo apt-get install ffmpeg`", ErrBinaryNotFound, r.ffmpeg.BinaryPath)
	}

	if err := os.MkdirAll(filepath.Dir(job.OutputPath), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.MkdirAll(r.tempRoot, 0755); err != nil {
		return fmt.Errorf("create temp root: %w", err)
	}

	workDir, err := os.MkdirTemp(r.tempRoot, "render-*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	if err := copyFile(job.SubtitlePath, filepath.Join(workDir, subtitleName)); err != nil {
		return fmt.Errorf("copy subtitle to temp: %w", err)
	}

	absAudio, err := filepath.Abs(job.AudioPath)
	if err != nil {
		return fmt.Errorf("resolve audio path: %w", err)
	}
	tempOutput := filepath.Join(workDir, "output.mp4")

	r.logger.Info(ctx, "Rendering %dx%d video (encoder %s): %s", job.Width, job.Height, r.ffmpeg.Encoder, job.OutputPath)

	encoder := r.ffmpeg.Encoder
	if _, err := r.executor.ExecuteInDir(ctx, workDir, r.ffmpeg.BinaryPath, r.buildArgs(job, absAudio, tempOutput, encoder)...); err != nil {
		if encoder == softwareEncoder {
			return fmt.Errorf("ffmpeg render: %w", err)
		}
		r.logger.Warn(ctx, "Encoder %s failed, trying software encoder: %v", encoder, err)
		if _, err := r.executor.ExecuteInDir(ctx, workDir, r.ffmpeg.BinaryPath, r.buildArgs(job, absAudio, tempOutput, softwareEncoder)...); err != nil {
			return fmt.Errorf("both hardware and software encoders failed: %w", err)
		}
	}

	if err := os.Rename(tempOutput, job.OutputPath); err != nil {
		if err := copyFile(tempOutput, job.OutputPath); err != nil {
			return fmt.Errorf("move output to final location: %w", err)
		}
	}

	r.logger.Info(ctx, "Video rendered: %s", job.OutputPath)
	return nil
}

func (r *implRenderer) buildArgs(job Job, audioPath, outputPath, encoder string) []string {
	args := []string{"-y", "-hide_banner", "-loglevel", "error"}

	if job.Duration > 0 {
		// one second of slack so the trailing caption is not clipped
		args = append(args, "-t", strconv.FormatFloat(job.Duration+1, 'f', 3, 64))
	}

	args = append(args,
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=%s:s=%dx%d:r=%d", r.ffmpeg.Background, job.Width, job.Height, r.ffmpeg.FPS),
		"-i", audioPath,
		"-vf", "subtitles="+subtitleName,
		"-shortest",
		"-c:v", encoder,
	)

	if encoder == softwareEncoder {
		name := job.Quality
		if name == "" {
			name = r.quality
		}
		q := QualityFor(name)
		args = append(args,
			"-preset", q.Preset,
			"-crf", strconv.Itoa(q.CRF),
		)
	} else {
		if r.ffmpeg.Preset != "" {
			args = append(args, "-preset", r.ffmpeg.Preset)
		}
		if r.ffmpeg.VideoBitrate != "" {
			args = append(args, "-b:v", r.ffmpeg.VideoBitrate)
		}
	}

	args = append(args,
		"-pix_fmt", "yuv420p",
		"-c:a", r.ffmpeg.AudioCodec,
		"-b:a", r.ffmpeg.AudioBitrate,
		outputPath,
	)
	return args
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy: %w", err)
	}
	return out.Close()
}
