package renderer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/wordcast/internal/config"
	"github.com/nguyentantai21042004/wordcast/internal/logger"
	"github.com/nguyentantai21042004/wordcast/pkg/executor/executortest"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.Temp = filepath.Join(t.TempDir(), "temp")
	return cfg
}

func testJob(t *testing.T) Job {
	t.Helper()
	dir := t.TempDir()
	sub := filepath.Join(dir, "subs.ass")
	require.NoError(t, os.WriteFile(sub, []byte("[Script Info]\n"), 0644))
	return Job{
		AudioPath:    filepath.Join(dir, "voice.mp3"),
		SubtitlePath: sub,
		OutputPath:   filepath.Join(dir, "out", "video.mp4"),
		Duration:     12.5,
		Width:        1080,
		Height:       1920,
	}
}

// writeOutput emulates ffmpeg producing its final argument
func writeOutput(call executortest.Call) (string, error) {
	if _, err := os.Stat(filepath.Join(call.Dir, subtitleName)); err != nil {
		return "", err
	}
	return "", os.WriteFile(call.Args[len(call.Args)-1], []byte("mp4"), 0644)
}

func TestRenderSoftwareEncoder(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	fake := executortest.New().On("ffmpeg", writeOutput)
	job := testJob(t)
	job.Quality = "high"

	require.NoError(t, New(cfg, fake, logger.Nop()).Render(context.Background(), job))

	calls := fake.CallsTo("ffmpeg")
	require.Len(t, calls, 1)
	call := calls[0]
	assert.Equal(t, "13.500", call.ArgAfter("-t"))
	assert.Equal(t, "lavfi", call.ArgAfter("-f"))
	assert.Equal(t, "color=c=black:s=1080x1920:r=30", call.Args[indexOf(call.Args, "lavfi")+2])
	assert.Equal(t, "subtitles=subtitle.ass", call.ArgAfter("-vf"))
	assert.Equal(t, "libx264", call.ArgAfter("-c:v"))
	assert.Equal(t, "slow", call.ArgAfter("-preset"))
	assert.Equal(t, "18", call.ArgAfter("-crf"))
	assert.Equal(t, "yuv420p", call.ArgAfter("-pix_fmt"))
	assert.Equal(t, "aac", call.ArgAfter("-c:a"))
	assert.Equal(t, "192k", call.ArgAfter("-b:a"))
	assert.True(t, call.Has("-shortest"))

	data, err := os.ReadFile(job.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "mp4", string(data))

	_, err = os.Stat(call.Dir)
	assert.True(t, os.IsNotExist(err), "temp dir should be removed")
}

func TestRenderFallsBackToSoftwareEncoder(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.FFmpeg.Encoder = "h264_videotoolbox"
	cfg.FFmpeg.VideoBitrate = "5M"
	cfg.FFmpeg.Preset = "quality"

	fake := executortest.New().On("ffmpeg", func(call executortest.Call) (string, error) {
		if call.ArgAfter("-c:v") == "h264_videotoolbox" {
			assert.Equal(t, "5M", call.ArgAfter("-b:v"))
			assert.Equal(t, "quality", call.ArgAfter("-preset"))
			assert.False(t, call.Has("-crf"))
			return "", errors.New("encoder unavailable")
		}
		return writeOutput(call)
	})

	require.NoError(t, New(cfg, fake, logger.Nop()).Render(context.Background(), testJob(t)))

	calls := fake.CallsTo("ffmpeg")
	require.Len(t, calls, 2)
	assert.Equal(t, "libx264", calls[1].ArgAfter("-c:v"))
	assert.Equal(t, "medium", calls[1].ArgAfter("-preset"))
	assert.Equal(t, "23", calls[1].ArgAfter("-crf"))
}

func TestRenderSoftwareFailureIsReturned(t *testing.T) {
	t.Parallel()

	fake := executortest.New().On("ffmpeg", func(executortest.Call) (string, error) {
		return "", errors.New("invalid subtitle")
	})

	err := New(testConfig(t), fake, logger.Nop()).Render(context.Background(), testJob(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ffmpeg render")
	assert.Len(t, fake.CallsTo("ffmpeg"), 1)
}

func TestRenderMissingBinary(t *testing.T) {
	t.Parallel()

	fake := executortest.New().Missing("ffmpeg")
	err := New(testConfig(t), fake, logger.Nop()).Render(context.Background(), testJob(t))
	require.ErrorIs(t, err, ErrBinaryNotFound)
	assert.Empty(t, fake.Calls())
}

func TestRenderWithoutDurationOmitsLimit(t *testing.T) {
	t.Parallel()

	fake := executortest.New().On("ffmpeg", writeOutput)
	job := testJob(t)
	job.Duration = 0
	job.Quality = "fast"

	require.NoError(t, New(testConfig(t), fake, logger.Nop()).Render(context.Background(), job))
	call := fake.CallsTo("ffmpeg")[0]
	assert.False(t, call.Has("-t"))
	assert.Equal(t, "ultrafast", call.ArgAfter("-preset"))
}

func TestQualityFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Quality{Preset: "ultrafast", CRF: 28}, QualityFor("fast"))
	assert.Equal(t, Quality{Preset: "medium", CRF: 23}, QualityFor("medium"))
	assert.Equal(t, Quality{Preset: "slow", CRF: 18}, QualityFor("high"))
	assert.Equal(t, Quality{Preset: "medium", CRF: 23}, QualityFor("bogus"))
}

func indexOf(args []string, v string) int {
	for i, a := range args {
		if a == v {
			return i
		}
	}
	return -1
}

func TestRenderHardwareEncoderWithoutPreset(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.FFmpeg.Encoder = "h264_nvenc"
	fake := executortest.New().On("ffmpeg", writeOutput)

	require.NoError(t, New(cfg, fake, logger.Nop()).Render(context.Background(), testJob(t)))
	call := fake.CallsTo("ffmpeg")[0]
	assert.Equal(t, "h264_nvenc", call.ArgAfter("-c:v"))
	assert.False(t, call.Has("-preset"))
	assert.False(t, call.Has("-b:v"))
}
