package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/wordcast/internal/watcher"
)

const watchLockName = "wordcast-watch.lock"

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the input folder and caption every audio file dropped into it",
		Long: `Watch paths.input for new audio files. A sibling <name>.txt is used as the
reference transcript. Finished inputs are moved to paths.archived.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			log := ctx.logger(cfg)
			runCtx := cmd.Context()

			if err := ensureDirectories(cfg); err != nil {
				return err
			}

			lockPath := filepath.Join(cfg.Paths.Temp, watchLockName)
			lock := flock.New(lockPath)
			ok, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire lock: %w", err)
			}
			if !ok {
				return fmt.Errorf("another watcher is already running (lock %s)", lockPath)
			}
			defer func() {
				if err := lock.Unlock(); err != nil {
					log.Warn(runCtx, "Failed to release watch lock: %v", err)
				}
			}()

			log.Info(runCtx, "========================================")
			log.Info(runCtx, "wordcast watch mode")
			log.Info(runCtx, "========================================")
			log.Info(runCtx, "System: %s/%s, CPU cores: %d", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
			log.Info(runCtx, "Monitoring: %s", cfg.Paths.Input)
			log.Info(runCtx, "Output: %s", cfg.Paths.Output)
			log.Info(runCtx, "Format: %s, quality: %s", cfg.Caption.Aspect, cfg.Render.Quality)
			log.Info(runCtx, "Whisper: %d threads, FFmpeg: %s encoder", cfg.Whisper.Threads, cfg.FFmpeg.Encoder)
			if len(cfg.Gemini.APIKeys) > 0 {
				log.Info(runCtx, "Descriptions: enabled (%d keys)", len(cfg.Gemini.APIKeys))
			}
			log.Info(runCtx, "Press Ctrl+C to stop")

			proc := ctx.processor(cfg, log)
			w, err := watcher.New(cfg.Paths.Input, proc.ProcessFile, log, cfg.Performance.MaxConcurrent)
			if err != nil {
				return err
			}
			defer w.Stop()

			if err := w.Start(runCtx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("watcher: %w", err)
			}
			log.Info(context.Background(), "Watch mode stopped")
			return nil
		},
	}
}
