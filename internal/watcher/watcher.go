package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/wordcast/internal/logger"
)

var audioFormats = []string{".mp3", ".wav", ".m4a", ".flac", ".ogg", ".aac"}

type implWatcher struct {
	inputDir      string
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     *semaphore
	settle        time.Duration
	wg            sync.WaitGroup
}

// Start picks up audio already waiting in the input directory, then monitors
// it for new files until ctx is cancelled.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inputDir)
	w.logger.Info(ctx, "Supported formats: %s", strings.Join(audioFormats, ", "))

	pending, err := w.existingFiles()
	if err != nil {
		w.logger.Warn(ctx, "Failed to scan %s: %v", w.inputDir, err)
	}
	// A file created between New and Start shows up in the scan and as a
	// queued CREATE event; scanned remembers it so it is only handled once.
	scanned := make(map[string]os.FileInfo, len(pending))
	for _, path := range pending {
		if info, err := os.Stat(path); err == nil {
			scanned[filepath.Clean(path)] = info
		}
	}
	for _, path := range pending {
		w.logger.Info(ctx, "Queued existing audio: %s", path)
		if err := w.dispatch(ctx, path); err != nil {
			return w.shutdown(ctx, err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return w.shutdown(ctx, ctx.Err())

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			// Only process CREATE events
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isAudioFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-audio file: %s", event.Name)
				continue
			}

			if alreadyScanned(scanned, event.Name) {
				w.logger.Debug(ctx, "Skipping %s, picked up by the startup scan", event.Name)
				continue
			}

			w.logger.Info(ctx, "New audio detected: %s", event.Name)

			// Small delay to ensure file is fully written
			select {
			case <-time.After(w.settle):
			case <-ctx.Done():
				return w.shutdown(ctx, ctx.Err())
			}

			if err := w.dispatch(ctx, event.Name); err != nil {
				return w.shutdown(ctx, err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// dispatch hands the file to the handler once a slot is free
func (w *implWatcher) dispatch(ctx context.Context, path string) error {
	if err := w.semaphore.acquire(ctx); err != nil {
		return err
	}
	w.logger.Debug(ctx, "Dispatching %s (%d/%d slots busy)", filepath.Base(path), w.semaphore.busy(), w.maxConcurrent)
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.semaphore.release()

		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", path, err)
		}
	}()
	return nil
}

func (w *implWatcher) shutdown(ctx context.Context, err error) error {
	w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
	w.wg.Wait()
	w.logger.Info(ctx, "File watcher stopped")
	return err
}

func (w *implWatcher) existingFiles() ([]string, error) {
	entries, err := os.ReadDir(w.inputDir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if isAudioFile(e.Name()) {
			files = append(files, filepath.Join(w.inputDir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// alreadyScanned reports whether path is the same file the startup scan
// dispatched. The entry is consumed so a later file under the same name is
// handled normally.
func alreadyScanned(scanned map[string]os.FileInfo, path string) bool {
	path = filepath.Clean(path)
	prev, ok := scanned[path]
	if !ok {
		return false
	}
	delete(scanned, path)
	info, err := os.Stat(path)
	if err != nil {
		// moved away by the handler already
		return true
	}
	return os.SameFile(prev, info)
}

// isAudioFile checks if the file has a supported audio extension
func isAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range audioFormats {
		if ext == format {
			return true
		}
	}
	return false
}
