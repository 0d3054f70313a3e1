package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// createWorkDir makes an isolated temp dir for one job under paths.temp
func (p *implProcessor) createWorkDir(jobID string) (string, error) {
	if err := os.MkdirAll(p.cfg.Paths.Temp, 0755); err != nil {
		return "", fmt.Errorf("create temp root: %w", err)
	}
	dir, err := os.MkdirTemp(p.cfg.Paths.Temp, "job-"+jobID[:8]+"-*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	return dir, nil
}

// moveToArchived moves a processed input to the archived folder
func (p *implProcessor) moveToArchived(ctx context.Context, path string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}
	destPath := filepath.Join(p.cfg.Paths.Archived, filepath.Base(path))

	p.logger.Info(ctx, "Moving to archived folder: %s -> %s", path, destPath)

	if err := os.Rename(path, destPath); err != nil {
		// Rename fails across filesystems
		if err := copyFile(path, destPath); err != nil {
			return fmt.Errorf("move to archived: %w", err)
		}
		return os.Remove(path)
	}
	return nil
}

// cleanupTempDir removes a job's temp dir, logs warning if fails
func (p *implProcessor) cleanupTempDir(ctx context.Context, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup temp dir %s: %v", dir, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up temp dir: %s", dir)
	}
}

// copyFile copies a file from src to dst
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("create destination dir: %w", err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("write destination: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("write destination: %w", err)
	}
	return out.Close()
}
