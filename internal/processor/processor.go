package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/wordcast/internal/align"
	"github.com/nguyentantai21042004/wordcast/internal/caption"
	"github.com/nguyentantai21042004/wordcast/internal/logger"
	"github.com/nguyentantai21042004/wordcast/internal/renderer"
)

// previewWords is how many recognized words are echoed to the log
const previewWords = 5

// Process orchestrates the entire captioned-video pipeline
func (p *implProcessor) Process(ctx context.Context, req Request) (Result, error) {
	startTime := time.Now()
	res := Result{JobID: uuid.NewString()}
	ctx = logger.WithJob(ctx, res.JobID)

	if _, err := os.Stat(req.AudioPath); err != nil {
		return res, fmt.Errorf("audio file: %w", err)
	}
	switch req.Quality {
	case "", "fast", "medium", "high":
	default:
		return res, fmt.Errorf("unknown quality %q: want fast, medium or high", req.Quality)
	}

	layout, err := p.layoutFor(req)
	if err != nil {
		return res, fmt.Errorf("layout: %w", err)
	}

	reference, transcriptPath, err := p.readReference(req)
	if err != nil {
		return res, fmt.Errorf("read transcript: %w", err)
	}

	title := baseName(req.AudioPath)
	res.OutputPath = req.OutputPath
	if res.OutputPath == "" {
		res.OutputPath = filepath.Join(p.cfg.Paths.Output, title+".mp4")
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting job: %s", req.AudioPath)
	p.logger.Info(ctx, "========================================")

	workDir, err := p.createWorkDir(res.JobID)
	if err != nil {
		return res, err
	}
	res.TempDir = workDir
	if req.KeepTemp {
		defer p.logger.Info(ctx, "Temp files kept in: %s", workDir)
	} else {
		defer p.cleanupTempDir(ctx, workDir)
	}

	// Step 1: Recognize word timings
	p.logger.Info(ctx, "[1/4] Recognizing speech")
	recognition, err := p.recognizer.Recognize(ctx, req.AudioPath, workDir)
	if err != nil {
		return res, fmt.Errorf("recognize: %w", err)
	}
	p.logWordPreview(ctx, recognition.Words)

	// Step 2: Reconcile with the reference transcript
	p.logger.Info(ctx, "[2/4] Aligning transcript")
	res.Alignment = align.Reconcile(recognition.Words, reference)
	if res.Alignment.Reconciled() {
		p.logger.Info(ctx, "Transcript aligned: %s", res.Alignment.Detail())
	} else if res.Alignment.Reason == align.ReasonCountMismatch {
		p.logger.Warn(ctx, "Using recognized text, %s", res.Alignment.Detail())
	} else {
		p.logger.Debug(ctx, "Using recognized text, %s", res.Alignment.Detail())
	}

	// Step 3: Build the subtitle document
	p.logger.Info(ctx, "[3/4] Building subtitles (%s, %d words per line)", layoutAspect(layout), layout.MaxWordsPerLine)
	doc, err := caption.Generate(res.Alignment.Words, layout)
	if err != nil {
		return res, fmt.Errorf("build subtitles: %w", err)
	}
	res.Events = len(doc.Events)

	subtitlePath := filepath.Join(workDir, "subtitles.ass")
	if err := WriteDocument(subtitlePath, doc); err != nil {
		return res, fmt.Errorf("write subtitles: %w", err)
	}

	res.Duration = recognition.Duration
	if res.Duration <= 0 && len(res.Alignment.Words) > 0 {
		res.Duration = res.Alignment.Words[len(res.Alignment.Words)-1].End
	}

	// Step 4: Render the video
	p.logger.Info(ctx, "[4/4] Rendering video")
	err = p.renderer.Render(ctx, renderer.Job{
		AudioPath:    req.AudioPath,
		SubtitlePath: subtitlePath,
		OutputPath:   res.OutputPath,
		Duration:     res.Duration,
		Width:        layout.Width,
		Height:       layout.Height,
		Quality:      req.Quality,
	})
	if err != nil {
		return res, fmt.Errorf("render: %w", err)
	}

	// Copy subtitles next to the video
	assOutput := strings.TrimSuffix(res.OutputPath, filepath.Ext(res.OutputPath)) + ".ass"
	if err := copyFile(subtitlePath, assOutput); err != nil {
		p.logger.Warn(ctx, "Failed to copy subtitles to output: %v", err)
	} else {
		res.SubtitlePath = assOutput
	}

	if req.Describe {
		p.describe(ctx, title, res.Alignment.Transcript, doc, filepath.Dir(res.OutputPath))
	}

	if req.Archive {
		if err := p.moveToArchived(ctx, req.AudioPath); err != nil {
			p.logger.Warn(ctx, "Failed to move audio to archived folder: %v", err)
		}
		if transcriptPath != "" {
			if err := p.moveToArchived(ctx, transcriptPath); err != nil {
				p.logger.Warn(ctx, "Failed to move transcript to archived folder: %v", err)
			}
		}
	}

	res.Elapsed = time.Since(startTime)
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Output video: %s%s", res.OutputPath, sizeSuffix(res.OutputPath))
	if res.SubtitlePath != "" {
		p.logger.Info(ctx, "Output subtitle: %s", res.SubtitlePath)
	}
	p.logger.Info(ctx, "Processing time: %s", res.Elapsed)
	p.logger.Info(ctx, "========================================")

	return res, nil
}

// ProcessFile runs the pipeline for a watched audio file with config defaults,
// archiving the input and describing it when Gemini keys are configured.
func (p *implProcessor) ProcessFile(ctx context.Context, audioPath string) error {
	_, err := p.Process(ctx, Request{
		AudioPath: audioPath,
		Archive:   true,
		Describe:  p.summarizer != nil && len(p.cfg.Gemini.APIKeys) > 0,
	})
	return err
}

func (p *implProcessor) layoutFor(req Request) (caption.Layout, error) {
	name := req.Aspect
	if name == "" {
		name = p.cfg.Caption.Aspect
	}
	aspect, err := caption.ParseAspect(name)
	if err != nil {
		return caption.Layout{}, err
	}

	opts := p.cfg.Caption.LayoutOptions()
	if req.FontSize > 0 {
		opts.FontSize = req.FontSize
	}
	if req.HighlightColor != "" {
		opts.HighlightColor = req.HighlightColor
	}
	return caption.NewLayout(aspect, opts)
}

func (p *implProcessor) logWordPreview(ctx context.Context, words []caption.WordTiming) {
	p.logger.Info(ctx, "Recognized %d words", len(words))
	for i, w := range words {
		if i == previewWords {
			p.logger.Debug(ctx, "  ... and %d more", len(words)-previewWords)
			break
		}
		p.logger.Debug(ctx, "  %.2fs - %.2fs: %s", w.Start, w.End, w.Text)
	}
}

func (p *implProcessor) describe(ctx context.Context, title, transcript string, doc *caption.Document, destDir string) {
	transcriptDocx := filepath.Join(destDir, title+"_transcript.docx")
	if err := writeTranscriptDocx(title, doc, transcriptDocx); err != nil {
		p.logger.Warn(ctx, "Failed to write transcript docx: %v", err)
	}

	if p.summarizer == nil {
		p.logger.Warn(ctx, "Description requested but no summarizer configured")
		return
	}
	if _, err := p.summarizer.Describe(ctx, title, transcript, destDir); err != nil {
		p.logger.Warn(ctx, "Failed to write description: %v", err)
	}
}

func layoutAspect(l caption.Layout) string {
	if l.Width < l.Height {
		return string(caption.AspectVertical)
	}
	return string(caption.AspectHorizontal)
}

func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func sizeSuffix(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	return fmt.Sprintf(" (%.1f MB)", float64(info.Size())/(1024*1024))
}
