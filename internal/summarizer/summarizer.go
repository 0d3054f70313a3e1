package summarizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"google.golang.org/genai"
)

const systemInstruction = "You write descriptions for short narrated videos. Always answer in the language of the transcript."

const descriptionPrompt = `Write a video description for the transcript below.

Requirements:
- Start with a one-line hook that captures the topic
- Follow with 2-4 short paragraphs covering the main points in the order they are spoken
- End with a "Key points" bullet list
- Suggest 5 relevant hashtags on the last line
- Use markdown: headings, bullet points, bold for key terms

Transcript:
---
%s
---`

type generateFunc func(ctx context.Context, prompt string) (string, error)

// Describe asks Gemini for a description of the transcript and writes it as
// markdown and docx.
func (s *implSummarizer) Describe(ctx context.Context, title, transcript, destDir string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", fmt.Errorf("empty transcript")
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("create dest dir: %w", err)
	}

	summary, err := s.generate(ctx, fmt.Sprintf(descriptionPrompt, transcript))
	if err != nil {
		return "", fmt.Errorf("generate description: %w", err)
	}

	md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n",
		title,
		time.Now().Format("2006-01-02 15:04"),
		summary,
	)

	mdPath := filepath.Join(destDir, title+".md")
	if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", mdPath, err)
	}

	docxPath := filepath.Join(destDir, title+".docx")
	if err := markdownToDocx(title, summary, docxPath); err != nil {
		s.logger.Warn(ctx, "Failed to write %s: %v", docxPath, err)
	}

	s.logger.Info(ctx, "Description written: %s", mdPath)
	return mdPath, nil
}

// DescribeAll describes every transcript in srcDir, continuing past failures.
func (s *implSummarizer) DescribeAll(ctx context.Context, srcDir, destDir string) error {
	files, err := discoverTranscripts(srcDir)
	if err != nil {
		return fmt.Errorf("discover transcripts: %w", err)
	}

	if len(files) == 0 {
		s.logger.Info(ctx, "No transcripts found in %s", srcDir)
		return nil
	}

	s.logger.Info(ctx, "Found %d transcripts to describe", len(files))

	successCount := 0
	failCount := 0

	for i, path := range files {
		title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		s.logger.Info(ctx, "[%d/%d] Describing: %s", i+1, len(files), title)

		content, err := os.ReadFile(path)
		if err != nil {
			s.logger.Error(ctx, "Failed to read %s: %v", path, err)
			failCount++
			continue
		}

		if _, err := s.Describe(ctx, title, string(content), destDir); err != nil {
			s.logger.Error(ctx, "Failed to describe %s: %v", title, err)
			failCount++
			continue
		}

		successCount++
	}

	s.logger.Info(ctx, "Descriptions complete: %d success, %d failed", successCount, failCount)
	if successCount == 0 {
		return fmt.Errorf("all %d descriptions failed", failCount)
	}
	return nil
}

// callGemini sends the prompt to Gemini and returns the text.
// A rate-limited key is skipped in favor of the next one.
func (s *implSummarizer) callGemini(ctx context.Context, prompt string) (string, error) {
	if len(s.apiKeys) == 0 {
		return "", ErrNoAPIKeys
	}

	temperature := float32(0.4)
	config := &genai.GenerateContentConfig{
		Temperature: &temperature,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
	}

	var lastErr error
	for range s.apiKeys {
		client, key, err := s.client(ctx)
		if err != nil {
			lastErr = err
			s.rotateFrom(key)
			continue
		}

		result, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), config)
		if err != nil {
			if !isRateLimited(err) {
				return "", fmt.Errorf("generate content: %w", err)
			}
			s.logger.Warn(ctx, "Key %d rate limited, rotating...", key+1)
			lastErr = err
			s.rotateFrom(key)
			continue
		}

		text := responseText(result)
		if text == "" {
			return "", fmt.Errorf("empty response from Gemini")
		}
		return text, nil
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

// client returns the cached client for the current key and that key's index
func (s *implSummarizer) client(ctx context.Context) (*genai.Client, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.currentKey
	if c, ok := s.clients[key]; ok {
		return c, key, nil
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  s.apiKeys[key],
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, key, fmt.Errorf("create client: %w", err)
	}
	s.clients[key] = c
	return c, key, nil
}

// rotateFrom moves past key unless another job already has
func (s *implSummarizer) rotateFrom(key int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentKey == key {
		s.currentKey = (key + 1) % len(s.apiKeys)
	}
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func responseText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return strings.TrimSpace(b.String())
}

func discoverTranscripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if strings.ToLower(filepath.Ext(e.Name())) == ".txt" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}
