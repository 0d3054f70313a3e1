package processor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/wordcast/internal/caption"
	"github.com/nguyentantai21042004/wordcast/internal/summarizer"
)

// WriteDocument writes doc to path as an ASS file
func WriteDocument(path string, doc *caption.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := doc.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// readReference returns the reference transcript and the file it came from.
// An explicit path must exist; the sibling .txt is optional.
func (p *implProcessor) readReference(req Request) (string, string, error) {
	path := req.TranscriptPath
	if path == "" {
		sibling := strings.TrimSuffix(req.AudioPath, filepath.Ext(req.AudioPath)) + ".txt"
		if _, err := os.Stat(sibling); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", "", nil
			}
			return "", "", err
		}
		path = sibling
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	return string(data), path, nil
}

func writeTranscriptDocx(title string, doc *caption.Document, path string) error {
	return summarizer.WriteTranscriptDocx(title, doc.Lines, path)
}
