package summarizer

import (
	"sync"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/wordcast/internal/logger"
)

type implSummarizer struct {
	apiKeys  []string
	logger   logger.Logger
	model    string
	generate generateFunc

	// mu guards the key rotation state, shared by concurrent watch jobs
	mu         sync.Mutex
	currentKey int
	clients    map[int]*genai.Client
}

// New creates a Summarizer that rotates through the supplied Gemini API keys.
func New(apiKeys []string, model string, log logger.Logger) Summarizer {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	s := &implSummarizer{
		apiKeys: apiKeys,
		logger:  log,
		model:   model,
		clients: map[int]*genai.Client{},
	}
	s.generate = s.callGemini
	return s
}
