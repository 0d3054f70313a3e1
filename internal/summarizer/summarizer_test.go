package summarizer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/wordcast/internal/caption"
	"github.com/nguyentantai21042004/wordcast/internal/logger"
)

func newStubbed(reply string, err error) (*implSummarizer, *[]string) {
	s := New(nil, "", logger.Nop()).(*implSummarizer)
	var prompts []string
	s.generate = func(_ context.Context, prompt string) (string, error) {
		prompts = append(prompts, prompt)
		return reply, err
	}
	return s, &prompts
}

func TestDescribeWritesMarkdownAndDocx(t *testing.T) {
	s, prompts := newStubbed("## Hook\n\n- **fast** captions\n", nil)
	dest := t.TempDir()

	mdPath, err := s.Describe(context.Background(), "episode", "the best way to learn", dest)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dest, "episode.md"), mdPath)

	md, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(md), "# episode\n"))
	require.Contains(t, string(md), "- **fast** captions")

	require.FileExists(t, filepath.Join(dest, "episode.docx"))
	require.Len(t, *prompts, 1)
	require.Contains(t, (*prompts)[0], "the best way to learn")
}

func TestDescribeRejectsEmptyTranscript(t *testing.T) {
	s, prompts := newStubbed("unused", nil)

	_, err := s.Describe(context.Background(), "empty", "  \n", t.TempDir())
	require.Error(t, err)
	require.Empty(t, *prompts)
}

func TestDescribeWithoutKeys(t *testing.T) {
	s := New(nil, "", logger.Nop())

	_, err := s.Describe(context.Background(), "episode", "some words", t.TempDir())
	require.ErrorIs(t, err, ErrNoAPIKeys)
}

func TestDescribeAllSkipsFailures(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("first transcript"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "b.txt"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "c.wav"), []byte("audio"), 0644))

	s, prompts := newStubbed("summary", nil)
	require.NoError(t, s.DescribeAll(context.Background(), src, dest))

	require.Len(t, *prompts, 1)
	require.FileExists(t, filepath.Join(dest, "a.md"))
	require.NoFileExists(t, filepath.Join(dest, "b.md"))
}

func TestDescribeAllFailsWhenNothingSucceeds(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("words"), 0644))

	s := New(nil, "", logger.Nop())
	require.Error(t, s.DescribeAll(context.Background(), src, t.TempDir()))
}

func TestDiscoverTranscripts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.txt", "a.TXT", ".hidden.txt", "clip.mp3"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.txt"), 0755))

	files, err := discoverTranscripts(dir)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "a.TXT"), filepath.Join(dir, "b.txt")}, files)
}

func TestWriteTranscriptDocx(t *testing.T) {
	lines := []caption.Line{
		{{Text: "The", Start: 0, End: 0.2}, {Text: "best", Start: 0.25, End: 0.5}},
		{},
		{{Text: "way", Start: 1.2, End: 1.5}},
	}
	out := filepath.Join(t.TempDir(), "transcript.docx")

	require.NoError(t, WriteTranscriptDocx("clip", lines, out))

	info, err := os.Stat(out)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestStripInline(t *testing.T) {
	require.Equal(t, "bold and code", stripInline("**bold** and `code`"))
	require.Equal(t, "under", stripInline("__under__"))
}

func TestRotateFromWraps(t *testing.T) {
	s := New([]string{"k1", "k2"}, "", logger.Nop()).(*implSummarizer)
	s.rotateFrom(0)
	require.Equal(t, 1, s.currentKey)
	s.rotateFrom(1)
	require.Equal(t, 0, s.currentKey)
}

func TestRotateFromIgnoresStaleKey(t *testing.T) {
	s := New([]string{"k1", "k2", "k3"}, "", logger.Nop()).(*implSummarizer)
	s.rotateFrom(0)
	s.rotateFrom(0)
	require.Equal(t, 1, s.currentKey)
}

func TestConcurrentKeyRotation(t *testing.T) {
	keys := []string{"k1", "k2", "k3"}
	s := New(keys, "", logger.Nop()).(*implSummarizer)
	for i := range keys {
		// cached entries keep client() off the network
		s.clients[i] = nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, key, err := s.client(context.Background())
				if err != nil {
					t.Error(err)
					return
				}
				s.rotateFrom(key)
			}
		}()
	}
	wg.Wait()

	require.GreaterOrEqual(t, s.currentKey, 0)
	require.Less(t, s.currentKey, len(keys))
}

func TestConcurrentDescribe(t *testing.T) {
	s := New([]string{"k1", "k2"}, "", logger.Nop()).(*implSummarizer)
	s.generate = func(context.Context, string) (string, error) {
		_, key, err := s.client(context.Background())
		if err != nil {
			return "", err
		}
		s.rotateFrom(key)
		return "summary", nil
	}
	s.clients[0], s.clients[1] = nil, nil
	dest := t.TempDir()

	var wg sync.WaitGroup
	errs := make(chan error, 6)
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Describe(context.Background(), fmt.Sprintf("clip%d", i), "some words", dest)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	for i := 0; i < 6; i++ {
		require.FileExists(t, filepath.Join(dest, fmt.Sprintf("clip%d.md", i)))
	}
}

func TestParseMarkdown(t *testing.T) {
	blocks := parseMarkdown("# Title\n\nIntro **bold** text\n---\n- first\n* second\n### Deep")

	require.Equal(t, []block{
		{kind: blockHeading, level: 1, text: "Title"},
		{kind: blockParagraph, text: "Intro **bold** text"},
		{kind: blockBullet, text: "first"},
		{kind: blockBullet, text: "second"},
		{kind: blockHeading, level: 3, text: "Deep"},
	}, blocks)
}

func TestSpans(t *testing.T) {
	require.Equal(t, []span{
		{text: "Intro "},
		{text: "bold", bold: true},
		{text: " and code"},
	}, spans("Intro **bold** and `code`"))

	require.Equal(t, []span{{text: "key", bold: true}}, spans("**key**"))
	require.Nil(t, spans(""))
}

func TestIsRateLimited(t *testing.T) {
	require.True(t, isRateLimited(errors.New("Error 429, RESOURCE_EXHAUSTED")))
	require.True(t, isRateLimited(errors.New("quota exceeded")))
	require.False(t, isRateLimited(errors.New("invalid argument")))
}
