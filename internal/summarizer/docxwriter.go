package summarizer

import (
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/wordcast/internal/caption"
)

const (
	fontName  = "Times New Roman"
	bodySize  = 13
	titleSize = 16
	textColor = "000000"
	timeColor = "808080"
)

var (
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBullet  = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	reBold    = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

type blockKind int

const (
	blockParagraph blockKind = iota
	blockHeading
	blockBullet
)

// block is one rendered paragraph of a markdown description
type block struct {
	kind  blockKind
	level int
	text  string
}

// span is a run of text with uniform weight
type span struct {
	text string
	bold bool
}

// parseMarkdown reduces the subset of markdown Gemini produces to paragraphs
func parseMarkdown(markdown string) []block {
	var blocks []block
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "" || trimmed == "---":
		case reHeading.MatchString(trimmed):
			m := reHeading.FindStringSubmatch(trimmed)
			blocks = append(blocks, block{kind: blockHeading, level: len(m[1]), text: m[2]})
		case reBullet.MatchString(trimmed):
			m := reBullet.FindStringSubmatch(trimmed)
			blocks = append(blocks, block{kind: blockBullet, text: m[1]})
		default:
			blocks = append(blocks, block{kind: blockParagraph, text: trimmed})
		}
	}
	return blocks
}

// spans splits **bold** markers out of text
func spans(text string) []span {
	var out []span
	last := 0
	for _, loc := range reBold.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] > last {
			out = append(out, span{text: stripInline(text[last:loc[0]])})
		}
		out = append(out, span{text: stripInline(text[loc[2]:loc[3]]), bold: true})
		last = loc[1]
	}
	if last < len(text) {
		out = append(out, span{text: stripInline(text[last:])})
	}
	return out
}

// markdownToDocx writes a description as a styled docx file
func markdownToDocx(title, markdown, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	writeRun(doc.AddParagraph(""), stripInline(title), true, titleSize, textColor)

	for _, b := range parseMarkdown(markdown) {
		p := doc.AddParagraph("")
		switch b.kind {
		case blockHeading:
			writeRun(p, stripInline(b.text), true, headingSize(b.level), textColor)
		case blockBullet:
			writeRun(p, "• ", false, bodySize, textColor)
			writeSpans(p, spans(b.text))
		default:
			writeSpans(p, spans(b.text))
		}
	}

	return doc.SaveTo(outputPath)
}

// WriteTranscriptDocx writes caption lines as a timed transcript, one
// paragraph per on-screen line.
func WriteTranscriptDocx(title string, lines []caption.Line, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	writeRun(doc.AddParagraph(""), title, true, titleSize, textColor)
	doc.AddParagraph("")

	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		p := doc.AddParagraph("")
		writeRun(p, "["+caption.FormatTimecode(line.Start())+"] ", false, bodySize, timeColor)
		writeRun(p, line.Text(), false, bodySize, textColor)
	}

	return doc.SaveTo(outputPath)
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return titleSize
	case 2:
		return 15
	case 3:
		return 14
	default:
		return bodySize
	}
}

func writeRun(p *docx.Paragraph, text string, bold bool, size uint64, color string) {
	run := p.AddText(text).Font(fontName).Size(size).Color(color)
	if bold {
		run.Bold(true)
	}
}

func writeSpans(p *docx.Paragraph, ss []span) {
	for _, s := range ss {
		if s.text != "" {
			writeRun(p, s.text, s.bold, bodySize, textColor)
		}
	}
}

// stripInline drops the markers docx runs cannot express
func stripInline(s string) string {
	return strings.NewReplacer("**", "", "__", "", "`", "").Replace(s)
}
