package caption

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// trailingBuffer keeps each line on screen 0.3s past its last word
const trailingBuffer = 30

const (
	styleFormat = "Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding"
	eventFormat = "Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text"
	backColor   = "&H00000000"
)

// Event is one Dialogue line of the document
type Event struct {
	Start string
	End   string
	Text  string
}

// Document is a complete ASS subtitle script
type Document struct {
	Layout Layout
	Events []Event
	// Lines holds the words behind each event, index for index.
	Lines []Line
}

// BuildDocument turns lines into dialogue events, preserving their order
func BuildDocument(lines []Line, layout Layout) *Document {
	doc := &Document{
		Layout: layout,
		Events: make([]Event, 0, len(lines)),
		Lines:  make([]Line, 0, len(lines)),
	}
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		doc.Events = append(doc.Events, Event{
			Start: FormatTimecode(line.Start()),
			End:   formatCentiseconds(toCentiseconds(line.End()) + trailingBuffer),
			Text:  EncodeKaraoke(line),
		})
		doc.Lines = append(doc.Lines, line)
	}
	return doc
}

// Generate validates words, groups them with the layout's line limit and builds
// the document.
func Generate(words []WordTiming, layout Layout) (*Document, error) {
	if err := ValidateWords(words); err != nil {
		return nil, err
	}
	return BuildDocument(GroupLines(words, layout.MaxWordsPerLine, PauseThreshold), layout), nil
}

// WriteTo writes the script info, style and event blocks to w
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)

	d.writeHeader(bw)
	d.writeStyles(bw)
	d.writeEvents(bw)

	err := bw.Flush()
	return cw.n, err
}

// String renders the whole document
func (d *Document) String() string {
	var b strings.Builder
	_, _ = d.WriteTo(&b)
	return b.String()
}

func (d *Document) writeHeader(w *bufio.Writer) {
	l := d.Layout
	fmt.Fprintf(w, "[Script Info]\n")
	fmt.Fprintf(w, "Title: %s\n", l.Title)
	fmt.Fprintf(w, "ScriptType: v4.00+\n")
	fmt.Fprintf(w, "PlayResX: %d\n", l.Width)
	fmt.Fprintf(w, "PlayResY: %d\n", l.Height)
	fmt.Fprintf(w, "WrapStyle: 2\n")
	fmt.Fprintf(w, "ScaledBorderAndShadow: yes\n\n")
}

func (d *Document) writeStyles(w *bufio.Writer) {
	l := d.Layout
	bold := 0
	if l.Bold {
		bold = 1
	}
	fmt.Fprintf(w, "[V4+ Styles]\n%s\n", styleFormat)
	fmt.Fprintf(w, "Style: %s,%s,%d,%s,%s,%s,%s,%d,0,0,0,100,100,0,0,1,%d,%d,%d,%d,%d,%d,1\n\n",
		l.StyleName, l.FontName, l.FontSize,
		l.PrimaryColor, l.HighlightColor, l.OutlineColor, backColor,
		bold,
		l.OutlineWidth, l.Shadow, l.Alignment,
		l.MarginL, l.MarginR, l.MarginV,
	)
}

func (d *Document) writeEvents(w *bufio.Writer) {
	fmt.Fprintf(w, "[Events]\n%s\n", eventFormat)
	for _, e := range d.Events {
		fmt.Fprintf(w, "Dialogue: 0,%s,%s,%s,,0,0,0,,%s\n", e.Start, e.End, d.Layout.StyleName, e.Text)
	}
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
