// Package caption lays timed words out into karaoke-highlighted ASS subtitles.
package caption

import "strings"

// WordTiming is a single spoken word with its start and end offsets in seconds
type WordTiming struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Line is a contiguous group of words shown on screen together
type Line []WordTiming

// Start returns the start of the first word
func (l Line) Start() float64 {
	if len(l) == 0 {
		return 0
	}
	return l[0].Start
}

// End returns the end of the last word
func (l Line) End() float64 {
	if len(l) == 0 {
		return 0
	}
	return l[len(l)-1].End
}

// Text joins the line's words with single spaces
func (l Line) Text() string {
	parts := make([]string, len(l))
	for i, w := range l {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}

// SegmentKind distinguishes silent filler from highlighted words
type SegmentKind int

const (
	SegmentFiller SegmentKind = iota
	SegmentWord
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentFiller:
		return "filler"
	case SegmentWord:
		return "word"
	default:
		return "unknown"
	}
}

// HighlightSegment is one progressive-fill unit of a karaoke line
type HighlightSegment struct {
	Kind         SegmentKind
	Centiseconds int64
	Text         string
}

// JoinText joins word texts with single spaces
func JoinText(words []WordTiming) string {
	parts := make([]string, 0, len(words))
	for _, w := range words {
		parts = append(parts, w.Text)
	}
	return strings.Join(parts, " ")
}
