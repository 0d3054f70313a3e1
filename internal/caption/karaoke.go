package caption

import (
	"math"
	"strconv"
	"strings"
)

const (
	// fillerThreshold is the shortest silence, in seconds, that gets its own
	// unhighlighted segment. Shorter gaps are dropped.
	fillerThreshold = 0.01
	floatTolerance  = 1e-9
)

// KaraokeSegments computes the highlight timeline of a line. Each segment's
// duration is truncated to whole centiseconds on its own.
func KaraokeSegments(line Line) []HighlightSegment {
	if len(line) == 0 {
		return nil
	}

	segments := make([]HighlightSegment, 0, 2*len(line))
	cursor := line[0].Start

	for _, word := range line {
		if gap := word.Start - cursor; gap > fillerThreshold+floatTolerance {
			segments = append(segments, HighlightSegment{
				Kind:         SegmentFiller,
				Centiseconds: durationCentiseconds(gap),
			})
		}

		segments = append(segments, HighlightSegment{
			Kind:         SegmentWord,
			Centiseconds: durationCentiseconds(word.End - word.Start),
			Text:         word.Text,
		})
		cursor = word.End
	}

	return segments
}

// EncodeKaraoke renders a line as \kf-tagged ASS text, words separated by spaces
func EncodeKaraoke(line Line) string {
	var b strings.Builder
	written := 0
	for _, seg := range KaraokeSegments(line) {
		b.WriteString(`{\kf`)
		b.WriteString(strconv.FormatInt(seg.Centiseconds, 10))
		b.WriteByte('}')
		if seg.Kind != SegmentWord {
			continue
		}
		b.WriteString(sanitizeText(seg.Text))
		written++
		if written < len(line) {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// sanitizeText keeps recognizer output from opening override blocks
func sanitizeText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "{", "(")
	s = strings.ReplaceAll(s, "}", ")")
	return s
}

// durationCentiseconds truncates a span to centiseconds, never below one
func durationCentiseconds(seconds float64) int64 {
	cs := int64(math.Floor(seconds*100 + gridEpsilon))
	if cs < 1 {
		return 1
	}
	return cs
}
