package caption

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAspect is returned for aspects other than vertical or horizontal
var ErrUnknownAspect = errors.New("unknown aspect")

// Aspect is the target video orientation
type Aspect string

const (
	AspectVertical   Aspect = "vertical"
	AspectHorizontal Aspect = "horizontal"
)

// ParseAspect accepts vertical/horizontal and the short/long aliases
func ParseAspect(s string) (Aspect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertical", "short", "9:16":
		return AspectVertical, nil
	case "horizontal", "long", "16:9":
		return AspectHorizontal, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAspect, s)
	}
}

// Layout is the immutable styling and grouping configuration of a document
type Layout struct {
	Width  int
	Height int

	StyleName      string
	FontName       string
	FontSize       int
	Bold           bool
	PrimaryColor   string
	HighlightColor string
	OutlineColor   string
	OutlineWidth   int
	Shadow         int
	Alignment      int
	MarginL        int
	MarginR        int
	MarginV        int

	MaxWordsPerLine int
	Title           string
}

// LayoutOptions overrides the per-aspect defaults. Empty strings, a zero font
// size and nil pointers keep the default.
type LayoutOptions struct {
	FontName       string
	FontSize       int
	Bold           *bool
	PrimaryColor   string
	HighlightColor string
	OutlineColor   string
	OutlineWidth   *int
	Shadow         *int
	Alignment      *int
	MarginV        *int
}

var highlightColors = map[string]string{
	"yellow": "&H00D7FF",
	"gold":   "&H00D7FF",
	"cyan":   "&HFFFF00",
	"green":  "&H00FF00",
	"red":    "&H0000FF",
	"white":  "&HFFFFFF",
}

// ResolveColor maps a color name to its ASS BGR code. Unknown values are
// returned verbatim on the assumption they are already codes.
func ResolveColor(name string) string {
	if code, ok := highlightColors[strings.ToLower(strings.TrimSpace(name))]; ok {
		return code
	}
	return name
}

func defaultLayout() Layout {
	return Layout{
		StyleName:      "Default",
		FontName:       "Arial",
		Bold:           true,
		PrimaryColor:   "&HFFFFFF",
		HighlightColor: "&H00D7FF",
		OutlineColor:   "&H000000",
		OutlineWidth:   3,
		Shadow:         0,
		Alignment:      5,
		MarginL:        10,
		MarginR:        10,
		MarginV:        50,
		Title:          "wordcast generated subtitles",
	}
}

// NewLayout builds the layout for an aspect and applies overrides
func NewLayout(aspect Aspect, opts LayoutOptions) (Layout, error) {
	l := defaultLayout()

	switch aspect {
	case AspectVertical:
		l.Width, l.Height = 1080, 1920
		l.MaxWordsPerLine = 3
		l.FontSize = 80
	case AspectHorizontal:
		l.Width, l.Height = 1920, 1080
		l.MaxWordsPerLine = 5
		l.FontSize = 64
	default:
		return Layout{}, fmt.Errorf("%w: %q", ErrUnknownAspect, aspect)
	}

	if opts.FontName != "" {
		l.FontName = opts.FontName
	}
	if opts.FontSize > 0 {
		l.FontSize = opts.FontSize
	}
	if opts.Bold != nil {
		l.Bold = *opts.Bold
	}
	if opts.PrimaryColor != "" {
		l.PrimaryColor = ResolveColor(opts.PrimaryColor)
	}
	if opts.HighlightColor != "" {
		l.HighlightColor = ResolveColor(opts.HighlightColor)
	}
	if opts.OutlineColor != "" {
		l.OutlineColor = ResolveColor(opts.OutlineColor)
	}
	if opts.OutlineWidth != nil {
		l.OutlineWidth = *opts.OutlineWidth
	}
	if opts.Shadow != nil {
		l.Shadow = *opts.Shadow
	}
	if opts.Alignment != nil {
		l.Alignment = *opts.Alignment
	}
	if opts.MarginV != nil {
		l.MarginV = *opts.MarginV
	}

	return l, nil
}
