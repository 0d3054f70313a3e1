package caption

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidWords is wrapped by every word validation failure
var ErrInvalidWords = errors.New("invalid word timings")

// InputError pinpoints the word that broke the ordering or range invariants
type InputError struct {
	Index  int
	Word   WordTiming
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%v: word %d (%q %.3f-%.3f): %s",
		ErrInvalidWords, e.Index, e.Word.Text, e.Word.Start, e.Word.End, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidWords
}

// ValidateWords checks that every word has a finite, non-negative start, an end
// no earlier than its start, and that starts never decrease.
func ValidateWords(words []WordTiming) error {
	prevStart := 0.0
	for i, w := range words {
		switch {
		case !finite(w.Start) || !finite(w.End):
			return &InputError{Index: i, Word: w, Reason: "non-finite time"}
		case w.Start < 0:
			return &InputError{Index: i, Word: w, Reason: "negative start"}
		case w.End < w.Start:
			return &InputError{Index: i, Word: w, Reason: "end before start"}
		case i > 0 && w.Start < prevStart:
			return &InputError{Index: i, Word: w, Reason: fmt.Sprintf("start before previous start %.3f", prevStart)}
		}
		prevStart = w.Start
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
