// Package align reconciles recognized word timings with a reference transcript.
package align

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/wordcast/internal/caption"
)

// Outcome tells whether the reference transcript was applied
type Outcome string

const (
	OutcomeReconciled Outcome = "reconciled"
	OutcomeSkipped    Outcome = "skipped"
)

// Reason explains a skipped reconciliation
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonNoReference   Reason = "no reference transcript"
	ReasonCountMismatch Reason = "word count mismatch"
)

// Result is the reconciled word sequence and the transcript it represents
type Result struct {
	Words      []caption.WordTiming
	Transcript string
	Outcome    Outcome
	Reason     Reason

	ReferenceCount  int
	RecognizedCount int
	// Dropped counts trailing reference words that had no recognized timing.
	Dropped int
}

// Reconciled reports whether reference text replaced recognized text
func (r Result) Reconciled() bool {
	return r.Outcome == OutcomeReconciled
}

// Detail is a human-readable summary for logs
func (r Result) Detail() string {
	switch {
	case r.Reconciled():
		return fmt.Sprintf("reference applied to %d words (%d reference words dropped)", len(r.Words), r.Dropped)
	case r.Reason == ReasonCountMismatch:
		return fmt.Sprintf("%s: reference %d words, recognized %d words", r.Reason, r.ReferenceCount, r.RecognizedCount)
	default:
		return string(r.Reason)
	}
}

// Reconcile pairs reference words with recognized timings by position when the
// word counts differ by at most 10% of the reference length. Otherwise the
// recognized words pass through untouched. It never fails.
func Reconcile(recognized []caption.WordTiming, reference string) Result {
	refWords := strings.Fields(reference)
	n, m := len(refWords), len(recognized)

	passThrough := Result{
		Words:           recognized,
		Transcript:      caption.JoinText(recognized),
		Outcome:         OutcomeSkipped,
		ReferenceCount:  n,
		RecognizedCount: m,
	}

	if n == 0 {
		passThrough.Reason = ReasonNoReference
		return passThrough
	}

	// |n-m| <= 0.1*n, kept in integers so 11 vs 10 is exactly within tolerance
	diff := n - m
	if diff < 0 {
		diff = -diff
	}
	if 10*diff > n {
		passThrough.Reason = ReasonCountMismatch
		return passThrough
	}

	count := min(n, m)
	words := make([]caption.WordTiming, count)
	for i := 0; i < count; i++ {
		words[i] = caption.WordTiming{
			Text:  refWords[i],
			Start: recognized[i].Start,
			End:   recognized[i].End,
		}
	}

	return Result{
		Words:           words,
		Transcript:      strings.TrimSpace(reference),
		Outcome:         OutcomeReconciled,
		Reason:          ReasonNone,
		ReferenceCount:  n,
		RecognizedCount: m,
		Dropped:         n - count,
	}
}
