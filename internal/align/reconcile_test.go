package align

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/wordcast/internal/caption"
)

func recognizedWords(n int) []caption.WordTiming {
	words := make([]caption.WordTiming, n)
	for i := range words {
		words[i] = caption.WordTiming{
			Text:  fmt.Sprintf("heard%d", i),
			Start: float64(i) * 0.5,
			End:   float64(i)*0.5 + 0.3,
		}
	}
	return words
}

func referenceText(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("ref%d", i)
	}
	return strings.Join(parts, " ")
}

func TestReconcileWithinTolerance(t *testing.T) {
	t.Parallel()

	recognized := recognizedWords(10)
	ref := referenceText(11)

	got := Reconcile(recognized, ref)
	require.True(t, got.Reconciled())
	require.Len(t, got.Words, 10)
	assert.Equal(t, ref, got.Transcript)
	assert.Equal(t, 1, got.Dropped)
	assert.Equal(t, ReasonNone, got.Reason)

	for i, w := range got.Words {
		assert.Equal(t, fmt.Sprintf("ref%d", i), w.Text)
		assert.Equal(t, recognized[i].Start, w.Start)
		assert.Equal(t, recognized[i].End, w.End)
	}
}

func TestReconcileBeyondToleranceSkips(t *testing.T) {
	t.Parallel()

	recognized := recognizedWords(10)

	got := Reconcile(recognized, referenceText(13))
	require.False(t, got.Reconciled())
	assert.Equal(t, OutcomeSkipped, got.Outcome)
	assert.Equal(t, ReasonCountMismatch, got.Reason)
	assert.Equal(t, recognized, got.Words)
	assert.Equal(t, caption.JoinText(recognized), got.Transcript)
	assert.Contains(t, got.Detail(), "reference 13 words, recognized 10 words")
}

func TestReconcileWithoutReference(t *testing.T) {
	t.Parallel()

	recognized := recognizedWords(3)
	for _, ref := range []string{"", "   \n\t"} {
		got := Reconcile(recognized, ref)
		assert.Equal(t, OutcomeSkipped, got.Outcome)
		assert.Equal(t, ReasonNoReference, got.Reason)
		assert.Equal(t, recognized, got.Words)
		assert.Equal(t, "heard0 heard1 heard2", got.Transcript)
	}
}

func TestReconcileMoreRecognizedThanReference(t *testing.T) {
	t.Parallel()

	recognized := recognizedWords(11)
	got := Reconcile(recognized, referenceText(10))
	require.True(t, got.Reconciled())
	require.Len(t, got.Words, 10)
	assert.Equal(t, 0, got.Dropped)
}

func TestReconcileToleranceBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ref, rec int
		applied  bool
	}{
		{ref: 10, rec: 10, applied: true},
		{ref: 10, rec: 9, applied: true},
		{ref: 10, rec: 11, applied: true},
		{ref: 10, rec: 12, applied: false},
		{ref: 20, rec: 18, applied: true},
		{ref: 20, rec: 17, applied: false},
		{ref: 5, rec: 4, applied: false},
		{ref: 1, rec: 0, applied: false},
	}
	for _, tt := range tests {
		got := Reconcile(recognizedWords(tt.rec), referenceText(tt.ref))
		assert.Equal(t, tt.applied, got.Reconciled(), "ref=%d rec=%d", tt.ref, tt.rec)
	}
}

func TestReconcileEmptyRecognition(t *testing.T) {
	t.Parallel()

	got := Reconcile(nil, "")
	assert.Empty(t, got.Words)
	assert.Empty(t, got.Transcript)
}
