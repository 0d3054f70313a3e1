package caption

import (
	"fmt"
	"math"
)

// gridEpsilon absorbs binary float error (0.25-0.2 = 0.0499999...) before
// truncating to whole centiseconds.
const gridEpsilon = 1e-6

// toCentiseconds truncates seconds onto the integer centisecond grid
func toCentiseconds(seconds float64) int64 {
	if seconds <= 0 || math.IsNaN(seconds) {
		return 0
	}
	return int64(math.Floor(seconds*100 + gridEpsilon))
}

// FormatTimecode renders seconds as H:MM:SS.cc with truncated centiseconds
func FormatTimecode(seconds float64) string {
	return formatCentiseconds(toCentiseconds(seconds))
}

func formatCentiseconds(cs int64) string {
	if cs < 0 {
		cs = 0
	}
	hours := cs / 360000
	minutes := (cs % 360000) / 6000
	secs := (cs % 6000) / 100
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, secs, cs%100)
}
