package caption

// PauseThreshold is the silence, in seconds, that forces a new line
const PauseThreshold = 0.5

// GroupLines splits ordered words into display lines of at most maxWords.
// A gap strictly longer than pause between two words always ends the line.
func GroupLines(words []WordTiming, maxWords int, pause float64) []Line {
	if maxWords < 1 {
		maxWords = 1
	}

	var lines []Line
	var current Line

	for i, word := range words {
		current = append(current, word)

		shouldBreak := len(current) >= maxWords
		if i < len(words)-1 && words[i+1].Start-word.End > pause {
			shouldBreak = true
		}

		if shouldBreak {
			lines = append(lines, current)
			current = nil
		}
	}

	if len(current) > 0 {
		lines = append(lines, current)
	}

	return lines
}
