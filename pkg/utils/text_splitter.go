package utils

import "unicode"

// boundaryWindow is how far back from the hard cut we look for whitespace
// before giving up and cutting mid-word.
const boundaryWindow = 80

// SplitText splits a long string into chunks of approximately chunkSize
// characters with an overlap preserving context at boundaries. Counts are in
// runes so multi-byte text splits cleanly. Where possible the cut snaps back
// to the nearest whitespace.
func SplitText(text string, chunkSize int, overlap int) []string {
	if chunkSize <= 0 {
		return nil
	}

	runes := []rune(text)
	totalLen := len(runes)
	if totalLen <= chunkSize {
		if totalLen == 0 {
			return nil
		}
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // fallback if overlap >= chunkSize
	}

	var chunks []string
	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end >= totalLen {
			chunks = append(chunks, string(runes[i:totalLen]))
			break
		}

		cut := snapToBoundary(runes, i, end)
		if cut < i+step {
			// Snapping would skip text the next chunk does not cover.
			cut = end
		}
		chunks = append(chunks, string(runes[i:cut]))
	}

	return chunks
}

func snapToBoundary(runes []rune, start, end int) int {
	limit := end - boundaryWindow
	if limit < start+1 {
		limit = start + 1
	}
	for i := end; i > limit; i-- {
		if unicode.IsSpace(runes[i-1]) {
			return i
		}
	}
	return end
}
