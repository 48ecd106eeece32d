package telegram

import "strings"

const messageLimit = 4096

// SplitMessage chunks text under Telegram's message size limit. Blank-line
// boundaries are preferred so formatted blocks stay intact; a single oversized
// block falls back to a hard rune split.
func SplitMessage(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	if len([]rune(trimmed)) <= messageLimit {
		return []string{trimmed}
	}

	var parts []string
	var current strings.Builder
	for _, block := range strings.Split(trimmed, "\n\n") {
		for _, piece := range hardSplit(block) {
			candidate := piece
			if current.Len() > 0 {
				candidate = current.String() + "\n\n" + piece
			}
			if len([]rune(candidate)) <= messageLimit {
				current.Reset()
				current.WriteString(candidate)
				continue
			}
			if current.Len() > 0 {
				parts = append(parts, current.String())
			}
			current.Reset()
			current.WriteString(piece)
		}
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

func hardSplit(block string) []string {
	runes := []rune(block)
	if len(runes) <= messageLimit {
		return []string{block}
	}
	var pieces []string
	for start := 0; start < len(runes); start += messageLimit {
		end := start + messageLimit
		if end > len(runes) {
			end = len(runes)
		}
		pieces = append(pieces, string(runes[start:end]))
	}
	return pieces
}
