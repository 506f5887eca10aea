package telegram

import "unicode/utf16"

// SplitMessage cuts text into chunks of at most maxLen UTF-16 code units,
// the unit Telegram counts message length in, preferring a newline in the
// second half of each chunk.
func SplitMessage(text string, maxLen int) []string {
	runes := []rune(text)
	if utf16Len(runes) <= maxLen {
		return []string{text}
	}

	var parts []string
	for utf16Len(runes) > maxLen {
		cut := fitRunes(runes, maxLen)
		if nl := lastNewline(runes[:cut]); nl >= 0 && utf16Len(runes[:nl+1]) >= maxLen/2 {
			cut = nl + 1
		}
		parts = append(parts, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}

// fitRunes returns how many leading runes fit in maxLen code units, at least one.
func fitRunes(runes []rune, maxLen int) int {
	n := 0
	for i, r := range runes {
		n += runeUnits(r)
		if n > maxLen {
			if i == 0 {
				return 1
			}
			return i
		}
	}
	return len(runes)
}

func utf16Len(runes []rune) int {
	n := 0
	for _, r := range runes {
		n += runeUnits(r)
	}
	return n
}

func runeUnits(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1 // invalid runes are sent as U+FFFD
}

func lastNewline(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == '\n' {
			return i
		}
	}
	return -1
}
