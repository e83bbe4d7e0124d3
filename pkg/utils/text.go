package utils

import (
	"unicode/utf8"
)

// TruncateSuffix marks text shortened by TruncateText.
const TruncateSuffix = "... [truncated]"

// TruncateText shortens text to at most maxLength runes.
func TruncateText(text string, maxLength int) string {
	if utf8.RuneCountInString(text) <= maxLength {
		return text
	}

	availableLength := maxLength - utf8.RuneCountInString(TruncateSuffix)
	if availableLength <= 0 {
		runes := []rune(text)
		return string(runes[:maxLength])
	}

	runes := []rune(text)
	return string(runes[:availableLength]) + TruncateSuffix
}
