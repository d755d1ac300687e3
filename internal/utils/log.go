package utils

import (
	"encoding/hex"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultPreviewLength is the number of runes kept by Preview and
// SanitizeForLog when no explicit limit is given.
const DefaultPreviewLength = 32

const truncatedSuffix = "...[truncated]"

// SanitizeForLog escapes control characters in s so user supplied text
// (file names, hidden messages) cannot forge extra log lines. Output longer
// than maxLength runes is truncated; maxLength <= 0 disables truncation.
func SanitizeForLog(s string, maxLength int) string {
	var result strings.Builder
	result.Grow(len(s))

	n := 0
	for _, r := range s {
		if maxLength > 0 && n == maxLength {
			result.WriteString(truncatedSuffix)
			break
		}
		n++
		switch {
		case r == '\n':
			result.WriteString("\\n")
		case r == '\r':
			result.WriteString("\\r")
		case r == '\t':
			result.WriteString("\\t")
		case r == '\\':
			result.WriteString("\\\\")
		case r == utf8.RuneError, unicode.IsControl(r), !unicode.IsPrint(r):
			result.WriteString("?")
		default:
			result.WriteRune(r)
		}
	}
	return result.String()
}

// Preview renders a chunk payload for display. UTF-8 text is sanitized,
// anything else is shown as hex. At most maxLength runes (text) or bytes
// (binary) are kept.
func Preview(data []byte, maxLength int) string {
	if len(data) == 0 {
		return ""
	}
	if utf8.Valid(data) {
		return SanitizeForLog(string(data), maxLength)
	}
	if maxLength > 0 && len(data) > maxLength {
		return "0x" + hex.EncodeToString(data[:maxLength]) + truncatedSuffix
	}
	return "0x" + hex.EncodeToString(data)
}
