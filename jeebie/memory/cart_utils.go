package memory

import (
	"strings"
	"unicode"
)

// cleanGameboyTitle turns the raw header title into printable text: NUL padding
// becomes spaces, non-printable bytes become '?', and surrounding space is trimmed.
// Newer headers reuse the last title bytes for the CGB flag and manufacturer code,
// so everything from the first NUL onwards is dropped.
func cleanGameboyTitle(titleBytes []byte) string {
	runes := make([]rune, 0, len(titleBytes))
	for _, b := range titleBytes {
		if b == 0 {
			break
		}
		r := rune(b)
		if b >= 0x80 || !unicode.IsPrint(r) {
			r = '?'
		}
		runes = append(runes, r)
	}

	title := strings.TrimSpace(string(runes))
	if title == "" {
		return "(Untitled)"
	}
	return title
}
