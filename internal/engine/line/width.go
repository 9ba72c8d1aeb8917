package line

import (
	"unicode/utf8"

	"golang.org/x/text/width"
)

// RuneWidth returns the number of terminal columns a codepoint occupies:
// 2 for East Asian wide and fullwidth codepoints, 1 for everything else.
func RuneWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// StringWidth returns the total display width of s in terminal columns.
func StringWidth(s string) int {
	w := 0
	for _, r := range s {
		w += RuneWidth(r)
	}
	return w
}

// widthOfBytes returns the display width of a valid-UTF-8 byte slice.
func widthOfBytes(b []byte) int {
	w := 0
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		w += RuneWidth(r)
		b = b[size:]
	}
	return w
}
