package utils

import "unicode/utf8"

// UTF16Len returns the number of UTF-16 code units needed to encode s.
// Runes outside the Basic Multilingual Plane take two units.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		n += runeUnits(r)
	}
	return n
}

// TruncateUTF16 returns the longest prefix of s that fits in limit UTF-16
// code units. A rune that would straddle the limit is dropped whole, so a
// surrogate pair is never split.
func TruncateUTF16(s string, limit int) string {
	if limit <= 0 {
		return ""
	}

	units := 0
	for i, r := range s {
		w := runeUnits(r)
		if units+w > limit {
			return s[:i]
		}
		units += w
	}
	return s
}

func runeUnits(r rune) int {
	if r >= 0x10000 && r <= utf8.MaxRune {
		return 2
	}
	return 1
}
