package invite

import (
	"strings"
	"unicode"
)

const (
	phoneDigits    = 9
	phoneGroupSize = 3
)

// FormatPhone strips everything but ASCII digits from raw, keeps at most
// nine of them, and groups them in runs of three separated by single
// spaces. The result is never longer than 11 characters.
func FormatPhone(raw string) string {
	digits := make([]rune, 0, phoneDigits)
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
			if len(digits) == phoneDigits {
				break
			}
		}
	}

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%phoneGroupSize == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// cleanPhone removes whitespace from a formatted phone number.
func cleanPhone(formatted string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, formatted)
}
