package invite

import (
	"math/rand/v2"
	"strings"
	"testing"
)

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"one digit", "1", "1"},
		{"three digits", "123", "123"},
		{"four digits", "1234", "123 4"},
		{"nine digits", "123456789", "123 456 789"},
		{"truncates past nine", "1234567890123", "123 456 789"},
		{"strips separators", "+48 (123)-456.789", "481 234 567"},
		{"reformats formatted input", "123 456 78", "123 456 78"},
		{"letters only", "abc", ""},
		{"non-ascii digits dropped", "١٢٣123", "123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPhone(tt.raw); got != tt.want {
				t.Errorf("FormatPhone(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFormatPhoneGrouping(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for n := 0; n <= 9; n++ {
		for i := 0; i < 50; i++ {
			var b strings.Builder
			for j := 0; j < n; j++ {
				b.WriteByte(byte('0' + r.IntN(10)))
			}
			digits := b.String()

			got := FormatPhone(digits)
			if len(got) > 11 {
				t.Fatalf("FormatPhone(%q) = %q, longer than 11", digits, got)
			}
			if strings.ReplaceAll(got, " ", "") != digits {
				t.Fatalf("FormatPhone(%q) = %q, digits changed", digits, got)
			}
			groups := strings.Split(got, " ")
			for k, g := range groups {
				if n == 0 {
					break
				}
				if k < len(groups)-1 && len(g) != 3 {
					t.Fatalf("FormatPhone(%q) = %q, group %d has %d digits", digits, got, k, len(g))
				}
				if len(g) == 0 || len(g) > 3 {
					t.Fatalf("FormatPhone(%q) = %q, bad group %q", digits, got, g)
				}
			}
		}
	}
}

func TestCleanPhone(t *testing.T) {
	if got := cleanPhone("123 456 789"); got != "123456789" {
		t.Errorf("cleanPhone = %q", got)
	}
}
