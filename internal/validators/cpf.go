package validators

import (
	"fmt"
	"strings"
)

// NormalizeCPF strips punctuation, checks both verifier digits and
// returns the number formatted as 000.000.000-00.
func NormalizeCPF(raw string) (string, bool) {
	var digits []int
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			digits = append(digits, int(r-'0'))
		case r == '.' || r == '-' || r == ' ':
		default:
			return "", false
		}
	}
	if len(digits) != 11 {
		return "", false
	}

	// 111.111.111-11 and the like pass the checksum but are not issued
	same := true
	for _, d := range digits[1:] {
		if d != digits[0] {
			same = false
			break
		}
	}
	if same {
		return "", false
	}

	if cpfDigit(digits[:9]) != digits[9] || cpfDigit(digits[:10]) != digits[10] {
		return "", false
	}

	var b strings.Builder
	for _, d := range digits {
		b.WriteByte(byte('0' + d))
	}
	s := b.String()
	return fmt.Sprintf("%s.%s.%s-%s", s[0:3], s[3:6], s[6:9], s[9:11]), true
}

func cpfDigit(prefix []int) int {
	sum := 0
	weight := len(prefix) + 1
	for _, d := range prefix {
		sum += d * weight
		weight--
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}
