// Package normalize provides field normalization helpers for quote export values.
package normalize

import "strings"

// Digits returns only the digit characters of s, in order.
func Digits(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// NormalizePhone normalizes a raw phone value to an 11-digit dial string with
// a leading "1" country code.
//
// Rules, applied in order:
//   - strip all non-digit characters; nothing left means "no value" (ok false)
//   - 10 or more digits: keep only the last 10 (ignores country codes and
//     any punctuation that leaked digits in front)
//   - exactly 10 digits: prefix with "1"
//   - exactly 11 digits starting with "1": keep as-is
//
// Any other digit count is returned unchanged as a best-effort fallback; the
// result is then not necessarily 11 digits. Idempotent on already-normalized
// 11-digit leading-"1" numbers.
func NormalizePhone(raw string) (string, bool) {
	digits := Digits(raw)
	if digits == "" {
		return "", false
	}

	if len(digits) >= 10 {
		digits = digits[len(digits)-10:]
	}
	if len(digits) == 10 {
		return "1" + digits, true
	}
	if len(digits) == 11 && digits[0] == '1' {
		return digits, true
	}
	return digits, true
}
