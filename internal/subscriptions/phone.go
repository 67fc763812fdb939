package subscriptions

import (
	"strings"

	"github.com/luke-griggs/civiq-landing/pkg/apperror"
)

// Normalize reduces a free-form US phone number to its ten digits.
// Every non-digit is dropped and a leading country code 1 is removed from
// eleven-digit numbers. Anything that is not ten digits afterwards is
// rejected with ErrInvalidPhone.
func Normalize(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return "", apperror.ErrInvalidPhone.WithDetails(map[string]any{
			"digits": len(digits),
		})
	}
	return digits, nil
}
