// Package password holds the password strength policy shared by signup and reset.
package password

import (
	"strings"
	"unicode"
)

const (
	MinLength = 8

	// Symbols is the fixed set of characters that satisfy the symbol requirement.
	Symbols = `!@#$%^&*()-_=+[]{};:'",.<>/?\|~`

	// StrongPasswordMessage is shown verbatim whenever a password fails the policy.
	StrongPasswordMessage = "Password must be at least 8 characters long and contain at least one uppercase letter, one lowercase letter, one digit and one special character (" + Symbols + ")."
)

// IsStrong reports whether pw satisfies the policy: at least MinLength
// characters with an uppercase letter, a lowercase letter, a digit and a
// character from Symbols.
func IsStrong(pw string) bool {
	if len([]rune(pw)) < MinLength {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(Symbols, r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}
