// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

// StripNonDigits removes everything but digits from a string.
func StripNonDigits(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

// ValidatePhone checks for exactly 10 digits after stripping separators,
// the Mexican local phone format used across the booking and POS forms.
func ValidatePhone(phone string) bool {
	return len(StripNonDigits(phone)) == 10
}

// ValidatePostalCode checks for exactly 5 digits.
func ValidatePostalCode(cp string) bool {
	cleaned := strings.TrimSpace(cp)
	match, _ := regexp.MatchString(`^\d{5}$`, cleaned)
	return match
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail does a light format check; gin's binding covers the strict
// one on JSON inputs.
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}
