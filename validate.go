package main

import "regexp"

var (
	phoneNumberFormat = regexp.MustCompile(`^[0-9]{10}$`)
	nameFormat        = regexp.MustCompile(`^[A-Z][A-Za-z]+( [A-Z][A-Za-z]+)*$`)
)

// ValidatePhoneNumber reports whether s is exactly ten decimal digits.
func ValidatePhoneNumber(s string) bool {
	return phoneNumberFormat.MatchString(s)
}

// ValidateName reports whether s is space-separated capitalized latin words,
// 2 to 30 characters in total.
func ValidateName(s string) bool {
	if len(s) < 2 || len(s) > 30 {
		return false
	}
	return nameFormat.MatchString(s)
}
