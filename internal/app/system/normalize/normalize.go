// internal/app/system/normalize/normalize.go

// Package normalize provides canonical forms for user-supplied identity
// fields so lookups and uniqueness checks behave consistently.
package normalize

import "strings"

// Email lowercases and trims an email address. Empty or blank input
// normalizes to "".
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role lowercases and trims a role string.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Enum lowercases and trims an enum-valued string (meal type, food
// origin, price band) so checks accept any casing from clients.
func Enum(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// MealType lowercases and trims a meal-type string so enum checks accept
// any casing from clients.
func MealType(s string) string {
	return Enum(s)
}

// NameFromEmail derives a display name from the local part of an email
// address. Returns "" if the address has no local part.
func NameFromEmail(email string) string {
	email = Email(email)
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return ""
	}
	return email[:at]
}
