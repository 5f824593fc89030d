// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Usernames are "@"-prefixed handles. Anything from this set is rejected.
var usernameSpecialChars = regexp.MustCompile(`[!#$%^&*()+=\[\]{};':"\\|,.<>/?]`)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// NormalizeUsername trims whitespace and prepends the "@" handle prefix
// when it is missing.
func NormalizeUsername(username string) string {
	username = strings.TrimSpace(username)
	if username == "" {
		return username
	}
	if !strings.HasPrefix(username, "@") {
		username = "@" + username
	}
	return username
}

// ValidateUsername checks a normalized handle.
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return fmt.Errorf("username must be at least 2 characters after the @")
	}
	if len(username) > 64 {
		return fmt.Errorf("username must not exceed 64 characters")
	}
	if !strings.HasPrefix(username, "@") {
		return fmt.Errorf("username must start with @")
	}
	if usernameSpecialChars.MatchString(username[1:]) {
		return fmt.Errorf("username must not contain special characters")
	}
	if strings.ContainsAny(username[1:], "@ ") {
		return fmt.Errorf("username must not contain spaces or extra @")
	}
	return nil
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}
	return nil
}

// ValidatePassword checks if a password meets security requirements
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	// Prevent unreasonable inputs
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}
	return nil
}
