package auth

import (
	"errors"
	"regexp"
	"unicode/utf8"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmail reports whether s looks like an email address. Login uses it to
// decide whether loginId is an email or a username.
func IsEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// ValidateRegistration checks the register-user form fields.
func ValidateRegistration(name, email, username, password string) error {
	if name == "" || email == "" || username == "" || password == "" {
		return errors.New("Missing user data")
	}
	if !IsEmail(email) {
		return errors.New("Email format is incorrect")
	}
	if n := utf8.RuneCountInString(username); n < 3 || n > 50 {
		return errors.New("Username length should be 3-50")
	}
	if utf8.RuneCountInString(password) < 6 {
		return errors.New("Password length should be at least 6")
	}
	return nil
}
