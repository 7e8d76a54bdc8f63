package utils

import (
	"regexp"

	"wheeldeal/pkg/errors"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail reproduces the presentation-layer email check. The backend
// does not re-validate, so callers must run this before signing in/up.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return errors.ErrInvalidEmail
	}
	return nil
}

// ValidatePassword enforces the minimum length the sign-up form enforces.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return errors.ErrPasswordTooShort
	}
	return nil
}
