package dto

import (
	"regexp"
	"strings"
	"unicode"

	apperrors "github.com/hadinata/identity-service/internal/errors"
)

var emailRx = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// NormalizeEmail lowercases and trims an address so the core only ever sees
// the canonical form used as the lookup key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return apperrors.New(apperrors.KindInvalid, "email is required")
	}
	if !emailRx.MatchString(email) {
		return apperrors.New(apperrors.KindInvalid, "please provide a valid email")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return apperrors.New(apperrors.KindInvalid, "password is required")
	}
	if len(password) < 6 {
		return apperrors.New(apperrors.KindInvalid, "password must be at least 6 characters long")
	}
	var hasDigit, hasLower, hasUpper bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}
	if !hasDigit || !hasLower || !hasUpper {
		return apperrors.New(apperrors.KindInvalid,
			"password must contain at least one number, one uppercase and one lowercase letter")
	}
	return nil
}
