package dto

import (
	"strings"
	"unicode/utf8"

	apperrors "github.com/hadinata/identity-service/internal/errors"
)

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in *RegisterInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = NormalizeEmail(in.Email)

	if in.Name == "" {
		return apperrors.New(apperrors.KindInvalid, "name is required")
	}
	if n := utf8.RuneCountInString(in.Name); n < 2 || n > 50 {
		return apperrors.New(apperrors.KindInvalid, "name must be between 2 and 50 characters")
	}
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	return validatePassword(in.Password)
}
