package dto

import (
	apperrors "github.com/hadinata/identity-service/internal/errors"
)

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in *LoginInput) Validate() error {
	in.Email = NormalizeEmail(in.Email)

	if err := validateEmail(in.Email); err != nil {
		return err
	}
	if in.Password == "" {
		return apperrors.New(apperrors.KindInvalid, "password is required")
	}
	return nil
}
