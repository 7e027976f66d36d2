package dto

import (
	"strings"

	apperrors "github.com/hadinata/identity-service/internal/errors"
)

type VerifyEmailInput struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (in *VerifyEmailInput) Validate() error {
	in.Email = NormalizeEmail(in.Email)
	in.OTP = strings.TrimSpace(in.OTP)

	if err := validateEmail(in.Email); err != nil {
		return err
	}
	if in.OTP == "" {
		return apperrors.New(apperrors.KindInvalid, "OTP is required")
	}
	if len(in.OTP) != 6 {
		return apperrors.New(apperrors.KindInvalid, "OTP must be 6 characters long")
	}
	for _, r := range in.OTP {
		if r < '0' || r > '9' {
			return apperrors.New(apperrors.KindInvalid, "OTP must contain only numbers")
		}
	}
	return nil
}

type ResendOtpInput struct {
	Email string `json:"email"`
}

func (in *ResendOtpInput) Validate() error {
	in.Email = NormalizeEmail(in.Email)
	return validateEmail(in.Email)
}
