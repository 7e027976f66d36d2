package service

//go:generate mockgen -destination=../../mocks/mock_otp_generator.go -package=mocks github.com/hadinata/identity-service/internal/identity/service OTPGenerator

import (
	"crypto/rand"
	"math/big"
	"time"
)

type OTPGenerator interface {
	Generate() (string, error)
	ExpiryFrom(now time.Time) time.Time
}

// OTPService produces fixed-length numeric challenge codes from a
// cryptographically secure random source.
type OTPService struct {
	Length int
	TTL    time.Duration
}

func NewOTPService(length, expiryMinutes int) *OTPService {
	return &OTPService{
		Length: length,
		TTL:    time.Duration(expiryMinutes) * time.Minute,
	}
}

var ten = big.NewInt(10)

func (o *OTPService) Generate() (string, error) {
	code := make([]byte, o.Length)
	for i := range code {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		code[i] = '0' + byte(n.Int64())
	}
	return string(code), nil
}

func (o *OTPService) ExpiryFrom(now time.Time) time.Time {
	return now.Add(o.TTL)
}
