package domain

import "time"

type User struct {
	ID              string
	Name            string
	Email           string
	PasswordHash    string
	Role            string
	IsVerified      bool
	VerificationOTP *VerificationOTP
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// VerificationOTP is a pending email challenge. A nil pointer on the user
// means no challenge is outstanding.
type VerificationOTP struct {
	Code      string
	ExpiresAt time.Time
}

// Expired reports whether the challenge is past its expiry at the given time.
func (o *VerificationOTP) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
