package domain

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/hadinata/identity-service/internal/identity/domain UserRepository,Notifier

import (
	"context"
)

// UserRepository is the durable account store, keyed by email. Lookups
// return (nil, nil) when no account exists.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	// Create fails with a conflict when the email is already taken; the
	// store's uniqueness constraint is the authority for that decision.
	Create(ctx context.Context, user *User) error
	// SetVerificationOTP overwrites any pending challenge on the account.
	SetVerificationOTP(ctx context.Context, id string, otp VerificationOTP) error
	// MarkVerified atomically sets the verified flag and clears the pending
	// challenge. It reports false when the account was already verified, so
	// at most one of two racing callers observes true.
	MarkVerified(ctx context.Context, id string) (bool, error)
}

// Notifier delivers a challenge code to a user's email address.
type Notifier interface {
	SendOTP(ctx context.Context, email, code string) error
}
