package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/hadinata/identity-service/internal/errors"
	"github.com/hadinata/identity-service/internal/identity/domain"
	"github.com/hadinata/identity-service/internal/identity/dto"
	"github.com/hadinata/identity-service/pkg/constant"
	"github.com/hadinata/identity-service/pkg/crypto"
)

// UserService is the account state machine: it moves accounts through
// PendingVerification -> Verified and issues bearer tokens along the way.
type UserService struct {
	repo     domain.UserRepository
	notifier domain.Notifier
	tokens   TokenGenerator
	otp      OTPGenerator
	logger   *slog.Logger
}

func NewUserService(repo domain.UserRepository, notifier domain.Notifier,
	tokens TokenGenerator, otp OTPGenerator, logger *slog.Logger) *UserService {
	return &UserService{
		repo:     repo,
		notifier: notifier,
		tokens:   tokens,
		otp:      otp,
		logger:   logger,
	}
}

// Register creates an unverified account with a pending OTP challenge and
// mails the code. The account row is created before the notifier runs: if
// the mail fails, the error propagates but the account stays in
// PendingVerification, so the caller recovers via ResendOtp, not Register.
func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*domain.User, error) {
	existing, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.New(apperrors.KindConflict, "user already exists")
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindDependency, "failed to hash password", err)
	}

	code, err := s.otp.Generate()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindDependency, "failed to generate OTP", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         constant.DefaultUserRole,
		IsVerified:   false,
		VerificationOTP: &domain.VerificationOTP{
			Code:      code,
			ExpiresAt: s.otp.ExpiryFrom(now),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.notifier.SendOTP(ctx, user.Email, code); err != nil {
		s.logger.Error("failed to send verification email", "user_id", user.ID, "error", err)
		return nil, apperrors.Wrap(apperrors.KindDependency, "failed to send verification email", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)

	return user, nil
}

// VerifyEmail consumes a pending OTP challenge. Preconditions are checked
// in order, first failure wins; consumption is atomic, so a racing second
// caller with the same code observes an already-verified conflict.
func (s *UserService) VerifyEmail(ctx context.Context, input dto.VerifyEmailInput) (*domain.User, string, error) {
	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", apperrors.New(apperrors.KindNotFound, "user not found")
	}
	if user.IsVerified {
		return nil, "", apperrors.New(apperrors.KindConflict, "email already verified")
	}

	otp := user.VerificationOTP
	if otp == nil || otp.Code == "" {
		return nil, "", apperrors.New(apperrors.KindInvalid, "OTP not found, please request a new one")
	}
	if otp.Expired(time.Now()) {
		return nil, "", apperrors.New(apperrors.KindExpired, "OTP expired, please request a new one")
	}
	if otp.Code != input.OTP {
		return nil, "", apperrors.New(apperrors.KindInvalid, "invalid OTP")
	}

	won, err := s.repo.MarkVerified(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	if !won {
		return nil, "", apperrors.New(apperrors.KindConflict, "email already verified")
	}

	token, err := s.tokens.Mint(user.ID)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.KindDependency, "failed to generate token", err)
	}

	user.IsVerified = true
	user.VerificationOTP = nil

	s.logger.Info("email verified", "user_id", user.ID)

	return user, token, nil
}

// ResendOtp issues a fresh challenge, superseding any prior one: the old
// code becomes permanently invalid even if unexpired.
func (s *UserService) ResendOtp(ctx context.Context, input dto.ResendOtpInput) error {
	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.New(apperrors.KindNotFound, "user not found")
	}
	if user.IsVerified {
		return apperrors.New(apperrors.KindConflict, "email already verified")
	}

	code, err := s.otp.Generate()
	if err != nil {
		return apperrors.Wrap(apperrors.KindDependency, "failed to generate OTP", err)
	}

	challenge := domain.VerificationOTP{
		Code:      code,
		ExpiresAt: s.otp.ExpiryFrom(time.Now()),
	}
	if err := s.repo.SetVerificationOTP(ctx, user.ID, challenge); err != nil {
		return err
	}

	if err := s.notifier.SendOTP(ctx, user.Email, code); err != nil {
		s.logger.Error("failed to send verification email", "user_id", user.ID, "error", err)
		return apperrors.Wrap(apperrors.KindDependency, "failed to send verification email", err)
	}

	s.logger.Info("verification OTP resent", "user_id", user.ID)

	return nil
}

// Login authenticates a verified account. Unknown email and wrong password
// fail with the same generic message so the caller cannot tell them apart.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*domain.User, string, error) {
	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", apperrors.New(apperrors.KindUnauthorized, "invalid email or password")
	}
	if !user.IsVerified {
		return nil, "", apperrors.New(apperrors.KindUnauthorized, "please verify your email first")
	}
	if crypto.ComparePassword(user.PasswordHash, input.Password) != nil {
		return nil, "", apperrors.New(apperrors.KindUnauthorized, "invalid email or password")
	}

	token, err := s.tokens.Mint(user.ID)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.KindDependency, "failed to generate token", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)

	return user, token, nil
}

// CurrentUser resolves a token subject to a live account for the session
// guard. A missing account means the token outlived its user.
func (s *UserService) CurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.New(apperrors.KindUnauthorized, "not authorized, user not found")
	}
	return user, nil
}
