package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/hadinata/identity-service/internal/errors"
	"github.com/hadinata/identity-service/internal/identity/domain"
	repo "github.com/hadinata/identity-service/internal/identity/repository/postgres"
)

var userColumns = []string{"id", "name", "email", "password_hash", "role", "is_verified", "otp_code", "otp_expires_at", "created_at", "updated_at"}

func TestGetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()
	userEmail := "ann@x.com"
	now := time.Now()

	t.Run("success with pending OTP", func(t *testing.T) {
		expires := now.Add(15 * time.Minute)
		mock.ExpectQuery("SELECT id, name, email").
			WithArgs(userEmail).
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow("user-123", "Ann", userEmail, "hash", "user", false, ptr("482913"), &expires, now, now))

		user, err := r.GetByEmail(ctx, userEmail)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "user-123", user.ID)
		require.NotNil(t, user.VerificationOTP)
		assert.Equal(t, "482913", user.VerificationOTP.Code)
	})

	t.Run("success without OTP", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, email").
			WithArgs(userEmail).
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow("user-123", "Ann", userEmail, "hash", "user", true, nil, nil, now, now))

		user, err := r.GetByEmail(ctx, userEmail)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.True(t, user.IsVerified)
		assert.Nil(t, user.VerificationOTP)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, email").
			WithArgs(userEmail).
			WillReturnError(pgx.ErrNoRows)

		user, err := r.GetByEmail(ctx, userEmail)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, email").
			WithArgs(userEmail).
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.GetByEmail(ctx, userEmail)
		assertKind(t, err, apperrors.KindDependency)
	})
}

func TestGetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	now := time.Now()

	mock.ExpectQuery("SELECT id, name, email").
		WithArgs("user-123").
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow("user-123", "Ann", "ann@x.com", "hash", "user", true, nil, nil, now, now))

	user, err := r.GetByID(context.Background(), "user-123")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "ann@x.com", user.Email)
}

func TestCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()
	now := time.Now()

	user := &domain.User{
		ID:           "user-123",
		Name:         "Ann",
		Email:        "ann@x.com",
		PasswordHash: "hash",
		Role:         "user",
		VerificationOTP: &domain.VerificationOTP{
			Code:      "482913",
			ExpiresAt: now.Add(15 * time.Minute),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.Name, user.Email, user.PasswordHash, user.Role,
				user.IsVerified, &user.VerificationOTP.Code, &user.VerificationOTP.ExpiresAt,
				user.CreatedAt, user.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := r.Create(ctx, user)
		assert.NoError(t, err)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.Name, user.Email, user.PasswordHash, user.Role,
				user.IsVerified, &user.VerificationOTP.Code, &user.VerificationOTP.ExpiresAt,
				user.CreatedAt, user.UpdatedAt).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		err := r.Create(ctx, user)
		assertKind(t, err, apperrors.KindConflict)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.Name, user.Email, user.PasswordHash, user.Role,
				user.IsVerified, &user.VerificationOTP.Code, &user.VerificationOTP.ExpiresAt,
				user.CreatedAt, user.UpdatedAt).
			WillReturnError(fmt.Errorf("db error"))

		err := r.Create(ctx, user)
		assertKind(t, err, apperrors.KindDependency)
	})
}

func TestSetVerificationOTP(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	otp := domain.VerificationOTP{Code: "591047", ExpiresAt: time.Now().Add(15 * time.Minute)}

	mock.ExpectExec("UPDATE users").
		WithArgs("user-123", otp.Code, otp.ExpiresAt).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = r.SetVerificationOTP(context.Background(), "user-123", otp)
	assert.NoError(t, err)
}

func TestMarkVerified(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()

	t.Run("wins the race", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs("user-123").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		won, err := r.MarkVerified(ctx, "user-123")
		require.NoError(t, err)
		assert.True(t, won)
	})

	t.Run("already verified", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs("user-123").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		won, err := r.MarkVerified(ctx, "user-123")
		require.NoError(t, err)
		assert.False(t, won)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs("user-123").
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.MarkVerified(ctx, "user-123")
		assertKind(t, err, apperrors.KindDependency)
	})
}

func assertKind(t *testing.T, err error, kind apperrors.Kind) {
	t.Helper()

	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr), "expected *apperrors.Error, got %v", err)
	assert.Equal(t, kind, appErr.Kind)
}

func ptr[T any](v T) *T { return &v }
