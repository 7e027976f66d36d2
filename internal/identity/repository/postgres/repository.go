package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/hadinata/identity-service/internal/errors"
	"github.com/hadinata/identity-service/internal/identity/domain"
)

const uniqueViolation = "23505"

// DBTX is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DBTX
}

func NewPostgresRepository(db DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, name, email, password_hash, role, is_verified, otp_code, otp_expires_at, created_at, updated_at`

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1;`

	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1;`

	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *PostgresRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user       domain.User
		otpCode    *string
		otpExpires *time.Time
	)

	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&user.IsVerified, &otpCode, &otpExpires, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.KindDependency, "failed to get user", err)
	}

	if otpCode != nil && otpExpires != nil {
		user.VerificationOTP = &domain.VerificationOTP{Code: *otpCode, ExpiresAt: *otpExpires}
	}

	return &user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *domain.User) error {
	var otpCode *string
	var otpExpires *time.Time
	if user.VerificationOTP != nil {
		otpCode = &user.VerificationOTP.Code
		otpExpires = &user.VerificationOTP.ExpiresAt
	}

	_, err := r.db.Exec(ctx, `
        INSERT INTO users (id, name, email, password_hash, role, is_verified, otp_code, otp_expires_at, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `, user.ID, user.Name, user.Email, user.PasswordHash, user.Role,
		user.IsVerified, otpCode, otpExpires, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperrors.New(apperrors.KindConflict, "user already exists")
		}
		return apperrors.Wrap(apperrors.KindDependency, "failed to create user", err)
	}

	return nil
}

func (r *PostgresRepository) SetVerificationOTP(ctx context.Context, id string, otp domain.VerificationOTP) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET otp_code = $2, otp_expires_at = $3, updated_at = now()
		WHERE id = $1
	`, id, otp.Code, otp.ExpiresAt)
	if err != nil {
		return apperrors.Wrap(apperrors.KindDependency, "failed to set verification OTP", err)
	}

	return nil
}

// MarkVerified flips the verified flag and clears the challenge in a single
// conditional update. Zero rows affected means another caller won the race.
func (r *PostgresRepository) MarkVerified(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET is_verified = TRUE, otp_code = NULL, otp_expires_at = NULL, updated_at = now()
		WHERE id = $1 AND is_verified = FALSE
	`, id)
	if err != nil {
		return false, apperrors.Wrap(apperrors.KindDependency, "failed to mark user verified", err)
	}

	return tag.RowsAffected() == 1, nil
}
