package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/hadinata/identity-service/internal/identity/service TokenGenerator

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/hadinata/identity-service/internal/errors"
)

type TokenGenerator interface {
	Mint(userID string) (string, error)
	Validate(tokenString string) (string, error)
	Expiry() time.Duration
}

// TokenService mints and validates signed, time-bound bearer tokens. Tokens
// are self-contained; no server-side session state is kept.
type TokenService struct {
	Secret      string
	TokenExpiry time.Duration
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

func NewTokenService(secret string, expiryMinutes int) *TokenService {
	return &TokenService{
		Secret:      secret,
		TokenExpiry: time.Duration(expiryMinutes) * time.Minute,
	}
}

func (ts *TokenService) Mint(userID string) (string, error) {
	now := time.Now()

	claims := JWTCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.TokenExpiry)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.Secret))
}

// Validate verifies signature integrity and expiry, returning the subject
// account id. Expired and malformed tokens fail with distinct sentinels.
func (ts *TokenService) Validate(tokenString string) (string, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.Secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperrors.ErrTokenExpired
		}
		return "", apperrors.ErrTokenInvalid
	}

	if !token.Valid || claims.UserID == "" {
		return "", apperrors.ErrTokenInvalid
	}

	return claims.UserID, nil
}

func (ts *TokenService) Expiry() time.Duration {
	return ts.TokenExpiry
}
