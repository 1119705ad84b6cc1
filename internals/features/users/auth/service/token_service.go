// internals/features/users/auth/service/token_service.go
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/jgretton/junior-development-programme-sub000/internals/features/users/user/model"
)

const accessTTLDefault = 15 * time.Minute

var ErrMissingSecret = errors.New("JWT secret kosong")

// buildAccessClaims klaim minimal yang dibaca AuthMiddleware: id, role, user_name, exp.
func buildAccessClaims(user model.UserModel, now time.Time, ttl time.Duration) jwt.MapClaims {
	if ttl <= 0 {
		ttl = accessTTLDefault
	}
	return jwt.MapClaims{
		"id":        user.ID.String(),
		"role":      user.Role.String(),
		"user_name": user.UserName,
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}
}

// IssueAccessToken tanda tangani access token HS256 untuk user.
// Login sendiri ada di luar service ini; dipakai tooling ops (cmd/maintenance token) dan test.
func IssueAccessToken(user model.UserModel, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	claims := buildAccessClaims(user, time.Now().UTC(), ttl)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return tok, nil
}
