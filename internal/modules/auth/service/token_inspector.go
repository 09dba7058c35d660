package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"poolwatch/internal/modules/auth/domain"
	"poolwatch/internal/platform/clock"
	apperrors "poolwatch/internal/platform/errors"
)

// TokenInspector reads claims out of an access token without verifying its
// signature. The result is informational only; the backend stays the
// authority on whether a token is accepted.
type TokenInspector struct {
	clock  clock.Clock
	parser *jwt.Parser
}

func NewTokenInspector(clock clock.Clock) *TokenInspector {
	return &TokenInspector{clock: clock, parser: jwt.NewParser()}
}

func (t *TokenInspector) Inspect(raw string) (domain.TokenInfo, error) {
	if raw == "" {
		return domain.TokenInfo{}, apperrors.ErrNoCredentials
	}
	claims := jwt.MapClaims{}
	if _, _, err := t.parser.ParseUnverified(raw, claims); err != nil {
		return domain.TokenInfo{}, fmt.Errorf("%w: decode token: %v", apperrors.ErrInvalidInput, err)
	}
	subject, err := claims.GetSubject()
	if err != nil {
		return domain.TokenInfo{}, fmt.Errorf("%w: token subject: %v", apperrors.ErrInvalidInput, err)
	}
	expires, err := claims.GetExpirationTime()
	if err != nil {
		return domain.TokenInfo{}, fmt.Errorf("%w: token expiry: %v", apperrors.ErrInvalidInput, err)
	}
	info := domain.TokenInfo{Subject: subject}
	if kind, ok := claims["type"].(string); ok {
		info.Type = kind
	}
	if expires != nil {
		info.ExpiresAt = expires.Time.UTC()
		info.Expired = !t.clock.Now().Before(info.ExpiresAt)
	}
	return info, nil
}

func (t *TokenInspector) Now() time.Time {
	return t.clock.Now()
}
