package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"poolwatch/internal/modules/auth/service"
	"poolwatch/internal/platform/clock"
	apperrors "poolwatch/internal/platform/errors"
)

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("not-the-server-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

func TestInspectReadsClaimsWithoutVerifying(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	inspector := service.NewTokenInspector(clock.Fixed(now))
	raw := sign(t, jwt.MapClaims{"sub": "alice", "type": "access", "exp": now.Add(15 * time.Minute).Unix()})

	info, err := inspector.Inspect(raw)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if info.Subject != "alice" || info.Type != "access" {
		t.Fatalf("unexpected claims %+v", info)
	}
	if info.Expired || !info.ExpiresAt.Equal(now.Add(15*time.Minute)) {
		t.Fatalf("unexpected expiry %+v", info)
	}
}

func TestInspectFlagsExpiredToken(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	inspector := service.NewTokenInspector(clock.Fixed(now))
	raw := sign(t, jwt.MapClaims{"sub": "alice", "exp": now.Add(-time.Minute).Unix()})

	info, err := inspector.Inspect(raw)
	if err != nil {
		t.Fatalf("expired tokens must still be readable: %v", err)
	}
	if !info.Expired {
		t.Fatalf("expected token to be reported expired: %+v", info)
	}
}

func TestInspectRejectsGarbage(t *testing.T) {
	t.Parallel()
	inspector := service.NewTokenInspector(clock.SystemClock{})
	if _, err := inspector.Inspect("not-a-jwt"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := inspector.Inspect(""); !errors.Is(err, apperrors.ErrNoCredentials) {
		t.Fatalf("expected no credentials, got %v", err)
	}
}
