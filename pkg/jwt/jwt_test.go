package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "alice@example.com", true)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user %s, got %s", userID, claims.UserID)
	}
	if claims.Email != "alice@example.com" || !claims.IsAdmin {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	token, err := m.GenerateRefreshToken(userID)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	got, err := m.ValidateRefreshToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if got != userID {
		t.Fatalf("expected user %s, got %s", userID, got)
	}
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	access, _ := m.GenerateAccessToken(userID, "alice@example.com", false)
	refresh, _ := m.GenerateRefreshToken(userID)

	if _, err := m.ValidateAccessToken(refresh); err == nil {
		t.Fatalf("refresh token must not validate as access token")
	}
	if _, err := m.ValidateRefreshToken(access); err == nil {
		t.Fatalf("access token must not validate as refresh token")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", -time.Minute, 24*time.Hour)

	token, err := m.GenerateAccessToken(uuid.New(), "alice@example.com", false)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := m.ValidateAccessToken(token); err == nil {
		t.Fatalf("expired token must be rejected")
	}
}
