package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenManager_SignAndVerify(t *testing.T) {
	manager := NewTokenManager(TokenConfig{
		SecretKey:  "test-secret",
		SessionTTL: time.Hour,
		Issuer:     "test",
	})

	token, err := manager.Sign("session-1", "user-1", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.SessionID != "session-1" {
		t.Errorf("SessionID = %q, want %q", claims.SessionID, "session-1")
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "user-1")
	}
	if claims.Issuer != "test" {
		t.Errorf("Issuer = %q, want %q", claims.Issuer, "test")
	}
}

func TestTokenManager_VerifyRejects(t *testing.T) {
	manager := NewTokenManager(TokenConfig{
		SecretKey:  "test-secret",
		SessionTTL: time.Hour,
		Issuer:     "test",
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := manager.Verify("not-a-token")
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenManager(TokenConfig{
			SecretKey:  "different-secret",
			SessionTTL: time.Hour,
			Issuer:     "test",
		})
		token, err := other.Sign("session-1", "user-1", time.Now().Add(time.Hour))
		if err != nil {
			t.Fatalf("Sign() error = %v", err)
		}
		if _, err := manager.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := manager.Sign("session-1", "user-1", time.Now().Add(-time.Minute))
		if err != nil {
			t.Fatalf("Sign() error = %v", err)
		}
		if _, err := manager.Verify(token); !errors.Is(err, ErrExpiredToken) {
			t.Errorf("Verify() error = %v, want ErrExpiredToken", err)
		}
	})
}
