package auth

import (
	"errors"
	"testing"
	"time"

	domain "github.com/example/task-api/domain/account"
)

func TestAccountRepository_CreateUser(t *testing.T) {
	repo := NewAccountRepository(setupTestDB(t))

	now := time.Now()
	user := &domain.User{
		ID:           "u1",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.CreateUser(user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	t.Run("duplicate email maps to ErrEmailTaken", func(t *testing.T) {
		// Hits the unique index directly, the way a concurrent
		// sign-up would after both passed the EmailExists check.
		dup := &domain.User{
			ID:           "u2",
			Email:        "alice@example.com",
			PasswordHash: "hash",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := repo.CreateUser(dup); !errors.Is(err, ErrEmailTaken) {
			t.Errorf("CreateUser() error = %v, want ErrEmailTaken", err)
		}
	})
}

func TestAccountRepository_Sessions(t *testing.T) {
	repo := NewAccountRepository(setupTestDB(t))

	now := time.Now()
	session := &domain.Session{
		ID:        "s1",
		Token:     "token-1",
		UserID:    "u1",
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.CreateSession(session); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	t.Run("find by id", func(t *testing.T) {
		got, err := repo.FindSessionByID("s1")
		if err != nil {
			t.Fatalf("FindSessionByID() error = %v", err)
		}
		if got.Token != "token-1" {
			t.Errorf("Token = %q, want %q", got.Token, "token-1")
		}
	})

	t.Run("prune expired", func(t *testing.T) {
		expired := &domain.Session{
			ID:        "s2",
			Token:     "token-2",
			UserID:    "u1",
			ExpiresAt: now.Add(-time.Hour),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := repo.CreateSession(expired); err != nil {
			t.Fatalf("CreateSession() error = %v", err)
		}
		if err := repo.DeleteExpiredSessions(); err != nil {
			t.Fatalf("DeleteExpiredSessions() error = %v", err)
		}
		if _, err := repo.FindSessionByID("s2"); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("FindSessionByID() error = %v, want ErrSessionNotFound", err)
		}
		if _, err := repo.FindSessionByID("s1"); err != nil {
			t.Errorf("live session was pruned: %v", err)
		}
	})

	t.Run("delete missing session", func(t *testing.T) {
		if err := repo.DeleteSession("nope"); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("DeleteSession() error = %v, want ErrSessionNotFound", err)
		}
	})
}
