package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mkozlowski/albumz/internal/storage/sqlite"
)

func newTestAuthenticator(t *testing.T) *PasswordAuthenticator {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewPasswordAuthenticator(store)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with hashed password", func(t *testing.T) {
		a := newTestAuthenticator(t)

		user, err := a.Register(ctx, "alice", "correct horse battery staple")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if user.ID == "" {
			t.Error("expected user ID to be assigned")
		}
		if user.PasswordHash == "correct horse battery staple" {
			t.Error("expected password to be hashed")
		}
	})

	t.Run("rejects short password", func(t *testing.T) {
		a := newTestAuthenticator(t)

		_, err := a.Register(ctx, "alice", "short")
		if !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		a := newTestAuthenticator(t)

		if _, err := a.Register(ctx, "alice", "password-one"); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		_, err := a.Register(ctx, "alice", "password-two")
		if !errors.Is(err, ErrUsernameTaken) {
			t.Fatalf("expected ErrUsernameTaken, got %v", err)
		}
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials return the user", func(t *testing.T) {
		a := newTestAuthenticator(t)

		registered, err := a.Register(ctx, "alice", "super secret pw")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}

		user, err := a.Authenticate(ctx, "alice", "super secret pw")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if user.ID != registered.ID {
			t.Errorf("expected user %s, got %s", registered.ID, user.ID)
		}
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		a := newTestAuthenticator(t)

		if _, err := a.Register(ctx, "alice", "super secret pw"); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		_, err := a.Authenticate(ctx, "alice", "wrong password")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown username is rejected", func(t *testing.T) {
		a := newTestAuthenticator(t)

		_, err := a.Authenticate(ctx, "nobody", "whatever else")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestJWTRoundTrip(t *testing.T) {
	a := newTestAuthenticator(t)
	ctx := context.Background()

	user, err := a.Register(ctx, "alice", "super secret pw")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	manager := NewJWTManager("test-secret", time.Hour)

	token, err := manager.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Username != "alice" {
		t.Errorf("unexpected claims: %+v", claims)
	}

	if _, err := manager.Validate(token + "tampered"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}
