package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"driveline/internal/config"
	"driveline/internal/core/domain"
	"driveline/internal/pkg/password"
)

func newTestAuthService(ttl time.Duration) (*AuthService, *fakeStore) {
	store := newFakeStore()
	cfg := &config.Config{Session: config.SessionConfig{TTL: ttl}}
	svc := NewAuthService(&fakeUserRepo{store}, &fakeSessionRepo{store}, cfg)
	return svc, store
}

func mustRegister(t *testing.T, svc *AuthService, email, phone string) {
	t.Helper()
	_, err := svc.Register(context.Background(), &RegisterInput{
		Email:    email,
		Phone:    phone,
		FullName: "Test User",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name    string
		input   RegisterInput
		wantErr error
	}{
		{
			name:  "valid registration",
			input: RegisterInput{Email: "alice@example.com", Phone: "+71234567890", FullName: "Alice", Password: "password123"},
		},
		{
			name:  "cyrillic email accepted",
			input: RegisterInput{Email: "иван@почта.рф", Phone: "+79876543210", FullName: "Ivan", Password: "password123"},
		},
		{
			name:    "malformed email",
			input:   RegisterInput{Email: "not-an-email", Phone: "+71234567890", FullName: "Alice", Password: "password123"},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "phone too short",
			input:   RegisterInput{Email: "alice@example.com", Phone: "12345", FullName: "Alice", Password: "password123"},
			wantErr: ErrInvalidPhone,
		},
		{
			name:    "phone with letters",
			input:   RegisterInput{Email: "alice@example.com", Phone: "+7123456789x", FullName: "Alice", Password: "password123"},
			wantErr: ErrInvalidPhone,
		},
		{
			name:    "password too short",
			input:   RegisterInput{Email: "alice@example.com", Phone: "+71234567890", FullName: "Alice", Password: "short"},
			wantErr: ErrWeakPassword,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			svc, _ := newTestAuthService(time.Hour)

			user, err := svc.Register(context.Background(), &test.input)

			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("Register() error = %v, want %v", err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Register() error = %v", err)
			}
			if user.Role != domain.RoleMember {
				t.Errorf("new user role = %q, want %q", user.Role, domain.RoleMember)
			}
		})
	}
}

func TestAuthService_Register_DuplicateIdentity(t *testing.T) {
	svc, _ := newTestAuthService(time.Hour)
	mustRegister(t, svc, "alice@example.com", "+71234567890")

	tests := []struct {
		name  string
		email string
		phone string
	}{
		{name: "duplicate email", email: "alice@example.com", phone: "+79999999999"},
		{name: "duplicate phone", email: "bob@example.com", phone: "+71234567890"},
		{name: "email case folded", email: "ALICE@EXAMPLE.COM", phone: "+78888888888"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), &RegisterInput{
				Email:    test.email,
				Phone:    test.phone,
				FullName: "Dup",
				Password: "password123",
			})
			if !errors.Is(err, ErrUserAlreadyExists) {
				t.Fatalf("Register() error = %v, want ErrUserAlreadyExists", err)
			}
			if !errors.Is(err, domain.ErrConflict) {
				t.Errorf("ErrUserAlreadyExists should be a Conflict")
			}
		})
	}
}

func TestAuthService_LoginAndValidate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(time.Hour)
	mustRegister(t, svc, "alice@example.com", "+71234567890")

	tests := []struct {
		name       string
		identifier string
		password   string
		wantErr    bool
	}{
		{name: "login by email", identifier: "alice@example.com", password: "password123"},
		{name: "login by phone", identifier: "+71234567890", password: "password123"},
		{name: "wrong password", identifier: "alice@example.com", password: "wrongpass123", wantErr: true},
		{name: "unknown identifier", identifier: "nobody@example.com", password: "password123", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result, err := svc.Login(ctx, &LoginInput{Identifier: test.identifier, Password: test.password})

			if test.wantErr {
				if !errors.Is(err, ErrInvalidCredentials) {
					t.Fatalf("Login() error = %v, want ErrInvalidCredentials", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if result.Token == "" {
				t.Fatal("Login() returned empty token")
			}

			principal, err := svc.Validate(ctx, result.Token)
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if principal.User.Email != "alice@example.com" {
				t.Errorf("principal email = %q", principal.User.Email)
			}
			if principal.Role != domain.RoleMember {
				t.Errorf("principal role = %q, want member", principal.Role)
			}
		})
	}
}

func TestAuthService_Validate_SlidingExpiry(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestAuthService(time.Hour)
	mustRegister(t, svc, "alice@example.com", "+71234567890")

	result, err := svc.Login(ctx, &LoginInput{Identifier: "alice@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	// Shrink the remaining window, then validate: the touch must push the
	// expiry back out to a full TTL.
	store.mu.Lock()
	for _, sess := range store.sessions {
		sess.ExpiresAt = time.Now().Add(time.Minute)
	}
	store.mu.Unlock()

	if _, err := svc.Validate(ctx, result.Token); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	store.mu.Lock()
	var expiresAt time.Time
	for _, sess := range store.sessions {
		expiresAt = sess.ExpiresAt
	}
	store.mu.Unlock()

	if remaining := time.Until(expiresAt); remaining < 50*time.Minute {
		t.Errorf("expiry not extended: %v remaining, want close to 1h", remaining)
	}
}

func TestAuthService_Validate_Expired(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestAuthService(time.Hour)
	mustRegister(t, svc, "alice@example.com", "+71234567890")

	result, err := svc.Login(ctx, &LoginInput{Identifier: "alice@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	store.mu.Lock()
	for _, sess := range store.sessions {
		sess.ExpiresAt = time.Now().Add(-time.Second)
	}
	store.mu.Unlock()

	if _, err := svc.Validate(ctx, result.Token); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("Validate() error = %v, want ErrSessionInvalid", err)
	}

	// The expired row is reclaimed lazily
	store.mu.Lock()
	remaining := len(store.sessions)
	store.mu.Unlock()
	if remaining != 0 {
		t.Errorf("expired session not reclaimed, %d rows left", remaining)
	}

	// Still invalid on a second attempt
	if _, err := svc.Validate(ctx, result.Token); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("second Validate() error = %v, want ErrSessionInvalid", err)
	}
}

func TestAuthService_Revoke_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(time.Hour)
	mustRegister(t, svc, "alice@example.com", "+71234567890")

	result, err := svc.Login(ctx, &LoginInput{Identifier: "alice@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if err := svc.Revoke(ctx, result.Token); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}
	if _, err := svc.Validate(ctx, result.Token); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("Validate() after revoke error = %v, want ErrSessionInvalid", err)
	}

	// Revoking again, or revoking garbage, still succeeds
	if err := svc.Revoke(ctx, result.Token); err != nil {
		t.Errorf("second Revoke() error = %v", err)
	}
	if err := svc.Revoke(ctx, "no-such-token"); err != nil {
		t.Errorf("Revoke(unknown) error = %v", err)
	}
}

func TestAuthService_PurgeExpired(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestAuthService(time.Hour)
	mustRegister(t, svc, "alice@example.com", "+71234567890")

	live, err := svc.Login(ctx, &LoginInput{Identifier: "alice@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	stale, err := svc.Login(ctx, &LoginInput{Identifier: "alice@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	// Expire the stale session only
	staleHash := password.HashToken(stale.Token)
	store.mu.Lock()
	for _, sess := range store.sessions {
		if sess.TokenHash == staleHash {
			sess.ExpiresAt = time.Now().Add(-time.Minute)
		}
	}
	store.mu.Unlock()

	deleted, err := svc.PurgeExpired(ctx)
	if err != nil {
		t.Fatalf("PurgeExpired() error = %v", err)
	}
	if deleted != 1 {
		t.Fatalf("PurgeExpired() deleted = %d, want 1", deleted)
	}

	if _, err := svc.Validate(ctx, live.Token); err != nil {
		t.Errorf("live session should survive purge, got %v", err)
	}
	if _, err := svc.Validate(ctx, stale.Token); !errors.Is(err, ErrSessionInvalid) {
		t.Errorf("stale session should be gone, got %v", err)
	}
}
