package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/soccerhub/account-service/internal/core/domain"
	"github.com/soccerhub/account-service/internal/core/ports"
	"github.com/soccerhub/account-service/internal/infrastructure/hash"
)

type stubThrottle struct {
	blocked  bool
	failures int
	resets   int
	failKeys []string
}

func (s *stubThrottle) TooManyFailures(_ context.Context, _ string) (bool, error) {
	return s.blocked, nil
}

func (s *stubThrottle) RecordFailure(_ context.Context, email string) error {
	s.failures++
	s.failKeys = append(s.failKeys, email)
	return nil
}

func (s *stubThrottle) Reset(_ context.Context, _ string) error {
	s.resets++
	return nil
}

func tokenFixture(t *testing.T) (ports.AccountService, *stubThrottle) {
	t.Helper()
	repo := newStubAccountRepo()
	accounts := newAccountService(repo, nil)
	if _, err := accounts.Create(context.Background(), ports.CreateAccountInput{
		Email:    "carol@x.com",
		Password: "s3cret",
		Name:     "Carol",
		Roles:    []domain.Role{domain.RoleAdmin, domain.RoleUser},
	}); err != nil {
		t.Fatalf("fixture create failed: %v", err)
	}
	return accounts, &stubThrottle{}
}

func TestTokenService_Grant_Success(t *testing.T) {
	accounts, throttle := tokenFixture(t)
	svc := NewTokenService(accounts, hash.NewBcryptHasher(), throttle, "secret", time.Hour, zerolog.Nop())

	grant, err := svc.Grant(context.Background(), "carol@x.com", "s3cret")
	if err != nil {
		t.Fatalf("Grant returned error: %v", err)
	}
	if grant.AccessToken == "" {
		t.Fatalf("expected token, got empty")
	}
	if grant.TokenType != "bearer" {
		t.Fatalf("unexpected token type: %q", grant.TokenType)
	}
	if grant.ExpiresIn != 3600 {
		t.Fatalf("expected 3600s expiry, got %d", grant.ExpiresIn)
	}
	if throttle.resets != 1 {
		t.Fatalf("expected throttle reset after success")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(grant.AccessToken, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != "carol@x.com" {
		t.Fatalf("unexpected sub claim: %v", claims["sub"])
	}
	roles, ok := claims["roles"].([]interface{})
	if !ok || len(roles) != 2 {
		t.Fatalf("unexpected roles claim: %v", claims["roles"])
	}
}

func TestTokenService_Grant_WrongPassword(t *testing.T) {
	accounts, throttle := tokenFixture(t)
	svc := NewTokenService(accounts, hash.NewBcryptHasher(), throttle, "secret", time.Hour, zerolog.Nop())

	if _, err := svc.Grant(context.Background(), "carol@x.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if throttle.failures != 1 {
		t.Fatalf("expected failure to be recorded, got %d", throttle.failures)
	}
}

func TestTokenService_Grant_ThrottleKeyIgnoresEmailCase(t *testing.T) {
	accounts, throttle := tokenFixture(t)
	svc := NewTokenService(accounts, hash.NewBcryptHasher(), throttle, "secret", time.Hour, zerolog.Nop())

	if _, err := svc.Grant(context.Background(), "carol@x.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Grant(context.Background(), " CAROL@X.com ", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if len(throttle.failKeys) != 2 {
		t.Fatalf("expected 2 recorded failures, got %d", len(throttle.failKeys))
	}
	if throttle.failKeys[0] != "carol@x.com" || throttle.failKeys[1] != "carol@x.com" {
		t.Fatalf("case variants must share one throttle key, got %q and %q",
			throttle.failKeys[0], throttle.failKeys[1])
	}
}

func TestTokenService_Grant_UnknownAccount(t *testing.T) {
	accounts, throttle := tokenFixture(t)
	svc := NewTokenService(accounts, hash.NewBcryptHasher(), throttle, "secret", time.Hour, zerolog.Nop())

	if _, err := svc.Grant(context.Background(), "ghost@x.com", "pw"); err != domain.ErrAccountNotFound {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestTokenService_Grant_Throttled(t *testing.T) {
	accounts, throttle := tokenFixture(t)
	throttle.blocked = true
	svc := NewTokenService(accounts, hash.NewBcryptHasher(), throttle, "secret", time.Hour, zerolog.Nop())

	if _, err := svc.Grant(context.Background(), "carol@x.com", "s3cret"); err != domain.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestTokenService_Grant_EmptyCredentials(t *testing.T) {
	accounts, throttle := tokenFixture(t)
	svc := NewTokenService(accounts, hash.NewBcryptHasher(), throttle, "secret", time.Hour, zerolog.Nop())

	if _, err := svc.Grant(context.Background(), "", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
