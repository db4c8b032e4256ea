package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/soccerhub/account-service/internal/core/domain"
	"github.com/soccerhub/account-service/internal/core/ports"
)

// TokenService implements the OAuth2 password grant: resolve the account by
// email, verify the password against the stored hash, and issue an HS256
// bearer token carrying the role set.
type TokenService struct {
	accounts  ports.AccountService
	hasher    ports.PasswordHasher
	throttle  ports.LoginThrottle
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewTokenService(accounts ports.AccountService, hasher ports.PasswordHasher, throttle ports.LoginThrottle, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *TokenService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &TokenService{
		accounts:  accounts,
		hasher:    hasher,
		throttle:  throttle,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Grant verifies the credentials and returns a signed bearer token.
func (s *TokenService) Grant(ctx context.Context, username, password string) (*ports.TokenGrant, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	// The throttle and the account store must agree on identity: case
	// variants of one address share a single failure budget.
	username = normalizeEmail(username)

	if s.throttle != nil {
		blocked, err := s.throttle.TooManyFailures(ctx, username)
		if err != nil {
			s.log.Warn().Err(err).Str("email", username).Msg("throttle check failed, proceeding")
		} else if blocked {
			return nil, domain.ErrTooManyAttempts
		}
	}

	principal, err := s.accounts.ResolveCredentials(ctx, username)
	if err != nil {
		return nil, err
	}

	if s.hasher.Compare(principal.PasswordHash, password) != nil {
		if s.throttle != nil {
			if err := s.throttle.RecordFailure(ctx, username); err != nil {
				s.log.Warn().Err(err).Str("email", username).Msg("failed to record login failure")
			}
		}
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.log.Warn().Err(err).Str("email", username).Msg("failed to reset login throttle")
		}
	}

	token, err := s.signToken(principal)
	if err != nil {
		return nil, err
	}

	return &ports.TokenGrant{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
	}, nil
}

func (s *TokenService) signToken(principal *ports.CredentialPrincipal) (string, error) {
	roles := make([]string, len(principal.Roles))
	for i, r := range principal.Roles {
		roles[i] = string(r)
	}

	claims := jwt.MapClaims{
		"sub":   principal.Email,
		"roles": roles,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
