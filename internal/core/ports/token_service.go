package ports

import "context"

// TokenGrant is the result of a successful password grant.
type TokenGrant struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64 // seconds until expiry
}

// TokenService implements the OAuth2 password grant: verify credentials,
// issue a signed bearer token.
type TokenService interface {
	Grant(ctx context.Context, username, password string) (*TokenGrant, error)
}

// LoginThrottle limits repeated failed login attempts per email.
type LoginThrottle interface {
	TooManyFailures(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
