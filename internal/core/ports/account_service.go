package ports

import (
	"context"

	"github.com/soccerhub/account-service/internal/core/domain"
)

// CreateAccountInput carries the data needed to create a new account.
// Password is the transient plaintext; it is hashed before persistence and
// never stored.
type CreateAccountInput struct {
	Email    string
	Password string
	Name     string
	Roles    []domain.Role
	Actor    string
}

// UpdateAccountInput replaces the mutable fields of an existing account.
// Password is optional: when empty the stored hash is left untouched.
type UpdateAccountInput struct {
	Email    string
	Name     string
	Roles    []domain.Role
	Password string
	Actor    string
}

// AccountPage is one page of a listing plus pagination metadata.
type AccountPage struct {
	Items         []*domain.Account
	Page          int
	Size          int
	TotalElements int64
	TotalPages    int
}

// CredentialPrincipal exposes the stored hash and roles of an account for
// the authentication layer to verify against.
type CredentialPrincipal struct {
	Email        string
	PasswordHash string
	Roles        []domain.Role
}

// AccountService defines use-case operations for accounts.
type AccountService interface {
	Create(ctx context.Context, input CreateAccountInput) (*domain.Account, error)
	Get(ctx context.Context, id int) (*domain.Account, error)
	List(ctx context.Context, filter ListAccountsFilter) (*AccountPage, error)
	Update(ctx context.Context, id int, input UpdateAccountInput) (*domain.Account, error)
	// ResolveCredentials looks up an account by email for credential
	// verification. Returns domain.ErrAccountNotFound when absent.
	ResolveCredentials(ctx context.Context, email string) (*CredentialPrincipal, error)
	Exists(ctx context.Context, email string) (bool, error)
}

// AccountValidator runs the pre-flight domain checks before persistence.
// An empty slice means the candidate is acceptable.
type AccountValidator interface {
	Validate(ctx context.Context, email string) ([]domain.FieldError, error)
}
