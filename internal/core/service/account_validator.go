package service

import (
	"context"
	"fmt"

	"github.com/soccerhub/account-service/internal/core/domain"
	"github.com/soccerhub/account-service/internal/core/ports"
)

// AccountValidator enforces domain invariants before persistence. The only
// rule here is email uniqueness; structural field presence is checked at the
// API boundary. This check is a pre-flight optimization: the storage-level
// unique index remains the final arbiter under concurrent creates.
type AccountValidator struct {
	repo ports.AccountRepository
}

func NewAccountValidator(repo ports.AccountRepository) *AccountValidator {
	return &AccountValidator{repo: repo}
}

// Validate returns a field error on "email" when an account with the same
// address already exists. Comparison is case-insensitive via the same
// normalization the service applies on writes.
func (v *AccountValidator) Validate(ctx context.Context, email string) ([]domain.FieldError, error) {
	email = normalizeEmail(email)
	_, err := v.repo.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			return nil, nil
		}
		return nil, err
	}
	return []domain.FieldError{{
		Field:   "email",
		Code:    "exists",
		Message: fmt.Sprintf("This account has already been registered (%s)", email),
	}}, nil
}
