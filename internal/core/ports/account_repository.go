package ports

import (
	"context"

	"github.com/soccerhub/account-service/internal/core/domain"
)

// SortSpec is a field name plus direction for list ordering.
type SortSpec struct {
	Field string // one of: id, email, name
	Desc  bool
}

// ListAccountsFilter carries pagination and ordering for listing accounts.
// Page is zero-indexed.
type ListAccountsFilter struct {
	Page int
	Size int
	Sort SortSpec
}

// AccountRepository defines persistence operations for accounts.
// Email uniqueness is enforced at the storage layer: Insert and Update
// return domain.ErrEmailTaken on a duplicate, regardless of any pre-flight
// validation the caller performed.
type AccountRepository interface {
	Insert(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByID(ctx context.Context, id int) (*domain.Account, error)
	// FindByEmail does an exact match; callers normalize the email first.
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	// FindAll returns one page of accounts and the total count across all pages.
	FindAll(ctx context.Context, filter ListAccountsFilter) ([]*domain.Account, int64, error)
	// Update replaces all mutable fields of an existing account.
	// Returns domain.ErrAccountNotFound when the id does not exist.
	Update(ctx context.Context, account *domain.Account) (*domain.Account, error)
}
