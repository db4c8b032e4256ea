package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/soccerhub/account-service/internal/core/domain"
	"github.com/soccerhub/account-service/internal/core/ports"
)

const maxPageSize = 100

// AccountService orchestrates hashing and storage for accounts.
type AccountService struct {
	repo   ports.AccountRepository
	hasher ports.PasswordHasher
	audit  ports.AuditRecorder
	log    zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, hasher ports.PasswordHasher, audit ports.AuditRecorder, log zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, hasher: hasher, audit: audit, log: log}
}

// normalizeEmail lowercases the address so uniqueness and lookups are
// case-insensitive. Applied on every write and credential resolution.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validRoles guards against callers that bypass the API-level tags.
func validRoles(roles []domain.Role) error {
	if len(roles) == 0 {
		return &domain.ValidationError{Errors: []domain.FieldError{{
			Field:   "roles",
			Code:    "required",
			Message: "roles must not be empty",
		}}}
	}
	for _, r := range roles {
		if !domain.ValidRole(r) {
			return &domain.ValidationError{Errors: []domain.FieldError{{
				Field:   "roles",
				Code:    "oneof",
				Message: fmt.Sprintf("unknown role %q", r),
			}}}
		}
	}
	return nil
}

// Create hashes the plaintext password and inserts a new account. The
// plaintext is never persisted.
func (s *AccountService) Create(ctx context.Context, input ports.CreateAccountInput) (*domain.Account, error) {
	if err := validRoles(input.Roles); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Email:        normalizeEmail(input.Email),
		PasswordHash: hash,
		Name:         input.Name,
		Roles:        input.Roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Insert(ctx, account)
	if err != nil {
		s.log.Error().Err(err).Str("email", account.Email).Msg("failed to create account")
		return nil, err
	}

	s.recordAudit(created, domain.AuditAccountCreated, input.Actor)
	s.log.Info().Int("id", created.ID).Str("email", created.Email).Msg("account created")
	return created, nil
}

// Get returns the account with the given id.
func (s *AccountService) Get(ctx context.Context, id int) (*domain.Account, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns one page of accounts with pagination metadata. Page is
// zero-indexed; size is capped at maxPageSize.
func (s *AccountService) List(ctx context.Context, filter ports.ListAccountsFilter) (*ports.AccountPage, error) {
	if filter.Page < 0 {
		filter.Page = 0
	}
	if filter.Size <= 0 {
		filter.Size = 20
	}
	if filter.Size > maxPageSize {
		filter.Size = maxPageSize
	}

	items, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.Size) - 1) / int64(filter.Size))
	return &ports.AccountPage{
		Items:         items,
		Page:          filter.Page,
		Size:          filter.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

// Update replaces the mutable fields of an existing account. The stored
// password hash is replaced only when input.Password carries a new
// plaintext; a round-tripped account can never be re-hashed.
func (s *AccountService) Update(ctx context.Context, id int, input ports.UpdateAccountInput) (*domain.Account, error) {
	if err := validRoles(input.Roles); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Email = normalizeEmail(input.Email)
	existing.Name = input.Name
	existing.Roles = input.Roles
	existing.UpdatedAt = time.Now().UTC()

	if input.Password != "" {
		hash, err := s.hasher.Hash(input.Password)
		if err != nil {
			return nil, err
		}
		existing.PasswordHash = hash
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		s.log.Error().Err(err).Int("id", id).Msg("failed to update account")
		return nil, err
	}

	s.recordAudit(updated, domain.AuditAccountUpdated, input.Actor)
	s.log.Info().Int("id", updated.ID).Str("email", updated.Email).Msg("account updated")
	return updated, nil
}

// ResolveCredentials exposes the stored hash and roles for the token
// endpoint to verify against.
func (s *AccountService) ResolveCredentials(ctx context.Context, email string) (*ports.CredentialPrincipal, error) {
	account, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	return &ports.CredentialPrincipal{
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		Roles:        account.Roles,
	}, nil
}

// Exists reports whether an account with the given email is registered.
func (s *AccountService) Exists(ctx context.Context, email string) (bool, error) {
	_, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if err == domain.ErrAccountNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *AccountService) recordAudit(account *domain.Account, action domain.AuditAction, actor string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEntry{
		AccountID: account.ID,
		Email:     account.Email,
		Action:    action,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
	})
}
