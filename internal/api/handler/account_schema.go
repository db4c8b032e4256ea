package handler

import (
	"github.com/soccerhub/account-service/internal/core/domain"
)

// halLink is a single HAL hypermedia link.
type halLink struct {
	Href string `json:"href"`
}

// halLinks maps link relations to their targets. Affordances are added
// conditionally based on the caller's role, so a map keeps the JSON contract
// flexible without omitempty gymnastics.
type halLinks map[string]halLink

// validationErrorResponse is the envelope for all 400 responses: the full
// list of collected field errors.
type validationErrorResponse struct {
	Errors []domain.FieldError `json:"errors"`
}

// --- Request types ---

type createAccountRequest struct {
	Email    string   `json:"email"    validate:"required,email"`
	Password string   `json:"password" validate:"required"`
	Name     string   `json:"name"     validate:"required"`
	Roles    []string `json:"roles"    validate:"required,min=1,dive,oneof=ADMIN USER"`
}

// updateAccountRequest replaces the mutable fields of an account. Password
// is optional: when present it sets a new credential, when absent the stored
// hash is untouched.
type updateAccountRequest struct {
	Email    string   `json:"email"    validate:"required,email"`
	Name     string   `json:"name"     validate:"required"`
	Roles    []string `json:"roles"    validate:"required,min=1,dive,oneof=ADMIN USER"`
	Password string   `json:"password,omitempty"`
}

// --- Response types ---

type accountResponse struct {
	ID    int      `json:"id"`
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
	Links halLinks `json:"_links"`
}

// pageMetadata mirrors the HAL "page" block: zero-indexed page number plus
// totals for deterministic client paging.
type pageMetadata struct {
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
}

type embeddedAccounts struct {
	AccountList []accountResponse `json:"accountList"`
}

type listAccountsResponse struct {
	Embedded embeddedAccounts `json:"_embedded"`
	Links    halLinks         `json:"_links"`
	Page     pageMetadata     `json:"page"`
}

// indexResponse is the HAL entry point returned by GET /api.
type indexResponse struct {
	Links halLinks `json:"_links"`
}

// tokenResponse is the OAuth2 password-grant success body.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// oauthErrorResponse follows the OAuth2 error format for the token endpoint.
type oauthErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}
