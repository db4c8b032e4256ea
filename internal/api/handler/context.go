package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/soccerhub/account-service/internal/core/domain"
)

// caller is the resolved identity of the request: who the bearer token
// belongs to and which roles it carries. Response assembly branches on this
// once per request instead of sprinkling role checks through the mappers.
type caller struct {
	Email string
	Roles []string
}

// HasRole reports whether the caller carries the given role.
func (cl caller) HasRole(role domain.Role) bool {
	for _, r := range cl.Roles {
		if r == string(role) {
			return true
		}
	}
	return false
}

// ctxCaller extracts the claims injected by the Auth middleware. ok is false
// when the request was not authenticated.
func ctxCaller(c echo.Context) (caller, bool) {
	email, _ := c.Get("email").(string)
	roles, _ := c.Get("roles").([]string)
	if email == "" {
		return caller{}, false
	}
	return caller{Email: email, Roles: roles}, true
}
