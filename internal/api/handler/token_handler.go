package handler

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/soccerhub/account-service/internal/api/metrics"
	"github.com/soccerhub/account-service/internal/core/domain"
	"github.com/soccerhub/account-service/internal/core/ports"
)

// TokenHandler implements the OAuth2 password-grant token endpoint. Clients
// authenticate with HTTP basic credentials; resource owners with form-encoded
// username/password.
type TokenHandler struct {
	tokens       ports.TokenService
	clientID     string
	clientSecret string
}

func NewTokenHandler(tokens ports.TokenService, clientID, clientSecret string) *TokenHandler {
	return &TokenHandler{tokens: tokens, clientID: clientID, clientSecret: clientSecret}
}

// Token handles POST /oauth/token.
//
// @Summary      Issue a bearer token (password grant)
// @Tags         oauth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        grant_type  formData  string  true  "Must be \"password\""
// @Param        username    formData  string  true  "Account email"
// @Param        password    formData  string  true  "Account password"
// @Success      200  {object}  tokenResponse
// @Failure      400  {object}  oauthErrorResponse
// @Failure      401  {object}  oauthErrorResponse
// @Failure      429  {object}  oauthErrorResponse
// @Router       /oauth/token [post]
func (h *TokenHandler) Token(c echo.Context) error {
	clientID, clientSecret, ok := c.Request().BasicAuth()
	if !ok || !h.validClient(clientID, clientSecret) {
		metrics.TokenRequestsTotal.WithLabelValues("denied").Inc()
		return c.JSON(http.StatusUnauthorized, oauthErrorResponse{Error: "invalid_client"})
	}

	if c.FormValue("grant_type") != "password" {
		metrics.TokenRequestsTotal.WithLabelValues("denied").Inc()
		return c.JSON(http.StatusBadRequest, oauthErrorResponse{Error: "unsupported_grant_type"})
	}

	grant, err := h.tokens.Grant(c.Request().Context(), c.FormValue("username"), c.FormValue("password"))
	if err != nil {
		if errors.Is(err, domain.ErrTooManyAttempts) {
			metrics.TokenRequestsTotal.WithLabelValues("throttled").Inc()
			return c.JSON(http.StatusTooManyRequests, oauthErrorResponse{
				Error:            "invalid_grant",
				ErrorDescription: "too many failed attempts, try again later",
			})
		}
		if errors.Is(err, domain.ErrAccountNotFound) || errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.TokenRequestsTotal.WithLabelValues("denied").Inc()
			return c.JSON(http.StatusBadRequest, oauthErrorResponse{Error: "invalid_grant"})
		}
		return err
	}

	metrics.TokenRequestsTotal.WithLabelValues("granted").Inc()
	c.Response().Header().Set("Cache-Control", "no-store")
	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken: grant.AccessToken,
		TokenType:   grant.TokenType,
		ExpiresIn:   grant.ExpiresIn,
	})
}

func (h *TokenHandler) validClient(id, secret string) bool {
	idOK := subtle.ConstantTimeCompare([]byte(id), []byte(h.clientID)) == 1
	secretOK := subtle.ConstantTimeCompare([]byte(secret), []byte(h.clientSecret)) == 1
	return idOK && secretOK
}
