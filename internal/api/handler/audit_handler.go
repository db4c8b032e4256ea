package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/soccerhub/account-service/internal/core/domain"
	"github.com/soccerhub/account-service/internal/core/ports"
)

// AuditHandler exposes the per-account audit trail to administrators.
type AuditHandler struct {
	accounts ports.AccountService
	audit    ports.AuditReader
}

func NewAuditHandler(accounts ports.AccountService, audit ports.AuditReader) *AuditHandler {
	return &AuditHandler{accounts: accounts, audit: audit}
}

type auditEntryResponse struct {
	AccountID int       `json:"account_id"`
	Email     string    `json:"email"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type auditTrailResponse struct {
	Entries []auditEntryResponse `json:"entries"`
}

// List handles GET /api/accounts/:id/audit.
//
// @Summary      List the audit trail of an account
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Account id"
// @Success      200  {object}  auditTrailResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  "account not found"
// @Router       /api/accounts/{id}/audit [get]
func (h *AuditHandler) List(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.NoContent(http.StatusNotFound)
	}

	if _, err := h.accounts.Get(c.Request().Context(), id); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}

	entries, err := h.audit.FindByAccount(c.Request().Context(), id)
	if err != nil {
		return err
	}

	resp := auditTrailResponse{Entries: make([]auditEntryResponse, len(entries))}
	for i, e := range entries {
		resp.Entries[i] = auditEntryResponse{
			AccountID: e.AccountID,
			Email:     e.Email,
			Action:    string(e.Action),
			Actor:     e.Actor,
			Timestamp: e.Timestamp,
		}
	}
	return c.JSON(http.StatusOK, resp)
}
