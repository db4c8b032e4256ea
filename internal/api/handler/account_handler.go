package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/soccerhub/account-service/internal/api/metrics"
	"github.com/soccerhub/account-service/internal/core/domain"
	"github.com/soccerhub/account-service/internal/core/ports"
)

// AccountHandler handles HTTP requests for account operations.
type AccountHandler struct {
	service   ports.AccountService
	validator ports.AccountValidator
}

func NewAccountHandler(service ports.AccountService, validator ports.AccountValidator) *AccountHandler {
	return &AccountHandler{service: service, validator: validator}
}

// Create handles POST /api/accounts.
//
// @Summary      Create a new account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAccountRequest  true  "Account details"
// @Success      201   {object}  accountResponse
// @Failure      400   {object}  validationErrorResponse
// @Failure      401   {object}  map[string]string
// @Router       /api/accounts [post]
func (h *AccountHandler) Create(c echo.Context) error {
	var req createAccountRequest
	if err := c.Bind(&req); err != nil {
		return malformedPayload(c)
	}
	if err := c.Validate(&req); err != nil {
		return h.badRequest(c, err)
	}

	// Pre-flight uniqueness check; the storage-level unique index remains
	// the arbiter under concurrent creates.
	fieldErrs, err := h.validator.Validate(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	if len(fieldErrs) > 0 {
		return fieldErrors(c, fieldErrs)
	}

	cl, _ := ctxCaller(c)
	account, err := h.service.Create(c.Request().Context(), toCreateInput(req, cl.Email))
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return fieldErrors(c, emailTakenErrors(req.Email))
		}
		return err
	}

	metrics.AccountsCreatedTotal.Inc()

	links := halLinks{
		"query-accounts": halLink{Href: accountsPath},
		"profile":        halLink{Href: profileHref},
	}
	c.Response().Header().Set(echo.HeaderLocation, selfHref(account.ID))
	return c.JSON(http.StatusCreated, toAccountResponse(account, links))
}

// List handles GET /api/accounts?page&size&sort.
//
// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int     false  "Zero-indexed page number"
// @Param        size  query     int     false  "Page size (max 100)"
// @Param        sort  query     string  false  "Sort spec, e.g. name,DESC"
// @Success      200   {object}  listAccountsResponse
// @Failure      401   {object}  map[string]string
// @Router       /api/accounts [get]
func (h *AccountHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	sortParam := c.QueryParam("sort")

	sort, err := parseSort(sortParam)
	if err != nil {
		return fieldErrors(c, []domain.FieldError{{
			Field:   "sort",
			Code:    "invalid",
			Message: err.Error(),
		}})
	}

	result, err := h.service.List(c.Request().Context(), ports.ListAccountsFilter{
		Page: page,
		Size: size,
		Sort: sort,
	})
	if err != nil {
		return err
	}

	_, authenticated := ctxCaller(c)
	return c.JSON(http.StatusOK, toListResponse(result, sortParam, authenticated))
}

// Get handles GET /api/accounts/:id.
//
// @Summary      Get an account by id
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Account id"
// @Success      200  {object}  accountResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  "account not found"
// @Router       /api/accounts/{id} [get]
func (h *AccountHandler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.NoContent(http.StatusNotFound)
	}

	account, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}

	links := halLinks{"profile": halLink{Href: profileHref}}
	if cl, ok := ctxCaller(c); ok && cl.HasRole(domain.RoleAdmin) {
		links["update-account"] = halLink{Href: selfHref(account.ID)}
	}
	return c.JSON(http.StatusOK, toAccountResponse(account, links))
}

// Update handles PUT /api/accounts/:id. Only the account owner or an admin
// may update an account.
//
// @Summary      Update an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Account id"
// @Param        body  body      updateAccountRequest  true  "Account details"
// @Success      200   {object}  accountResponse
// @Failure      400   {object}  validationErrorResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   "account not found"
// @Router       /api/accounts/{id} [put]
func (h *AccountHandler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.NoContent(http.StatusNotFound)
	}

	existing, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}

	cl, ok := ctxCaller(c)
	if !ok || (cl.Email != existing.Email && !cl.HasRole(domain.RoleAdmin)) {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
	}

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return malformedPayload(c)
	}
	if err := c.Validate(&req); err != nil {
		return h.badRequest(c, err)
	}

	// A changed email must still be unique across all accounts.
	if !strings.EqualFold(req.Email, existing.Email) {
		fieldErrs, err := h.validator.Validate(c.Request().Context(), req.Email)
		if err != nil {
			return err
		}
		if len(fieldErrs) > 0 {
			return fieldErrors(c, fieldErrs)
		}
	}

	updated, err := h.service.Update(c.Request().Context(), id, toUpdateInput(req, cl.Email))
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return fieldErrors(c, emailTakenErrors(req.Email))
		}
		return err
	}

	metrics.AccountsUpdatedTotal.Inc()

	links := halLinks{"profile": halLink{Href: profileHref}}
	if cl.HasRole(domain.RoleAdmin) {
		links["get-account"] = halLink{Href: selfHref(updated.ID)}
	}
	return c.JSON(http.StatusOK, toAccountResponse(updated, links))
}

// badRequest renders a collected-field-error 400 for structural violations.
func (h *AccountHandler) badRequest(c echo.Context, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return fieldErrors(c, ve.Errors)
	}
	return err
}

func fieldErrors(c echo.Context, errs []domain.FieldError) error {
	for _, fe := range errs {
		metrics.ValidationFailuresTotal.WithLabelValues(fe.Field).Inc()
	}
	return c.JSON(http.StatusBadRequest, validationErrorResponse{Errors: errs})
}

func malformedPayload(c echo.Context) error {
	return fieldErrors(c, []domain.FieldError{{
		Field:   "body",
		Code:    "malformed",
		Message: "invalid payload",
	}})
}

func emailTakenErrors(email string) []domain.FieldError {
	return []domain.FieldError{{
		Field:   "email",
		Code:    "exists",
		Message: "This account has already been registered (" + strings.ToLower(strings.TrimSpace(email)) + ")",
	}}
}

// parseSort interprets the Spring-style sort parameter "field[,ASC|DESC]".
// Allowed fields: id, email, name.
func parseSort(s string) (ports.SortSpec, error) {
	if s == "" {
		return ports.SortSpec{Field: "id"}, nil
	}
	parts := strings.SplitN(s, ",", 2)
	field := strings.ToLower(strings.TrimSpace(parts[0]))
	switch field {
	case "id", "email", "name":
	default:
		return ports.SortSpec{}, errors.New("sort field must be one of: id, email, name")
	}

	spec := ports.SortSpec{Field: field}
	if len(parts) == 2 {
		switch strings.ToUpper(strings.TrimSpace(parts[1])) {
		case "ASC", "":
		case "DESC":
			spec.Desc = true
		default:
			return ports.SortSpec{}, errors.New("sort direction must be ASC or DESC")
		}
	}
	return spec, nil
}
