package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// IndexHandler serves the API entry point for hypermedia discovery.
type IndexHandler struct{}

func NewIndexHandler() *IndexHandler {
	return &IndexHandler{}
}

// Index handles GET /api — the root HAL document pointing at the account
// collection.
func (h *IndexHandler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, indexResponse{
		Links: halLinks{
			"accounts": halLink{Href: accountsPath},
		},
	})
}
