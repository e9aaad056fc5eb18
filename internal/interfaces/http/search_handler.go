package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mayondo-api/internal/application/search"
)

// SearchHandler búsqueda global en ventas y stock.
type SearchHandler struct {
	uc *search.UseCase
}

// NewSearchHandler construye el handler.
func NewSearchHandler(uc *search.UseCase) *SearchHandler {
	return &SearchHandler{uc: uc}
}

// Search GET /api/search?q=
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
