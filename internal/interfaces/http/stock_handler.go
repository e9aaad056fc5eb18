package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mayondo-api/internal/application/dto"
	"github.com/jhoicas/mayondo-api/internal/application/inventory"
)

// StockHandler maneja el libro de stock y las consultas de disponibilidad y costo (protegido).
type StockHandler struct {
	uc           *inventory.StockUseCase
	availability *inventory.AvailabilityUseCase
	cost         *inventory.CostUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase, availability *inventory.AvailabilityUseCase, cost *inventory.CostUseCase) *StockHandler {
	return &StockHandler{uc: uc, availability: availability, cost: cost}
}

// Create godoc
// @Summary      Registrar ingreso de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.StockRequest  true  "identidad, cantidad, costo unitario, proveedor, origen, fecha"
// @Success      201   {object}  dto.StockEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.StockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/stock
func (h *StockHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/stock/:id
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/stock/:id
func (h *StockHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.StockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/stock/:id
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Levels godoc
// @Summary      Existencias por producto
// @Description  Mapa "Nombre-Tipo" → existencias. La UI lo usa para acotar la cantidad de una venta.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/stock/levels [get]
func (h *StockHandler) Levels(c *fiber.Ctx) error {
	levels, err := h.availability.Levels(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(levels)
}

// Availability GET /api/stock/availability?product_name=&product_type=&quantity=
// Una identidad desconocida responde 200 con available=false y max_quantity=0.
func (h *StockHandler) Availability(c *fiber.Ctx) error {
	name, productType := c.Query("product_name"), c.Query("product_type")
	requested, err := strconv.Atoi(c.Query("quantity", "1"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity debe ser entero"})
	}
	out, err := h.availability.Check(c.UserContext(), name, productType, requested)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cost GET /api/stock/cost?product_name=&product_type=
func (h *StockHandler) Cost(c *fiber.Ctx) error {
	out, err := h.cost.Resolve(c.UserContext(), c.Query("product_name"), c.Query("product_type"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
