package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mayondo-api/internal/application/dto"
	"github.com/jhoicas/mayondo-api/internal/application/party"
)

// PartyHandler registros de referencia de clientes y proveedores (protegido).
type PartyHandler struct {
	customers *party.CustomerUseCase
	suppliers *party.SupplierUseCase
}

// NewPartyHandler construye el handler.
func NewPartyHandler(customers *party.CustomerUseCase, suppliers *party.SupplierUseCase) *PartyHandler {
	return &PartyHandler{customers: customers, suppliers: suppliers}
}

// CreateCustomer POST /api/customers
func (h *PartyHandler) CreateCustomer(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.customers.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCustomers GET /api/customers
func (h *PartyHandler) ListCustomers(c *fiber.Ctx) error {
	list, err := h.customers.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// CreateSupplier POST /api/suppliers
func (h *PartyHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.suppliers.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSuppliers GET /api/suppliers
func (h *PartyHandler) ListSuppliers(c *fiber.Ctx) error {
	list, err := h.suppliers.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
