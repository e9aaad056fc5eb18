package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mayondo-api/internal/application/dto"
	"github.com/jhoicas/mayondo-api/internal/application/notification"
)

// NotificationHandler notificaciones del rol autenticado.
type NotificationHandler struct {
	uc *notification.UseCase
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *notification.UseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// ListUnread GET /api/notifications (máximo 20, más recientes primero)
func (h *NotificationHandler) ListUnread(c *fiber.Ctx) error {
	list, err := h.uc.ListUnread(c.UserContext(), GetRole(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":         len(list),
		"notifications": list,
	})
}

// Activity GET /api/notifications/activity (últimas 10 del rol, leídas o no)
func (h *NotificationHandler) Activity(c *fiber.Ctx) error {
	list, err := h.uc.Recent(c.UserContext(), GetRole(c), notification.ActivityLimit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"activities": list})
}

// MarkRead POST /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.MarkRead(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkAllRead POST /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	n, err := h.uc.MarkAllRead(c.UserContext(), GetRole(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MarkAllReadResponse{Updated: n})
}
