package repository

import (
	"context"

	"github.com/jhoicas/mayondo-api/internal/domain/entity"
)

// NotificationRepository persiste los hechos notificables para la UI.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	// ListUnread devuelve las no leídas de la audiencia, más recientes primero.
	ListUnread(ctx context.Context, audience string, limit int) ([]entity.Notification, error)
	// ListRecent devuelve las últimas de la audiencia, leídas o no, más recientes primero.
	ListRecent(ctx context.Context, audience string, limit int) ([]entity.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, audience string) (int, error)
}
