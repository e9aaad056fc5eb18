package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/mayondo-api/internal/domain"
	"github.com/jhoicas/mayondo-api/internal/domain/entity"
	"github.com/jhoicas/mayondo-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación de NotificationRepository.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create persiste la notificación; asigna ID si viene vacío.
func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO notifications (id, audience, message, activity_type, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		n.ID, n.Audience, n.Message, n.ActivityType, n.IsRead, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListUnread no leídas de la audiencia, más recientes primero.
func (r *NotificationRepo) ListUnread(ctx context.Context, audience string, limit int) ([]entity.Notification, error) {
	return r.queryList(ctx, "list unread notifications", `
		SELECT id, audience, message, activity_type, is_read, created_at
		FROM notifications
		WHERE audience = $1 AND NOT is_read
		ORDER BY created_at DESC
		LIMIT $2`, audience, limit)
}

// ListRecent últimas de la audiencia, leídas o no, más recientes primero.
func (r *NotificationRepo) ListRecent(ctx context.Context, audience string, limit int) ([]entity.Notification, error) {
	return r.queryList(ctx, "list recent notifications", `
		SELECT id, audience, message, activity_type, is_read, created_at
		FROM notifications
		WHERE audience = $1
		ORDER BY created_at DESC
		LIMIT $2`, audience, limit)
}

func (r *NotificationRepo) queryList(ctx context.Context, op, query string, args ...any) ([]entity.Notification, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	list := make([]entity.Notification, 0)
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.Audience, &n.Message, &n.ActivityType, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// MarkRead marca una notificación como leída.
func (r *NotificationRepo) MarkRead(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE notifications SET is_read = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkAllRead marca todas las no leídas de la audiencia; devuelve cuántas cambiaron.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, audience string) (int, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE notifications SET is_read = true WHERE audience = $1 AND NOT is_read`, audience)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
