// Package notification decide y guarda los hechos notificables del negocio.
// La entrega (campana, feed de actividad) es responsabilidad de la UI externa.
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/mayondo-api/internal/application/dto"
	"github.com/jhoicas/mayondo-api/internal/domain"
	"github.com/jhoicas/mayondo-api/internal/domain/entity"
	"github.com/jhoicas/mayondo-api/internal/domain/repository"
)

// UnreadLimit máximo de notificaciones no leídas devueltas por consulta.
const UnreadLimit = 20

// ActivityLimit tamaño por defecto del feed de actividad.
const ActivityLimit = 10

// UseCase guarda y consulta notificaciones por audiencia (rol).
type UseCase struct {
	repo repository.NotificationRepository
	log  zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.NotificationRepository, log zerolog.Logger) *UseCase {
	return &UseCase{repo: repo, log: log}
}

// Notify implementa ports.Notifier. entity.AudienceAll crea una copia por cada rol.
func (uc *UseCase) Notify(ctx context.Context, audience, activityType, message string) {
	audiences := []string{audience}
	if audience == entity.AudienceAll {
		audiences = []string{entity.AudienceManager, entity.AudienceEmployee}
	}
	now := time.Now()
	for _, a := range audiences {
		n := &entity.Notification{
			Audience:     a,
			Message:      message,
			ActivityType: activityType,
			CreatedAt:    now,
		}
		if err := uc.repo.Create(ctx, n); err != nil {
			uc.log.Error().Err(err).Str("audience", a).Str("message", message).Msg("notificación no guardada")
		}
	}
}

// ListUnread últimas no leídas del rol, más recientes primero.
func (uc *UseCase) ListUnread(ctx context.Context, role string) ([]dto.NotificationResponse, error) {
	if !validAudience(role) {
		return nil, domain.ErrForbidden
	}
	list, err := uc.repo.ListUnread(ctx, role, UnreadLimit)
	if err != nil {
		return nil, fmt.Errorf("notificaciones: listar: %w", err)
	}
	return toResponses(list), nil
}

// Recent feed de actividad: las últimas limit del rol, leídas o no. limit <= 0 usa ActivityLimit.
func (uc *UseCase) Recent(ctx context.Context, role string, limit int) ([]dto.NotificationResponse, error) {
	if !validAudience(role) {
		return nil, domain.ErrForbidden
	}
	if limit <= 0 {
		limit = ActivityLimit
	}
	list, err := uc.repo.ListRecent(ctx, role, limit)
	if err != nil {
		return nil, fmt.Errorf("notificaciones: actividad: %w", err)
	}
	return toResponses(list), nil
}

// MarkRead marca una notificación como leída.
func (uc *UseCase) MarkRead(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.repo.MarkRead(ctx, id)
}

// MarkAllRead marca como leídas todas las del rol.
func (uc *UseCase) MarkAllRead(ctx context.Context, role string) (int, error) {
	if !validAudience(role) {
		return 0, domain.ErrForbidden
	}
	return uc.repo.MarkAllRead(ctx, role)
}

func validAudience(a string) bool {
	return a == entity.AudienceManager || a == entity.AudienceEmployee
}

func toResponses(list []entity.Notification) []dto.NotificationResponse {
	out := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, dto.NotificationResponse{
			ID:           n.ID,
			Message:      n.Message,
			ActivityType: n.ActivityType,
			IsRead:       n.IsRead,
			CreatedAt:    n.CreatedAt,
		})
	}
	return out
}
