// Package cache implementa la caché del resumen del dashboard: Redis cuando hay REDIS_ADDR
// y no-op en caso contrario.
package cache

import (
	"context"
	"time"

	"github.com/jhoicas/mayondo-api/internal/application/dto"
)

// NoopDashboardCache nunca guarda nada; cada consulta recalcula.
type NoopDashboardCache struct{}

func (NoopDashboardCache) Get(context.Context, string) (*dto.DashboardSummaryDTO, bool, error) {
	return nil, false, nil
}

func (NoopDashboardCache) Set(context.Context, string, *dto.DashboardSummaryDTO, time.Duration) error {
	return nil
}

func (NoopDashboardCache) Delete(context.Context, string) error { return nil }
