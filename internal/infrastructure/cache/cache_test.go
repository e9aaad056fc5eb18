package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mayondo-api/internal/application/dto"
	"github.com/jhoicas/mayondo-api/internal/infrastructure/cache"
)

func TestNoopDashboardCache_NuncaAcierta(t *testing.T) {
	var c cache.NoopDashboardCache
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", &dto.DashboardSummaryDTO{TotalSales: 3}, time.Minute))
	v, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
	assert.NoError(t, c.Delete(ctx, "k"))
}

func TestRedisDashboardCache_PingSinServidor(t *testing.T) {
	c := cache.NewRedisDashboardCache("127.0.0.1:1", "", 0)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	assert.Error(t, c.Ping(ctx))
}
