package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mayondo-api/internal/scheduler"
)

type fakeWarmer struct {
	calls atomic.Int32
	err   error
}

func (f *fakeWarmer) Warm(context.Context) error {
	f.calls.Add(1)
	return f.err
}

type fakeChecker struct {
	calls atomic.Int32
	err   error
}

func (f *fakeChecker) Check(context.Context) (bool, error) {
	f.calls.Add(1)
	return false, f.err
}

func TestStart_ExpresionInvalida(t *testing.T) {
	s := scheduler.New("cada quince minutos", &fakeWarmer{}, &fakeChecker{}, zerolog.Nop())
	err := s.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inválida")
}

func TestStart_SinExpresionQuedaDesactivado(t *testing.T) {
	s := scheduler.New("", &fakeWarmer{}, &fakeChecker{}, zerolog.Nop())
	require.NoError(t, s.Start())
	s.Stop()
}

func TestStart_ExpresionValida(t *testing.T) {
	s := scheduler.New("*/15 * * * *", &fakeWarmer{}, &fakeChecker{}, zerolog.Nop())
	require.NoError(t, s.Start())
	s.Stop()
}

func TestRunOnce_EjecutaAmbasTareas(t *testing.T) {
	w, c := &fakeWarmer{}, &fakeChecker{}
	scheduler.New("", w, c, zerolog.Nop()).RunOnce()
	assert.Equal(t, int32(1), w.calls.Load())
	assert.Equal(t, int32(1), c.calls.Load())
}

func TestRunOnce_FalloDelDashboardNoDetieneLaVigilancia(t *testing.T) {
	w := &fakeWarmer{err: errors.New("redis caído")}
	c := &fakeChecker{err: errors.New("db caída")}
	scheduler.New("", w, c, zerolog.Nop()).RunOnce()
	assert.Equal(t, int32(1), c.calls.Load())
}
