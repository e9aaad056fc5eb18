// Package scheduler ejecuta las tareas periódicas: recalentar la caché del dashboard y
// vigilar el signo de la utilidad acumulada.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// jobTimeout límite de cada ejecución.
const jobTimeout = 2 * time.Minute

// DashboardWarmer recalcula y guarda el resumen del dashboard.
type DashboardWarmer interface {
	Warm(ctx context.Context) error
}

// ProfitChecker vigila el signo de la utilidad acumulada.
type ProfitChecker interface {
	Check(ctx context.Context) (bool, error)
}

// Scheduler agenda la vigilancia con robfig/cron (5 campos, hora local).
type Scheduler struct {
	cron      *cron.Cron
	spec      string
	dashboard DashboardWarmer
	profit    ProfitChecker
	log       zerolog.Logger
}

// New construye el scheduler. spec vacío desactiva la vigilancia.
func New(spec string, dashboard DashboardWarmer, profit ProfitChecker, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		spec:      spec,
		dashboard: dashboard,
		profit:    profit,
		log:       log,
	}
}

// Start agenda la tarea y arranca el cron. Devuelve error si la expresión es inválida.
func (s *Scheduler) Start() error {
	if s.spec == "" {
		s.log.Info().Msg("scheduler desactivado")
		return nil
	}
	if _, err := s.cron.AddFunc(s.spec, s.RunOnce); err != nil {
		return fmt.Errorf("scheduler: expresión %q inválida: %w", s.spec, err)
	}
	s.log.Info().Str("spec", s.spec).Msg("scheduler iniciado")
	s.cron.Start()
	return nil
}

// Stop detiene el cron y espera a que termine la ejecución en curso.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("scheduler detenido")
}

// RunOnce ejecuta una vuelta de vigilancia; los errores se registran.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.dashboard.Warm(ctx); err != nil {
		s.log.Error().Err(err).Msg("scheduler: no se pudo recalentar el dashboard")
	}
	notified, err := s.profit.Check(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("scheduler: vigilancia de utilidad fallida")
		return
	}
	if notified {
		s.log.Info().Msg("scheduler: cambio de signo notificado")
	}
}
