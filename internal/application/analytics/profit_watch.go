package analytics

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/mayondo-api/internal/application/ports"
	"github.com/jhoicas/mayondo-api/internal/domain/entity"
)

// ProfitWatch compara el signo de la utilidad histórica entre ejecuciones y avisa a los
// gerentes cuando cambia. La primera ejecución solo registra el punto de partida.
type ProfitWatch struct {
	profit   *ProfitUseCase
	notifier ports.Notifier
	log      zerolog.Logger

	mu       sync.Mutex
	seen     bool
	lastSign int
}

// NewProfitWatch construye el vigilante.
func NewProfitWatch(profit *ProfitUseCase, notifier ports.Notifier, log zerolog.Logger) *ProfitWatch {
	return &ProfitWatch{profit: profit, notifier: notifier, log: log}
}

// Check recalcula la utilidad y notifica si el signo cambió. Devuelve true si notificó.
func (w *ProfitWatch) Check(ctx context.Context) (bool, error) {
	sum, err := w.profit.Compute(ctx, nil, nil)
	if err != nil {
		return false, err
	}
	sign := sum.Profit.Sign()

	w.mu.Lock()
	prev, seen := w.lastSign, w.seen
	w.lastSign, w.seen = sign, true
	w.mu.Unlock()

	if !seen || prev == sign {
		return false, nil
	}

	var msg string
	switch {
	case sign < 0:
		msg = fmt.Sprintf("La utilidad acumulada pasó a pérdida: %s", sum.Profit.StringFixed(2))
	case sign > 0:
		msg = fmt.Sprintf("La utilidad acumulada volvió a ser positiva: %s", sum.Profit.StringFixed(2))
	default:
		msg = "La utilidad acumulada está en cero"
	}
	w.log.Warn().Int("previous_sign", prev).Int("sign", sign).Msg("cambio de signo en la utilidad")
	w.notifier.Notify(ctx, entity.AudienceManager, entity.ActivityWarning, msg)
	return true, nil
}
