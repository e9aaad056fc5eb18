package ports

import "context"

// Notifier publica hechos notificables para la UI externa.
// Un fallo al notificar se registra en el log; nunca revierte la operación que lo originó.
type Notifier interface {
	Notify(ctx context.Context, audience, activityType, message string)
}

// LedgerObserver recibe un aviso tras cada escritura confirmada en los libros de stock o ventas.
// Lo usa el dashboard para invalidar su caché.
type LedgerObserver interface {
	LedgerChanged(ctx context.Context)
}

// NopNotifier descarta las notificaciones (seed, tests).
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, string, string, string) {}

// NopObserver ignora los avisos de cambio.
type NopObserver struct{}

func (NopObserver) LedgerChanged(context.Context) {}
