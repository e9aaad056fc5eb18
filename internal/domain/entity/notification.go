package entity

import "time"

// Audiencias y tipos de actividad de una notificación.
const (
	AudienceManager  = "manager"
	AudienceEmployee = "employee"
	AudienceAll      = "all" // se expande a una notificación por rol

	ActivityInfo    = "info"
	ActivitySuccess = "success"
	ActivityWarning = "warning"
)

// Notification hecho relevante para el negocio que la UI externa muestra.
// Este servicio solo decide cuándo se produce; la entrega es externa.
type Notification struct {
	ID           string
	Audience     string
	Message      string
	ActivityType string
	IsRead       bool
	CreatedAt    time.Time
}
