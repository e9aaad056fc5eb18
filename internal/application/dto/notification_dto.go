package dto

import "time"

// NotificationResponse salida de una notificación.
type NotificationResponse struct {
	ID           string    `json:"id"`
	Message      string    `json:"message"`
	ActivityType string    `json:"activity_type"`
	IsRead       bool      `json:"is_read"`
	CreatedAt    time.Time `json:"created_at"`
}

// MarkAllReadResponse cantidad de notificaciones marcadas.
type MarkAllReadResponse struct {
	Updated int `json:"updated"`
}
