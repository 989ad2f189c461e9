package entity

import "time"

// Tipos de notificación.
const (
	NotificationSuccess = "success"
	NotificationWarning = "warning"
	NotificationError   = "error"
	NotificationInfo    = "info"
)

// Notification representa un aviso para la UI.
// Las lecturas siempre se ordenan por Timestamp descendente; Read se muta in situ.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // success, warning, error, info
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}
