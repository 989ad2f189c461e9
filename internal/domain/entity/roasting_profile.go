package entity

import "time"

// RoastingProfile representa una curva de tostado reutilizable.
type RoastingProfile struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	RoastLevel      string    `json:"roastLevel"` // Light, Medium, Dark
	Temperature     float64   `json:"temperature"` // °C
	DurationMinutes int       `json:"durationMinutes"`
	WeightLossRate  float64   `json:"weightLossRate"` // fracción perdida al tostar (ej. 0.15)
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"createdAt"`
}
