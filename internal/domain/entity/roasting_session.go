package entity

import "time"

// RoastingSession representa una sesión de tostado ejecutada.
// Las lecturas siempre se ordenan por RoastDate descendente.
type RoastingSession struct {
	ID             string    `json:"id"`
	GreenBeanID    string    `json:"greenBeanId"`
	ProfileID      string    `json:"profileId"`
	RoasterName    string    `json:"roasterName"`
	GreenWeightKg  float64   `json:"greenWeightKg"`
	RoastedWeightKg float64  `json:"roastedWeightKg"`
	RoastDate      time.Time `json:"roastDate"`
	Notes          string    `json:"notes"`
}
