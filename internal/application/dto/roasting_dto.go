package dto

// CreateProfileRequest alta de perfil de tostado.
type CreateProfileRequest struct {
	Name            string  `json:"name"`
	RoastLevel      string  `json:"roastLevel"`
	Temperature     float64 `json:"temperature"`
	DurationMinutes int     `json:"durationMinutes"`
	WeightLossRate  float64 `json:"weightLossRate"`
	Description     string  `json:"description"`
}

// CreateSessionRequest registra una sesión: consume café verde del lote
// indicado según el perfil.
type CreateSessionRequest struct {
	GreenBeanID   string  `json:"greenBeanId"`
	ProfileID     string  `json:"profileId"`
	RoasterName   string  `json:"roasterName"`
	GreenWeightKg float64 `json:"greenWeightKg"`
	Notes         string  `json:"notes"`
}
