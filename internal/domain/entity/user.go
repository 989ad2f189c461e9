package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "Admin"
	RoleRoaster = "Roaster"
	RoleStaff   = "Staff"
)

// User representa un usuario del sistema de la tostaduría.
// PasswordHash es bcrypt; las respuestas HTTP usan dto.UserResponse y nunca lo exponen.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"` // Admin, Roaster, Staff
	Phone        string    `json:"phone"`
	IsActive     bool      `json:"isActive"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	LastLogin    time.Time `json:"lastLogin"`
}

// ValidRole indica si el rol pertenece a la enumeración cerrada.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleRoaster, RoleStaff:
		return true
	}
	return false
}
