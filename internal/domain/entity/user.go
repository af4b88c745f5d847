package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleMechanic = "mechanic"
)

// User representa un usuario del sistema (quien autentica contra POST /token).
type User struct {
	ID           string
	Username     string
	Email        string
	FullName     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, mechanic
	Disabled     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
