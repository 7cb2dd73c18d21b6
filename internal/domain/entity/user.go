package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// Estados de User.
const (
	UserActive   = "active"
	UserInactive = "inactive"
)

// User operador del backoffice. Solo los admin pueden modificar el catálogo.
type User struct {
	ID           int64
	Email        string
	PasswordHash string // bcrypt, nunca texto plano
	Name         string
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si el usuario puede iniciar sesión.
func (u *User) IsActive() bool { return u.Status == UserActive }
