package repository

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// FindByEmail devuelve nil, nil si no existe.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// Save inserta el usuario o, si el email ya existe, actualiza nombre, rol, estado y hash.
	Save(ctx context.Context, user *entity.User) error
}
