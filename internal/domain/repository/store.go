package repository

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/query"
)

// Store puerto de persistencia genérico para una entidad del catálogo (DIP).
// Las implementaciones devuelven sentinelas de domain: ErrNotFound cuando la fila
// no existe y ErrDuplicate cuando el índice único de name rechaza la escritura.
type Store[T query.Record] interface {
	query.Finder[T]

	// GetByID devuelve domain.ErrNotFound si no existe.
	GetByID(ctx context.Context, id int64) (T, error)
	// ExistsByName indica si otra fila ya usa name. excludeID = 0 no excluye nada.
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	// Create inserta y completa ID, CreatedAt y UpdatedAt en la entidad.
	Create(ctx context.Context, e T) error
	// Update persiste los campos editables y refresca UpdatedAt.
	Update(ctx context.Context, e T) error
	Delete(ctx context.Context, id int64) error
}

// Repos agrupa los stores atados a una misma transacción.
type Repos struct {
	Categories CategoryRepository
	Vendors    VendorRepository
	Products   ProductRepository
}

// TxRunner ejecuta fn dentro de una transacción. Si fn devuelve error se hace
// rollback y el error se propaga sin envolver.
type TxRunner interface {
	Run(ctx context.Context, fn func(Repos) error) error
}
