// Package memory implementa los puertos de persistencia en memoria. Se usa con
// DB_DRIVER=memory para correr la API sin PostgreSQL y como backend de los tests
// de casos de uso y HTTP. Respeta las mismas reglas que el esquema SQL: nombre
// único por entidad y llaves foráneas de products.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.TxRunner = (*Store)(nil)

// Store base de datos en memoria.
type Store struct {
	// txMu serializa transacciones; mu protege los datos en cada operación.
	txMu sync.Mutex
	mu   sync.RWMutex

	categories *table[entity.Category, *entity.Category]
	vendors    *table[entity.Vendor, *entity.Vendor]
	products   *table[entity.Product, *entity.Product]
	users      map[string]entity.User
	userSeq    int64

	now func() time.Time
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		categories: newTable(func(c *entity.Category, id int64, created, updated time.Time) {
			c.ID, c.CreatedAt, c.UpdatedAt = id, created, updated
		}),
		vendors: newTable(func(v *entity.Vendor, id int64, created, updated time.Time) {
			v.ID, v.CreatedAt, v.UpdatedAt = id, created, updated
		}),
		products: newTable(func(p *entity.Product, id int64, created, updated time.Time) {
			p.ID, p.CreatedAt, p.UpdatedAt = id, created, updated
		}),
		users: make(map[string]entity.User),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Repos devuelve los stores del catálogo fuera de transacción.
func (s *Store) Repos() repository.Repos {
	return repository.Repos{
		Categories: &CategoryRepo{s: s},
		Vendors:    &VendorRepo{s: s},
		Products:   &ProductRepo{s: s},
	}
}

// Run ejecuta fn de forma exclusiva respecto de otras transacciones. Si fn
// devuelve error el estado vuelve a la foto tomada al inicio.
func (s *Store) Run(ctx context.Context, fn func(repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	cats, vens, prods := s.categories.snapshot(), s.vendors.snapshot(), s.products.snapshot()
	s.mu.RUnlock()

	if err := fn(s.Repos()); err != nil {
		s.mu.Lock()
		s.categories, s.vendors, s.products = cats, vens, prods
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) categoryExists(id int64) bool {
	_, ok := s.categories.rows[id]
	return ok
}

func (s *Store) vendorExists(id int64) bool {
	_, ok := s.vendors.rows[id]
	return ok
}

// referenced indica si algún producto apunta a la categoría o proveedor.
func (s *Store) referenced(field string, id int64) bool {
	return s.products.count(productsBy(field, id)) > 0
}

func fkErr(op, name string) error {
	return fmt.Errorf("%s %s: %w", op, name, domain.ErrConflict)
}
