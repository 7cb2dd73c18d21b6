package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/query"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.VendorRepository = (*VendorRepo)(nil)

var vendorsTable = table{
	name: "vendors",
	columns: map[string]string{
		entity.FieldID:        "id",
		entity.FieldName:      "name",
		entity.FieldLogo:      "logo",
		entity.FieldCreatedAt: "created_at",
		entity.FieldUpdatedAt: "updated_at",
	},
	selectList: "id, name, logo, created_at, updated_at",
}

// VendorRepo implementación del puerto VendorRepository sobre PostgreSQL (usable con pool o tx).
type VendorRepo struct {
	q Querier
}

// NewVendorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVendorRepository(q Querier) *VendorRepo {
	return &VendorRepo{q: q}
}

func scanVendor(row pgx.CollectableRow) (*entity.Vendor, error) {
	var v entity.Vendor
	err := row.Scan(&v.ID, &v.Name, &v.Logo, &v.CreatedAt, &v.UpdatedAt)
	return &v, err
}

// GetByID obtiene un proveedor por ID.
func (r *VendorRepo) GetByID(ctx context.Context, id int64) (*entity.Vendor, error) {
	var v entity.Vendor
	err := r.q.QueryRow(ctx,
		`SELECT id, name, logo, created_at, updated_at FROM vendors WHERE id = $1`, id,
	).Scan(&v.ID, &v.Name, &v.Logo, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return &v, nil
}

// FindAll lista proveedores según q.
func (r *VendorRepo) FindAll(ctx context.Context, q query.Query[*entity.Vendor], limit, offset int) ([]*entity.Vendor, error) {
	return findPage(ctx, r.q, vendorsTable, q, limit, offset, scanVendor)
}

// Count cuenta proveedores que cumplen where.
func (r *VendorRepo) Count(ctx context.Context, where query.Predicate[*entity.Vendor]) (int64, error) {
	return countWhere(ctx, r.q, vendorsTable, where)
}

// ExistsByName indica si otro proveedor ya usa name.
func (r *VendorRepo) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	return existsByName(ctx, r.q, vendorsTable, name, excludeID)
}

// Create persiste un nuevo proveedor.
func (r *VendorRepo) Create(ctx context.Context, v *entity.Vendor) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO vendors (name, logo)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`,
		v.Name, v.Logo,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return writeErr("insert", vendorsTable, err)
	}
	return nil
}

// Update actualiza nombre y logo.
func (r *VendorRepo) Update(ctx context.Context, v *entity.Vendor) error {
	err := r.q.QueryRow(ctx, `
		UPDATE vendors SET name = $2, logo = $3, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		v.ID, v.Name, v.Logo,
	).Scan(&v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return writeErr("update", vendorsTable, err)
	}
	return nil
}

// Delete elimina un proveedor por ID.
func (r *VendorRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.q, vendorsTable, id)
}
