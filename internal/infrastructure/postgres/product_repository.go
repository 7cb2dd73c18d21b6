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

var _ repository.ProductRepository = (*ProductRepo)(nil)

var productsTable = table{
	name: "products",
	columns: map[string]string{
		entity.FieldID:          "id",
		entity.FieldName:        "name",
		entity.FieldDescription: "description",
		entity.FieldPrice:       "price",
		entity.FieldImage:       "image",
		entity.FieldCategoryID:  "category_id",
		entity.FieldVendorID:    "vendor_id",
		entity.FieldCreatedAt:   "created_at",
		entity.FieldUpdatedAt:   "updated_at",
	},
	selectList: "id, name, description, price, image, category_id, vendor_id, created_at, updated_at",
}

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.CollectableRow) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Image,
		&p.CategoryID, &p.VendorID, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	rows, err := r.q.Query(ctx, "SELECT "+productsTable.selectList+" FROM products WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// FindAll lista productos según q (incluye filtros por categoría/proveedor).
func (r *ProductRepo) FindAll(ctx context.Context, q query.Query[*entity.Product], limit, offset int) ([]*entity.Product, error) {
	return findPage(ctx, r.q, productsTable, q, limit, offset, scanProduct)
}

// Count cuenta productos que cumplen where.
func (r *ProductRepo) Count(ctx context.Context, where query.Predicate[*entity.Product]) (int64, error) {
	return countWhere(ctx, r.q, productsTable, where)
}

// ExistsByName indica si otro producto ya usa name.
func (r *ProductRepo) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	return existsByName(ctx, r.q, productsTable, name, excludeID)
}

// Create persiste un nuevo producto. Una categoría o proveedor inexistente es ErrConflict (23503).
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO products (name, description, price, image, category_id, vendor_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		p.Name, p.Description, p.Price, p.Image, p.CategoryID, p.VendorID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return writeErr("insert", productsTable, err)
	}
	return nil
}

// Update actualiza los campos editables del producto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	err := r.q.QueryRow(ctx, `
		UPDATE products
		SET name = $2, description = $3, price = $4, image = $5, category_id = $6, vendor_id = $7, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		p.ID, p.Name, p.Description, p.Price, p.Image, p.CategoryID, p.VendorID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return writeErr("update", productsTable, err)
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.q, productsTable, id)
}
