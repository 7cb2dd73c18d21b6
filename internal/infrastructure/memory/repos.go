package memory

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/query"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.VendorRepository   = (*VendorRepo)(nil)
	_ repository.ProductRepository  = (*ProductRepo)(nil)
)

func productsBy(field string, id int64) query.Predicate[*entity.Product] {
	return query.Eq[*entity.Product](field, id)
}

// CategoryRepo puerto CategoryRepository sobre Store.
type CategoryRepo struct{ s *Store }

func (r *CategoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.categories.get(id)
}

func (r *CategoryRepo) FindAll(_ context.Context, q query.Query[*entity.Category], limit, offset int) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.categories.find(q, limit, offset), nil
}

func (r *CategoryRepo) Count(_ context.Context, where query.Predicate[*entity.Category]) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.categories.count(where), nil
}

func (r *CategoryRepo) ExistsByName(_ context.Context, name string, excludeID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.categories.nameTaken(name, excludeID), nil
}

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.categories.insert(c, r.s.now())
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.categories.update(c, r.s.now())
}

func (r *CategoryRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.referenced(entity.FieldCategoryID, id) {
		return fkErr("delete", "categories")
	}
	return r.s.categories.remove(id)
}

// VendorRepo puerto VendorRepository sobre Store.
type VendorRepo struct{ s *Store }

func (r *VendorRepo) GetByID(_ context.Context, id int64) (*entity.Vendor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.vendors.get(id)
}

func (r *VendorRepo) FindAll(_ context.Context, q query.Query[*entity.Vendor], limit, offset int) ([]*entity.Vendor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.vendors.find(q, limit, offset), nil
}

func (r *VendorRepo) Count(_ context.Context, where query.Predicate[*entity.Vendor]) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.vendors.count(where), nil
}

func (r *VendorRepo) ExistsByName(_ context.Context, name string, excludeID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.vendors.nameTaken(name, excludeID), nil
}

func (r *VendorRepo) Create(_ context.Context, v *entity.Vendor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.vendors.insert(v, r.s.now())
}

func (r *VendorRepo) Update(_ context.Context, v *entity.Vendor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.vendors.update(v, r.s.now())
}

func (r *VendorRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.referenced(entity.FieldVendorID, id) {
		return fkErr("delete", "vendors")
	}
	return r.s.vendors.remove(id)
}

// ProductRepo puerto ProductRepository sobre Store.
type ProductRepo struct{ s *Store }

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.products.get(id)
}

func (r *ProductRepo) FindAll(_ context.Context, q query.Query[*entity.Product], limit, offset int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.products.find(q, limit, offset), nil
}

func (r *ProductRepo) Count(_ context.Context, where query.Predicate[*entity.Product]) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.products.count(where), nil
}

func (r *ProductRepo) ExistsByName(_ context.Context, name string, excludeID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.products.nameTaken(name, excludeID), nil
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.categoryExists(p.CategoryID) || !r.s.vendorExists(p.VendorID) {
		return fkErr("insert", "products")
	}
	return r.s.products.insert(p, r.s.now())
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.categoryExists(p.CategoryID) || !r.s.vendorExists(p.VendorID) {
		return fkErr("update", "products")
	}
	return r.s.products.update(p, r.s.now())
}

func (r *ProductRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.products.remove(id)
}
