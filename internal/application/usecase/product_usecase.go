package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-api/internal/application/asset"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/query"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// maxPrice cota exclusiva del precio; coincide con la columna NUMERIC(14, 2).
var maxPrice = decimal.New(1, 12)

// ProductUseCase casos de uso CRUD para productos. La imagen es opcional.
type ProductUseCase struct {
	res        *Resource[*entity.Product]
	categories repository.CategoryRepository
	vendors    repository.VendorRepository
}

// NewProductUseCase construye el caso de uso. imageWidth es el ancho al que se
// normalizan las imágenes de producto.
func NewProductUseCase(d Deps, imageWidth int) *ProductUseCase {
	res := newResource(d, entity.ProductSchema, func(r repository.Repos) repository.Store[*entity.Product] {
		return r.Products
	}).withAsset(asset.UploadOptions{Folder: asset.FolderProducts, Width: imageWidth}, func(p *entity.Product, ref string) { p.Image = ref })
	return &ProductUseCase{res: res, categories: d.Repos.Categories, vendors: d.Repos.Vendors}
}

// List lista productos; categoryId y vendorId filtran si vienen.
func (uc *ProductUseCase) List(ctx context.Context, params dto.ProductPageParams) (*dto.PageResponse[dto.ProductResponse], error) {
	where := query.All[*entity.Product]()
	if params.CategoryID != nil {
		where = where.And(entity.ProductsInCategory(*params.CategoryID))
	}
	if params.VendorID != nil {
		where = where.And(entity.ProductsOfVendor(*params.VendorID))
	}
	return uc.list(ctx, params.PageParams, where)
}

// ListByCategory productos de una categoría existente.
func (uc *ProductUseCase) ListByCategory(ctx context.Context, categoryID int64, params dto.PageParams) (*dto.PageResponse[dto.ProductResponse], error) {
	if err := uc.ensureCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	return uc.list(ctx, params, entity.ProductsInCategory(categoryID))
}

// ListByVendor productos de un proveedor existente.
func (uc *ProductUseCase) ListByVendor(ctx context.Context, vendorID int64, params dto.PageParams) (*dto.PageResponse[dto.ProductResponse], error) {
	if err := uc.ensureVendor(ctx, vendorID); err != nil {
		return nil, err
	}
	return uc.list(ctx, params, entity.ProductsOfVendor(vendorID))
}

func (uc *ProductUseCase) list(ctx context.Context, params dto.PageParams, where query.Predicate[*entity.Product]) (*dto.PageResponse[dto.ProductResponse], error) {
	res, err := uc.res.List(ctx, params, where)
	if err != nil {
		return nil, err
	}
	page := dto.NewPageResponse(res, toProductResponse)
	return &page, nil
}

// GetByID obtiene un producto.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := uc.res.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toProductResponse(p)
	return &out, nil
}

// Create crea un producto. La categoría y el proveedor deben existir.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	price, err := uc.check(ctx, &in)
	if err != nil {
		return nil, err
	}
	p := &entity.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       price,
		CategoryID:  in.CategoryID,
		VendorID:    in.VendorID,
	}
	p, err = uc.res.Create(ctx, p, in.Image)
	if err != nil {
		return nil, err
	}
	out := toProductResponse(p)
	return &out, nil
}

// Update reemplaza los campos del producto; con imagen nueva, la anterior se borra.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.ProductRequest) (*dto.ProductResponse, error) {
	price, err := uc.check(ctx, &in)
	if err != nil {
		return nil, err
	}
	p, err := uc.res.Update(ctx, id, func(p *entity.Product) {
		p.Name = in.Name
		p.Description = in.Description
		p.Price = price
		p.CategoryID = in.CategoryID
		p.VendorID = in.VendorID
	}, in.Image)
	if err != nil {
		return nil, err
	}
	out := toProductResponse(p)
	return &out, nil
}

// Delete elimina un producto y luego su imagen.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.res.Delete(ctx, id)
}

// check valida la entrada, interpreta el precio y verifica las referencias.
func (uc *ProductUseCase) check(ctx context.Context, in *dto.ProductRequest) (decimal.Decimal, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Price = strings.TrimSpace(in.Price)
	errs := uc.res.validate.Struct(in)
	if errs == nil {
		errs = map[string]string{}
	}
	price, perr := decimal.NewFromString(in.Price)
	if _, bad := errs["price"]; !bad {
		switch {
		case perr != nil:
			errs["price"] = "must be a number"
		case price.IsNegative():
			errs["price"] = "must be greater than or equal to 0"
		case !price.LessThan(maxPrice):
			errs["price"] = "must be less than " + maxPrice.String()
		case !price.Equal(price.Round(2)):
			errs["price"] = "must have at most 2 decimal places"
		}
	}
	if len(errs) > 0 {
		return decimal.Zero, domain.NewValidation("Validation Error", errs)
	}
	if err := uc.ensureCategory(ctx, in.CategoryID); err != nil {
		return decimal.Zero, err
	}
	if err := uc.ensureVendor(ctx, in.VendorID); err != nil {
		return decimal.Zero, err
	}
	return price, nil
}

func (uc *ProductUseCase) ensureCategory(ctx context.Context, id int64) error {
	return ensureExists(ctx, uc.categories, entity.CategorySchema.Resource, id)
}

func (uc *ProductUseCase) ensureVendor(ctx context.Context, id int64) error {
	return ensureExists(ctx, uc.vendors, entity.VendorSchema.Resource, id)
}

func ensureExists[T query.Record](ctx context.Context, store repository.Store[T], resource string, id int64) error {
	_, err := store.GetByID(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return domain.NewNotFound(resource, id)
	default:
		return domain.NewInternal(err)
	}
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		CategoryID:  p.CategoryID,
		VendorID:    p.VendorID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
