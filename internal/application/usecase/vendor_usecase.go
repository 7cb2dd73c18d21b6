package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/catalogo-api/internal/application/asset"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/query"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// VendorUseCase casos de uso CRUD para proveedores. El logo se sube al crear y
// puede reemplazarse al actualizar.
type VendorUseCase struct {
	res *Resource[*entity.Vendor]
}

// NewVendorUseCase construye el caso de uso. logoWidth es el ancho al que se
// normalizan los logos.
func NewVendorUseCase(d Deps, logoWidth int) *VendorUseCase {
	res := newResource(d, entity.VendorSchema, func(r repository.Repos) repository.Store[*entity.Vendor] {
		return r.Vendors
	}).
		withAsset(asset.UploadOptions{Folder: asset.FolderVendors, Width: logoWidth}, func(v *entity.Vendor, ref string) { v.Logo = ref }).
		withDeleteGuard(guardVendorInUse)
	return &VendorUseCase{res: res}
}

// List lista proveedores con búsqueda por nombre.
func (uc *VendorUseCase) List(ctx context.Context, params dto.PageParams) (*dto.PageResponse[dto.VendorResponse], error) {
	res, err := uc.res.List(ctx, params, query.All[*entity.Vendor]())
	if err != nil {
		return nil, err
	}
	page := dto.NewPageResponse(res, toVendorResponse)
	return &page, nil
}

// GetByID obtiene un proveedor.
func (uc *VendorUseCase) GetByID(ctx context.Context, id int64) (*dto.VendorResponse, error) {
	v, err := uc.res.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toVendorResponse(v)
	return &out, nil
}

// Create crea un proveedor. El logo es obligatorio.
func (uc *VendorUseCase) Create(ctx context.Context, in dto.VendorRequest) (*dto.VendorResponse, error) {
	if err := uc.check(&in, true); err != nil {
		return nil, err
	}
	v, err := uc.res.Create(ctx, &entity.Vendor{Name: in.Name}, in.Logo)
	if err != nil {
		return nil, err
	}
	out := toVendorResponse(v)
	return &out, nil
}

// Update cambia el nombre y, si viene, reemplaza el logo.
func (uc *VendorUseCase) Update(ctx context.Context, id int64, in dto.VendorRequest) (*dto.VendorResponse, error) {
	if err := uc.check(&in, false); err != nil {
		return nil, err
	}
	v, err := uc.res.Update(ctx, id, func(v *entity.Vendor) { v.Name = in.Name }, in.Logo)
	if err != nil {
		return nil, err
	}
	out := toVendorResponse(v)
	return &out, nil
}

// Delete elimina un proveedor sin productos y luego su logo.
func (uc *VendorUseCase) Delete(ctx context.Context, id int64) error {
	return uc.res.Delete(ctx, id)
}

func (uc *VendorUseCase) check(in *dto.VendorRequest, logoRequired bool) error {
	in.Name = strings.TrimSpace(in.Name)
	errs := uc.res.validate.Struct(in)
	if logoRequired && in.Logo == nil {
		if errs == nil {
			errs = map[string]string{}
		}
		errs["logo"] = "must not be null"
	}
	if errs != nil {
		return domain.NewValidation("Validation Error", errs)
	}
	return nil
}

func guardVendorInUse(ctx context.Context, repos repository.Repos, v *entity.Vendor) error {
	n, err := repos.Products.Count(ctx, entity.ProductsOfVendor(v.ID))
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.NewValidation(fmt.Sprintf("Vendor with id=[%d] still has %d product(s)!", v.ID, n), nil)
	}
	return nil
}

func toVendorResponse(v *entity.Vendor) dto.VendorResponse {
	return dto.VendorResponse{
		ID:        v.ID,
		Name:      v.Name,
		Logo:      v.Logo,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
