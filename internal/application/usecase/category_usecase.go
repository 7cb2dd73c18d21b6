package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/query"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías. No tienen imagen.
type CategoryUseCase struct {
	res *Resource[*entity.Category]
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(d Deps) *CategoryUseCase {
	res := newResource(d, entity.CategorySchema, func(r repository.Repos) repository.Store[*entity.Category] {
		return r.Categories
	}).withDeleteGuard(guardCategoryInUse)
	return &CategoryUseCase{res: res}
}

// List lista categorías con búsqueda por nombre o descripción.
func (uc *CategoryUseCase) List(ctx context.Context, params dto.PageParams) (*dto.PageResponse[dto.CategoryResponse], error) {
	res, err := uc.res.List(ctx, params, query.All[*entity.Category]())
	if err != nil {
		return nil, err
	}
	page := dto.NewPageResponse(res, toCategoryResponse)
	return &page, nil
}

// GetByID obtiene una categoría.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	c, err := uc.res.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toCategoryResponse(c)
	return &out, nil
}

// Create crea una categoría con nombre único.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := uc.check(&in); err != nil {
		return nil, err
	}
	c, err := uc.res.Create(ctx, &entity.Category{Name: in.Name, Description: in.Description}, nil)
	if err != nil {
		return nil, err
	}
	out := toCategoryResponse(c)
	return &out, nil
}

// Update reemplaza nombre y descripción.
func (uc *CategoryUseCase) Update(ctx context.Context, id int64, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := uc.check(&in); err != nil {
		return nil, err
	}
	c, err := uc.res.Update(ctx, id, func(c *entity.Category) {
		c.Name = in.Name
		c.Description = in.Description
	}, nil)
	if err != nil {
		return nil, err
	}
	out := toCategoryResponse(c)
	return &out, nil
}

// Delete elimina una categoría sin productos.
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	return uc.res.Delete(ctx, id)
}

func (uc *CategoryUseCase) check(in *dto.CategoryRequest) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if errs := uc.res.validate.Struct(in); errs != nil {
		return domain.NewValidation("Validation Error", errs)
	}
	return nil
}

func guardCategoryInUse(ctx context.Context, repos repository.Repos, c *entity.Category) error {
	n, err := repos.Products.Count(ctx, entity.ProductsInCategory(c.ID))
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.NewValidation(fmt.Sprintf("Category with id=[%d] still has %d product(s)!", c.ID, n), nil)
	}
	return nil
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
