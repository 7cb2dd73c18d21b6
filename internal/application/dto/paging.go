package dto

import (
	"strconv"

	"github.com/jhoicas/catalogo-api/internal/domain/query"
	"github.com/jhoicas/catalogo-api/pkg/validator"
)

// PageParams parámetros de listado tomados del query string. Los punteros
// distinguen "ausente" (se usa el valor por defecto) de un valor explícito.
type PageParams struct {
	PageNum  *int   `query:"pageNum"`
	PageSize *int   `query:"pageSize"`
	Search   string `query:"search"`
	Sort     string `query:"sort"`
}

// ProductPageParams PageParams más filtros opcionales por categoría y proveedor.
type ProductPageParams struct {
	PageParams
	CategoryID *int64 `query:"categoryId"`
	VendorID   *int64 `query:"vendorId"`
}

// PageLimits límites configurados del tamaño de página; el tamaño por defecto es Min.
type PageLimits struct {
	Min int
	Max int
}

// Page valida los parámetros contra limits y devuelve la página 1-based.
// Devuelve el detalle por campo si algún valor está fuera de rango.
func (p PageParams) Page(limits PageLimits, v *validator.Validator) (query.Page, map[string]string) {
	page := query.Page{Num: 1, Size: limits.Min}
	if p.PageNum != nil {
		page.Num = *p.PageNum
	}
	if p.PageSize != nil {
		page.Size = *p.PageSize
	}

	errs := map[string]string{}
	for field, msg := range v.Var("pageNum", page.Num, "gte=1") {
		errs[field] = msg
	}
	sizeRule := "gte=" + strconv.Itoa(limits.Min) + ",lte=" + strconv.Itoa(limits.Max)
	for field, msg := range v.Var("pageSize", page.Size, sizeRule) {
		errs[field] = msg
	}
	if len(errs) > 0 {
		return query.Page{}, errs
	}
	return page, nil
}

// PageResponse sobre de respuesta paginada. Items nunca es null.
type PageResponse[T any] struct {
	Items      []T   `json:"items"`
	PageNum    int   `json:"pageNum"`
	PageSize   int   `json:"pageSize"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

// NewPageResponse convierte un resultado del ejecutor de páginas aplicando fn a cada elemento.
func NewPageResponse[E, R any](res *query.Result[E], fn func(E) R) PageResponse[R] {
	mapped := query.MapItems(res, fn)
	return PageResponse[R]{
		Items:      mapped.Items,
		PageNum:    mapped.PageNum,
		PageSize:   mapped.PageSize,
		TotalItems: mapped.TotalItems,
		TotalPages: mapped.TotalPages,
	}
}
