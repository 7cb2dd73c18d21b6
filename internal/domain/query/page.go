package query

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalogo-api/internal/domain"
)

// Page cursor 1-based de paginación.
type Page struct {
	Num  int
	Size int
}

// Offset convierte el número de página 1-based al offset 0-based del store.
// Es el único punto donde ocurre esa conversión.
func (p Page) Offset() int { return (p.Num - 1) * p.Size }

// Limit tamaño de página.
func (p Page) Limit() int { return p.Size }

func (p Page) valid() bool { return p.Num >= 1 && p.Size >= 1 }

// beyond indica si la página empieza después de la última fila. Se calcula con
// el número de páginas en int64 para que Num enormes no desborden Offset.
func (p Page) beyond(total int64) bool {
	return int64(p.Num-1) >= int64(TotalPages(total, p.Size))
}

// Finder es lo que el ejecutor necesita del store de T.
type Finder[T Record] interface {
	FindAll(ctx context.Context, q Query[T], limit, offset int) ([]T, error)
	Count(ctx context.Context, where Predicate[T]) (int64, error)
}

// Result página normalizada. Items nunca es nil.
type Result[T any] struct {
	Items      []T
	PageNum    int
	PageSize   int
	TotalItems int64
	TotalPages int
}

// Execute aplica q y page sobre f. El conteo y la lectura usan el mismo predicado.
func Execute[T Record](ctx context.Context, f Finder[T], q Query[T], page Page) (*Result[T], error) {
	if !page.valid() {
		return nil, fmt.Errorf("page %d/size %d: %w", page.Num, page.Size, domain.ErrInvalidInput)
	}
	where := q.Where
	total, err := f.Count(ctx, where)
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	res := &Result[T]{
		Items:      []T{},
		PageNum:    page.Num,
		PageSize:   page.Size,
		TotalItems: total,
		TotalPages: TotalPages(total, page.Size),
	}
	if total == 0 || page.beyond(total) {
		return res, nil
	}
	items, err := f.FindAll(ctx, Query[T]{Where: where, Order: q.Order}, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("find page: %w", err)
	}
	if len(items) > page.Size {
		items = items[:page.Size]
	}
	if items != nil {
		res.Items = items
	}
	return res, nil
}

// TotalPages ceil(total/size); 0 cuando no hay elementos.
func TotalPages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	s := int64(size)
	return int((total + s - 1) / s)
}

// MapItems transforma los elementos conservando los metadatos de la página.
func MapItems[T, R any](r *Result[T], fn func(T) R) *Result[R] {
	items := make([]R, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, fn(it))
	}
	return &Result[R]{
		Items:      items,
		PageNum:    r.PageNum,
		PageSize:   r.PageSize,
		TotalItems: r.TotalItems,
		TotalPages: r.TotalPages,
	}
}
