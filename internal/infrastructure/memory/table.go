package memory

import (
	"cmp"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/query"
)

// row restringe E a entidades del catálogo manejadas por puntero.
type row[E any] interface {
	*E
	query.Record
	Key() int64
	UniqueName() string
}

// table colección de filas de un tipo con índice único por nombre.
// No es segura entre goroutines; Store serializa el acceso.
type table[E any, P row[E]] struct {
	rows   map[int64]P
	nextID int64
	// stamp asigna id y timestamps, como haría la base de datos.
	stamp func(p P, id int64, created, updated time.Time)
}

func newTable[E any, P row[E]](stamp func(P, int64, time.Time, time.Time)) *table[E, P] {
	return &table[E, P]{rows: make(map[int64]P), stamp: stamp}
}

func clone[E any, P row[E]](p P) P {
	c := new(E)
	*c = *p
	return P(c)
}

func (t *table[E, P]) get(id int64) (P, error) {
	p, ok := t.rows[id]
	if !ok {
		var zero P
		return zero, domain.ErrNotFound
	}
	return clone[E, P](p), nil
}

func (t *table[E, P]) nameTaken(name string, excludeID int64) bool {
	for id, p := range t.rows {
		if id != excludeID && p.UniqueName() == name {
			return true
		}
	}
	return false
}

func (t *table[E, P]) insert(p P, now time.Time) error {
	if t.nameTaken(p.UniqueName(), 0) {
		return domain.ErrDuplicate
	}
	t.nextID++
	t.stamp(p, t.nextID, now, now)
	t.rows[t.nextID] = clone[E, P](p)
	return nil
}

func (t *table[E, P]) update(p P, now time.Time) error {
	old, ok := t.rows[p.Key()]
	if !ok {
		return domain.ErrNotFound
	}
	if t.nameTaken(p.UniqueName(), p.Key()) {
		return domain.ErrDuplicate
	}
	v, _ := old.FieldValue(entity.FieldCreatedAt)
	created, _ := v.(time.Time)
	t.stamp(p, p.Key(), created, now)
	t.rows[p.Key()] = clone[E, P](p)
	return nil
}

func (t *table[E, P]) remove(id int64) error {
	if _, ok := t.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

func (t *table[E, P]) count(where query.Predicate[P]) int64 {
	var n int64
	for _, p := range t.rows {
		if where.Matches(p) {
			n++
		}
	}
	return n
}

func (t *table[E, P]) find(q query.Query[P], limit, offset int) []P {
	matched := make([]P, 0, len(t.rows))
	for _, p := range t.rows {
		if q.Where.Matches(p) {
			matched = append(matched, p)
		}
	}
	slices.SortFunc(matched, func(a, b P) int {
		av, _ := a.FieldValue(q.Order.Field)
		bv, _ := b.FieldValue(q.Order.Field)
		c := compareValues(av, bv)
		if q.Order.IsDesc() {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.Key(), b.Key())
	})
	if offset < 0 || limit < 0 || offset >= len(matched) {
		return nil
	}
	end := min(offset+limit, len(matched))
	out := make([]P, 0, end-offset)
	for _, p := range matched[offset:end] {
		out = append(out, clone[E, P](p))
	}
	return out
}

// snapshot copia superficial de las filas; las entidades no tienen campos compartidos.
func (t *table[E, P]) snapshot() *table[E, P] {
	return &table[E, P]{rows: maps.Clone(t.rows), nextID: t.nextID, stamp: t.stamp}
}

// compareValues ordena los tipos que exponen las entidades. Tipos distintos o
// desconocidos se consideran iguales y el desempate por id decide.
func compareValues(a, b any) int {
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(strings.ToLower(x), strings.ToLower(y))
		}
	case int64:
		if y, ok := b.(int64); ok {
			return cmp.Compare(x, y)
		}
	case decimal.Decimal:
		if y, ok := b.(decimal.Decimal); ok {
			return x.Cmp(y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	}
	return 0
}
