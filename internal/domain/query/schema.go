package query

import "slices"

// Schema describe cómo se consulta una entidad: campos de búsqueda, campos ordenables
// y orden por defecto. Agregar un recurso nuevo es declarar su Schema, no escribir filtros.
type Schema[T Record] struct {
	Resource     string
	SearchFields []string
	SortFields   []string
	DefaultSort  SortSpec
}

// Query predicado y orden ya resueltos para un listado.
type Query[T Record] struct {
	Where Predicate[T]
	Order SortSpec
}

// Build traduce search y sort (entrada del cliente, no confiable) a un Query acotado a T.
// Nunca falla: un campo de orden desconocido cae al orden por defecto.
func (s Schema[T]) Build(search, sort string) Query[T] {
	return Query[T]{
		Where: Search[T](search, s.SearchFields...),
		Order: s.ParseSort(sort),
	}
}

// ParseSort interpreta "campo,dir". Campo vacío o fuera de SortFields devuelve DefaultSort.
func (s Schema[T]) ParseSort(raw string) SortSpec {
	field, dir := splitSort(raw)
	if field == "" || !s.Sortable(field) {
		return s.DefaultSort
	}
	return SortSpec{Field: field, Direction: parseDirection(dir)}
}

// Sortable indica si field está en la lista blanca de orden.
func (s Schema[T]) Sortable(field string) bool {
	return slices.Contains(s.SortFields, field)
}

// Filter agrega una condición al predicado del Query (AND).
func (q Query[T]) Filter(p Predicate[T]) Query[T] {
	q.Where = q.Where.And(p)
	return q
}
