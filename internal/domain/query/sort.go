package query

import "strings"

// Direction dirección de ordenamiento.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// sortSeparator separa campo y dirección en el parámetro sort ("name,desc").
const sortSeparator = ","

// SortSpec campo lógico y dirección. Field siempre pertenece al Schema que lo produjo.
type SortSpec struct {
	Field     string
	Direction Direction
}

// By construye un SortSpec ascendente.
func By(field string) SortSpec { return SortSpec{Field: field, Direction: Asc} }

// Descending devuelve el mismo campo en orden DESC.
func (s SortSpec) Descending() SortSpec { return SortSpec{Field: s.Field, Direction: Desc} }

// IsDesc indica si el orden es descendente.
func (s SortSpec) IsDesc() bool { return s.Direction == Desc }

func (s SortSpec) String() string {
	return s.Field + sortSeparator + strings.ToLower(string(s.Direction))
}

// parseDirection acepta asc/desc sin distinguir mayúsculas; cualquier otro valor es ASC.
func parseDirection(raw string) Direction {
	if strings.EqualFold(strings.TrimSpace(raw), string(Desc)) {
		return Desc
	}
	return Asc
}

// splitSort separa "campo,dir" en sus dos partes (dir puede venir vacía).
func splitSort(raw string) (field, dir string) {
	field, dir, _ = strings.Cut(strings.TrimSpace(raw), sortSeparator)
	return strings.TrimSpace(field), strings.TrimSpace(dir)
}
