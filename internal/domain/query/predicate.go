package query

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Record es la capacidad mínima que una entidad expone para ser filtrada en memoria:
// el valor de un campo lógico por nombre. Los adaptadores SQL no la usan.
type Record interface {
	FieldValue(field string) (any, bool)
}

// Op operador de una condición.
type Op int

const (
	// OpContains coincidencia por subcadena sin distinguir mayúsculas en cualquiera de Fields.
	OpContains Op = iota
	// OpEquals igualdad exacta sobre Fields[0].
	OpEquals
)

// Condition es una condición atómica; un Predicate es la conjunción (AND) de sus condiciones.
type Condition struct {
	Op     Op
	Fields []string
	Value  any
}

// Predicate filtro componible sobre un único tipo de entidad T. El valor cero coincide
// con todas las filas. Es inmutable: And devuelve un predicado nuevo.
type Predicate[T Record] struct {
	conds []Condition
}

// All coincide con todas las filas.
func All[T Record]() Predicate[T] { return Predicate[T]{} }

// Search coincide con filas donde term aparece (case-insensitive) en alguno de fields.
// Un term vacío o en blanco equivale a All.
func Search[T Record](term string, fields ...string) Predicate[T] {
	term = strings.TrimSpace(term)
	if term == "" || len(fields) == 0 {
		return All[T]()
	}
	return Predicate[T]{conds: []Condition{{
		Op:     OpContains,
		Fields: append([]string(nil), fields...),
		Value:  term,
	}}}
}

// Eq coincide con filas donde field es igual a value.
func Eq[T Record](field string, value any) Predicate[T] {
	return Predicate[T]{conds: []Condition{{Op: OpEquals, Fields: []string{field}, Value: normalize(value)}}}
}

// And combina ambos predicados.
func (p Predicate[T]) And(other Predicate[T]) Predicate[T] {
	if len(other.conds) == 0 {
		return p
	}
	conds := make([]Condition, 0, len(p.conds)+len(other.conds))
	conds = append(conds, p.conds...)
	conds = append(conds, other.conds...)
	return Predicate[T]{conds: conds}
}

// IsAll indica que el predicado no filtra nada.
func (p Predicate[T]) IsAll() bool { return len(p.conds) == 0 }

// Conditions copia de las condiciones, para que los adaptadores rendericen su dialecto.
func (p Predicate[T]) Conditions() []Condition {
	out := make([]Condition, len(p.conds))
	copy(out, p.conds)
	return out
}

// Matches evalúa el predicado contra rec. Un campo desconocido nunca coincide.
func (p Predicate[T]) Matches(rec T) bool {
	for _, c := range p.conds {
		if !c.matches(rec) {
			return false
		}
	}
	return true
}

func (p Predicate[T]) String() string {
	if p.IsAll() {
		return "ALL"
	}
	parts := make([]string, 0, len(p.conds))
	for _, c := range p.conds {
		switch c.Op {
		case OpContains:
			parts = append(parts, fmt.Sprintf("%s ~ %q", strings.Join(c.Fields, "|"), c.Value))
		case OpEquals:
			parts = append(parts, fmt.Sprintf("%s = %v", c.Fields[0], c.Value))
		}
	}
	return strings.Join(parts, " AND ")
}

func (c Condition) matches(rec Record) bool {
	switch c.Op {
	case OpContains:
		needle := fold(fmt.Sprint(c.Value))
		for _, f := range c.Fields {
			v, ok := rec.FieldValue(f)
			if !ok {
				continue
			}
			if s, isStr := v.(string); isStr && strings.Contains(fold(s), needle) {
				return true
			}
		}
		return false
	case OpEquals:
		v, ok := rec.FieldValue(c.Fields[0])
		return ok && normalize(v) == c.Value
	default:
		return false
	}
}

// fold normaliza para comparación sin mayúsculas (Unicode, no solo ASCII).
// cases.Caser no es seguro entre goroutines, se crea por llamada.
func fold(s string) string {
	return cases.Fold().String(s)
}

// normalize lleva enteros a int64 para que Eq(…, 3) coincida con un ID int64.
func normalize(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case uint:
		return int64(n)
	case uint32:
		return int64(n)
	default:
		return v
	}
}
