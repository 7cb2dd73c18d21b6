package entity

import (
	"time"

	"github.com/jhoicas/catalogo-api/internal/domain/query"
)

// Category agrupa productos del catálogo. Name es único.
type Category struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time // la asigna la capa de persistencia
	UpdatedAt   time.Time
}

// CategorySchema campos consultables de Category.
var CategorySchema = query.Schema[*Category]{
	Resource:     "Category",
	SearchFields: []string{FieldName, FieldDescription},
	SortFields:   []string{FieldID, FieldName, FieldCreatedAt, FieldUpdatedAt},
	DefaultSort:  query.By(FieldID),
}

// FieldValue implementa query.Record.
func (c *Category) FieldValue(field string) (any, bool) {
	switch field {
	case FieldID:
		return c.ID, true
	case FieldName:
		return c.Name, true
	case FieldDescription:
		return c.Description, true
	case FieldCreatedAt:
		return c.CreatedAt, true
	case FieldUpdatedAt:
		return c.UpdatedAt, true
	}
	return nil, false
}

func (c *Category) Key() int64         { return c.ID }
func (c *Category) UniqueName() string { return c.Name }

// Asset una categoría no tiene imagen.
func (c *Category) Asset() string { return "" }
