package entity

import (
	"time"

	"github.com/jhoicas/catalogo-api/internal/domain/query"
)

// Vendor proveedor/marca. El logo es obligatorio al crear y se guarda como URL pública.
type Vendor struct {
	ID        int64
	Name      string
	Logo      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VendorSchema campos consultables de Vendor. La búsqueda es solo por nombre.
var VendorSchema = query.Schema[*Vendor]{
	Resource:     "Vendor",
	SearchFields: []string{FieldName},
	SortFields:   []string{FieldID, FieldName, FieldCreatedAt, FieldUpdatedAt},
	DefaultSort:  query.By(FieldID),
}

// FieldValue implementa query.Record.
func (v *Vendor) FieldValue(field string) (any, bool) {
	switch field {
	case FieldID:
		return v.ID, true
	case FieldName:
		return v.Name, true
	case FieldLogo:
		return v.Logo, true
	case FieldCreatedAt:
		return v.CreatedAt, true
	case FieldUpdatedAt:
		return v.UpdatedAt, true
	}
	return nil, false
}

func (v *Vendor) Key() int64         { return v.ID }
func (v *Vendor) UniqueName() string { return v.Name }
func (v *Vendor) Asset() string      { return v.Logo }
