package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-api/internal/domain/query"
)

// Product artículo del catálogo. Pertenece a una categoría y a un proveedor;
// Image es opcional.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
	CategoryID  int64
	VendorID    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductSchema campos consultables de Product. CategoryID y VendorID no son de
// búsqueda libre; se filtran con query.Eq.
var ProductSchema = query.Schema[*Product]{
	Resource:     "Product",
	SearchFields: []string{FieldName, FieldDescription},
	SortFields:   []string{FieldID, FieldName, FieldPrice, FieldCreatedAt, FieldUpdatedAt},
	DefaultSort:  query.By(FieldID),
}

// ProductsInCategory predicado de productos de una categoría.
func ProductsInCategory(categoryID int64) query.Predicate[*Product] {
	return query.Eq[*Product](FieldCategoryID, categoryID)
}

// ProductsOfVendor predicado de productos de un proveedor.
func ProductsOfVendor(vendorID int64) query.Predicate[*Product] {
	return query.Eq[*Product](FieldVendorID, vendorID)
}

// FieldValue implementa query.Record.
func (p *Product) FieldValue(field string) (any, bool) {
	switch field {
	case FieldID:
		return p.ID, true
	case FieldName:
		return p.Name, true
	case FieldDescription:
		return p.Description, true
	case FieldPrice:
		return p.Price, true
	case FieldImage:
		return p.Image, true
	case FieldCategoryID:
		return p.CategoryID, true
	case FieldVendorID:
		return p.VendorID, true
	case FieldCreatedAt:
		return p.CreatedAt, true
	case FieldUpdatedAt:
		return p.UpdatedAt, true
	}
	return nil, false
}

func (p *Product) Key() int64         { return p.ID }
func (p *Product) UniqueName() string { return p.Name }
func (p *Product) Asset() string      { return p.Image }
