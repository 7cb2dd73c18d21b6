package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest entrada multipart de producto. Price llega como texto y se
// interpreta como decimal; Image es opcional.
type ProductRequest struct {
	Name        string     `form:"name" json:"name" validate:"notblank,max=200"`
	Description string     `form:"description" json:"description" validate:"max=5000"`
	Price       string     `form:"price" json:"price" validate:"required,numeric"`
	CategoryID  int64      `form:"categoryId" json:"categoryId" validate:"gt=0"`
	VendorID    int64      `form:"vendorId" json:"vendorId" validate:"gt=0"`
	Image       *FileInput `form:"-" json:"-" validate:"-"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	CategoryID  int64           `json:"categoryId"`
	VendorID    int64           `json:"vendorId"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
