package dto

import "time"

// VendorRequest entrada multipart de proveedor. Logo es obligatorio al crear y
// opcional al actualizar (nil conserva el actual).
type VendorRequest struct {
	Name string     `form:"name" json:"name" validate:"notblank,max=200"`
	Logo *FileInput `form:"-" json:"-" validate:"-"`
}

// VendorResponse salida de un proveedor.
type VendorResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Logo      string    `json:"logo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
