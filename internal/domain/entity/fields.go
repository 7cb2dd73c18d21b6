package entity

// Nombres lógicos de campo usados por los Schema, los predicados y los adaptadores.
// Los adaptadores SQL los traducen a columnas con su propia lista blanca.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldLogo        = "logo"
	FieldImage       = "image"
	FieldPrice       = "price"
	FieldCategoryID  = "categoryId"
	FieldVendorID    = "vendorId"
	FieldCreatedAt   = "createdAt"
	FieldUpdatedAt   = "updatedAt"
)
