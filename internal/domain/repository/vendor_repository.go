package repository

import "github.com/jhoicas/catalogo-api/internal/domain/entity"

// VendorRepository define el puerto de persistencia para Vendor (DIP).
type VendorRepository = Store[*entity.Vendor]
