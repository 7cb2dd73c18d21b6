package repository

import "github.com/jhoicas/catalogo-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los listados por categoría o proveedor usan entity.ProductsInCategory / ProductsOfVendor.
type ProductRepository = Store[*entity.Product]
