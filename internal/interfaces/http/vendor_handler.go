package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
)

// VendorHandler maneja las peticiones HTTP para Vendor. Crear y actualizar
// reciben multipart/form-data con el campo name y el archivo logo.
type VendorHandler struct {
	uc       *usecase.VendorUseCase
	products *usecase.ProductUseCase
}

// NewVendorHandler construye el handler.
func NewVendorHandler(uc *usecase.VendorUseCase, products *usecase.ProductUseCase) *VendorHandler {
	return &VendorHandler{uc: uc, products: products}
}

// List godoc
// @Summary      Listar proveedores
// @Tags         vendors
// @Produce      json
// @Param        pageNum   query  int     false  "Página (1-based)"
// @Param        pageSize  query  int     false  "Tamaño de página"
// @Param        search    query  string  false  "Texto en el nombre"
// @Param        sort      query  string  false  "campo,asc|desc"
// @Success      200  {object}  dto.PageResponse[dto.VendorResponse]
// @Router       /api/v1/vendors [get]
func (h *VendorHandler) List(c *fiber.Ctx) error {
	params, err := pageParams(c)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), params)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener proveedor por ID
// @Tags         vendors
// @Produce      json
// @Param        id   path  int  true  "ID del proveedor"
// @Success      200  {object}  dto.VendorResponse
// @Failure      404  {object}  dto.ErrorDetails
// @Router       /api/v1/vendors/{id} [get]
func (h *VendorHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Products godoc
// @Summary      Productos de un proveedor
// @Tags         vendors
// @Produce      json
// @Param        id   path  int  true  "ID del proveedor"
// @Success      200  {object}  dto.PageResponse[dto.ProductResponse]
// @Failure      404  {object}  dto.ErrorDetails
// @Router       /api/v1/vendors/{id}/products [get]
func (h *VendorHandler) Products(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	params, err := pageParams(c)
	if err != nil {
		return err
	}
	out, err := h.products.ListByVendor(c.UserContext(), id, params)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         vendors
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        name  formData  string  true  "Nombre"
// @Param        logo  formData  file    true  "Logo (jpeg o png)"
// @Success      201   {object}  dto.VendorResponse
// @Failure      400   {object}  dto.ErrorDetails
// @Router       /api/v1/vendors [post]
func (h *VendorHandler) Create(c *fiber.Ctx) error {
	logo, done, err := formFile(c, "logo", true)
	if err != nil {
		return err
	}
	defer done()
	var in dto.VendorRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	in.Logo = logo
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return created(c, out.ID, out)
}

// Update godoc
// @Summary      Actualizar proveedor
// @Tags         vendors
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      int     true   "ID del proveedor"
// @Param        name  formData  string  true   "Nombre"
// @Param        logo  formData  file    false  "Logo nuevo; sin archivo se conserva el actual"
// @Success      200   {object}  dto.VendorResponse
// @Failure      400   {object}  dto.ErrorDetails
// @Failure      404   {object}  dto.ErrorDetails
// @Router       /api/v1/vendors/{id} [put]
func (h *VendorHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	logo, done, err := formFile(c, "logo", false)
	if err != nil {
		return err
	}
	defer done()
	var in dto.VendorRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	in.Logo = logo
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar proveedor
// @Tags         vendors
// @Security     Bearer
// @Param        id   path  int  true  "ID del proveedor"
// @Success      204
// @Failure      404  {object}  dto.ErrorDetails
// @Router       /api/v1/vendors/{id} [delete]
func (h *VendorHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
