package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP para Product.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Param        pageNum     query  int     false  "Página (1-based)"
// @Param        pageSize    query  int     false  "Tamaño de página"
// @Param        search      query  string  false  "Texto en nombre o descripción"
// @Param        sort        query  string  false  "campo,asc|desc"
// @Param        categoryId  query  int     false  "Filtrar por categoría"
// @Param        vendorId    query  int     false  "Filtrar por proveedor"
// @Success      200  {object}  dto.PageResponse[dto.ProductResponse]
// @Router       /api/v1/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	params, err := productPageParams(c)
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
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorDetails
// @Router       /api/v1/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
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

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        name        formData  string  true   "Nombre"
// @Param        description formData  string  false  "Descripción"
// @Param        price       formData  string  true   "Precio"
// @Param        categoryId  formData  int     true   "Categoría"
// @Param        vendorId    formData  int     true   "Proveedor"
// @Param        image       formData  file    false  "Imagen (jpeg o png)"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorDetails
// @Failure      404   {object}  dto.ErrorDetails
// @Router       /api/v1/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	in, done, err := productRequest(c)
	if err != nil {
		return err
	}
	defer done()
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return created(c, out.ID, out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorDetails
// @Failure      404   {object}  dto.ErrorDetails
// @Router       /api/v1/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	in, done, err := productRequest(c)
	if err != nil {
		return err
	}
	defer done()
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Param        id   path  int  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorDetails
// @Router       /api/v1/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func productRequest(c *fiber.Ctx) (dto.ProductRequest, func(), error) {
	var in dto.ProductRequest
	image, done, err := formFile(c, "image", false)
	if err != nil {
		return in, done, err
	}
	if err := parseBody(c, &in); err != nil {
		done()
		return in, func() {}, err
	}
	in.Image = image
	return in, done, nil
}
