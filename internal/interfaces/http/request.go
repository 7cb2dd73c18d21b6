package http

import (
	"fmt"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
)

// pathID lee el parámetro :id como entero positivo.
func pathID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id < 1 {
		return 0, domain.NewValidation("Validation Error", map[string]string{name: "must be a positive integer"})
	}
	return id, nil
}

// pageParams lee pageNum, pageSize, search y sort del query string.
func pageParams(c *fiber.Ctx) (dto.PageParams, error) {
	var p dto.PageParams
	if err := c.QueryParser(&p); err != nil {
		return p, domain.NewValidation("Validation Error", map[string]string{"query": "pageNum and pageSize must be integers"})
	}
	return p, nil
}

func productPageParams(c *fiber.Ctx) (dto.ProductPageParams, error) {
	var p dto.ProductPageParams
	if err := c.QueryParser(&p); err != nil {
		return p, domain.NewValidation("Validation Error", map[string]string{"query": "pageNum, pageSize, categoryId and vendorId must be integers"})
	}
	return p, nil
}

// parseBody decodifica JSON o campos de formulario según el Content-Type.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.NewValidation("Malformed request body", nil)
	}
	return nil
}

// formFile abre la parte name del multipart. Devuelve nil si no viene y no es
// obligatoria. done siempre es seguro de llamar.
func formFile(c *fiber.Ctx, name string, required bool) (in *dto.FileInput, done func(), err error) {
	done = func() {}
	var fh *multipart.FileHeader
	if form, ferr := c.MultipartForm(); ferr == nil {
		if files := form.File[name]; len(files) > 0 {
			fh = files[0]
		}
	}
	if fh == nil {
		if required {
			return nil, done, &MissingPartError{Name: name}
		}
		return nil, done, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, done, fmt.Errorf("abrir %s: %w", name, err)
	}
	return &dto.FileInput{Name: fh.Filename, Size: fh.Size, Reader: f}, func() { _ = f.Close() }, nil
}

// created responde 201 con Location apuntando al recurso nuevo.
func created(c *fiber.Ctx, id int64, body any) error {
	c.Location(fmt.Sprintf("%s%s/%d", c.BaseURL(), c.Path(), id))
	return c.Status(fiber.StatusCreated).JSON(body)
}
