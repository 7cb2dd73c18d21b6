package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

const msgFileTooLarge = "File size limit exceeded. Please upload a file with a smaller size."

// MissingPartError falta una parte obligatoria del multipart.
type MissingPartError struct {
	Name string
}

func (e *MissingPartError) Error() string {
	return fmt.Sprintf("Parameter %s is missing in the request", e.Name)
}

// ErrorHandler traduce cualquier error devuelto por un handler al cuerpo
// dto.ErrorDetails. Los errores internos se registran con su causa y se
// responden con un mensaje genérico.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	log = log.Named("http")
	return func(c *fiber.Ctx, err error) error {
		body := resolve(err)
		body.Timestamp = time.Now().UTC()
		body.Path = c.Path()
		if body.Status >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", body.Path).
				Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
				Msg("error interno")
		}
		return c.Status(body.Status).JSON(body)
	}
}

func resolve(err error) dto.ErrorDetails {
	var missing *MissingPartError
	if errors.As(err, &missing) {
		return dto.ErrorDetails{Status: fiber.StatusBadRequest, Message: missing.Error()}
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code == fiber.StatusRequestEntityTooLarge {
			return dto.ErrorDetails{Status: fiber.StatusBadRequest, Message: msgFileTooLarge}
		}
		return dto.ErrorDetails{Status: fe.Code, Message: fe.Message}
	}

	if de, ok := domain.AsError(err); ok {
		out := dto.ErrorDetails{Status: statusOf(de.Kind), Message: de.Message}
		if de.Kind == domain.KindValidation && len(de.Fields) > 0 {
			out.Details = de.Fields
		}
		return out
	}

	return dto.ErrorDetails{Status: fiber.StatusInternalServerError, Message: "Internal Server Error"}
}

func statusOf(k domain.Kind) int {
	switch k {
	case domain.KindValidation, domain.KindDuplicate, domain.KindAssetUpload:
		return fiber.StatusBadRequest
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindUnauthorized:
		return fiber.StatusUnauthorized
	case domain.KindForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}
