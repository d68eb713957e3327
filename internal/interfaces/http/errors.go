package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
)

// respondError traduce los errores de dominio a respuestas HTTP. Los errores
// van envueltos con contexto (fmt.Errorf %w), por eso errors.Is y no ==.
// Los errores de negocio llevan su mensaje (nombran el medicamento ofensor);
// un fallo interno se registra completo aquí y responde un mensaje opaco: el
// detalle (SQL, tablas, drivers) no sale por la API.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrNotStocked):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_STOCKED", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrBatchNotEmpty):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "BATCH_NOT_EMPTY", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		log.Error().
			Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("fallo interno atendiendo la petición")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "la operación falló"})
	}
}
