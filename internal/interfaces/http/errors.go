package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain"
)

// writeDomainError traduce errores de dominio a respuestas HTTP.
// NotFound -> 404; conflictos de estado -> 409; entrada inválida -> 400;
// bloqueo agotado -> 503 (reintentable); resto -> 500.
func writeDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ITEM_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicateName):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_ITEM_NAME", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrItemHasStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ITEM_HAS_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrItemHasMovements):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ITEM_HAS_MOVEMENTS", Message: err.Error()})
	case errors.Is(err, domain.ErrConfirmationRequired):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "CONFIRMATION_REQUIRED", Message: err.Error()})
	case errors.Is(err, domain.ErrAdjustmentNotNeeded):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "ADJUSTMENT_NOT_NEEDED", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidDateRange):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE_RANGE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrLockTimeout):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "LOCK_TIMEOUT", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
