package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("artículo no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicateName        = errors.New("ya existe un artículo con ese nombre")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrItemHasStock         = errors.New("el artículo tiene stock distinto de cero")
	ErrItemHasMovements     = errors.New("el artículo tiene movimientos recientes")
	ErrConfirmationRequired = errors.New("la salida requiere confirmación explícita")
	ErrAdjustmentNotNeeded  = errors.New("el stock ya coincide con el objetivo")
	ErrInvalidDateRange     = errors.New("fecha de movimiento fuera del rango permitido")
	ErrLockTimeout          = errors.New("no se pudo obtener el bloqueo de la fila")
	ErrUnauthorized         = errors.New("no autorizado")
)
