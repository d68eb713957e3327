package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Se envuelven con fmt.Errorf("medicamento %s: %w", ...) para indicar la línea
// que causó el fallo; los callers clasifican con errors.Is.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrNotStocked        = errors.New("medicamento sin existencias registradas")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrBatchNotEmpty     = errors.New("el lote tiene existencias, no se puede eliminar")
)
