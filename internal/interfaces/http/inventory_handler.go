package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/application/ledger"
)

// InventoryHandler maneja las peticiones HTTP del libro de inventario (protegido).
type InventoryHandler struct {
	receive *ledger.ReceiveStockUseCase
	query   *ledger.LedgerQueryUseCase
	admin   *ledger.BatchAdminUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	receive *ledger.ReceiveStockUseCase,
	query *ledger.LedgerQueryUseCase,
	admin *ledger.BatchAdminUseCase,
) *InventoryHandler {
	return &InventoryHandler{receive: receive, query: query, admin: admin}
}

// ReceiveStock godoc
// @Summary      Registrar recepción manual de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveStockRequest  true  "medication_id, unit_price, quantity, expiration_date (YYYY-MM-DD)"
// @Success      201   {object}  dto.ItemSnapshotDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/receipts [post]
func (h *InventoryHandler) ReceiveStock(c *fiber.Ctx) error {
	if GetOperatorID(c) == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ReceiveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	expiration, err := time.Parse(dto.DateLayout, in.ExpirationDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "expiration_date debe ser YYYY-MM-DD"})
	}
	snapshot, err := h.receive.ReceiveStock(c.Context(), ledger.ReceiveStockInput{
		MedicationID:   in.MedicationID,
		UnitPrice:      in.UnitPrice,
		Quantity:       in.Quantity,
		ExpirationDate: expiration,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(snapshot)
}

// GetItem godoc
// @Summary      Foto del item de un medicamento
// @Description  Precio vigente, total derivado y lotes ordenados por vencimiento.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        medication_id  path  string  true  "ID del medicamento"
// @Success      200  {object}  dto.ItemSnapshotDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{medication_id} [get]
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	snapshot, err := h.query.GetItem(c.Context(), c.Params("medication_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(snapshot)
}

// LowStock godoc
// @Summary      Reporte de stock bajo
// @Description  Medicamentos por debajo de su umbral mínimo con cantidad sugerida
//
//	de pedido y costo estimado al precio vigente.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.LowStockDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	list, err := h.query.LowStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":       len(list),
		"medications": list,
	})
}

// DeleteBatch godoc
// @Summary      Eliminar un lote vacío
// @Description  Solo se eliminan lotes con cantidad cero; un lote con unidades
//
//	responde 409.
//
// @Tags         inventory
// @Security     Bearer
// @Param        batch_id  path  string  true  "ID del lote"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/batches/{batch_id} [delete]
func (h *InventoryHandler) DeleteBatch(c *fiber.Ctx) error {
	if err := h.admin.DeleteBatch(c.Context(), c.Params("batch_id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
