package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/application/ledger"
)

// CountHandler maneja las sesiones de conteo físico y su conciliación (protegido).
type CountHandler struct {
	record    *ledger.RecordCountUseCase
	reconcile *ledger.ReconcileUseCase
}

// NewCountHandler construye el handler.
func NewCountHandler(record *ledger.RecordCountUseCase, reconcile *ledger.ReconcileUseCase) *CountHandler {
	return &CountHandler{record: record, reconcile: reconcile}
}

// RecordCount godoc
// @Summary      Registrar una sesión de conteo físico
// @Description  Captura la cantidad esperada del libro y la contada por el
//
//	operador. La sesión es inmutable; la varianza se deriva al leer.
//
// @Tags         counts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordCountRequest  true  "notes, lines (medication_id, counted_quantity)"
// @Success      201   {object}  dto.CountSessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/counts [post]
func (h *CountHandler) RecordCount(c *fiber.Ctx) error {
	operatorID := GetOperatorID(c)
	if operatorID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RecordCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]ledger.CountLineInput, 0, len(in.Lines))
	for _, line := range in.Lines {
		lines = append(lines, ledger.CountLineInput{
			MedicationID:    line.MedicationID,
			CountedQuantity: line.CountedQuantity,
		})
	}
	resp, err := h.record.RecordCount(c.Context(), ledger.RecordCountInput{
		OperatorID: operatorID,
		Notes:      in.Notes,
		Lines:      lines,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetSession godoc
// @Summary      Consultar una sesión de conteo
// @Tags         counts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.CountSessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/counts/{id} [get]
func (h *CountHandler) GetSession(c *fiber.Ctx) error {
	resp, err := h.record.GetSession(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// SessionReport godoc
// @Summary      Reporte PDF de varianza de una sesión
// @Tags         counts
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la sesión"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/counts/{id}/report.pdf [get]
func (h *CountHandler) SessionReport(c *fiber.Ctx) error {
	pdfBytes, err := h.record.SessionReportPDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="conteo-`+c.Params("id")+`.pdf"`)
	return c.Send(pdfBytes)
}

// Reconcile godoc
// @Summary      Conciliar el libro con una sesión de conteo
// @Description  Reemplaza los lotes de cada medicamento contado por un único
//
//	lote con la cantidad contada y el vencimiento de reposición
//	configurado. Medicamentos sin item en el libro se omiten.
//
// @Tags         counts
// @Security     Bearer
// @Param        id  path  string  true  "ID de la sesión"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/counts/{id}/reconcile [post]
func (h *CountHandler) Reconcile(c *fiber.Ctx) error {
	if err := h.reconcile.Reconcile(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
