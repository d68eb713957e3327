package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/application/ledger"
)

// PrescriptionHandler maneja los despachos y su histórico (protegido).
type PrescriptionHandler struct {
	dispense *ledger.DispenseUseCase
	query    *ledger.PrescriptionQueryUseCase
}

// NewPrescriptionHandler construye el handler.
func NewPrescriptionHandler(dispense *ledger.DispenseUseCase, query *ledger.PrescriptionQueryUseCase) *PrescriptionHandler {
	return &PrescriptionHandler{dispense: dispense, query: query}
}

// Dispense godoc
// @Summary      Despachar una receta
// @Description  Descuenta lotes en orden de vencimiento (primero el más próximo)
//
//	y registra la receta. Todo o nada: una línea insuficiente aborta
//	el despacho completo sin tocar el libro.
//
// @Tags         prescriptions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DispenseRequest  true  "patient_id, prescriber_id, lines"
// @Success      201   {object}  dto.DispenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/prescriptions [post]
func (h *PrescriptionHandler) Dispense(c *fiber.Ctx) error {
	operatorID := GetOperatorID(c)
	if operatorID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.DispenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]ledger.DispenseLineInput, 0, len(in.Lines))
	for _, line := range in.Lines {
		lines = append(lines, ledger.DispenseLineInput{
			MedicationID: line.MedicationID,
			Quantity:     line.Quantity,
		})
	}
	resp, err := h.dispense.Dispense(c.Context(), ledger.DispenseInput{
		OperatorID:   operatorID,
		PatientID:    in.PatientID,
		PrescriberID: in.PrescriberID,
		Lines:        lines,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID godoc
// @Summary      Consultar una receta despachada
// @Tags         prescriptions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la receta"
// @Success      200  {object}  dto.PrescriptionDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prescriptions/{id} [get]
func (h *PrescriptionHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.query.GetPrescription(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ListByPatient godoc
// @Summary      Histórico de recetas de un paciente
// @Tags         prescriptions
// @Security     Bearer
// @Produce      json
// @Param        patient_id  query  string  true   "ID del paciente"
// @Param        limit       query  int     false  "Máximo de filas (default 20)"
// @Param        offset      query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.PrescriptionDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/prescriptions [get]
func (h *PrescriptionHandler) ListByPatient(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.query.ListByPatient(c.Context(), c.Query("patient_id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":         len(list),
		"prescriptions": list,
	})
}
