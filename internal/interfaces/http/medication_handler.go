package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/application/ledger"
)

// MedicationHandler búsqueda en el catálogo de medicamentos (protegido).
type MedicationHandler struct {
	query *ledger.LedgerQueryUseCase
}

// NewMedicationHandler construye el handler.
func NewMedicationHandler(query *ledger.LedgerQueryUseCase) *MedicationHandler {
	return &MedicationHandler{query: query}
}

// Search godoc
// @Summary      Buscar medicamentos por nombre
// @Description  Búsqueda insensible a mayúsculas y acentos sobre nombre y
//
//	nombre genérico.
//
// @Tags         medications
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  true   "Texto de búsqueda"
// @Param        limit   query  int     false  "Máximo de filas (default 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.MedicationDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/medications [get]
func (h *MedicationHandler) Search(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.query.SearchMedications(c.Context(), c.Query("q"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":       len(list),
		"medications": list,
	})
}
