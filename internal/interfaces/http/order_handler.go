package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/application/ledger"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// OrderHandler maneja las órdenes de compra a proveedor (protegido).
type OrderHandler struct {
	uc *ledger.SupplyOrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *ledger.SupplyOrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear una orden de compra
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "supplier_id, lines"
// @Success      201   {object}  dto.SupplyOrderDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	if GetOperatorID(c) == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]ledger.OrderLineInput, 0, len(in.Lines))
	for _, line := range in.Lines {
		expiration, err := time.Parse(dto.DateLayout, line.ExpirationDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "expiration_date debe ser YYYY-MM-DD"})
		}
		lines = append(lines, ledger.OrderLineInput{
			MedicationID:   line.MedicationID,
			Quantity:       line.Quantity,
			UnitPrice:      line.UnitPrice,
			ExpirationDate: expiration,
		})
	}
	order, err := h.uc.CreateOrder(c.Context(), ledger.CreateOrderInput{
		SupplierID: in.SupplierID,
		Lines:      lines,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(orderToDTO(order))
}

// Receive godoc
// @Summary      Recibir una orden pendiente
// @Description  Aplica cada línea al libro como una recepción de stock y marca
//
//	la orden RECEIVED, todo en una transacción. Una orden ya
//	recibida responde 409.
//
// @Tags         orders
// @Security     Bearer
// @Param        id  path  string  true  "ID de la orden"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receive [post]
func (h *OrderHandler) Receive(c *fiber.Ctx) error {
	if err := h.uc.ReceiveOrder(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Consultar una orden con sus líneas
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.SupplyOrderDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orderToDTO(order))
}

// List godoc
// @Summary      Listar órdenes
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "PENDING o RECEIVED; vacío lista todas"
// @Param        limit   query  int     false  "Máximo de filas (default 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.SupplyOrderDTO
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.ListOrders(c.Context(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	orders := make([]dto.SupplyOrderDTO, 0, len(list))
	for _, order := range list {
		orders = append(orders, orderToDTO(order))
	}
	return c.JSON(fiber.Map{
		"total":  len(orders),
		"orders": orders,
	})
}

func orderToDTO(order *entity.SupplyOrder) dto.SupplyOrderDTO {
	out := dto.SupplyOrderDTO{
		ID:         order.ID,
		SupplierID: order.SupplierID,
		Status:     order.Status,
		CreatedAt:  order.CreatedAt.Format(time.RFC3339),
	}
	if order.ReceivedAt != nil {
		out.ReceivedAt = order.ReceivedAt.Format(time.RFC3339)
	}
	for _, line := range order.Lines {
		out.Lines = append(out.Lines, dto.SupplyOrderLineDTO{
			MedicationID:   line.MedicationID,
			Quantity:       line.Quantity,
			UnitPrice:      line.UnitPrice,
			ExpirationDate: line.ExpirationDate.Format(dto.DateLayout),
		})
	}
	return out
}
