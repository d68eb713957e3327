package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

// SupplyOrderUseCase administra órdenes de compra y su recepción. Recibir una
// orden ejecuta el algoritmo de recepción de stock por cada línea y marca la
// orden RECEIVED, todo dentro de una transacción.
type SupplyOrderUseCase struct {
	txRunner  TxRunner
	orderRepo repository.SupplyOrderRepository // lecturas y creación fuera de transacción
}

// NewSupplyOrderUseCase construye el caso de uso.
func NewSupplyOrderUseCase(txRunner TxRunner, orderRepo repository.SupplyOrderRepository) *SupplyOrderUseCase {
	return &SupplyOrderUseCase{txRunner: txRunner, orderRepo: orderRepo}
}

// OrderLineInput línea de una orden nueva.
type OrderLineInput struct {
	MedicationID   string
	Quantity       int64
	UnitPrice      decimal.Decimal
	ExpirationDate time.Time
}

// CreateOrderInput entrada para crear una orden PENDING.
type CreateOrderInput struct {
	SupplierID string
	Lines      []OrderLineInput
}

// CreateOrder crea la orden en estado PENDING.
func (uc *SupplyOrderUseCase) CreateOrder(ctx context.Context, in CreateOrderInput) (*entity.SupplyOrder, error) {
	if in.SupplierID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	order := &entity.SupplyOrder{
		SupplierID: in.SupplierID,
		Status:     entity.OrderStatusPending,
		CreatedAt:  time.Now(),
	}
	for _, line := range in.Lines {
		if line.MedicationID == "" || line.ExpirationDate.IsZero() {
			return nil, domain.ErrInvalidInput
		}
		if line.Quantity <= 0 || !line.UnitPrice.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("medicamento %s: cantidad y precio deben ser positivos: %w", line.MedicationID, domain.ErrInvalidInput)
		}
		order.Lines = append(order.Lines, entity.SupplyOrderLine{
			MedicationID:   line.MedicationID,
			Quantity:       line.Quantity,
			UnitPrice:      line.UnitPrice,
			ExpirationDate: line.ExpirationDate,
		})
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

// ReceiveOrder recibe una orden PENDING: una recepción de stock por línea
// (crear item si falta, precio del último recibido, fusionar lote del mismo
// vencimiento) y el cambio a RECEIVED se confirman juntos.
func (uc *SupplyOrderUseCase) ReceiveOrder(ctx context.Context, orderID string) error {
	if orderID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunReceipt(ctx, func(
		itemRepo repository.InventoryItemRepository,
		batchRepo repository.BatchRepository,
		orderRepo repository.SupplyOrderRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("orden %s: %w", orderID, domain.ErrNotFound)
		}
		if order.Status != entity.OrderStatusPending {
			return fmt.Errorf("orden %s ya recibida: %w", orderID, domain.ErrConflict)
		}
		// Igual que el despacho: los bloqueos de item se toman en orden estable
		// de medicamento para no interbloquearse con recepciones o despachos
		// concurrentes de líneas cruzadas.
		lines := append([]entity.SupplyOrderLine(nil), order.Lines...)
		sort.Slice(lines, func(a, b int) bool { return lines[a].MedicationID < lines[b].MedicationID })
		for _, line := range lines {
			if _, err := applyReceipt(itemRepo, batchRepo, ReceiveStockInput{
				MedicationID:   line.MedicationID,
				UnitPrice:      line.UnitPrice,
				Quantity:       line.Quantity,
				ExpirationDate: line.ExpirationDate,
			}); err != nil {
				return err
			}
		}
		return orderRepo.MarkReceived(order.ID, time.Now())
	})
}

// GetOrder devuelve una orden con sus líneas.
func (uc *SupplyOrderUseCase) GetOrder(ctx context.Context, orderID string) (*entity.SupplyOrder, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("orden %s: %w", orderID, domain.ErrNotFound)
	}
	return order, nil
}

// ListOrders lista órdenes, opcionalmente filtradas por estado.
func (uc *SupplyOrderUseCase) ListOrders(ctx context.Context, status string, limit, offset int) ([]*entity.SupplyOrder, error) {
	return uc.orderRepo.List(status, limit, offset)
}
