package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

// ReceiveStockUseCase registra entradas de stock al libro: reposición manual y
// el paso terminal de la recepción de órdenes. La operación es aditiva: nunca
// falla por el estado del libro, solo por entrada inválida.
type ReceiveStockUseCase struct {
	txRunner TxRunner
}

// NewReceiveStockUseCase construye el caso de uso.
func NewReceiveStockUseCase(txRunner TxRunner) *ReceiveStockUseCase {
	return &ReceiveStockUseCase{txRunner: txRunner}
}

// ReceiveStockInput entrada para una recepción de stock.
type ReceiveStockInput struct {
	MedicationID   string
	UnitPrice      decimal.Decimal
	Quantity       int64
	ExpirationDate time.Time
}

// ReceiveStock crea el item si no existe, actualiza su precio vigente (gana el
// último recibido) y suma la cantidad al lote del mismo vencimiento o crea uno
// nuevo. Devuelve la foto del item con total y lotes por vencimiento.
func (uc *ReceiveStockUseCase) ReceiveStock(ctx context.Context, in ReceiveStockInput) (*dto.ItemSnapshotDTO, error) {
	if in.MedicationID == "" || in.ExpirationDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 || !in.UnitPrice.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("medicamento %s: cantidad y precio deben ser positivos: %w", in.MedicationID, domain.ErrInvalidInput)
	}

	var snapshot *dto.ItemSnapshotDTO
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		batchRepo repository.BatchRepository,
	) error {
		item, err := applyReceipt(itemRepo, batchRepo, in)
		if err != nil {
			return err
		}
		batches, err := batchRepo.ListByItem(item.ID, false)
		if err != nil {
			return err
		}
		snapshot = buildSnapshot(item, batches)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// applyReceipt es el algoritmo de recepción compartido con la recepción de
// órdenes (misma transacción del caller): localizar o crear el item, aplicar
// la política de precio y fusionar o crear el lote del vencimiento.
func applyReceipt(
	itemRepo repository.InventoryItemRepository,
	batchRepo repository.BatchRepository,
	in ReceiveStockInput,
) (*entity.InventoryItem, error) {
	now := time.Now()
	expiration := truncateToDay(in.ExpirationDate)

	// Bloquea la fila del item (SELECT FOR UPDATE) si existe, para serializar
	// recepciones y despachos concurrentes del mismo medicamento.
	item, err := itemRepo.GetByMedicationForUpdate(in.MedicationID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		item = &entity.InventoryItem{
			MedicationID: in.MedicationID,
			Price:        in.UnitPrice,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := itemRepo.Create(item); err != nil {
			return nil, err
		}
	} else if !item.Price.Equal(in.UnitPrice) {
		// Política de precio: gana el último recibido; aplica a todos los
		// despachos futuros sin importar qué lote se consuma.
		if err := itemRepo.UpdatePrice(item.ID, in.UnitPrice); err != nil {
			return nil, err
		}
		item.Price = in.UnitPrice
	}

	batch, err := batchRepo.GetByItemAndExpiration(item.ID, expiration)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		batch = &entity.Batch{
			ItemID:         item.ID,
			Quantity:       in.Quantity,
			ExpirationDate: expiration,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := batchRepo.Create(batch); err != nil {
			return nil, err
		}
	} else if err := batchRepo.UpdateQuantity(batch.ID, batch.Quantity+in.Quantity); err != nil {
		return nil, err
	}
	return item, nil
}

// truncateToDay normaliza el vencimiento a precisión de día en UTC, para que
// la unicidad (item, vencimiento) no dependa de la hora ni la zona recibida.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
