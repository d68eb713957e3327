package ledger

import (
	"context"
	"fmt"

	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

// BatchAdminUseCase operaciones administrativas sobre lotes. El despacho nunca
// elimina lotes al llegar a cero; limpiarlos es esta operación explícita.
type BatchAdminUseCase struct {
	txRunner TxRunner
}

// NewBatchAdminUseCase construye el caso de uso.
func NewBatchAdminUseCase(txRunner TxRunner) *BatchAdminUseCase {
	return &BatchAdminUseCase{txRunner: txRunner}
}

// DeleteBatch elimina un lote vacío. Falla con ErrBatchNotEmpty si aún tiene
// existencias: borrar stock vivo sería un ajuste encubierto, eso es un conteo
// más conciliación.
func (uc *BatchAdminUseCase) DeleteBatch(ctx context.Context, batchID string) error {
	if batchID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		batchRepo repository.BatchRepository,
	) error {
		batch, err := batchRepo.GetByID(batchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return fmt.Errorf("lote %s: %w", batchID, domain.ErrNotFound)
		}
		if batch.Quantity != 0 {
			return fmt.Errorf("lote %s con %d unidades: %w", batchID, batch.Quantity, domain.ErrBatchNotEmpty)
		}
		return batchRepo.Delete(batchID)
	})
}
