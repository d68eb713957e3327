package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
	"github.com/jhoicas/farmacia-api/pkg/logger"
)

// ReconcilePolicy define la fecha de vencimiento del lote de reemplazo que
// crea la conciliación. El conteo físico no captura vencimientos por lote, así
// que la fecha real se pierde; el placeholder es decisión de producto y por
// eso se configura (INVENTORY_RECONCILE_EXPIRY) en vez de quedar cableado.
type ReconcilePolicy struct {
	ReplacementExpiration time.Time
}

// ReconcileUseCase concilia el libro contra una sesión de conteo: por cada
// medicamento de la sesión elimina todos sus lotes y, si la cantidad contada
// es mayor a cero, crea exactamente un lote con esa cantidad. Todo en una sola
// transacción; los medicamentos sin item en el libro se omiten con un warning,
// no abortan la conciliación.
type ReconcileUseCase struct {
	txRunner    TxRunner
	sessionRepo repository.CountSessionRepository
	policy      ReconcilePolicy
	log         *logger.Logger
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(
	txRunner TxRunner,
	sessionRepo repository.CountSessionRepository,
	policy ReconcilePolicy,
	log *logger.Logger,
) *ReconcileUseCase {
	return &ReconcileUseCase{txRunner: txRunner, sessionRepo: sessionRepo, policy: policy, log: log}
}

// Reconcile aplica la sesión indicada al libro.
func (uc *ReconcileUseCase) Reconcile(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return domain.ErrInvalidInput
	}
	session, err := uc.sessionRepo.GetByID(sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("sesión de conteo %s: %w", sessionID, domain.ErrNotFound)
	}

	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		batchRepo repository.BatchRepository,
	) error {
		for _, line := range session.Lines {
			item, err := itemRepo.GetByMedicationForUpdate(line.MedicationID)
			if err != nil {
				return err
			}
			if item == nil {
				uc.log.Warn().
					Str("session_id", session.ID).
					Str("medication_id", line.MedicationID).
					Msg("conciliación: medicamento sin item en el libro, se omite")
				continue
			}
			if err := batchRepo.DeleteByItem(item.ID); err != nil {
				return err
			}
			if line.CountedQuantity > 0 {
				batch := &entity.Batch{
					ItemID:         item.ID,
					Quantity:       line.CountedQuantity,
					ExpirationDate: uc.policy.ReplacementExpiration,
					CreatedAt:      now,
					UpdatedAt:      now,
				}
				if err := batchRepo.Create(batch); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
