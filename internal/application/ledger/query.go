package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
	"github.com/jhoicas/farmacia-api/pkg/textutil"
)

// LedgerQueryUseCase consultas de solo lectura sobre el libro y el catálogo:
// foto de un item, reporte de stock bajo y búsqueda de medicamentos.
type LedgerQueryUseCase struct {
	itemRepo       repository.InventoryItemRepository
	batchRepo      repository.BatchRepository
	medicationRepo repository.MedicationRepository
	reportRepo     repository.ReportRepository
}

// NewLedgerQueryUseCase construye el caso de uso con repositorios atados al pool.
func NewLedgerQueryUseCase(
	itemRepo repository.InventoryItemRepository,
	batchRepo repository.BatchRepository,
	medicationRepo repository.MedicationRepository,
	reportRepo repository.ReportRepository,
) *LedgerQueryUseCase {
	return &LedgerQueryUseCase{
		itemRepo:       itemRepo,
		batchRepo:      batchRepo,
		medicationRepo: medicationRepo,
		reportRepo:     reportRepo,
	}
}

// GetItem devuelve la foto del item de un medicamento: precio vigente, total
// derivado y lotes por vencimiento.
func (uc *LedgerQueryUseCase) GetItem(ctx context.Context, medicationID string) (*dto.ItemSnapshotDTO, error) {
	if medicationID == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByMedication(medicationID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("medicamento %s: %w", medicationID, domain.ErrNotFound)
	}
	batches, err := uc.batchRepo.ListByItem(item.ID, false)
	if err != nil {
		return nil, err
	}
	return buildSnapshot(item, batches), nil
}

// LowStock devuelve los medicamentos por debajo de su umbral mínimo con la
// cantidad sugerida de pedido (hasta 2x el mínimo) y su costo estimado.
func (uc *LedgerQueryUseCase) LowStock(ctx context.Context) ([]dto.LowStockDTO, error) {
	rows, err := uc.reportRepo.ListBelowMinimum(ctx, 200)
	if err != nil {
		return nil, err
	}
	result := make([]dto.LowStockDTO, 0, len(rows))
	for _, r := range rows {
		suggested := 2*r.MinimumStock - r.TotalQuantity
		if suggested < 0 {
			suggested = 0
		}
		result = append(result, dto.LowStockDTO{
			MedicationID:       r.MedicationID,
			Name:               r.Name,
			MinimumStock:       r.MinimumStock,
			CurrentStock:       r.TotalQuantity,
			SuggestedOrderQty:  suggested,
			EstimatedOrderCost: r.UnitPrice.Mul(decimal.NewFromInt(suggested)),
		})
	}
	return result, nil
}

// SearchMedications busca en el catálogo por nombre, insensible a mayúsculas
// y acentos ("acetaminofén" == "ACETAMINOFEN").
func (uc *LedgerQueryUseCase) SearchMedications(ctx context.Context, query string, limit, offset int) ([]dto.MedicationDTO, error) {
	normalized := textutil.Normalize(query)
	if normalized == "" {
		return nil, domain.ErrInvalidInput
	}
	meds, err := uc.medicationRepo.Search(normalized, limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]dto.MedicationDTO, 0, len(meds))
	for _, m := range meds {
		result = append(result, dto.MedicationDTO{
			ID:           m.ID,
			Name:         m.Name,
			GenericName:  m.GenericName,
			Form:         m.Form,
			MinimumStock: m.MinimumStock,
		})
	}
	return result, nil
}

// buildSnapshot arma la foto del item con sus lotes ordenados por vencimiento.
func buildSnapshot(item *entity.InventoryItem, batches []*entity.Batch) *dto.ItemSnapshotDTO {
	snapshot := &dto.ItemSnapshotDTO{
		MedicationID:  item.MedicationID,
		UnitPrice:     item.Price,
		TotalQuantity: entity.TotalQuantity(batches),
		Batches:       make([]dto.BatchDTO, 0, len(batches)),
	}
	for _, b := range batches {
		snapshot.Batches = append(snapshot.Batches, dto.BatchDTO{
			ID:             b.ID,
			Quantity:       b.Quantity,
			ExpirationDate: b.ExpirationDate.Format(dto.DateLayout),
		})
	}
	return snapshot
}
