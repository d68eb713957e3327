package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	domledger "github.com/jhoicas/farmacia-api/internal/domain/ledger"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

// DispenseUseCase es el motor de despacho: consume lotes en orden de
// vencimiento (FEFO) con garantía todo-o-nada por prescripción. Si cualquier
// línea no puede satisfacerse completa, la llamada entera falla sin mutar el
// libro — ni siquiera las líneas que sí alcanzaban.
type DispenseUseCase struct {
	txRunner TxRunner
}

// NewDispenseUseCase construye el motor de despacho.
func NewDispenseUseCase(txRunner TxRunner) *DispenseUseCase {
	return &DispenseUseCase{txRunner: txRunner}
}

// DispenseLineInput una línea solicitada.
type DispenseLineInput struct {
	MedicationID string
	Quantity     int64
}

// DispenseInput entrada del despacho. OperatorID viene de la identidad externa.
type DispenseInput struct {
	OperatorID   string
	PatientID    string
	PrescriberID string
	Lines        []DispenseLineInput
}

// linePlan plan calculado para una línea durante la fase de verificación.
type linePlan struct {
	item    *entity.InventoryItem
	batches map[string]*entity.Batch
	takes   []domledger.BatchTake
}

// Dispense ejecuta el despacho en una sola transacción:
//
//  1. Resuelve el item de cada línea (ErrNotStocked si nunca recibió stock),
//     bloqueando las filas de items y lotes (SELECT FOR UPDATE).
//  2. Calcula el plan FEFO de cada línea; una insuficiencia en cualquiera
//     aborta todo con ErrInsufficientStock, sin mutación alguna.
//  3. Solo con todas las líneas verificadas aplica los descuentos lote a lote.
//  4. Persiste la prescripción con sus líneas al precio vigente del item y
//     devuelve el cargo total.
func (uc *DispenseUseCase) Dispense(ctx context.Context, in DispenseInput) (*dto.DispenseResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	seen := make(map[string]bool, len(in.Lines))
	for _, line := range in.Lines {
		if line.MedicationID == "" {
			return nil, domain.ErrInvalidInput
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("medicamento %s: la cantidad debe ser positiva: %w", line.MedicationID, domain.ErrInvalidInput)
		}
		if seen[line.MedicationID] {
			return nil, fmt.Errorf("medicamento %s: línea duplicada: %w", line.MedicationID, domain.ErrInvalidInput)
		}
		seen[line.MedicationID] = true
	}

	var result *dto.DispenseResponse
	err := uc.txRunner.RunDispense(ctx, func(
		itemRepo repository.InventoryItemRepository,
		batchRepo repository.BatchRepository,
		prescriptionRepo repository.PrescriptionRepository,
	) error {
		// Los bloqueos se adquieren en orden estable de medicamento para que dos
		// despachos concurrentes con líneas cruzadas no se interbloqueen.
		order := make([]int, len(in.Lines))
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(a, b int) bool {
			return in.Lines[order[a]].MedicationID < in.Lines[order[b]].MedicationID
		})

		// Fase 1: verificación completa antes de cualquier mutación.
		plans := make([]linePlan, len(in.Lines))
		for _, idx := range order {
			line := in.Lines[idx]
			item, err := itemRepo.GetByMedicationForUpdate(line.MedicationID)
			if err != nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("medicamento %s: %w", line.MedicationID, domain.ErrNotStocked)
			}
			batches, err := batchRepo.ListByItemForUpdate(item.ID, true)
			if err != nil {
				return err
			}
			takes, err := domledger.PlanConsumption(batches, line.Quantity)
			if err != nil {
				return fmt.Errorf("medicamento %s: %w", line.MedicationID, err)
			}
			byID := make(map[string]*entity.Batch, len(batches))
			for _, b := range batches {
				byID[b.ID] = b
			}
			plans[idx] = linePlan{item: item, batches: byID, takes: takes}
		}

		// Fase 2: descuento lote a lote, ya con todas las líneas garantizadas.
		for _, idx := range order {
			for _, take := range plans[idx].takes {
				batch := plans[idx].batches[take.BatchID]
				batch.Quantity -= take.Quantity
				if err := batchRepo.UpdateQuantity(batch.ID, batch.Quantity); err != nil {
					return err
				}
			}
		}

		// Registro de consumo: una prescripción con una línea por medicamento,
		// al precio vigente del item (no al costo original de cada lote).
		now := time.Now()
		prescription := &entity.Prescription{
			PatientID:    in.PatientID,
			PrescriberID: in.PrescriberID,
			OperatorID:   in.OperatorID,
			TotalCharge:  decimal.Zero,
			CreatedAt:    now,
		}
		respLines := make([]dto.DispenseLineResponse, 0, len(in.Lines))
		for i, line := range in.Lines {
			price := plans[i].item.Price
			prescription.Lines = append(prescription.Lines, entity.PrescriptionLine{
				MedicationID: line.MedicationID,
				Quantity:     line.Quantity,
				UnitPrice:    price,
			})
			prescription.TotalCharge = prescription.TotalCharge.Add(
				price.Mul(decimal.NewFromInt(line.Quantity)))
			respLines = append(respLines, dto.DispenseLineResponse{
				MedicationID: line.MedicationID,
				Quantity:     line.Quantity,
				UnitPrice:    price,
			})
		}
		if err := prescriptionRepo.Create(prescription); err != nil {
			return err
		}

		result = &dto.DispenseResponse{
			PrescriptionID: prescription.ID,
			TotalCharge:    prescription.TotalCharge,
			Lines:          respLines,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
